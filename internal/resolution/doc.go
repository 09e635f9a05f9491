// Package resolution derives the typed-structure layout of a GraphQL
// operation: given a resolved schema view and a validated operation,
// it determines every type the operation transitively reaches and
// produces the record, enum, alias and tagged-union definitions that
// the operation's response and variables must have.
//
// The pass runs in a fixed order. The used-types catalog is collected
// once (first-seen order, deduplicated by identity); scalar aliases,
// enum definitions and input records are emitted from the catalog;
// the variables record is built from the declared variables; one shape
// is built per reachable fragment; finally the response shape tree is
// built from the root selection set. Selections on interfaces and
// unions synthesize an auxiliary tagged union (<ShapeName>On) with one
// variant per type condition, discriminated by the runtime type name.
//
// Generation is a pure computation over immutable inputs: no I/O, no
// caching, no state shared between operations. Failures (malformed
// qualifier sequences, unknown fields or types, unresolved fragments,
// ambiguous type conditions, output-name collisions with composed
// fields) are terminal for the whole operation; there is no
// partial output. Rendering the produced definitions into concrete
// source text is a separate concern (see internal/gogen).
package resolution
