package resolution

import "github.com/hanpama/queryshape/internal/schema"

// unknownVariantName is the catch-all variant appended to every
// generated enum. A schema can grow values after code was generated;
// decoding folds unrecognized values into this variant instead of
// failing, so generated code stays forward compatible.
const unknownVariantName = "Unknown"

func buildEnumDefinition(t *schema.Type, opts Options) *Definition {
	def := &EnumDef{UnknownVariant: unknownVariantName}
	for _, v := range t.EnumValues {
		def.Values = append(def.Values, &EnumValueDef{
			Name:        v.Name,
			Description: v.Description,
		})
	}
	return &Definition{
		Name:     t.Name,
		Category: CategoryEnum,
		Derives:  opts.ResponseDerives,
		Enum:     def,
	}
}
