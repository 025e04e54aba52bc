package finetune

import (
	"sort"

	"github.com/kiranshivaraju/tunehub/pkg/models"
)

var typeNames = map[models.ParameterType]string{
	models.ParameterFloat:  "a float",
	models.ParameterInt:    "an integer",
	models.ParameterString: "a string",
	models.ParameterBool:   "a boolean",
}

// ValidateParameters checks params against schema and returns the first violation:
// missing required parameters (schema order), then unknown names (sorted), then
// type mismatches (schema order). Types must match exactly; an int is not a float.
func ValidateParameters(params models.Parameters, schema models.ParameterSchema) error {
	for _, p := range schema {
		if p.Optional {
			continue
		}
		if _, ok := params[p.Name]; !ok {
			return missingParameter(p.Name)
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := schema.Lookup(name); !ok {
			return unknownParameter(name)
		}
	}

	for _, p := range schema {
		v, ok := params[p.Name]
		if !ok {
			continue
		}
		if v.Type() != p.Type {
			return typeMismatch(p.Name, typeNames[p.Type])
		}
	}
	return nil
}
