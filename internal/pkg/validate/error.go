package validate

import (
	"sort"
	"strings"
)

// FieldsError carries translated validation messages keyed by json field name.
type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

// Error lists the failing fields in a stable order, e.g. "invalid fields: input_type, rating".
func (f *FieldsError) Error() string {
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
