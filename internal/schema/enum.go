package schema

import (
	"fmt"
	"reflect"
	"slices"
)

// Violation is a string field whose value is outside its enum tag.
type Violation struct {
	Path    string
	Value   string
	Allowed []string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s=%q not in %v", v.Path, v.Value, v.Allowed)
}

// EnumViolations walks v (structs, pointers and slices of structs) and
// reports every enum-tagged string field holding a value outside its tag.
// It only reports; nothing is rewritten.
func EnumViolations(v interface{}) []Violation {
	if v == nil {
		return nil
	}
	var out []Violation
	walk(reflect.ValueOf(v), "", &out)
	return out
}

func walk(v reflect.Value, path string, out *[]Violation) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			name := jsonFieldName(f)
			if name == "" {
				continue
			}
			fieldPath := name
			if path != "" {
				fieldPath = path + "." + name
			}

			fv := v.Field(i)
			if allowed := enumValues(f); len(allowed) > 0 && fv.Kind() == reflect.String {
				if !slices.Contains(allowed, fv.String()) {
					*out = append(*out, Violation{Path: fieldPath, Value: fv.String(), Allowed: allowed})
				}
				continue
			}
			walk(fv, fieldPath, out)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
}
