package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// EnumTag lists the allowed values of a string field, comma separated.
const EnumTag = "enum"

// For returns the JSON schema of v's type. Every exported field with a json
// name is listed and required, since results never omit a declared field.
func For(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot build schema for nil")
	}
	return typeToJSONSchema(reflect.TypeOf(v))
}

func typeToJSONSchema(t reflect.Type) (map[string]interface{}, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		props := map[string]interface{}{}
		var requiredFields []string

		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}

			jsonName := jsonFieldName(f)
			if jsonName == "" {
				continue
			}

			fieldSchema, err := typeToJSONSchema(f.Type)
			if err != nil {
				return nil, err
			}
			if allowed := enumValues(f); len(allowed) > 0 {
				fieldSchema["enum"] = allowed
			}

			props[jsonName] = fieldSchema
			requiredFields = append(requiredFields, jsonName)
		}

		objSchema := map[string]interface{}{
			"type":       "object",
			"properties": props,
		}
		if len(requiredFields) > 0 {
			objSchema["required"] = requiredFields
		}
		return objSchema, nil

	case reflect.String:
		return map[string]interface{}{"type": "string"}, nil
	case reflect.Int, reflect.Int64, reflect.Int32:
		return map[string]interface{}{"type": "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}, nil
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}, nil
	case reflect.Slice, reflect.Array:
		elemSchema, err := typeToJSONSchema(t.Elem())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":  "array",
			"items": elemSchema,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	parts := strings.Split(tag, ",")
	return parts[0]
}

func enumValues(f reflect.StructField) []string {
	tag := f.Tag.Get(EnumTag)
	if tag == "" {
		return nil
	}
	return strings.Split(tag, ",")
}
