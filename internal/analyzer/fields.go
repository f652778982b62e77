package analyzer

import (
	"slices"

	"github.com/tidwall/gjson"

	"github.com/sozercan/techtalk-hub/apimodels"
)

// Field readers return the model's value when the key is present with a
// usable JSON type and def otherwise. Absent, null and mistyped values all
// fall back to def.

// lookup returns the value of key in obj. When the key repeats, the last
// occurrence wins, matching how JSON.parse and encoding/json treat
// duplicates. gjson's Get would return the first one.
func lookup(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}

func stringField(obj gjson.Result, key, def string) string {
	v := lookup(obj, key)
	if v.Type != gjson.String {
		return def
	}
	return v.Str
}

func boolField(obj gjson.Result, key string, def bool) bool {
	switch lookup(obj, key).Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return def
	}
}

// numberField keeps the number as sent, fraction and sign included.
func numberField(obj gjson.Result, key string, def float64) float64 {
	v := lookup(obj, key)
	if v.Type != gjson.Number {
		return def
	}
	return v.Num
}

func stringsField(obj gjson.Result, key string, def []string) []string {
	v := lookup(obj, key)
	if !v.IsArray() {
		return slices.Clone(def)
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type == gjson.Null {
			continue
		}
		out = append(out, item.String())
	}
	return out
}

func findingsField(obj gjson.Result, key string, def []apimodels.SensitiveFinding) []apimodels.SensitiveFinding {
	v := lookup(obj, key)
	if !v.IsArray() {
		return slices.Clone(def)
	}
	items := v.Array()
	out := make([]apimodels.SensitiveFinding, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		out = append(out, apimodels.SensitiveFinding{
			Type:  stringField(item, "type", ""),
			Count: numberField(item, "count", 0),
		})
	}
	return out
}
