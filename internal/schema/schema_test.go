package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/techtalk-hub/apimodels"
)

func TestSchemaForResults(t *testing.T) {
	results := []interface{}{
		apimodels.BiasResult{},
		apimodels.PrivacyResult{},
		apimodels.AutomationResult{},
		apimodels.MoodResult{},
	}

	for _, r := range results {
		s, err := For(r)
		require.NoError(t, err)
		checkSchemaFormat(t, s, reflect.TypeOf(r))
	}
}

func TestSchemaPrivacyDetails(t *testing.T) {
	s, err := For(&apimodels.PrivacyResult{})
	require.NoError(t, err)

	props := s["properties"].(map[string]interface{})
	assert.Equal(t, []string{"Low", "Medium", "High"}, props["riskLevel"].(map[string]interface{})["enum"])
	assert.Equal(t, "number", props["totalSensitive"].(map[string]interface{})["type"])

	found := props["foundSensitive"].(map[string]interface{})
	assert.Equal(t, "array", found["type"])
	items := found["items"].(map[string]interface{})
	itemProps := items["properties"].(map[string]interface{})
	assert.Equal(t,
		[]string{"Email", "Phone", "SSN", "CreditCard", "Address", "Name"},
		itemProps["type"].(map[string]interface{})["enum"])
	assert.ElementsMatch(t, []string{"type", "count"}, items["required"])
}

func TestSchemaNil(t *testing.T) {
	_, err := For(nil)
	assert.Error(t, err)
}

func TestSchemaUnsupportedKind(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
	}{
		{"chan", struct {
			C chan int `json:"c"`
		}{}},
		{"map", struct {
			M map[string]string `json:"m"`
		}{}},
		{"interface", struct {
			A interface{} `json:"a"`
		}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := For(tt.v)
			assert.ErrorContains(t, err, "unsupported kind")
		})
	}
}

func TestSchemaScalarTypes(t *testing.T) {
	s, err := For(struct {
		N int     `json:"n"`
		F float64 `json:"f"`
		B bool    `json:"b"`
	}{})
	require.NoError(t, err)

	props := s["properties"].(map[string]interface{})
	assert.Equal(t, "integer", props["n"].(map[string]interface{})["type"])
	assert.Equal(t, "number", props["f"].(map[string]interface{})["type"])
	assert.Equal(t, "boolean", props["b"].(map[string]interface{})["type"])
}

func checkSchemaFormat(t *testing.T, s map[string]interface{}, typ reflect.Type) {
	data, err := json.Marshal(s)
	require.NoError(t, err, "failed to marshal schema to JSON")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "object", decoded["type"], "top-level schema should be type object")

	props, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")

	required, ok := decoded["required"].([]interface{})
	require.True(t, ok, "required should be a list")

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		jsonName := jsonFieldName(f)
		if jsonName == "" {
			continue
		}
		assert.Containsf(t, props, jsonName, "expected field %q in properties", jsonName)
		assert.Containsf(t, required, jsonName, "expected field %q to be required", jsonName)
	}
}

func TestEnumViolations(t *testing.T) {
	t.Run("clean result", func(t *testing.T) {
		assert.Empty(t, EnumViolations(apimodels.MoodResult{MoodCategory: "Positive", Confidence: "High"}))
	})

	t.Run("top-level values", func(t *testing.T) {
		v := EnumViolations(&apimodels.MoodResult{MoodCategory: "Happy", Confidence: "Medium"})
		require.Len(t, v, 1)
		assert.Equal(t, "moodCategory", v[0].Path)
		assert.Equal(t, "Happy", v[0].Value)
		assert.Equal(t, `moodCategory="Happy" not in [Positive Negative Neutral]`, v[0].String())
	})

	t.Run("nested slice values", func(t *testing.T) {
		v := EnumViolations(apimodels.PrivacyResult{
			RiskLevel: "Critical",
			FoundSensitive: []apimodels.SensitiveFinding{
				{Type: "Email", Count: 1},
				{Type: "IPAddress", Count: 2},
			},
		})
		require.Len(t, v, 2)
		assert.Equal(t, "riskLevel", v[0].Path)
		assert.Equal(t, "foundSensitive[1].type", v[1].Path)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, EnumViolations(nil))
		var p *apimodels.BiasResult
		assert.Empty(t, EnumViolations(p))
	})
}
