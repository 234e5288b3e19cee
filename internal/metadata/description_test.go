package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescription_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     DescriptionKind
		expected string
	}{
		{"plain string", `{"description": " A tale. "}`, DescriptionText, "A tale."},
		{"wrapped object", `{"description": {"type": "/type/text", "value": "A tale."}}`, DescriptionObject, "A tale."},
		{"object without value", `{"description": {"type": "/type/text"}}`, DescriptionObject, ""},
		{"object with non-string value", `{"description": {"value": 7}}`, DescriptionObject, ""},
		{"number", `{"description": 12}`, DescriptionAbsent, ""},
		{"list", `{"description": ["a"]}`, DescriptionAbsent, ""},
		{"missing", `{}`, DescriptionAbsent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Description Description `json:"description"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &doc))
			assert.Equal(t, tt.kind, doc.Description.Kind)
			assert.Equal(t, tt.expected, doc.Description.Text())
		})
	}
}
