package metadata

import (
	"encoding/json"
	"strings"
)

// DescriptionKind tells which shape an OpenLibrary description arrived in.
type DescriptionKind int

const (
	DescriptionAbsent DescriptionKind = iota
	DescriptionText
	DescriptionObject
)

// Description is OpenLibrary's "description" field, which is either a plain
// string or an object like {"type": "/type/text", "value": "..."}.
// Unmarshalling never fails; unknown shapes decode as absent.
type Description struct {
	Kind  DescriptionKind
	Value string
}

func (d *Description) UnmarshalJSON(data []byte) error {
	*d = Description{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Kind = DescriptionText
		d.Value = s
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && obj != nil {
		d.Kind = DescriptionObject
		if raw, ok := obj["value"]; ok {
			var v string
			if json.Unmarshal(raw, &v) == nil {
				d.Value = v
			}
		}
	}
	return nil
}

// Text returns the trimmed description, or "" when absent or blank.
func (d Description) Text() string {
	if d.Kind == DescriptionAbsent {
		return ""
	}
	return strings.TrimSpace(d.Value)
}
