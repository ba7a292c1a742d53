package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList accepts either a JSON array of strings or a single comma-separated
// string. Older clients send tags as "a,b,c"; newer ones send ["a","b","c"].
//   - null or absent: empty list
//   - "": empty list
//   - "a, b": ["a", " b"] (callers normalise)
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if string(trimmed) == "null" {
		*l = StringList{}
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*l = StringList{}
			return nil
		}
		*l = strings.Split(s, ",")
		return nil
	}

	var items []string
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("expected a string or an array of strings: %w", err)
	}
	*l = items
	return nil
}
