package sandbox

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// encodeContents turns CreateFile input into file bytes. nil and "" give an
// empty file; strings and byte slices are kept; other values are written as
// JSON indented by four spaces. Non-empty output always ends in a newline.
func encodeContents(contents any) ([]byte, error) {
	var data []byte
	switch c := contents.(type) {
	case nil:
	case string:
		data = []byte(c)
	case []byte:
		data = append([]byte(nil), c...)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// decodeContents trims trailing whitespace and returns the JSON value it
// holds, or the trimmed text when it is not JSON.
func decodeContents(data []byte) any {
	text := strings.TrimRightFunc(string(data), unicode.IsSpace)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	return text
}
