package jsonutil

import (
	"encoding/json"
	"io"
)

// PrettyPrint writes v to w as tab-indented JSON without escaping HTML
// characters, which only get in the way of reading code and its output.
func PrettyPrint(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}
