package codeexecutors

import "testing"

func TestMimeType(t *testing.T) {
	for name, expected := range map[string]string{
		"plot.png":        "image/png",
		"PLOT.PNG":        "image/png",
		"photo.jpg":       "image/jpeg",
		"photo.jpeg":      "image/jpeg",
		"data.csv":        "text/csv",
		"notes.txt":       "text/plain",
		"dir/report.json": "application/json",
		"Makefile":        "application/octet-stream",
		"blob.zzzunknown": "application/octet-stream",
	} {
		if actual := MimeType(name); actual != expected {
			t.Errorf("MimeType(%q) got %q but expected %q", name, actual, expected)
		}
	}
}

func TestExtractCodeBlock(t *testing.T) {
	for _, tc := range []struct {
		text       string
		delimiters []CodeBlockDelimiter
		code       string
		ok         bool
	}{
		{"no code here", nil, "", false},
		{"```python\nprint(1)\n```", nil, "print(1)", true},
		{"first\n```tool_code\nx = 1\n```\nthen\n```python\ny = 2\n```", nil, "x = 1", true},
		{"first\n```python\ny = 2\n```\nthen\n```tool_code\nx = 1\n```", nil, "y = 2", true},
		{"```python\nunterminated", nil, "", false},
		{"<code>z</code>", []CodeBlockDelimiter{{Start: "<code>", End: "</code>"}}, "z", true},
	} {
		code, ok := ExtractCodeBlock(tc.text, tc.delimiters)
		if code != tc.code || ok != tc.ok {
			t.Errorf("ExtractCodeBlock(%q) got %q, %v but expected %q, %v", tc.text, code, ok, tc.code, tc.ok)
		}
	}
}
