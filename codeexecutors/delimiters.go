package codeexecutors

import "strings"

// CodeBlockDelimiter brackets code in a model's output.
type CodeBlockDelimiter struct {
	Start, End string
}

// DefaultCodeBlockDelimiters are tried in order by ExtractCodeBlock.
var DefaultCodeBlockDelimiters = []CodeBlockDelimiter{
	{Start: "```tool_code\n", End: "\n```"},
	{Start: "```python\n", End: "\n```"},
}

// ExtractCodeBlock returns the contents of the earliest code block in text
// that's bracketed by any of delimiters (or DefaultCodeBlockDelimiters, if
// delimiters is empty) and true. If there's no complete code block in text
// it returns the empty string and false.
func ExtractCodeBlock(text string, delimiters []CodeBlockDelimiter) (string, bool) {
	if len(delimiters) == 0 {
		delimiters = DefaultCodeBlockDelimiters
	}
	code, first := "", -1
	for _, d := range delimiters {
		i := strings.Index(text, d.Start)
		if i < 0 || first >= 0 && i >= first {
			continue
		}
		rest := text[i+len(d.Start):]
		j := strings.Index(rest, d.End)
		if j < 0 {
			continue
		}
		code, first = rest[:j], i
	}
	return code, first >= 0
}
