// Package field parses and renders tab-stop field placeholders embedded
// in text and attribute values.
//
// Fields mark the positions an editor jumps to after a snippet is
// expanded. Three syntaxes are recognized:
//
//	$1              index only
//	${1}            index only, braced
//	${1:placeholder} index with default placeholder text
//
// A dollar sign can be escaped as `\$` to keep it literal. Anything that
// does not match the syntax above is left untouched.
package field

import (
	"strconv"
	"strings"
)

// Field is a single parsed placeholder.
type Field struct {
	Index       int    // tab-stop index as written in the source
	Placeholder string // default text, empty for $N and ${N}
	Location    int    // byte offset of the field in the cleaned text
}

// Parse scans text for field placeholders and returns the text with all
// placeholder markers removed (placeholders keep their default text) and
// the list of parsed fields in source order. Locations index into the
// cleaned text.
func Parse(text string) (string, []Field) {
	var (
		out    strings.Builder
		fields []Field
	)

	for i := 0; i < len(text); {
		c := text[i]

		if c == '\\' && i+1 < len(text) && text[i+1] == '$' {
			out.WriteByte('$')
			i += 2
			continue
		}

		if c == '$' {
			if f, next, ok := parseAt(text, i); ok {
				f.Location = out.Len()
				out.WriteString(f.Placeholder)
				fields = append(fields, f)
				i = next
				continue
			}
		}

		out.WriteByte(c)
		i++
	}

	return out.String(), fields
}

// parseAt parses one placeholder starting at the '$' at offset i.
// Returns the field, the offset just past the placeholder, and whether
// the text at i was a well-formed placeholder.
func parseAt(text string, i int) (Field, int, bool) {
	j := i + 1
	if j >= len(text) {
		return Field{}, 0, false
	}

	braced := text[j] == '{'
	if braced {
		j++
	}

	start := j
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	if j == start {
		return Field{}, 0, false
	}
	index, err := strconv.Atoi(text[start:j])
	if err != nil {
		return Field{}, 0, false
	}

	if !braced {
		return Field{Index: index}, j, true
	}

	var placeholder string
	if j < len(text) && text[j] == ':' {
		end := strings.IndexByte(text[j:], '}')
		if end < 0 {
			return Field{}, 0, false
		}
		placeholder = text[j+1 : j+end]
		j += end
	}
	if j >= len(text) || text[j] != '}' {
		return Field{}, 0, false
	}
	return Field{Index: index, Placeholder: placeholder}, j + 1, true
}

// Contains reports whether text holds at least one well-formed field
// placeholder.
func Contains(text string) bool {
	_, fields := Parse(text)
	return len(fields) > 0
}

// Render substitutes every placeholder in text using token, which
// receives the field index and placeholder text and returns the
// replacement. Non-placeholder text passes through unchanged.
func Render(text string, token func(index int, placeholder string) string) string {
	clean, fields := Parse(text)
	if len(fields) == 0 {
		return clean
	}

	var out strings.Builder
	prev := 0
	for _, f := range fields {
		out.WriteString(clean[prev:f.Location])
		out.WriteString(token(f.Index, f.Placeholder))
		prev = f.Location + len(f.Placeholder)
	}
	out.WriteString(clean[prev:])
	return out.String()
}

// Discard strips all placeholder markers, keeping only their default
// placeholder text. This is the renderer used for plain-text output
// where no editor consumes tab stops.
func Discard(text string) string {
	clean, _ := Parse(text)
	return clean
}
