package layout

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TextReader streams mappings from the plain text layout format.
//
// Tables are enclosed in blocks named after the table:
//
//	\message{Kabyle, Latin based}
//	% comments start with a percent sign
//	\latin{
//	a   ⴰ
//	sh  ⵛ
//	gʷ  ⴳⵯ
//	}
//	\overrides{
//	S   ⵚ
//	}
//
// Every line inside a block holds a key and its glyph, separated by white
// space. Lines outside any block are ignored, as are blocks other than the
// one the reader was created for. A "\message{...}" line names the layout.
type TextReader struct {
	scanner    *bufio.Scanner
	section    string
	identifier string
	inside     bool
	line       int
	count      int
}

// NewTextReader creates a reader for the table block named section.
func NewTextReader(reader io.Reader, section string) *TextReader {
	return &TextReader{
		scanner: bufio.NewScanner(reader),
		section: section,
	}
}

// Identifier returns the layout name from a \message line, if any has been
// read so far.
func (r *TextReader) Identifier() string {
	return r.identifier
}

// Count returns the number of mappings read so far.
func (r *TextReader) Count() int {
	return r.count
}

// Next returns the next (key, glyph) pair of the section.
// It returns io.EOF when exhausted.
func (r *TextReader) Next() (string, string, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "\\message{") && strings.HasSuffix(line, "}") {
			r.identifier = line[9 : len(line)-1]
			continue
		}
		if strings.HasPrefix(line, "\\") && strings.HasSuffix(line, "{") {
			name := line[1 : len(line)-1]
			if name != r.section {
				skipBlock(r.scanner, &r.line)
				continue
			}
			r.inside = true
			continue
		}
		if strings.HasPrefix(line, "}") {
			r.inside = false
			continue
		}
		if !r.inside {
			continue
		}
		key, glyph, err := splitMappingLine(line)
		if err != nil {
			return "", "", fmt.Errorf("line %d: %w", r.line, err)
		}
		r.count++
		return key, glyph, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", err
	}
	return "", "", io.EOF
}

// splitMappingLine separates key and glyph. A trailing comment is dropped.
func splitMappingLine(line string) (string, string, error) {
	if i := strings.Index(line, " %"); i >= 0 {
		line = line[:i]
	}
	fields := strings.FieldsFunc(line, unicode.IsSpace)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	return fields[0], fields[1], nil
}

func skipBlock(scanner *bufio.Scanner, line *int) {
	for scanner.Scan() {
		*line++
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), "}") {
			return
		}
	}
}
