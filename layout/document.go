package layout

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Errors reported while reading layout files.
var (
	ErrMalformedLine = errors.New("malformed layout line")
	ErrUnknownFormat = errors.New("unknown layout format")
	ErrUnknownField  = errors.New("unknown layout field")
)

// Document is the structured form of a layout, as written in TOML or YAML:
//
//	name = "Kabyle"
//
//	[latin]
//	a = "ⴰ"
//	sh = "ⵛ"
//
//	[overrides]
//	S = "ⵚ"
//
// Both decoders reject a key defined twice within one table.
type Document struct {
	Name      string            `toml:"name" yaml:"name"`
	Latin     map[string]string `toml:"latin" yaml:"latin"`
	Tifinagh  map[string]string `toml:"tifinagh" yaml:"tifinagh"`
	Arabic    map[string]string `toml:"arabic" yaml:"arabic"`
	Digraphs  map[string]string `toml:"digraphs" yaml:"digraphs"`
	Overrides map[string]string `toml:"overrides" yaml:"overrides"`
}

// DecodeTOML decodes a layout document from TOML. Unknown top-level fields
// are an error, so that a misspelled table name is not silently ignored.
func DecodeTOML(r io.Reader) (*Document, error) {
	doc := &Document{}
	md, err := toml.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decode TOML: %w: %s", ErrUnknownField, strings.Join(keys, ", "))
	}
	return doc, nil
}

// DecodeYAML decodes a layout document from YAML. Unknown fields are an error.
func DecodeYAML(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return doc, nil
}

// Section returns the mappings of one table, or nil if the document does not
// define it.
func (doc *Document) Section(name string) map[string]string {
	switch name {
	case SectionLatin:
		return doc.Latin
	case SectionTifinagh:
		return doc.Tifinagh
	case SectionArabic:
		return doc.Arabic
	case SectionDigraphs:
		return doc.Digraphs
	case SectionOverrides:
		return doc.Overrides
	}
	return nil
}

// MapReader streams the entries of a map in key order.
type MapReader struct {
	m    map[string]string
	keys []string
	pos  int
}

// NewMapReader creates a reader over m.
func NewMapReader(m map[string]string) *MapReader {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &MapReader{m: m, keys: keys}
}

// Next returns the next (key, glyph) pair or io.EOF.
func (r *MapReader) Next() (string, string, error) {
	if r.pos >= len(r.keys) {
		return "", "", io.EOF
	}
	k := r.keys[r.pos]
	r.pos++
	return k, r.m[k], nil
}
