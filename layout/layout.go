package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/tifinagh"
	"github.com/npillmayer/tifinagh/ime"
)

// Names of the tables of a layout, used as block names in the plain text
// format and as field names in TOML and YAML.
const (
	SectionLatin     = "latin"
	SectionTifinagh  = "tifinagh"
	SectionArabic    = "arabic"
	SectionDigraphs  = "digraphs"
	SectionOverrides = "overrides"
)

// Sections lists all table names in the order they are compiled.
var Sections = []string{SectionLatin, SectionTifinagh, SectionArabic, SectionDigraphs, SectionOverrides}

// Format is a layout source format.
type Format int

const (
	FormatAuto Format = iota // plain text if it has table blocks, else TOML, then YAML
	FormatText
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "auto"
}

// FormatFor derives the format from a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".tex", ".layout":
		return FormatText
	}
	return FormatAuto
}

// Layout is a compiled set of glyph tables. A nil table means the built-in
// table applies.
type Layout struct {
	Name      string
	Latin     *tifinagh.Table
	Tifinagh  *tifinagh.Table
	Arabic    *tifinagh.Table
	Digraphs  *tifinagh.Table
	Overrides *tifinagh.Table
}

// Table returns the compiled table for a section name.
func (l *Layout) Table(section string) *tifinagh.Table {
	switch section {
	case SectionLatin:
		return l.Latin
	case SectionTifinagh:
		return l.Tifinagh
	case SectionArabic:
		return l.Arabic
	case SectionDigraphs:
		return l.Digraphs
	case SectionOverrides:
		return l.Overrides
	}
	return nil
}

func (l *Layout) set(section string, t *tifinagh.Table) {
	switch section {
	case SectionLatin:
		l.Latin = t
	case SectionTifinagh:
		l.Tifinagh = t
	case SectionArabic:
		l.Arabic = t
	case SectionDigraphs:
		l.Digraphs = t
	case SectionOverrides:
		l.Overrides = t
	}
}

// ConverterOptions returns the options that make a tifinagh.Converter use
// the tables of this layout.
func (l *Layout) ConverterOptions() []tifinagh.Option {
	return []tifinagh.Option{
		tifinagh.WithLatinTable(l.Latin),
		tifinagh.WithTifinaghTable(l.Tifinagh),
		tifinagh.WithArabicTable(l.Arabic),
	}
}

// EngineOptions returns the options that make an ime.Engine use the tables
// of this layout.
func (l *Layout) EngineOptions() []ime.Option {
	return []ime.Option{
		ime.WithLatinTable(l.Latin),
		ime.WithArabicTable(l.Arabic),
		ime.WithDigraphTable(l.Digraphs),
		ime.WithOverrideTable(l.Overrides),
	}
}

// Compile turns a decoded document into a layout.
func Compile(doc *Document) (*Layout, error) {
	l := &Layout{Name: doc.Name}
	for _, section := range Sections {
		m := doc.Section(section)
		if len(m) == 0 {
			continue
		}
		t, err := tifinagh.LoadTable(tableName(doc.Name, section), NewMapReader(m))
		if err != nil {
			tracer().Errorf("layout %q: %v", doc.Name, err)
			return nil, err
		}
		l.set(section, t)
	}
	return l, nil
}

// LoadText reads a layout in the plain text format. The data is scanned
// once per table.
func LoadText(name string, reader io.Reader) (*Layout, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	l := &Layout{Name: name}
	for _, section := range Sections {
		r := NewTextReader(bytes.NewReader(data), section)
		t, err := tifinagh.LoadTable(tableName(name, section), r)
		if err != nil {
			tracer().Errorf("layout %q: %v", name, err)
			return nil, err
		}
		if r.Identifier() != "" {
			l.Name = r.Identifier()
		}
		if r.Count() > 0 {
			l.set(section, t)
		}
	}
	return l, nil
}

// Load reads a layout in the given format.
func Load(name string, reader io.Reader, format Format) (*Layout, error) {
	var doc *Document
	var err error
	switch format {
	case FormatText:
		return LoadText(name, reader)
	case FormatTOML:
		doc, err = DecodeTOML(reader)
	case FormatYAML:
		doc, err = DecodeYAML(reader)
	case FormatAuto:
		return loadAuto(name, reader)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return Compile(doc)
}

func loadAuto(name string, reader io.Reader) (*Layout, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if looksLikeText(data) {
		return LoadText(name, bytes.NewReader(data))
	}
	for _, f := range []Format{FormatTOML, FormatYAML} {
		l, err := Load(name, bytes.NewReader(data), f)
		if err == nil {
			tracer().Debugf("layout %q detected as %s", name, f)
			return l, nil
		}
	}
	return nil, fmt.Errorf("layout %q: %w (tried TOML, YAML)", name, ErrUnknownFormat)
}

// LoadFile reads a layout file, choosing the format by extension.
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l, err := Load(name, f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	tracer().Infof("loaded layout %q from %s", l.Name, path)
	return l, nil
}

// looksLikeText reports whether some line opens a block of the plain format.
func looksLikeText(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("\\")) {
			return true
		}
	}
	return false
}

func tableName(layout, section string) string {
	if layout == "" {
		return section
	}
	return layout + "/" + section
}
