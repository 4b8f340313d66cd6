package layout

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tifinagh"
	"github.com/npillmayer/tifinagh/ime"
)

func TestTextReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.layout")
	defer teardown()
	//
	src := "\\message{Test}\n\\latin{\na ⴰ\nsh ⵛ % digraph\n}\n\\arabic{\nب ⴱ\n}\n"
	r := NewTextReader(strings.NewReader(src), SectionArabic)
	key, glyph, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "ب" || glyph != "ⴱ" {
		t.Fatalf("expected (ب, ⴱ), got (%s, %s)", key, glyph)
	}
	if r.Identifier() != "Test" {
		t.Fatalf("expected identifier Test, got %q", r.Identifier())
	}
	if _, _, err = r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 mapping, got %d", r.Count())
	}
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.layout")
	defer teardown()
	//
	for _, path := range []string{"testdata/kabyle.txt", "testdata/kabyle.toml", "testdata/kabyle.yaml"} {
		l, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if l.Name != "Kabyle" {
			t.Errorf("%s: expected name Kabyle, got %q", path, l.Name)
		}
		if l.Latin.Len() != 6 {
			t.Errorf("%s: expected 6 latin entries, got %d", path, l.Latin.Len())
		}
		if l.Arabic != nil || l.Tifinagh != nil {
			t.Errorf("%s: expected undefined tables to stay nil", path)
		}
		if g, ok := l.Overrides.Lookup("S"); !ok || g != "ⵚ" {
			t.Errorf("%s: expected override S → ⵚ, got %q", path, g)
		}
		if g, ok := l.Table(SectionLatin).Lookup("gʷ"); !ok || g != "ⴳⵯ" {
			t.Errorf("%s: expected gʷ → ⴳⵯ, got %q", path, g)
		}
	}
}

func TestLayoutConverter(t *testing.T) {
	l, err := LoadFile("testdata/kabyle.toml")
	if err != nil {
		t.Fatal(err)
	}
	conv := tifinagh.NewConverter(l.ConverterOptions()...)
	tests := []struct {
		in, out string
	}{
		{"ash", "ⴰⵛ"},
		{"abc", "ⴰⴱc"},
		{"ḍa", "ⴹⴰ"},
	}
	for _, tt := range tests {
		if got := conv.LatinToTifinagh(tt.in); got != tt.out {
			t.Errorf("LatinToTifinagh(%q) = %q, expected %q", tt.in, got, tt.out)
		}
	}
	// the Talatint direction keeps the built-in table
	if got := conv.TifinaghToLatin("ⴰⵣⵓⵍ"); got != "azul" {
		t.Errorf("TifinaghToLatin = %q, expected azul", got)
	}
}

func TestLayoutEngine(t *testing.T) {
	l, err := LoadFile("testdata/kabyle.yaml")
	if err != nil {
		t.Fatal(err)
	}
	s := ime.NewSession(ime.NewEngine(l.EngineOptions()...), nil)
	s.TypeString("shath")
	s.Flush()
	// "th" is no digraph in this layout, and t, h have no glyph
	if s.Text() != "ⵛⴰth" {
		t.Fatalf("expected ⵛⴰth, got %q", s.Text())
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.layout")
	defer teardown()
	//
	tests := []struct {
		name   string
		src    string
		format Format
		want   error
	}{
		{"text duplicate", "\\latin{\na ⴰ\na ⴱ\n}\n", FormatText, tifinagh.ErrDuplicateKey},
		{"text malformed", "\\latin{\na\n}\n", FormatText, ErrMalformedLine},
		{"toml unknown table", "[latn]\na = \"ⴰ\"\n", FormatTOML, ErrUnknownField},
		{"auto garbage", "just some words", FormatAuto, ErrUnknownFormat},
		{"bad format", "", Format(42), ErrUnknownFormat},
	}
	for _, tt := range tests {
		_, err := Load(tt.name, strings.NewReader(tt.src), tt.format)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if tt.format == FormatAuto && strings.Contains(err.Error(), "text") {
			t.Errorf("%s: plain text was not tried, got %v", tt.name, err)
		}
	}
	if _, err := Load("yaml", strings.NewReader("latn:\n  a: ⴰ\n"), FormatYAML); err == nil {
		t.Errorf("expected YAML with unknown field to fail")
	}
	if _, err := Load("toml", strings.NewReader("[latin]\na = \"ⴰ\"\na = \"ⴱ\"\n"), FormatTOML); err == nil {
		t.Errorf("expected TOML with duplicate key to fail")
	}
	if _, err := LoadFile("testdata/missing.toml"); err == nil {
		t.Errorf("expected missing file to fail")
	}
}

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"text", "\\latin{\nz ⵣ\n}\n"},
		{"toml", "[latin]\nz = \"ⵣ\"\n"},
		{"yaml", "latin:\n  z: ⵣ\n"},
	}
	for _, tt := range tests {
		l, err := Load(tt.name, strings.NewReader(tt.src), FormatAuto)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if g, ok := l.Latin.Lookup("z"); !ok || g != "ⵣ" {
			t.Errorf("%s: expected z → ⵣ, got %q", tt.name, g)
		}
		if l.Name != tt.name {
			t.Errorf("%s: expected layout name from caller, got %q", tt.name, l.Name)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.toml":   FormatTOML,
		"a.YML":    FormatYAML,
		"a.yaml":   FormatYAML,
		"a.txt":    FormatText,
		"a.layout": FormatText,
		"a":        FormatAuto,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %s, expected %s", path, got, want)
		}
	}
}
