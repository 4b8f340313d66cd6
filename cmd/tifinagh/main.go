// tifinagh converts text between Latin, Arabic and Tifinagh script.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tifinagh"
	"github.com/npillmayer/tifinagh/ime"
	"github.com/npillmayer/tifinagh/layout"
)

var traceKeys = []string{"tifinagh", "tifinagh.ime", "tifinagh.layout", "tifinagh.transcribe"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) func() {
	return func() {
		fmt.Fprintln(w, `tifinagh - Tifinagh transliteration

Usage: tifinagh [options] [text ...]

Converts the text given as arguments, or every line of standard input.

Modes:
  latin      Latin → Tifinagh (default)
  talatint   Tifinagh → Talatint romanization
  arabic     Arabic → Tifinagh
  auto       mixed Latin and Arabic → Tifinagh
  keys       replay the input as keystrokes through the input method

Options:
  -config <path>  Path to config file (.toml or .yaml)
  -mode <mode>    Conversion mode
  -layout <path>  Keyboard layout file replacing built-in tables
  -flush          In keys mode, resolve a pending character at line end
  -watch          Reload the layout file whenever it changes
  -trace <level>  Trace level: Error, Info or Debug`)
	}
}

// run executes the command and returns the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tifinagh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(stderr)
	configPath := fs.String("config", "", "path to config file")
	mode := fs.String("mode", "", "conversion mode")
	layoutPath := fs.String("layout", "", "keyboard layout file")
	flush := fs.Bool("flush", true, "resolve pending characters at line end")
	trace := fs.String("trace", "", "trace level")
	watch := fs.Bool("watch", false, "reload the layout file on change")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "layout":
			cfg.Layout = *layoutPath
		case "flush":
			cfg.Flush = *flush
		case "trace":
			cfg.TraceLevel = *trace
		case "watch":
			cfg.Watch = *watch
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	setTraceLevel(cfg.TraceLevel)

	c, err := newConverter(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Watch {
		w, err := watchLayout(cfg.Layout, c, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer w.Close()
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stdout, c.convert(strings.Join(fs.Args(), " ")))
		return 0
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		fmt.Fprintln(stdout, c.convert(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}
	return 0
}

func setTraceLevel(level string) {
	if level == "" {
		return
	}
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// converter applies the configured mode to one line of input.
type converter struct {
	mode   string
	flush  bool
	mu     sync.RWMutex // guards conv and engine against layout reloads
	conv   *tifinagh.Converter
	engine *ime.Engine
}

func newConverter(cfg *Config) (*converter, error) {
	c := &converter{mode: cfg.Mode, flush: cfg.Flush}
	var l *layout.Layout
	if cfg.Layout != "" {
		var err error
		if l, err = layout.LoadFile(cfg.Layout); err != nil {
			return nil, err
		}
	}
	c.use(l)
	return c, nil
}

// use switches to the tables of l, or to the built-in tables if l is nil.
func (c *converter) use(l *layout.Layout) {
	var convOpts []tifinagh.Option
	var engineOpts []ime.Option
	if l != nil {
		convOpts = l.ConverterOptions()
		engineOpts = l.EngineOptions()
	}
	conv := tifinagh.NewConverter(convOpts...)
	engine := ime.NewEngine(engineOpts...)
	c.mu.Lock()
	c.conv, c.engine = conv, engine
	c.mu.Unlock()
}

func watchLayout(path string, c *converter, stderr io.Writer) (*layout.Watcher, error) {
	w, err := layout.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	w.OnChange(c.use)
	if err := w.Watch(); err != nil {
		w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case err := <-w.Errors():
				fmt.Fprintf(stderr, "Warning: %v\n", err)
			case <-w.Done():
				return
			}
		}
	}()
	return w, nil
}

func (c *converter) convert(line string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch c.mode {
	case ModeTalatint:
		return c.conv.TifinaghToLatin(line)
	case ModeArabic:
		return c.conv.ArabicToTifinagh(line)
	case ModeAuto:
		return c.conv.ToTifinagh(line)
	case ModeKeys:
		return c.replay(line)
	}
	return c.conv.LatinToTifinagh(line)
}

// replay types line into a fresh input session. A backspace character
// (U+0008) is sent as the backspace key.
func (c *converter) replay(line string) string {
	s := ime.NewSession(c.engine, nil)
	for _, r := range line {
		if r == '\b' {
			s.Type(ime.Key{Kind: ime.KeyBackspace})
			continue
		}
		s.Type(ime.CharKey(r))
	}
	if c.flush {
		s.Flush()
	} else {
		s.Blur()
	}
	return s.Text()
}
