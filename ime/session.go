package ime

import "github.com/npillmayer/tifinagh/buffer"

// KeyAnimator locates the virtual-keyboard key that represents a glyph or
// source character and highlights it. Returning false (no such key) is not
// an error.
type KeyAnimator interface {
	Highlight(target string) bool
}

// AnimatorFunc adapts a function to the KeyAnimator interface.
type AnimatorFunc func(target string) bool

// Highlight calls f(target).
func (f AnimatorFunc) Highlight(target string) bool {
	return f(target)
}

// Session owns one engine state and feeds keystrokes into it.
// A Session is not safe for concurrent use.
type Session struct {
	engine   *Engine
	state    State
	animator KeyAnimator
}

// NewSession creates a session with an empty buffer. animator may be nil.
func NewSession(engine *Engine, animator KeyAnimator) *Session {
	if engine == nil {
		engine = NewEngine()
	}
	return &Session{engine: engine, animator: animator}
}

// Type processes one keystroke and returns the decision taken.
func (s *Session) Type(k Key) Decision {
	d := s.engine.Resolve(s.state, k)
	s.state = Apply(s.state, d)
	s.animate(d.Animate)
	return d
}

// TypeString types every rune of text as a separate keystroke.
func (s *Session) TypeString(text string) {
	for _, r := range text {
		s.Type(CharKey(r))
	}
}

// Press inserts a glyph from a virtual-keyboard click.
func (s *Session) Press(glyph string) {
	s.state = s.engine.VirtualKey(s.state, glyph)
	s.animate(glyph)
}

// Flush resolves a pending placeholder to its glyph.
func (s *Session) Flush() {
	s.state = s.engine.Flush(s.state)
}

// Blur drops a pending character, leaving its placeholder as typed.
func (s *Session) Blur() {
	s.state = s.engine.Blur(s.state)
}

// Select moves the cursor or selection.
func (s *Session) Select(start, end int) {
	s.state = s.engine.Select(s.state, start, end)
}

// Reset clears the buffer and any pending character.
func (s *Session) Reset() {
	s.state = s.engine.Clear(s.state)
}

// Text returns the current buffer contents.
func (s *Session) Text() string {
	return s.state.Buffer.Text
}

// Copy returns the buffer contents for the clipboard.
func (s *Session) Copy() string {
	return s.Text()
}

// Buffer returns the current buffer snapshot.
func (s *Session) Buffer() buffer.Buffer {
	return s.state.Buffer
}

// State returns the current engine state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) animate(target string) {
	if s.animator == nil || target == "" {
		return
	}
	if !s.animator.Highlight(target) {
		tracer().Debugf("no virtual key for %q", target)
	}
}
