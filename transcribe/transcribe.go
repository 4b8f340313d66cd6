// Package transcribe connects a speech-to-text service to the converter.
//
// The service itself is not part of this module. It is represented by the
// Transcriber interface, which turns recorded audio into Latin-script text.
// ToTifinagh runs a Transcriber under a deadline and converts its result as
// if the text had been typed.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tifinagh"
)

// tracer traces with key 'tifinagh.transcribe'.
func tracer() tracing.Trace {
	return tracing.Select("tifinagh.transcribe")
}

// ErrEmptyAudio is returned for a recording without any data.
var ErrEmptyAudio = errors.New("empty audio recording")

// DefaultTimeout bounds a transcription if no other timeout is given.
const DefaultTimeout = 30 * time.Second

// Audio is a recorded audio payload.
type Audio struct {
	Data     []byte
	MIMEType string // e.g. "audio/webm"
	Language string // optional language hint, e.g. "kab"
}

// Transcriber converts recorded audio to plain Latin-script text.
// Implementations should return early when ctx is done.
type Transcriber interface {
	Transcribe(ctx context.Context, audio Audio) (string, error)
}

// Func adapts a function to the Transcriber interface.
type Func func(ctx context.Context, audio Audio) (string, error)

// Transcribe calls f(ctx, audio).
func (f Func) Transcribe(ctx context.Context, audio Audio) (string, error) {
	return f(ctx, audio)
}

// Static is a stand-in transcriber returning a fixed text after an optional
// delay. It is used where no speech-to-text service is configured.
type Static struct {
	Text  string
	Delay time.Duration
}

// Transcribe returns s.Text, or ctx.Err() if ctx is done first.
func (s Static) Transcribe(ctx context.Context, audio Audio) (string, error) {
	if s.Delay <= 0 {
		return s.Text, ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return s.Text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Result holds the transcribed text in both scripts.
type Result struct {
	Latin    string
	Tifinagh string
}

type feed struct {
	timeout   time.Duration
	converter *tifinagh.Converter
}

// Option configures ToTifinagh.
type Option func(*feed)

// WithTimeout sets the deadline for the transcription. A value ≤ 0 means no
// deadline other than ctx's own.
func WithTimeout(d time.Duration) Option {
	return func(f *feed) {
		f.timeout = d
	}
}

// WithConverter makes ToTifinagh use c instead of the built-in tables.
func WithConverter(c *tifinagh.Converter) Option {
	return func(f *feed) {
		if c != nil {
			f.converter = c
		}
	}
}

type outcome struct {
	text string
	err  error
}

// ToTifinagh transcribes audio with t and converts the text to Tifinagh.
//
// The call is bounded by ctx and by the timeout (DefaultTimeout unless
// changed with WithTimeout). A transcriber ignoring its context does not
// block the caller beyond the deadline; its late result is discarded.
func ToTifinagh(ctx context.Context, t Transcriber, audio Audio, opts ...Option) (Result, error) {
	f := feed{timeout: DefaultTimeout, converter: tifinagh.NewConverter()}
	for _, opt := range opts {
		opt(&f)
	}
	if len(audio.Data) == 0 {
		return Result{}, fmt.Errorf("transcribe: %w", ErrEmptyAudio)
	}
	if t == nil {
		return Result{}, errors.New("transcribe: no transcriber")
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := t.Transcribe(ctx, audio)
		done <- outcome{text: text, err: err}
	}()
	var o outcome
	select {
	case o = <-done:
	case <-ctx.Done():
		o.err = ctx.Err()
	}
	if o.err != nil {
		tracer().Errorf("transcription of %d bytes failed: %v", len(audio.Data), o.err)
		return Result{}, fmt.Errorf("transcribe: %w", o.err)
	}
	r := Result{Latin: o.text, Tifinagh: f.converter.LatinToTifinagh(o.text)}
	tracer().Debugf("transcribed %q → %q", r.Latin, r.Tifinagh)
	return r, nil
}
