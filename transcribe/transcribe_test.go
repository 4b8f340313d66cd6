package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tifinagh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recording = Audio{Data: []byte{0x1a, 0x45, 0xdf, 0xa3}, MIMEType: "audio/webm"}

func TestToTifinagh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.transcribe")
	defer teardown()
	//
	r, err := ToTifinagh(context.Background(), Static{Text: "azul fellawen"}, recording)
	require.NoError(t, err)
	assert.Equal(t, "azul fellawen", r.Latin)
	assert.Equal(t, "ⴰⵣⵓⵍ ⴼⴻⵍⵍⴰⵡⴻⵏ", r.Tifinagh)
}

func TestEmptyAudio(t *testing.T) {
	called := false
	f := Func(func(ctx context.Context, audio Audio) (string, error) {
		called = true
		return "", nil
	})
	_, err := ToTifinagh(context.Background(), f, Audio{})
	assert.ErrorIs(t, err, ErrEmptyAudio)
	assert.False(t, called)
}

func TestTimeout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tifinagh.transcribe")
	defer teardown()
	//
	slow := Static{Text: "azul", Delay: time.Second}
	_, err := ToTifinagh(context.Background(), slow, recording, WithTimeout(10*time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranscriberIgnoringContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stubborn := Func(func(ctx context.Context, audio Audio) (string, error) {
		<-release
		return "azul", nil
	})
	start := time.Now()
	_, err := ToTifinagh(context.Background(), stubborn, recording, WithTimeout(10*time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ToTifinagh(ctx, Static{Text: "azul", Delay: time.Second}, recording)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranscriberError(t *testing.T) {
	failure := errors.New("service unavailable")
	f := Func(func(ctx context.Context, audio Audio) (string, error) {
		return "", failure
	})
	_, err := ToTifinagh(context.Background(), f, recording)
	assert.ErrorIs(t, err, failure)
	_, err = ToTifinagh(context.Background(), nil, recording)
	assert.Error(t, err)
}

func TestCustomConverter(t *testing.T) {
	latin, err := tifinagh.NewTable("upper-z", []tifinagh.Mapping{{Key: "z", Glyph: "ⵥ"}})
	require.NoError(t, err)
	conv := tifinagh.NewConverter(tifinagh.WithLatinTable(latin))
	r, err := ToTifinagh(context.Background(), Static{Text: "zaz"}, recording, WithConverter(conv))
	require.NoError(t, err)
	assert.Equal(t, "ⵥaⵥ", r.Tifinagh)
}
