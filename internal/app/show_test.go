package app_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/plotpy/internal/app"
	"go.trai.ch/plotpy/internal/core/domain"
)

func runProducer(t *testing.T, producer domain.SignalProducer, ctx context.Context) *domain.Signal {
	t.Helper()
	sig := domain.NewSignal()
	done := make(chan struct{})
	go func() {
		defer close(done)
		producer(ctx, sig)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer did not return")
	}
	return sig
}

func TestProducer_Timeout(t *testing.T) {
	sig := runProducer(t, app.Producer(10*time.Millisecond, nil), context.Background())
	assert.True(t, sig.Fired())
	assert.Equal(t, domain.SourceRequested, <-sig.C())
}

func TestProducer_DismissLine(t *testing.T) {
	sig := runProducer(t, app.Producer(0, strings.NewReader("\n")), context.Background())
	assert.True(t, sig.Fired())
}

func TestProducer_DismissEOFDoesNotTerminate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sig := runProducer(t, app.Producer(0, strings.NewReader("")), ctx)
	assert.False(t, sig.Fired())
}

func TestProducer_ReturnsWhenRunEnds(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sig := runProducer(t, app.Producer(time.Hour, r), ctx)
	assert.False(t, sig.Fired())
}
