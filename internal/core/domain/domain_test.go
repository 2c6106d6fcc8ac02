package domain_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plotpy/internal/core/domain"
)

func TestScript_Content(t *testing.T) {
	body := `print("Python says: Hello World!")`

	t.Run("header then body", func(t *testing.T) {
		s := domain.Script{Path: "x.py", Body: body}
		assert.Equal(t, domain.PythonHeader+body, s.Content())
	})

	t.Run("pause directive appended", func(t *testing.T) {
		s := domain.Script{Path: "x.py", Body: body, Pause: true}
		assert.Equal(t, domain.PythonHeader+body+domain.PauseDirective, s.Content())
	})

	t.Run("empty body is header only", func(t *testing.T) {
		assert.Equal(t, domain.PythonHeader, domain.Script{}.Content())
	})
}

func TestPythonHeader_DefinesHelpers(t *testing.T) {
	for _, helper := range []string{
		"def add_to_ea(obj):",
		"def get_colormap(idx):",
		"def maybe_create_ax3d():",
		"def data_to_axis(coords):",
		"def axis_to_data(coords):",
		"def set_equal_axes():",
		"def loop_wait():",
	} {
		assert.Contains(t, domain.PythonHeader, helper)
	}
}

func TestOutput_Text(t *testing.T) {
	t.Run("stdout before stderr", func(t *testing.T) {
		out := domain.Output{Stdout: []byte("out\n"), Stderr: []byte("err\n")}
		text, err := out.Text()
		require.NoError(t, err)
		assert.Equal(t, "out\nerr\n", text)
	})

	t.Run("empty streams", func(t *testing.T) {
		text, err := domain.Output{}.Text()
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("invalid stdout", func(t *testing.T) {
		_, err := domain.Output{Stdout: []byte{0xff, 0xfe}}.Text()
		require.ErrorIs(t, err, domain.ErrDecodeOutput)
		assert.ErrorContains(t, err, "cannot decode output")
	})

	t.Run("invalid stderr", func(t *testing.T) {
		_, err := domain.Output{Stdout: []byte("ok"), Stderr: []byte{0xc3}}.Text()
		require.ErrorIs(t, err, domain.ErrDecodeOutput)
		assert.ErrorContains(t, err, "cannot decode output")
	})
}

func TestSignal_FirstSendWins(t *testing.T) {
	sig := domain.NewSignal()
	assert.False(t, sig.Fired())

	assert.True(t, sig.Send(domain.SourceExited))
	assert.False(t, sig.Terminate())
	assert.False(t, sig.Send(domain.SourceCancelled))
	assert.True(t, sig.Fired())

	assert.Equal(t, domain.SourceExited, <-sig.C())

	// Consumed: later sends stay no-ops and nothing else is queued.
	assert.False(t, sig.Terminate())
	select {
	case src := <-sig.C():
		t.Fatalf("unexpected second signal %v", src)
	default:
	}
}

func TestSignal_ConcurrentSenders(t *testing.T) {
	sig := domain.NewSignal()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sig.Terminate() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, domain.SourceRequested, <-sig.C())
}

func TestSignalProducer_Type(t *testing.T) {
	var producer domain.SignalProducer = func(_ context.Context, sig *domain.Signal) {
		sig.Terminate()
	}
	sig := domain.NewSignal()
	producer(context.Background(), sig)
	assert.Equal(t, domain.SourceRequested, <-sig.C())
}

func TestSignalSource_String(t *testing.T) {
	assert.Equal(t, "exited", domain.SourceExited.String())
	assert.Equal(t, "requested", domain.SourceRequested.String())
	assert.Equal(t, "cancelled", domain.SourceCancelled.String())
	assert.Equal(t, "none", domain.SourceNone.String())
}

func TestRunStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.RunStatusPending.IsTerminal())
	assert.False(t, domain.RunStatusRunning.IsTerminal())
	assert.True(t, domain.RunStatusCompleted.IsTerminal())
	assert.True(t, domain.RunStatusCancelled.IsTerminal())
	assert.True(t, domain.RunStatusFailed.IsTerminal())
}
