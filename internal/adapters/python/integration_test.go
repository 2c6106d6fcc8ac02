package python_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plotpy/internal/adapters/fs"
	"go.trai.ch/plotpy/internal/adapters/python"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// requireMatplotlib skips the test unless python3 can import the header's dependencies.
func requireMatplotlib(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping python integration test in short mode")
	}
	if err := exec.Command("python3", "-c", "import matplotlib, numpy").Run(); err != nil {
		t.Skip("python3 with matplotlib and numpy is not available")
	}
	t.Setenv("MPLBACKEND", "Agg")
}

func newPythonRunner(t *testing.T) *python.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return python.NewRunner(domain.DefaultConfig(), log)
}

func TestPython_HelloWorld(t *testing.T) {
	requireMatplotlib(t)
	r := newPythonRunner(t)
	m := fs.NewMaterializer()
	path := filepath.Join(t.TempDir(), "out", "hello.py")

	_, err := m.Materialize(domain.Script{Path: path, Body: `print("Python says: Hello World!")`})
	require.NoError(t, err)

	out, err := r.Run(context.Background(), path)
	require.NoError(t, err)
	text, err := out.Text()
	require.NoError(t, err)
	assert.Equal(t, "Python says: Hello World!\n", text)
}

func TestPython_SecondBodyOverwritesFirst(t *testing.T) {
	requireMatplotlib(t)
	r := newPythonRunner(t)
	m := fs.NewMaterializer()
	path := filepath.Join(t.TempDir(), "hello.py")

	for _, body := range []string{`print("first")`, `print("second")`} {
		_, err := m.Materialize(domain.Script{Path: path, Body: body})
		require.NoError(t, err)
	}

	out, err := r.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(out.Stdout))
}

func TestPython_PausedScriptIsTerminated(t *testing.T) {
	requireMatplotlib(t)
	r := newPythonRunner(t)
	m := fs.NewMaterializer()
	path := filepath.Join(t.TempDir(), "pause.py")

	_, err := m.Materialize(domain.Script{Path: path, Body: `print("shown", flush=True)`, Pause: true})
	require.NoError(t, err)

	out, err := runBounded(t, r, context.Background(), path, terminateAfter(5*time.Second), 60*time.Second)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceRequested, out.Source)
	assert.Contains(t, string(out.Stdout), "shown")
}
