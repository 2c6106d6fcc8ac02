package python

import (
	"bytes"
	"io"
	"os/exec"
	"sync"
	"time"

	"go.trai.ch/plotpy/internal/core/domain"
)

// process owns a single interpreter child. The mutex guards spawning, killing and reading
// the captured output. It is never held while waiting for the child.
type process struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer
	logs   []*logWriter
	stdin  io.Closer
}

func (p *process) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd.Start()
}

// holdStdin gives the child a stdin pipe that stays open until release, so a script that
// waits for input keeps waiting instead of reading end of file.
func (p *process) holdStdin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, err := p.cmd.StdinPipe()
	if err != nil {
		return err
	}
	p.stdin = w
	return nil
}

func (p *process) releaseStdin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stdin != nil {
		_ = p.stdin.Close()
		p.stdin = nil
	}
}

func (p *process) pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// kill sends SIGKILL to the child. It is safe to call after the child has exited, in which
// case os.ErrProcessDone is returned.
func (p *process) kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// wait blocks until the child has exited and its output has been drained.
func (p *process) wait() error {
	return p.cmd.Wait()
}

// flush logs partial trailing lines. Call it only after wait has returned.
func (p *process) flush() {
	for _, w := range p.logs {
		_ = w.Close()
	}
}

// output snapshots the captured streams. Call it only after wait has returned.
func (p *process) output(elapsed time.Duration) domain.Output {
	p.mu.Lock()
	defer p.mu.Unlock()
	exitCode := -1
	if p.cmd.ProcessState != nil {
		exitCode = p.cmd.ProcessState.ExitCode()
	}
	return domain.Output{
		Stdout:   bytes.Clone(p.stdout.Bytes()),
		Stderr:   bytes.Clone(p.stderr.Bytes()),
		Duration: elapsed,
		ExitCode: exitCode,
	}
}
