package progrock

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/plotpy/internal/core/domain"
)

// VertexState is the last known state of a recorded execution.
type VertexState struct {
	ID       string
	Name     string
	Status   domain.RunStatus
	Duration time.Duration
	Error    string
}

// Summary is a progrock.Writer that folds status updates into one state per vertex,
// in the order vertices were first seen.
type Summary struct {
	mu       sync.Mutex
	vertices []VertexState
	index    map[string]int
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{index: make(map[string]int)}
}

// WriteStatus applies update.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		s.apply(v)
	}
	return nil
}

func (s *Summary) apply(v *progrock.Vertex) {
	i, ok := s.index[v.Id]
	if !ok {
		i = len(s.vertices)
		s.index[v.Id] = i
		s.vertices = append(s.vertices, VertexState{
			ID:     v.Id,
			Name:   v.Name,
			Status: domain.RunStatusRunning,
		})
	}

	if v.Completed == nil {
		return
	}
	state := &s.vertices[i]
	state.Status = domain.RunStatusCompleted
	if v.Error != nil {
		state.Status = domain.RunStatusFailed
		state.Error = *v.Error
	}
	if v.Started != nil {
		state.Duration = v.Completed.AsTime().Sub(v.Started.AsTime())
	}
}

// Close does nothing. The summary stays readable after the session ends.
func (s *Summary) Close() error {
	return nil
}

// Vertices returns a copy of the current states.
func (s *Summary) Vertices() []VertexState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VertexState, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// Render writes one line per vertex.
func (s *Summary) Render(w io.Writer) error {
	for _, v := range s.Vertices() {
		var line string
		switch v.Status {
		case domain.RunStatusCompleted:
			line = fmt.Sprintf("ok    %s (%s)", v.Name, v.Duration.Round(time.Millisecond))
		case domain.RunStatusFailed:
			line = fmt.Sprintf("FAIL  %s: %s", v.Name, v.Error)
		default:
			line = fmt.Sprintf("...   %s", v.Name)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
