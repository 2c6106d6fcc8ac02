package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plotpy/internal/adapters/logger"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
)

// NodeID is the unique identifier for the interpreter factory Graft node.
const NodeID graft.ID = "adapter.python.runner"

func init() {
	graft.Register(graft.Node[ports.InterpreterFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.InterpreterFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg domain.Config) ports.Interpreter {
				return NewRunner(cfg, log)
			}, nil
		},
	})
}
