package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	"go.trai.ch/plotpy/internal/adapters/logger"
	"go.trai.ch/plotpy/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.tracer"

// InstrumentationName names the tracer used for script executions.
const InstrumentationName = "go.trai.ch/plotpy"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tp := NewTracerProvider(NewLogBridge(log))
			otel.SetTracerProvider(tp)
			return NewOTelTracerFromProvider(tp, InstrumentationName), nil
		},
	})
}
