package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plotpy/internal/core/ports"
)

// NodeID is the unique identifier for the script writer Graft node.
const NodeID graft.ID = "adapter.fs.materializer"

func init() {
	graft.Register(graft.Node[ports.ScriptWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptWriter, error) {
			return NewMaterializer(), nil
		},
	})
}
