package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plotpy/internal/core/ports"
)

// NodeID is the unique identifier for the history store factory Graft node.
const NodeID graft.ID = "adapter.history_store"

func init() {
	graft.Register(graft.Node[ports.HistoryStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HistoryStoreFactory, error) {
			return func(path string) (ports.HistoryStore, error) {
				store, err := NewStore(path)
				if err != nil {
					return nil, err
				}
				return store, nil
			}, nil
		},
	})
}
