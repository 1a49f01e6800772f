// Package api - Request execution
// The handler is ONLY responsible for defaults merging, engine
// orchestration and result assembly. It NEVER performs cost logic.
package api

import (
	"context"
	"time"

	"programme-cost/core/engine"
	"programme-cost/core/output"
	"programme-cost/core/refdata"
	"programme-cost/core/types"
	"programme-cost/internal/config"
)

// Handler executes costing requests against a shared read-only
// reference snapshot. Concurrent requests need no coordination; nothing
// on the costing path writes to the store.
type Handler struct {
	store      refdata.Store
	aggregator *engine.Aggregator
	cfg        *config.Config
	version    string
}

// NewHandler creates a handler over a reference snapshot
func NewHandler(store refdata.Store, cfg *config.Config, version string) *Handler {
	return &Handler{
		store:      store,
		aggregator: engine.New(store),
		cfg:        cfg,
		version:    version,
	}
}

// execute merges defaults, runs the aggregator and assembles the result
func (h *Handler) execute(ctx context.Context, programme *types.ProgrammeConfig) (*output.Result, error) {
	start := time.Now()
	h.cfg.ApplyDefaults(programme)

	ledger, err := h.aggregator.Run(ctx, programme)
	if err != nil {
		return nil, err
	}

	return &output.Result{
		Config: programme,
		Ledger: ledger,
		Metadata: output.Metadata{
			Timestamp: start.UTC().Format(time.RFC3339),
			Duration:  time.Since(start).String(),
			Version:   h.version,
		},
	}, nil
}
