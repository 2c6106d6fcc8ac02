package app

import (
	"context"
	"errors"

	"go.trai.ch/plotpy/internal/core/domain"
)

// History returns the recorded runs for path, or every run when path is empty, each with
// the current state of its script. It returns nothing when the history ledger is disabled.
func (a *App) History(_ context.Context, path string, opts Options) ([]domain.HistoryEntry, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.HistoryPath == "" {
		a.logger.Warn("run history is disabled in the configuration")
		return nil, nil
	}

	store, err := a.stores(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	records, err := store.List(path)
	if err != nil {
		return nil, err
	}

	digests := make(map[string]digestResult)
	entries := make([]domain.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = domain.HistoryEntry{RunRecord: r, Script: a.scriptState(r, digests)}
	}
	return entries, nil
}

type digestResult struct {
	digest string
	err    error
}

func (a *App) scriptState(r domain.RunRecord, cache map[string]digestResult) domain.ScriptState {
	if r.Digest == "" {
		return domain.ScriptUnknown
	}

	res, ok := cache[r.Path]
	if !ok {
		res.digest, res.err = a.writer.Digest(r.Path)
		cache[r.Path] = res
	}

	switch {
	case errors.Is(res.err, domain.ErrScriptMissing):
		return domain.ScriptMissing
	case res.err != nil:
		a.logger.Debug("cannot digest " + r.Path + ": " + res.err.Error())
		return domain.ScriptUnknown
	case res.digest == r.Digest:
		return domain.ScriptUnchanged
	default:
		return domain.ScriptChanged
	}
}
