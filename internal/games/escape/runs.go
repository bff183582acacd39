package escape

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shadow-escape/internal/storage"
)

// RunSaver persists finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(run storage.Run) (int64, string, error)
}

// SaveRuns returns an OnRunEnd callback writing every run to store.
// Failures are logged; the game never stops over them.
func SaveRuns(store RunSaver, logger *log.Logger) func(RunSummary) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(r RunSummary) {
		if store == nil || r.Score <= 0 {
			return
		}
		_, _, err := store.SaveRun(storage.Run{
			RunID:    r.RunID,
			Score:    r.Score,
			Duration: r.Duration,
			Seed:     r.Seed,
			Ticks:    r.Ticks,
		})
		if err != nil {
			logger.Warn("could not save run", "run", r.RunID, "error", err)
		}
	}
}
