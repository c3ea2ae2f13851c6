package deque

import (
	"fmt"

	dqerrors "github.com/fission-codes/go-deque/errors"
	"github.com/fission-codes/go-deque/stats"
	"go.uber.org/zap"

	golog "github.com/ipfs/go-log/v2"
)

var log = golog.Logger("go-deque")

const (
	DefaultPageCapacity = 512
	DefaultPageCount    = 8
)

// Config controls the page layout of a Deque.
type Config struct {
	// PageCapacity is the number of element slots in every page.
	PageCapacity int
	// PageCount is the number of pages the table starts with.
	PageCount int
	// Logger receives growth and rollback events. Defaults to the go-deque logger.
	Logger *zap.SugaredLogger
	// Stats counts growth, recentering, rollback and clear events. Defaults to
	// stats.GLOBAL_STATS, which may be nil.
	Stats stats.Stats
}

// DefaultConfig returns the configuration used by New and by the zero Deque.
func DefaultConfig() Config {
	return Config{
		PageCapacity: DefaultPageCapacity,
		PageCount:    DefaultPageCount,
	}
}

// Validate reports whether the page layout is usable.
func (c Config) Validate() error {
	if c.PageCapacity <= 0 {
		return fmt.Errorf("%w: page capacity %d", dqerrors.ErrInvalidConfig, c.PageCapacity)
	}
	if c.PageCount <= 0 {
		return fmt.Errorf("%w: page count %d", dqerrors.ErrInvalidConfig, c.PageCount)
	}
	return nil
}

func (c Config) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return &log.SugaredLogger
}

func (c Config) stats() stats.Stats {
	if c.Stats != nil {
		return c.Stats
	}
	return stats.GLOBAL_STATS
}
