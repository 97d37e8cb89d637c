// Package sweeper releases spots whose reservation window has elapsed.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parkspot/internal/cache"
	"parkspot/internal/model"
)

// DefaultInterval is the period between two sweeps.
const DefaultInterval = 60 * time.Second

// Store is the slice of the spot repository the sweeper needs.
type Store interface {
	FindExpired(ctx context.Context, before time.Time) ([]model.Spot, error)
	ReleaseExpired(ctx context.Context, ids []uint, now time.Time, resetCheckIn bool) (int64, error)
}

// Options configures a Sweeper. Zero values pick the defaults.
type Options struct {
	Interval time.Duration
	// ResetCheckIn also clears the check-in flag of released spots. Off by
	// default: released spots historically kept their check-in state.
	ResetCheckIn bool
	Now          func() time.Time
}

// Result describes one sweep.
type Result struct {
	RunID      string
	At         time.Time
	Candidates []uint
	Released   int64
}

// Sweeper periodically resets expired reservations.
type Sweeper struct {
	store        Store
	cache        *cache.Client
	log          *slog.Logger
	interval     time.Duration
	resetCheckIn bool
	now          func() time.Time
}

// New creates a Sweeper.
func New(store Store, cacheClient *cache.Client, log *slog.Logger, opts Options) *Sweeper {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		store:        store,
		cache:        cacheClient,
		log:          log.With("component", "sweeper"),
		interval:     opts.Interval,
		resetCheckIn: opts.ResetCheckIn,
		now:          opts.Now,
	}
}

// Sweep releases every spot whose window ended strictly before now. Spots
// still inside their window are never touched, and neither is the occupancy flag.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString(), At: s.now()}

	expired, err := s.store.FindExpired(ctx, res.At)
	if err != nil {
		return res, fmt.Errorf("find expired spots: %w", err)
	}
	if len(expired) == 0 {
		return res, nil
	}

	res.Candidates = make([]uint, 0, len(expired))
	for _, spot := range expired {
		res.Candidates = append(res.Candidates, spot.ID)
	}

	released, err := s.store.ReleaseExpired(ctx, res.Candidates, res.At, s.resetCheckIn)
	if err != nil {
		return res, fmt.Errorf("release expired spots: %w", err)
	}
	res.Released = released

	keys := make([]string, 0, len(res.Candidates))
	for _, id := range res.Candidates {
		keys = append(keys, cache.SpotKey(id))
	}
	_ = s.cache.Delete(ctx, keys...)

	return res, nil
}

// Run sweeps once immediately and then every interval until ctx is cancelled.
// A failed sweep is logged and the next tick runs as usual; missed ticks are
// not caught up.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sweeper started", "interval", s.interval.String())
	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	res, err := s.Sweep(ctx)
	if err != nil {
		s.log.Error("sweep failed", "run_id", res.RunID, "error", err)
		return
	}
	if res.Released > 0 {
		s.log.Info("expired spots released", "run_id", res.RunID, "released", res.Released, "spots", res.Candidates)
		return
	}
	s.log.Debug("sweep finished", "run_id", res.RunID, "released", 0)
}
