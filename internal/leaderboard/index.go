// Package leaderboard строит рейтинг пользователей по сумме заработанных баллов.
//
// Рейтинг читается из снимка, который перестраивается не чаще одного раза
// за интервал обновления. Между перестроениями рейтинг может отставать от
// журнала не больше чем на этот интервал.
package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSize            = 100
	DefaultRefreshInterval = 30 * time.Second
	DefaultRefreshTimeout  = 10 * time.Second

	snapshotKey = "leaderboard:top"
)

// Source источник сводок, упорядоченных по сумме заработанных баллов
type Source interface {
	TopSummaries(ctx context.Context, limit int) ([]*domain.UserPointSummary, error)
}

// SnapshotCache общий для экземпляров сервиса кэш снимка
type SnapshotCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Options параметры индекса
type Options struct {
	Size            int
	RefreshInterval time.Duration
	// RefreshTimeout ограничивает общее перестроение снимка
	RefreshTimeout time.Duration
	Clock          func() time.Time
}

type snapshot struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	BuiltAt time.Time                 `json:"built_at"`
}

// Index реализует domain.Leaderboard
type Index struct {
	source Source
	cache  SnapshotCache
	logger *zap.Logger
	opts   Options

	mu    sync.RWMutex
	snap  *snapshot
	group singleflight.Group
}

// NewIndex создает индекс. cache может быть nil.
func NewIndex(source Source, cache SnapshotCache, logger *zap.Logger, opts Options) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = DefaultRefreshTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Index{source: source, cache: cache, logger: logger, opts: opts}
}

// Top возвращает первые n позиций рейтинга. n ограничено размером снимка;
// n <= 0 означает весь снимок.
func (i *Index) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	snap, err := i.current(ctx)
	if err != nil {
		return nil, err
	}

	if n <= 0 || n > len(snap.Entries) {
		n = len(snap.Entries)
	}
	out := make([]domain.LeaderboardEntry, n)
	copy(out, snap.Entries[:n])
	return out, nil
}

// Invalidate сбрасывает локальный снимок
func (i *Index) Invalidate() {
	i.mu.Lock()
	i.snap = nil
	i.mu.Unlock()
}

func (i *Index) current(ctx context.Context) (*snapshot, error) {
	i.mu.RLock()
	snap := i.snap
	i.mu.RUnlock()
	if i.fresh(snap) {
		return snap, nil
	}

	// Перестроение общее для всех ожидающих: отмена одного запроса его не прерывает
	ch := i.group.DoChan(snapshotKey, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), i.opts.RefreshTimeout)
		defer cancel()
		return i.refresh(refreshCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (i *Index) fresh(snap *snapshot) bool {
	return snap != nil && i.opts.Clock().Sub(snap.BuiltAt) < i.opts.RefreshInterval
}

func (i *Index) refresh(ctx context.Context) (*snapshot, error) {
	if snap := i.fromCache(ctx); snap != nil {
		i.store(snap)
		return snap, nil
	}

	summaries, err := i.source.TopSummaries(ctx, i.opts.Size)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: failed to load summaries: %w", err)
	}

	snap := &snapshot{
		Entries: make([]domain.LeaderboardEntry, 0, len(summaries)),
		BuiltAt: i.opts.Clock(),
	}
	for idx, s := range summaries {
		snap.Entries = append(snap.Entries, domain.LeaderboardEntry{
			Rank:        idx + 1,
			UserID:      s.UserID,
			TotalPoints: s.TotalPoints,
			Level:       s.Level,
		})
	}
	i.store(snap)

	if i.cache != nil {
		if err := i.cache.SetJSON(ctx, snapshotKey, snap, i.opts.RefreshInterval); err != nil {
			i.logger.Warn("failed to share leaderboard snapshot", zap.Error(err))
		}
	}

	i.logger.Debug("leaderboard snapshot rebuilt", zap.Int("entries", len(snap.Entries)))
	return snap, nil
}

// fromCache берет снимок, построенный другим экземпляром, если он еще свежий
func (i *Index) fromCache(ctx context.Context) *snapshot {
	if i.cache == nil {
		return nil
	}

	var cached snapshot
	found, err := i.cache.GetJSON(ctx, snapshotKey, &cached)
	if err != nil {
		i.logger.Warn("failed to read leaderboard snapshot", zap.Error(err))
		return nil
	}
	if !found || !i.fresh(&cached) {
		return nil
	}
	return &cached
}

func (i *Index) store(snap *snapshot) {
	i.mu.Lock()
	i.snap = snap
	i.mu.Unlock()
}
