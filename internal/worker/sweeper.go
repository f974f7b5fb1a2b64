package worker

import (
	"context"
	"sync"
	"time"

	"github.com/avc/points-ledger/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultWorkers   = 3
	DefaultQueueSize = 100
	DefaultInterval  = time.Hour
)

// SweepStats итог одного прохода
type SweepStats struct {
	Candidates    int
	Users         int
	Transactions  int
	ExpiredPoints int64
	Failed        int
}

// Sweeper фоновый обход пользователей с просроченными партиями баллов
type Sweeper struct {
	workers  int
	queue    chan int64
	expirer  domain.PointsExpirer
	logger   *zap.Logger
	interval time.Duration

	cancel    context.CancelFunc
	stopOnce  sync.Once
	scannerWG sync.WaitGroup
	workersWG sync.WaitGroup
}

// NewSweeper создает обход с пулом из workers воркеров
func NewSweeper(
	workers int,
	queueSize int,
	interval time.Duration,
	expirer domain.PointsExpirer,
	logger *zap.Logger,
) *Sweeper {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		workers:  workers,
		queue:    make(chan int64, queueSize),
		expirer:  expirer,
		logger:   logger,
		interval: interval,
	}
}

// Start запускает воркеры и сканер
func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for i := 0; i < s.workers; i++ {
		s.workersWG.Add(1)
		go s.worker(ctx, i)
	}

	s.scannerWG.Add(1)
	go s.scanner(ctx)
}

// Stop останавливает сканер и дожидается завершения воркеров.
// Повторный вызов ничего не делает.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.scannerWG.Wait()
		close(s.queue)
		s.workersWG.Wait()
	})
}

// SweepOnce синхронно обрабатывает всех текущих кандидатов
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	users, err := s.expirer.ExpirationCandidates(ctx)
	if err != nil {
		return stats, err
	}
	stats.Candidates = len(users)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan int64)
	)
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				report, err := s.expireUser(ctx, userID)

				mu.Lock()
				if err != nil {
					stats.Failed++
				} else if report.Transactions > 0 {
					stats.Users++
					stats.Transactions += report.Transactions
					stats.ExpiredPoints += report.ExpiredPoints
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, userID := range users {
		select {
		case jobs <- userID:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return stats, ctx.Err()
}

func (s *Sweeper) worker(ctx context.Context, id int) {
	defer s.workersWG.Done()

	s.logger.Info("sweeper worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper worker stopping", zap.Int("worker_id", id))
			return
		case userID, ok := <-s.queue:
			if !ok {
				return
			}
			_, _ = s.expireUser(ctx, userID)
		}
	}
}

func (s *Sweeper) scanner(ctx context.Context) {
	defer s.scannerWG.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper scanner stopping")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// scan ставит кандидатов в очередь; при заполненной очереди пользователь
// будет найден на следующем тике
func (s *Sweeper) scan(ctx context.Context) {
	users, err := s.expirer.ExpirationCandidates(ctx)
	if err != nil {
		s.logger.Error("failed to get expiration candidates", zap.Error(err))
		return
	}

	for _, userID := range users {
		select {
		case s.queue <- userID:
		case <-ctx.Done():
			return
		default:
			s.logger.Warn("sweeper queue is full, skipping user", zap.Int64("user_id", userID))
		}
	}
}

func (s *Sweeper) expireUser(ctx context.Context, userID int64) (*domain.ExpirationReport, error) {
	report, err := s.expirer.ExpireUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to expire points",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	if report.Transactions > 0 {
		s.logger.Info("points expired",
			zap.Int64("user_id", userID),
			zap.Int("transactions", report.Transactions),
			zap.Int64("expired_points", report.ExpiredPoints),
		)
	}
	return report, nil
}
