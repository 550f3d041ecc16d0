package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/model"
	"github.com/Furiouss38/podv2/internal/repository"
)

type viewRecorder interface {
	Record(ctx context.Context, videoID int64, n int) (*model.ViewCount, error)
}

// ViewWorker batches view hits in memory and adds them to the per-day
// counters once per interval. If 50 viewers hit video X in 5 seconds, the
// counter is written once.
type ViewWorker struct {
	repo     viewRecorder
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	pending map[int64]int // video ID -> views not written yet
}

func NewViewWorker(repo viewRecorder, interval time.Duration) *ViewWorker {
	return &ViewWorker{
		repo:     repo,
		interval: interval,
		log:      logging.Component("view-worker"),
		pending:  make(map[int64]int),
	}
}

// Add queues one view of the video.
func (w *ViewWorker) Add(videoID int64) {
	w.mu.Lock()
	w.pending[videoID]++
	w.mu.Unlock()
}

// Pending returns the number of queued views of the video.
func (w *ViewWorker) Pending(videoID int64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[videoID]
}

// Start flushes queued views every interval until ctx is cancelled, then
// performs a final flush.
func (w *ViewWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			w.flush(context.Background())
			w.log.Info().Msg("stopped")
			return
		}
	}
}

// flush drains the pending map and writes each video's count. Counts that
// fail for a transient reason are queued again; views of videos that no
// longer exist are dropped.
func (w *ViewWorker) flush(ctx context.Context) int {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0
	}
	batch := w.pending
	w.pending = make(map[int64]int)
	w.mu.Unlock()

	written := 0
	for videoID, n := range batch {
		if _, err := w.repo.Record(ctx, videoID, n); err != nil {
			if errors.Is(err, repository.ErrInvalidReference) {
				w.log.Debug().Int64("video_id", videoID).Msg("dropping views of deleted video")
				continue
			}
			w.log.Warn().Err(err).Int64("video_id", videoID).Msg("record views failed, requeued")
			w.mu.Lock()
			w.pending[videoID] += n
			w.mu.Unlock()
			continue
		}
		metrics.ViewsRecorded.Add(float64(n))
		written++
	}

	if written > 0 {
		w.log.Debug().Int("videos", written).Msg("view batch written")
	}
	return written
}
