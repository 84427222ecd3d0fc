package service

import (
	"context"
	"sync"
	"time"
)

// RefreshJob periodically re-fetches the authoritative note list and merges
// it into the local store. It is idle until Start is called.
type RefreshJob struct {
	notes NoteService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a RefreshJob around the sync coordinator.
func NewRefreshJob(notes NoteService) *RefreshJob {
	return &RefreshJob{notes: notes}
}

// Start stops any previously running job, then launches a background
// goroutine calling Refresh every interval. A zero or negative interval
// defaults to 5 minutes. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *RefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				// Failures are swallowed: the job retries on the next
				// tick and the cached list keeps serving the UI.
				_, _ = j.notes.Refresh(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *RefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
