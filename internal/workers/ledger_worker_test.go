package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingEventRepo struct {
	mu      sync.Mutex
	batches [][]models.MatchingEvent
}

func (r *capturingEventRepo) Create(events []models.MatchingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, events)
	return nil
}

func (r *capturingEventRepo) FindByID(id string) (*models.MatchingEvent, error) {
	return nil, repositories.ErrMatchingEventNotFound
}

func (r *capturingEventRepo) UpdateOutcome(eventID string, update repositories.OutcomeUpdate) error {
	return nil
}

func (r *capturingEventRepo) batchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func TestLedgerWorkerPersistsBatches(t *testing.T) {
	repo := &capturingEventRepo{}
	worker := NewLedgerWorker(repo, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	worker.Record([]models.MatchingEvent{
		{EventType: models.EventMatchShown, ClientID: "c-1", FreelancerID: "f-1", SearchID: "s-1"},
		{EventType: models.EventMatchShown, ClientID: "c-1", FreelancerID: "f-2", SearchID: "s-1"},
	})

	require.Eventually(t, func() bool {
		return repo.batchCount() == 1
	}, time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.batches[0], 2)
	assert.Equal(t, "f-1", repo.batches[0][0].FreelancerID)
	assert.Equal(t, "s-1", repo.batches[0][1].SearchID)
}

func TestLedgerWorkerDropsWhenFull(t *testing.T) {
	repo := &capturingEventRepo{}
	// Not started: the single-slot buffer fills on the first batch.
	worker := NewLedgerWorker(repo, 1)

	first := []models.MatchingEvent{{EventType: models.EventMatchShown, FreelancerID: "f-1"}}
	second := []models.MatchingEvent{{EventType: models.EventMatchShown, FreelancerID: "f-2"}}

	done := make(chan struct{})
	go func() {
		worker.Record(first)
		worker.Record(second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full buffer")
	}

	// Only the first batch made it into the queue.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	require.Eventually(t, func() bool {
		return repo.batchCount() == 1
	}, time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, "f-1", repo.batches[0][0].FreelancerID)
}

func TestLedgerWorkerIgnoresEmptyBatches(t *testing.T) {
	repo := &capturingEventRepo{}
	worker := NewLedgerWorker(repo, 1)

	worker.Record(nil)
	worker.Record([]models.MatchingEvent{})

	select {
	case batch := <-worker.events:
		t.Fatalf("unexpected batch enqueued: %v", batch)
	default:
	}
}
