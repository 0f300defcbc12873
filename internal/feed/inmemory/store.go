package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/sms-tracker/internal/feed"
)

// Store is a mutex-guarded in-memory JobStore. Jobs are copied on the way
// in and out so callers cannot mutate stored state.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*feed.ParseJob
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*feed.ParseJob),
	}
}

// SaveJob saves or updates a job.
func (s *Store) SaveJob(ctx context.Context, job *feed.ParseJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy

	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*feed.ParseJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs retrieves jobs matching the filter.
func (s *Store) ListJobs(ctx context.Context, filter feed.JobFilter) ([]*feed.ParseJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*feed.ParseJob

	for _, job := range s.jobs {
		if filter.Address != "" && job.Message.Address != filter.Address {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}

		jobCopy := *job
		result = append(result, &jobCopy)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*feed.ParseJob{}, nil
		}
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

var _ feed.JobStore = (*Store)(nil)
