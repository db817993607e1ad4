package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"production_control/internal/redis"
)

const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// JobFunc is a long multi-call operation. It reports progress through
// the callback and returns a result to be serialized into the job
// record.
type JobFunc func(report func(progress int, message string)) (interface{}, error)

// JobStore is the slice of the Redis client used for job records.
type JobStore interface {
	SetJob(jobID string, record *redis.JobRecord, ttl time.Duration) error
	GetJob(jobID string) (*redis.JobRecord, error)
}

// JobService tracks long operations as poll-only async jobs. Submission
// returns immediately with a job ID; a goroutine runs the sequence and
// updates the record through pending -> processing -> completed/failed.
// There is no cancellation: once submitted, a job runs to the end.
type JobService interface {
	Submit(kind string, fn JobFunc) (string, error)
	Get(jobID string) (*redis.JobRecord, error)
}

type jobService struct {
	store JobStore
	ttl   time.Duration
	seq   uint64
}

func NewJobService(store JobStore, ttl time.Duration) JobService {
	return &jobService{store: store, ttl: ttl}
}

func (s *jobService) Submit(kind string, fn JobFunc) (string, error) {
	jobID := fmt.Sprintf("job_%d_%d", time.Now().Unix(), atomic.AddUint64(&s.seq, 1))

	record := &redis.JobRecord{
		ID:        jobID,
		Kind:      kind,
		Status:    JobPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.store.SetJob(jobID, record, s.ttl); err != nil {
		return "", err
	}

	go s.run(record, fn)
	return jobID, nil
}

func (s *jobService) run(record *redis.JobRecord, fn JobFunc) {
	s.update(record, func(r *redis.JobRecord) {
		r.Status = JobProcessing
	})

	result, err := fn(func(progress int, message string) {
		s.update(record, func(r *redis.JobRecord) {
			r.Progress = progress
			r.Message = message
		})
	})

	if err != nil {
		s.update(record, func(r *redis.JobRecord) {
			r.Status = JobFailed
			r.Error = err.Error()
		})
		return
	}

	serialized := ""
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			log.Printf("failed to serialize result of job %s: %v", record.ID, err)
		} else {
			serialized = string(data)
		}
	}
	s.update(record, func(r *redis.JobRecord) {
		r.Status = JobCompleted
		r.Progress = 100
		r.Result = serialized
	})
}

func (s *jobService) update(record *redis.JobRecord, mutate func(*redis.JobRecord)) {
	mutate(record)
	record.UpdatedAt = time.Now()
	if err := s.store.SetJob(record.ID, record, s.ttl); err != nil {
		log.Printf("failed to persist job record %s: %v", record.ID, err)
	}
}

func (s *jobService) Get(jobID string) (*redis.JobRecord, error) {
	return s.store.GetJob(jobID)
}
