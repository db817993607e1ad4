package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	store := newFakeJobStore()
	svc := NewJobService(store, time.Hour)

	release := make(chan struct{})
	jobID, err := svc.Submit("fulfillment", func(report func(progress int, message string)) (interface{}, error) {
		report(50, "halfway")
		<-release
		return map[string]string{"outcome": "ok"}, nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	require.Eventually(t, func() bool {
		record, err := svc.Get(jobID)
		return err == nil && record.Status == JobProcessing && record.Progress == 50
	}, time.Second, 5*time.Millisecond)

	record, err := svc.Get(jobID)
	require.NoError(t, err)
	require.Equal(t, "halfway", record.Message)
	require.Equal(t, "fulfillment", record.Kind)

	close(release)

	require.Eventually(t, func() bool {
		record, err := svc.Get(jobID)
		return err == nil && record.Status == JobCompleted
	}, time.Second, 5*time.Millisecond)

	record, err = svc.Get(jobID)
	require.NoError(t, err)
	require.Equal(t, 100, record.Progress)
	require.JSONEq(t, `{"outcome":"ok"}`, record.Result)
	require.Empty(t, record.Error)
}

func TestJobFailure(t *testing.T) {
	store := newFakeJobStore()
	svc := NewJobService(store, time.Hour)

	jobID, err := svc.Submit("dispatch", func(report func(progress int, message string)) (interface{}, error) {
		return nil, fmt.Errorf("order 7 not found")
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		record, err := svc.Get(jobID)
		return err == nil && record.Status == JobFailed
	}, time.Second, 5*time.Millisecond)

	record, err := svc.Get(jobID)
	require.NoError(t, err)
	require.Equal(t, "order 7 not found", record.Error)
	require.Empty(t, record.Result)
}

func TestJobIDsAreUnique(t *testing.T) {
	svc := NewJobService(newFakeJobStore(), time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		jobID, err := svc.Submit("noop", func(report func(progress int, message string)) (interface{}, error) {
			return nil, nil
		})
		require.NoError(t, err)
		require.False(t, seen[jobID], "duplicate job id %s", jobID)
		seen[jobID] = true
	}
}
