package services

import (
	"log"

	"production_control/internal/models"
)

// SchedulerAPI is the slice of the SimAL client the notifier needs.
type SchedulerAPI interface {
	UpdateStatus(orderNumber, status string) error
}

// SchedulerService pushes order status changes to SimAL. Schedule
// bookkeeping is secondary to the order's own state, so every failure is
// logged and swallowed here rather than surfaced to the caller.
type SchedulerService interface {
	NotifyStatus(orderNumber string, status models.OrderStatus)
}

type schedulerService struct {
	api SchedulerAPI
}

func NewSchedulerService(api SchedulerAPI) SchedulerService {
	return &schedulerService{api: api}
}

func (s *schedulerService) NotifyStatus(orderNumber string, status models.OrderStatus) {
	if err := s.api.UpdateStatus(orderNumber, string(status)); err != nil {
		log.Printf("scheduler notification for %s (%s) failed: %v", orderNumber, status, err)
	}
}
