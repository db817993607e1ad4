package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"production_control/internal/models"
	"production_control/internal/repository"
)

// WebhookService records audited order events and pushes them to
// matching active subscribers. Delivery is best-effort: failures are
// logged, there is no retry queue.
type WebhookService interface {
	Record(orderType models.OrderType, orderID uint, eventType, description string)
	CreateSubscription(sub *models.WebhookSubscription) error
	ListSubscriptions() ([]models.WebhookSubscription, error)
	DeleteSubscription(id uint) error
	GetEvents(orderType models.OrderType, orderID uint) ([]models.OrderEvent, error)
}

type webhookService struct {
	eventRepo   repository.EventRepository
	webhookRepo repository.WebhookRepository
	httpClient  *http.Client
}

func NewWebhookService(eventRepo repository.EventRepository, webhookRepo repository.WebhookRepository) WebhookService {
	return &webhookService{
		eventRepo:   eventRepo,
		webhookRepo: webhookRepo,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *webhookService) Record(orderType models.OrderType, orderID uint, eventType, description string) {
	event := &models.OrderEvent{
		OrderType:   string(orderType),
		OrderID:     orderID,
		EventType:   eventType,
		Description: description,
		Timestamp:   time.Now(),
	}
	if err := s.eventRepo.Create(event); err != nil {
		log.Printf("failed to record %s event for %s %d: %v", eventType, orderType, orderID, err)
	}

	subs, err := s.webhookRepo.GetActive()
	if err != nil {
		log.Printf("failed to load webhook subscriptions: %v", err)
		return
	}

	for _, sub := range subs {
		if sub.OrderType != "" && sub.OrderType != string(orderType) {
			continue
		}
		if sub.EventType != "" && sub.EventType != eventType {
			continue
		}
		s.deliver(sub.URL, event)
	}
}

func (s *webhookService) deliver(url string, event *models.OrderEvent) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal webhook payload: %v", err)
		return
	}

	resp, err := s.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("webhook delivery to %s failed: %v", url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("webhook delivery to %s returned status %d", url, resp.StatusCode)
	}
}

func (s *webhookService) CreateSubscription(sub *models.WebhookSubscription) error {
	return s.webhookRepo.Create(sub)
}

func (s *webhookService) ListSubscriptions() ([]models.WebhookSubscription, error) {
	return s.webhookRepo.GetAll()
}

func (s *webhookService) DeleteSubscription(id uint) error {
	return s.webhookRepo.Delete(id)
}

func (s *webhookService) GetEvents(orderType models.OrderType, orderID uint) ([]models.OrderEvent, error) {
	return s.eventRepo.GetForOrder(orderType, orderID)
}
