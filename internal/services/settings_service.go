package services

import (
	"log"
	"sync"
	"time"

	"production_control/internal/models"
	"production_control/internal/repository"
)

// SettingsCache is the slice of the Redis client the settings service
// uses as its second cache tier.
type SettingsCache interface {
	GetCachedSetting(name string) (int, error)
	SetCachedSetting(name string, value int, ttl time.Duration) error
	DeleteCachedSetting(name string) error
}

// SettingsService serves slowly-changing configuration through an
// in-memory read-through cache backed by Redis and the settings table.
// The cache is eventually consistent and non-authoritative, which is
// acceptable because the lot-size threshold only steers classification.
type SettingsService interface {
	LotSizeThreshold() int
	SetLotSizeThreshold(value int) error
}

type settingsService struct {
	settingRepo repository.SettingRepository
	cache       SettingsCache
	ttl         time.Duration
	fallback    int

	mu        sync.Mutex
	threshold int
	expires   time.Time
}

func NewSettingsService(settingRepo repository.SettingRepository, cache SettingsCache, ttl time.Duration, fallback int) SettingsService {
	return &settingsService{
		settingRepo: settingRepo,
		cache:       cache,
		ttl:         ttl,
		fallback:    fallback,
	}
}

func (s *settingsService) LotSizeThreshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Before(s.expires) {
		return s.threshold
	}

	value := s.load()
	s.threshold = value
	s.expires = time.Now().Add(s.ttl)
	return value
}

func (s *settingsService) load() int {
	if value, err := s.cache.GetCachedSetting(models.SettingLotSizeThreshold); err == nil {
		return value
	}

	setting, err := s.settingRepo.Get(models.SettingLotSizeThreshold)
	if err != nil {
		log.Printf("lot-size threshold not readable, using fallback %d: %v", s.fallback, err)
		return s.fallback
	}

	if err := s.cache.SetCachedSetting(models.SettingLotSizeThreshold, setting.IntValue, s.ttl); err != nil {
		log.Printf("failed to cache lot-size threshold: %v", err)
	}
	return setting.IntValue
}

func (s *settingsService) SetLotSizeThreshold(value int) error {
	setting, err := s.settingRepo.Get(models.SettingLotSizeThreshold)
	if err != nil {
		setting = &models.Setting{
			SettingName: models.SettingLotSizeThreshold,
			IntValue:    value,
			IsActive:    true,
		}
		if err := s.settingRepo.Create(setting); err != nil {
			return err
		}
	} else {
		setting.IntValue = value
		if err := s.settingRepo.Update(setting); err != nil {
			return err
		}
	}

	if err := s.cache.DeleteCachedSetting(models.SettingLotSizeThreshold); err != nil {
		log.Printf("failed to invalidate cached lot-size threshold: %v", err)
	}

	s.mu.Lock()
	s.threshold = value
	s.expires = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return nil
}
