package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/perkpoint/storefront-service/internal/domain"
	settingsRepo "github.com/perkpoint/storefront-service/internal/infra/storage/settings"
	"github.com/perkpoint/storefront-service/internal/service/settings/models"
)

// Service сервис настроек витрины.
// Держит настройки в памяти, чтобы не ходить в БД на каждый запрос слотов.
type Service struct {
	repo   SettingsRepository
	logger Logger

	mu     sync.RWMutex
	cached *domain.Settings
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load загружает настройки из БД в кэш.
// Если настроек ещё нет, инициализирует их значениями по умолчанию.
func (s *Service) Load(ctx context.Context) error {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Load: settings row missing, initialising defaults")
			current, err = s.repo.Upsert(ctx, domain.DefaultSettings())
			if err != nil {
				s.logger.Error("Load: failed to initialise default settings: %v", err)
				return fmt.Errorf("%w: Load - initialise defaults: %v", ErrInternal, err)
			}
		} else {
			s.logger.Error("Load: repository error: %v", err)
			return fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
		}
	}

	s.mu.Lock()
	s.cached = current
	s.mu.Unlock()

	s.logger.Info("Load: settings loaded, maxOrdersPerSlot=%d, blockedDates=%d, options=%d",
		current.MaxOrdersPerSlot, len(current.BlockedDates), len(current.ProductOptions))
	return nil
}

// Get возвращает настройки из кэша, при его отсутствии читает из БД
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached, nil
}

// GetFresh читает настройки напрямую из БД, минуя кэш.
// Используется там, где устаревшее значение недопустимо.
func (s *Service) GetFresh(ctx context.Context) (*domain.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		s.logger.Error("GetFresh: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetFresh - repository error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.cached = current
	s.mu.Unlock()

	return current, nil
}

// GetResponse возвращает настройки в формате ответа API
func (s *Service) GetResponse(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// Update применяет частичное обновление настроек и сохраняет его в БД.
// Возвращает обновлённые настройки.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating storefront settings")

	current, err := s.GetFresh(ctx)
	if err != nil {
		return nil, err
	}

	next := *current

	if req.MaxOrdersPerSlot != nil {
		v := *req.MaxOrdersPerSlot
		if v < domain.MinMaxOrdersPerSlot || v > domain.MaxMaxOrdersPerSlot {
			s.logger.Warn("Update: maxOrdersPerSlot=%d out of range", v)
			return nil, fmt.Errorf("%w: max_orders_per_slot must be between %d and %d",
				ErrInvalidInput, domain.MinMaxOrdersPerSlot, domain.MaxMaxOrdersPerSlot)
		}
		next.MaxOrdersPerSlot = v
	}

	if req.BlockedDates != nil {
		dates := make([]string, 0, len(*req.BlockedDates))
		seen := make(map[string]bool, len(*req.BlockedDates))
		for _, raw := range *req.BlockedDates {
			if _, err := time.Parse(domain.DateFormat, raw); err != nil {
				s.logger.Warn("Update: invalid blocked date %q", raw)
				return nil, fmt.Errorf("%w: blocked date %q must be in YYYY-MM-DD format", ErrInvalidInput, raw)
			}
			if seen[raw] {
				continue
			}
			seen[raw] = true
			dates = append(dates, raw)
		}
		next.BlockedDates = dates
	}

	if req.ProductOptions != nil {
		options, err := buildOptions(*req.ProductOptions)
		if err != nil {
			s.logger.Warn("Update: invalid product options: %v", err)
			return nil, err
		}
		next.ProductOptions = options
	}

	saved, err := s.repo.Upsert(ctx, &next)
	if err != nil {
		s.logger.Error("Update: failed to persist settings: %v", err)
		return nil, fmt.Errorf("%w: Update - persist settings: %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.cached = saved
	s.mu.Unlock()

	s.logger.Info("Update: settings saved, maxOrdersPerSlot=%d", saved.MaxOrdersPerSlot)
	return models.FromDomainSettings(saved), nil
}

// Invalidate сбрасывает кэш настроек
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func buildOptions(entries []models.ProductOptionUpdateEntry) ([]domain.ProductOption, error) {
	options := make([]domain.ProductOption, 0, len(entries))
	defaults := 0
	for _, entry := range entries {
		if entry.Title == "" {
			return nil, fmt.Errorf("%w: option title is required", ErrInvalidInput)
		}
		if entry.Price < 0 {
			return nil, fmt.Errorf("%w: option price must not be negative", ErrInvalidInput)
		}
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		if entry.IsDefault {
			defaults++
		}
		options = append(options, domain.ProductOption{
			ID:        id,
			Title:     entry.Title,
			Price:     entry.Price,
			IsDefault: entry.IsDefault,
		})
	}
	if defaults > 1 {
		return nil, fmt.Errorf("%w: at most one option can be the default", ErrInvalidInput)
	}
	return options, nil
}
