package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	blockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/adminblock"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBlockRequest запрос на закрытие времени
type CreateBlockRequest struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Kind      string  `json:"type"`
	Label     *string `json:"label,omitempty"`
}

// BlockResponse блокировка для админки
type BlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Kind      string    `json:"type"`
	Label     *string   `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service сервис административных блокировок
type Service struct {
	repo      BlockRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// ListByDate блокировки дня
func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]BlockResponse, error) {
	blocks, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListBlocks: repository error for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list blocks: %v", domain.ErrDataUnavailable, err)
	}

	resp := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		resp = append(resp, fromDomain(b))
	}
	return resp, nil
}

// Create закрывает интервал времени. Уже существующие бронирования не затрагиваются.
func (s *Service) Create(ctx context.Context, req *CreateBlockRequest) (*BlockResponse, error) {
	block, err := req.toDomain()
	if err != nil {
		s.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: create block: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("CreateBlock: id=%d, %s %s-%s (%s)",
		created.ID, created.Date.Format(domain.DateFormat), created.StartTime, created.EndTime, created.Kind)
	s.publisher.Publish(ctx, events.Event{Type: events.TypeBlockChanged, Date: created.Date.Format(domain.DateFormat)})

	resp := fromDomain(created)
	return &resp, nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	date, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: delete block: %v", domain.ErrPersistence, err)
	}

	day := date.Format(domain.DateFormat)
	s.logger.Info("DeleteBlock: id=%d removed from %s", id, day)
	s.publisher.Publish(ctx, events.Event{Type: events.TypeBlockChanged, Date: day})
	return nil
}

func (r *CreateBlockRequest) toDomain() (*domain.AdminBlock, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(r.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", domain.ErrValidation, err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", domain.ErrValidation, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", domain.ErrValidation)
	}

	kind := domain.BlockKind(r.Kind)
	if r.Kind == "" {
		kind = domain.BlockOther
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown block type %q", domain.ErrValidation, r.Kind)
	}

	var label *string
	if r.Label != nil {
		trimmed := strings.TrimSpace(*r.Label)
		if utf8.RuneCountInString(trimmed) > domain.MaxBlockLabelLength {
			return nil, fmt.Errorf("%w: label must be at most %d characters", domain.ErrValidation, domain.MaxBlockLabelLength)
		}
		if trimmed != "" {
			label = &trimmed
		}
	}

	return &domain.AdminBlock{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Kind:      kind,
		Label:     label,
	}, nil
}

func fromDomain(b *domain.AdminBlock) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Kind:      string(b.Kind),
		Label:     b.Label,
		CreatedAt: b.CreatedAt,
	}
}
