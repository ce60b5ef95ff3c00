package menus

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Selection выбранная услуга с дополнительными опциями
type Selection struct {
	Items           []*domain.MenuItem // первым идет основная услуга
	DurationMinutes int
	Price           float64
	Name            string
}

// Main основная услуга
func (s *Selection) Main() *domain.MenuItem {
	return s.Items[0]
}

// MenuResponse пункт меню для клиента
type MenuResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	NameEn          *string `json:"nameEn,omitempty"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
	Description     *string `json:"description,omitempty"`
}

// Service сервис меню салона
type Service struct {
	repo   MenuRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса меню
func NewService(repo MenuRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List возвращает меню в порядке отображения
func (s *Service) List(ctx context.Context) ([]MenuResponse, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListMenus: repository error: %v", err)
		return nil, fmt.Errorf("%w: list menus: %v", domain.ErrDataUnavailable, err)
	}

	resp := make([]MenuResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, MenuResponse{
			ID:              m.ID,
			Name:            m.Name,
			NameEn:          m.NameEn,
			DurationMinutes: m.DurationMinutes,
			Price:           m.Price,
			Description:     m.Description,
		})
	}
	return resp, nil
}

// Resolve загружает выбранные пункты и суммирует длительность и цену.
// Порядок ids сохраняется: первый пункт основная услуга, остальные опции.
func (s *Service) Resolve(ctx context.Context, ids []int64) (*Selection, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, ErrNoMenu)
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: %w: id=%d", domain.ErrValidation, ErrMenuNotFound, id)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %w: id=%d", domain.ErrValidation, ErrDuplicateMenu, id)
		}
		seen[id] = struct{}{}
	}

	items, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("ResolveMenus: repository error for ids=%v: %v", ids, err)
		return nil, fmt.Errorf("%w: get menus: %v", domain.ErrDataUnavailable, err)
	}

	byID := make(map[int64]*domain.MenuItem, len(items))
	for _, m := range items {
		byID[m.ID] = m
	}

	sel := &Selection{Items: make([]*domain.MenuItem, 0, len(ids))}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			s.logger.Warn("ResolveMenus: menu id=%d not found", id)
			return nil, fmt.Errorf("%w: %w: id=%d", domain.ErrValidation, ErrMenuNotFound, id)
		}
		sel.Items = append(sel.Items, m)
		sel.DurationMinutes += m.DurationMinutes
		sel.Price += m.Price
		names = append(names, m.Name)
	}
	sel.Name = strings.Join(names, " + ")

	return sel, nil
}
