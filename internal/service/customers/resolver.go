package customers

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Resolution результат сопоставления клиента
type Resolution struct {
	CustomerID int64
	IsNew      bool
}

// Resolver находит существующего клиента или создает нового.
// Совпадение: тот же email или телефон и то же имя без учета пробелов.
type Resolver struct {
	repo   CustomerRepository
	logger Logger
}

// NewResolver создает резолвер клиентов
func NewResolver(repo CustomerRepository, logger Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve возвращает ID клиента. Найденная запись не изменяется.
// Создание выполняется только после успешного поиска, ошибки оборачивают domain.ErrPersistence.
func (r *Resolver) Resolve(ctx context.Context, name, email, phone string) (*Resolution, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, ErrMissingName)
	}
	if email == "" && phone == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, ErrMissingContact)
	}

	// 1. Кандидаты по email или телефону
	candidates, err := r.repo.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		r.logger.Error("ResolveCustomer: failed to search customer: %v", err)
		return nil, fmt.Errorf("%w: search customer: %w", domain.ErrPersistence, err)
	}

	// 2. Совпадение по нормализованному имени
	for _, c := range candidates {
		if NormalizeName(c.Name) == normalized {
			r.logger.Info("ResolveCustomer: matched existing customer id=%d", c.ID)
			return &Resolution{CustomerID: c.ID, IsNew: false}, nil
		}
	}

	// 3. Новый клиент
	created, err := r.repo.Create(ctx, &domain.Customer{
		Name:  strings.TrimSpace(name),
		Email: email,
		Phone: phone,
	})
	if err != nil {
		r.logger.Error("ResolveCustomer: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: create customer: %w", domain.ErrPersistence, err)
	}

	r.logger.Info("ResolveCustomer: created customer id=%d (%d contact matches with another name)",
		created.ID, len(candidates))
	return &Resolution{CustomerID: created.ID, IsNew: true}, nil
}

// NormalizeName удаляет все пробельные символы Unicode, включая полноширинный пробел U+3000
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}
