package news

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service wraps the news feed rules.
type Service struct {
	repo      Repository
	validator *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, validator: validator.New(), logger: logger, now: time.Now}
}

// Create publishes a news item stamped with the current time.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Link = strings.TrimSpace(req.Link)
	if err := s.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return Item{}, ErrMissingFields
				}
			}
		}
		return Item{}, ErrInvalidLink
	}
	item, err := s.repo.Create(ctx, Item{Name: req.Name, Link: req.Link, PublishedAt: s.now().UTC()})
	if err != nil {
		s.logger.ErrorContext(ctx, "create news item", slog.Any("error", err))
		return Item{}, ErrCreate.WithCause(err)
	}
	return item, nil
}

// Delete removes a news item.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ErrDeleteID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrDeleteAbsent
		}
		s.logger.ErrorContext(ctx, "delete news item", slog.Any("error", err))
		return ErrDelete.WithCause(err)
	}
	return nil
}

// List returns every item, newest first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list news", slog.Any("error", err))
		return nil, ErrList.WithCause(err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
