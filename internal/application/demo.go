package app

import (
	"context"
	"errors"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

type DemoService struct {
	repo port.DemoImageRepository
}

// NewDemoService создаёт сервис выдачи демо-изображений.
func NewDemoService(repo port.DemoImageRepository) *DemoService {
	return &DemoService{repo: repo}
}

// List возвращает все доступные демо-изображения.
func (s *DemoService) List(ctx context.Context) ([]entity.DemoImage, error) {
	if s.repo == nil {
		return nil, errors.New("demo repository is not configured")
	}
	return s.repo.List(ctx)
}
