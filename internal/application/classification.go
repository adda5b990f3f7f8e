package app

import (
	"context"
	"errors"
	"fmt"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

type ClassificationService struct {
	classifier port.CrackClassifier
}

// NewClassificationService создаёт сервис классификации трещин.
func NewClassificationService(classifier port.CrackClassifier) *ClassificationService {
	return &ClassificationService{classifier: classifier}
}

// Classify отправляет изображение внешнему сервису и переводит ответ
// в нашу таксономию. Ошибка сервиса поднимается наверх, незнакомая метка — нет.
func (s *ClassificationService) Classify(ctx context.Context, imageJPEG []byte) (*entity.ClassificationResult, error) {
	if s.classifier == nil {
		return nil, errors.New("classifier is not configured")
	}

	raw, err := s.classifier.Classify(ctx, imageJPEG)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	result := entity.MapClassification(raw.Label, raw.Confidence)
	return &result, nil
}
