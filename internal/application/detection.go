package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

const (
	detectAttempts  = 3
	detectBaseDelay = 2 * time.Second
	detectMaxDelay  = 20 * time.Second
)

type DetectionService struct {
	detector port.DefectDetector

	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
}

// DetectionOutput результат детекции, готовый для выдачи наружу.
type DetectionOutput struct {
	Detections    []entity.RenderedDetection
	DamageCount   int
	MoistureCount int
}

// NewDetectionService создаёт сервис детекции дефектов.
func NewDetectionService(detector port.DefectDetector) *DetectionService {
	return &DetectionService{
		detector:  detector,
		attempts:  detectAttempts,
		baseDelay: detectBaseDelay,
		maxDelay:  detectMaxDelay,
	}
}

// Inspect запускает детекцию с повторами и переводит ответ модели
// в пиксельное пространство холста.
func (s *DetectionService) Inspect(ctx context.Context, imageJPEG []byte, canvasWidth, canvasHeight int) (*DetectionOutput, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	result, err := s.detectWithRetry(ctx, imageJPEG)
	if err != nil {
		return nil, fmt.Errorf("detect defects: %w", err)
	}

	s.checkClassifications(result)

	detections, err := result.Render(canvasWidth, canvasHeight)
	if err != nil {
		return nil, fmt.Errorf("render detections: %w", err)
	}

	return &DetectionOutput{
		Detections:    detections,
		DamageCount:   len(result.Damage),
		MoistureCount: len(result.Moisture),
	}, nil
}

// detectWithRetry вызывает детектор с экспоненциальной выдержкой между попытками.
func (s *DetectionService) detectWithRetry(ctx context.Context, imageJPEG []byte) (*entity.DetectionResult, error) {
	delay := s.baseDelay

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		result, err := s.detector.Detect(ctx, imageJPEG)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Printf("detection attempt %d/%d failed: %v", attempt, s.attempts, err)

		if attempt == s.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > s.maxDelay {
			delay = s.maxDelay
		}
	}

	return nil, lastErr
}

// checkClassifications сверяет текстовый класс модели с числовым кодом.
// Расхождение только логируется: чинить одно поле по другому нельзя.
func (s *DetectionService) checkClassifications(result *entity.DetectionResult) {
	for i, f := range result.Damage {
		expected := entity.ClassificationForCategory(f.Category)
		if f.Classification != "" && f.Classification != string(expected) {
			log.Printf("damage finding %d: classification %q disagrees with category %d (%s)",
				i, f.Classification, f.Category, expected)
		}
	}
}
