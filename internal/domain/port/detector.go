package port

import (
	"context"

	"inspect-api/internal/domain/entity"
)

// DefectDetector интерфейс детектора дефектов на базе мультимодальной модели
type DefectDetector interface {
	// Detect анализирует JPEG-изображение и возвращает найденные трещины и влагу.
	// Рамки — в нормализованном пространстве [0,1000].
	Detect(ctx context.Context, imageJPEG []byte) (*entity.DetectionResult, error)
}
