package port

import (
	"context"

	"inspect-api/internal/domain/entity"
)

// CrackClassifier интерфейс внешнего сервиса классификации трещин
type CrackClassifier interface {
	// Classify отправляет JPEG-изображение сервису и возвращает верхнюю метку
	// с уверенностью. Словарь меток не гарантирован.
	Classify(ctx context.Context, imageJPEG []byte) (*entity.RawClassification, error)
}
