package port

import (
	"context"

	"inspect-api/internal/domain/entity"
)

// DemoImageRepository интерфейс хранилища демо-изображений
type DemoImageRepository interface {
	// List возвращает демо-изображения, перекодированные в JPEG.
	List(ctx context.Context) ([]entity.DemoImage, error)
}
