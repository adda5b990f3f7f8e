package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

// supportedExtensions форматы, которые показываем как демо
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// FSDemoRepository хранилище демо-изображений на файловой системе
// с кешем в памяти: содержимое каталога не меняется между запросами.
type FSDemoRepository struct {
	dir       string
	processor port.ImageProcessor

	mu    sync.RWMutex
	cache []entity.DemoImage
}

// NewFSDemoRepository создаёт хранилище поверх каталога с демо-изображениями.
func NewFSDemoRepository(dir string, processor port.ImageProcessor) *FSDemoRepository {
	return &FSDemoRepository{
		dir:       dir,
		processor: processor,
	}
}

// List возвращает демо-изображения, перекодированные в JPEG.
// Файлы неподдерживаемых форматов пропускаются.
func (r *FSDemoRepository) List(ctx context.Context) ([]entity.DemoImage, error) {
	r.mu.RLock()
	cached := r.cache
	r.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read demo dir: %w", err)
	}

	images := make([]entity.DemoImage, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !supportedExtensions[ext] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read demo image %s: %w", e.Name(), err)
		}

		jpeg, err := r.processor.ReencodeJPEG(data)
		if err != nil {
			return nil, fmt.Errorf("reencode demo image %s: %w", e.Name(), err)
		}

		images = append(images, entity.DemoImage{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			JPEG: jpeg,
		})
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Name < images[j].Name })

	r.mu.Lock()
	r.cache = images
	r.mu.Unlock()

	return images, nil
}

// Проверка реализации интерфейса
var _ port.DemoImageRepository = (*FSDemoRepository)(nil)
