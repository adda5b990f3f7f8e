//go:build !gocv
// +build !gocv

package imaging

import (
	"errors"

	"inspect-api/internal/domain/port"
)

// GoCVProcessor заглушка процессора изображений (сборка без OpenCV)
type GoCVProcessor struct {
	Quality int
}

// NewGoCVProcessor создаёт процессор-заглушку (без OpenCV).
func NewGoCVProcessor() *GoCVProcessor {
	return &GoCVProcessor{Quality: 95}
}

// ResizeJPEG возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) ResizeJPEG(data []byte, width, height int) ([]byte, error) {
	_ = data
	_ = width
	_ = height
	return nil, errors.New("gocv build tag is not enabled")
}

// ReencodeJPEG возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProcessor) ReencodeJPEG(data []byte) ([]byte, error) {
	_ = data
	return nil, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.ImageProcessor = (*GoCVProcessor)(nil)
