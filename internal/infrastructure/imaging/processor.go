//go:build gocv
// +build gocv

package imaging

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"inspect-api/internal/domain/port"
)

const jpegQuality = 95

// GoCVProcessor подготовка изображений через OpenCV
type GoCVProcessor struct {
	Quality int
}

// NewGoCVProcessor создаёт процессор с качеством JPEG по умолчанию.
func NewGoCVProcessor() *GoCVProcessor {
	return &GoCVProcessor{Quality: jpegQuality}
}

// ResizeJPEG приводит изображение к размеру холста и кодирует в JPEG.
func (p *GoCVProcessor) ResizeJPEG(data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLanczos4)

	return p.encodeJPEG(resized)
}

// ReencodeJPEG перекодирует изображение в JPEG без изменения размера.
func (p *GoCVProcessor) ReencodeJPEG(data []byte) ([]byte, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	return p.encodeJPEG(mat)
}

// encodeJPEG кодирует Mat в JPEG с настроенным качеством.
func (p *GoCVProcessor) encodeJPEG(mat gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, p.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// Проверка реализации интерфейса
var _ port.ImageProcessor = (*GoCVProcessor)(nil)
