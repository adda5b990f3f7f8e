package entity

import (
	"errors"
	"fmt"
)

// DetectionType тип найденного дефекта в выдаче API
type DetectionType string

const (
	TypeCrack    DetectionType = "crack"
	TypeMoisture DetectionType = "moisture"
)

// renderConfidence фиксированная уверенность для выдачи: модель детекции
// не возвращает уверенность по объектам.
const renderConfidence = 0.95

var (
	// ErrMalformedBBox рамка неправильной длины — нарушение контракта с моделью
	ErrMalformedBBox = errors.New("malformed bbox")
	// ErrInvalidCanvas неположительный размер холста — нарушение контракта вызывающей стороны
	ErrInvalidCanvas = errors.New("invalid canvas size")
)

// PixelBox рамка в пиксельных координатах холста
type PixelBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RenderedCategory денормализованная запись категории для UI
type RenderedCategory struct {
	Code string        `json:"code"`
	Name string        `json:"name"`
	Type DetectionType `json:"type"`
}

// RenderedDetection дефект, готовый к отрисовке поверх холста
type RenderedDetection struct {
	ID         int              `json:"id"`
	Type       DetectionType    `json:"type"`
	Category   RenderedCategory `json:"category"`
	BBox       PixelBox         `json:"bbox"`
	Confidence float64          `json:"confidence"`
}

// damageCategories справочник категорий трещин по коду модели
var damageCategories = map[int]RenderedCategory{
	0: {Code: "0", Name: "Hairline (<0.1mm)", Type: TypeCrack},
	1: {Code: "1", Name: "Fine (<1mm)", Type: TypeCrack},
	2: {Code: "2", Name: "Aesthetic (>1 <5mm)", Type: TypeCrack},
	3: {Code: "3", Name: "Serviceability (>5 <15mm)", Type: TypeCrack},
	4: {Code: "4", Name: "Serviceability (>15 <25mm)", Type: TypeCrack},
	5: {Code: "5", Name: "Stability (>25mm)", Type: TypeCrack},
}

// moistureCategories справочник типов влаги по коду модели
var moistureCategories = map[string]RenderedCategory{
	"RD": {Code: "RD", Name: "Rising Damp", Type: TypeMoisture},
	"PD": {Code: "PD", Name: "Penetrating Damp", Type: TypeMoisture},
	"C":  {Code: "C", Name: "Condensation", Type: TypeMoisture},
}

// DamageCategory возвращает запись категории трещины.
// Неизвестный код уходит в категорию 1 (Fine), а не в ошибку.
func DamageCategory(code int) RenderedCategory {
	if rec, ok := damageCategories[code]; ok {
		return rec
	}
	return damageCategories[1]
}

// MoistureCategory возвращает запись типа влаги.
// Неизвестный код уходит в тип C (Condensation), а не в ошибку.
func MoistureCategory(code string) RenderedCategory {
	if rec, ok := moistureCategories[code]; ok {
		return rec
	}
	return moistureCategories["C"]
}

// Render переводит результат детекции в пиксельное пространство холста.
// Сначала трещины, затем влага, сквозная нумерация с единицы — этот порядок
// читает UI. Пустой результат даёт пустой список.
func (r DetectionResult) Render(canvasWidth, canvasHeight int) ([]RenderedDetection, error) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, canvasWidth, canvasHeight)
	}

	out := make([]RenderedDetection, 0, len(r.Damage)+len(r.Moisture))
	id := 1

	for i, f := range r.Damage {
		box, err := renderBBox(f.BBox, canvasWidth, canvasHeight)
		if err != nil {
			return nil, fmt.Errorf("damage finding %d: %w", i, err)
		}
		out = append(out, RenderedDetection{
			ID:         id,
			Type:       TypeCrack,
			Category:   DamageCategory(f.Category),
			BBox:       box,
			Confidence: renderConfidence,
		})
		id++
	}

	for i, f := range r.Moisture {
		box, err := renderBBox(f.BBox, canvasWidth, canvasHeight)
		if err != nil {
			return nil, fmt.Errorf("moisture finding %d: %w", i, err)
		}
		out = append(out, RenderedDetection{
			ID:         id,
			Type:       TypeMoisture,
			Category:   MoistureCategory(f.MoistureType),
			BBox:       box,
			Confidence: renderConfidence,
		})
		id++
	}

	return out, nil
}

// renderBBox переводит рамку из нормализованного пространства [0,1000]
// в пиксели холста. Модель отдаёт координаты в порядке (yMin, xMin, yMax, xMax).
func renderBBox(bbox []int, canvasWidth, canvasHeight int) (PixelBox, error) {
	if len(bbox) != 4 {
		return PixelBox{}, fmt.Errorf("%w: got %d coordinates, want 4", ErrMalformedBBox, len(bbox))
	}

	yMin, xMin, yMax, xMax := bbox[0], bbox[1], bbox[2], bbox[3]

	return PixelBox{
		X1: scaleToCanvas(xMin, canvasWidth),
		Y1: scaleToCanvas(yMin, canvasHeight),
		X2: scaleToCanvas(xMax, canvasWidth),
		Y2: scaleToCanvas(yMax, canvasHeight),
	}, nil
}

// scaleToCanvas переводит координату из [0,1000] в [0,dim]:
// сначала целочисленное усечение, затем прижатие к границам холста.
func scaleToCanvas(coord, dim int) int {
	v := coord * dim / 1000
	if v < 0 {
		return 0
	}
	if v > dim {
		return dim
	}
	return v
}
