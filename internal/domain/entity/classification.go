package entity

import "math"

// Category категория дефекта по влиянию на конструкцию
type Category string

// Severity уровень серьёзности дефекта
type Severity string

const (
	CategoryAesthetic      Category = "Aesthetic"
	CategoryServiceability Category = "Serviceability"
	CategoryStability      Category = "Stability"
	CategoryUnknown        Category = "Unknown"

	SeverityLow     Severity = "Low"
	SeverityMedium  Severity = "Medium"
	SeverityHigh    Severity = "High"
	SeverityUnknown Severity = "Unknown"
)

// RawClassification ответ внешнего сервиса классификации как есть
type RawClassification struct {
	Label      string  // метка с максимальной уверенностью
	Confidence float64 // уверенность модели
}

// ClassificationResult итог классификации трещины в нашей таксономии
type ClassificationResult struct {
	RawClass       string   `json:"raw_class"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	ActionRequired string   `json:"action_required"`
	Color          string   `json:"color"`
	Confidence     float64  `json:"confidence"`
}

// severityRecord статическая запись таксономии: категория, серьёзность и подсказки для UI
type severityRecord struct {
	Category       Category
	Severity       Severity
	Description    string
	ActionRequired string
	Color          string
}

// classTable сопоставление меток сервиса классификации с нашей таксономией.
// Словарь меток не гарантирован контрактом, поэтому всё незнакомое уходит
// в unknownRecord, а не в ошибку.
var classTable = map[string]severityRecord{
	"Categories 0,1&2 (Aesthetic)": {
		Category:       CategoryAesthetic,
		Severity:       SeverityLow,
		Description:    "Hairline to fine cracks (≤5mm) - Aesthetic concern only",
		ActionRequired: "Monitor for changes",
		Color:          "#28a745",
	},
	"Categories 3&4 (Serviceability)": {
		Category:       CategoryServiceability,
		Severity:       SeverityMedium,
		Description:    "Moderate cracks (5-25mm) - May affect serviceability",
		ActionRequired: "Inspect and repair recommended",
		Color:          "#ffc107",
	},
	"Category 5 (Stability)": {
		Category:       CategoryStability,
		Severity:       SeverityHigh,
		Description:    "Large cracks (>25mm) - Structural stability concern",
		ActionRequired: "Immediate professional assessment required",
		Color:          "#dc3545",
	},
}

var unknownRecord = severityRecord{
	Category:       CategoryUnknown,
	Severity:       SeverityUnknown,
	Description:    "Classification uncertain",
	ActionRequired: "Manual inspection recommended",
	Color:          "#6c757d",
}

// MapClassification переводит сырую метку модели в запись нашей таксономии.
// Точное совпадение строки, без нормализации регистра и пробелов.
// Уверенность округляется до трёх знаков и не ограничивается диапазоном [0,1].
func MapClassification(rawLabel string, confidence float64) ClassificationResult {
	rec, ok := classTable[rawLabel]
	if !ok {
		rec = unknownRecord
	}

	return ClassificationResult{
		RawClass:       rawLabel,
		Category:       rec.Category,
		Severity:       rec.Severity,
		Description:    rec.Description,
		ActionRequired: rec.ActionRequired,
		Color:          rec.Color,
		Confidence:     roundConfidence(confidence),
	}
}

// roundConfidence округляет уверенность до трёх знаков после запятой.
func roundConfidence(c float64) float64 {
	return math.Round(c*1000) / 1000
}
