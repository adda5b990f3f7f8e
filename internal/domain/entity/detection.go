package entity

// DamageFinding трещина, найденная мультимодальной моделью.
// BBox в нормализованном пространстве [0,1000] в порядке (yMin, xMin, yMax, xMax).
type DamageFinding struct {
	BBox           []int  `json:"bbox"`
	Category       int    `json:"category"`       // код категории 0-5
	Classification string `json:"classification"` // текстовый класс модели, для рендера не используется
}

// MoistureFinding пятно влаги, найденное мультимодальной моделью
type MoistureFinding struct {
	BBox         []int  `json:"bbox"`
	MoistureType string `json:"moisture_type"` // RD, PD или C
}

// DetectionResult полный ответ модели детекции.
// Пустые списки — нормальный результат "дефекты не найдены", не ошибка.
type DetectionResult struct {
	Damage   []DamageFinding   `json:"damage"`
	Moisture []MoistureFinding `json:"moisture"`
}

// ClassificationForCategory возвращает класс, который соответствует числовому коду.
// Используется только для сверки с текстовым полем модели.
func ClassificationForCategory(code int) Category {
	switch {
	case code >= 0 && code <= 2:
		return CategoryAesthetic
	case code >= 3 && code <= 4:
		return CategoryServiceability
	case code == 5:
		return CategoryStability
	default:
		return CategoryUnknown
	}
}
