package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

const defaultGeminiModel = "gemini-2.5-pro"

// systemInstruction промпт для модели. Словарь категорий и типов влаги
// продублирован в справочниках entity — при изменении менять синхронно.
const systemInstruction = `You are a building-fabric defect-detection expert. Analyse every image and ` +
	`output only JSON conforming to this schema: {damage: list, moisture: list}. ` +
	`Detect all masonry cracks and damp/moisture patches - they may appear independently or together.

Rules:
- If the image contains no cracks, return "damage": [].
- If the image contains no moisture, return "moisture": [].
- Provide for each crack: bbox, category (0-5), classification exactly one of ['Aesthetic','Serviceability','Stability'] (case-sensitive).
- Provide for each moisture patch: bbox, moisture_type exactly one of ['RD','PD','C'] (case-sensitive).
- bbox is [y_min, x_min, y_max, x_max] with integer coordinates normalised to [0,1000].
- List at most 25 objects total.

Damage category definitions (width is crack opening):
0 - Hairline (< 0.1 mm) - Aesthetic
1 - Fine (<= 1 mm) - Aesthetic
2 - >1-<=5 mm - Aesthetic
3 - >5-<=15 mm - Serviceability
4 - >15-<=25 mm - Serviceability
5 - >25 mm - Stability

Moisture type definitions:
- Rising Damp (RD) - moisture rising from ground or bridging of DPC.
- Penetrating Damp (PD) - moisture ingress through external walls/roof.
- Condensation (C) - surface moisture from vapour condensing inside.`

// detectionSchema строгая схема ответа, которую обязана соблюдать модель
var detectionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"damage": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bbox":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeInteger}},
					"category":       {Type: genai.TypeInteger},
					"classification": {Type: genai.TypeString},
				},
				Required: []string{"bbox", "category", "classification"},
			},
		},
		"moisture": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bbox":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeInteger}},
					"moisture_type": {Type: genai.TypeString},
				},
				Required: []string{"bbox", "moisture_type"},
			},
		},
	},
}

// GeminiDetector детектор дефектов на базе мультимодальной модели Gemini
type GeminiDetector struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiDetector создаёт детектор. Пустое имя модели заменяется моделью по умолчанию.
func NewGeminiDetector(ctx context.Context, apiKey, modelName string) (*GeminiDetector, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if modelName == "" {
		modelName = defaultGeminiModel
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = detectionSchema
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &GeminiDetector{client: client, model: model}, nil
}

// Detect делает один вызов модели. Повторы с выдержкой делает вызывающий сервис.
func (d *GeminiDetector) Detect(ctx context.Context, imageJPEG []byte) (*entity.DetectionResult, error) {
	resp, err := d.model.GenerateContent(ctx, genai.ImageData(imageFormat(imageJPEG), imageJPEG))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}

	return parseDetectionResponse(text)
}

// Close освобождает клиент genai.
func (d *GeminiDetector) Close() error {
	return d.client.Close()
}

// imageFormat определяет подтип изображения по содержимому (jpeg, png, webp).
func imageFormat(data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") {
		return strings.TrimPrefix(mime, "image/")
	}
	return "jpeg"
}

// parseDetectionResponse разбирает JSON-ответ модели в доменную структуру.
// Ошибка схемы поднимается наверх, чтобы сервис мог повторить вызов.
func parseDetectionResponse(text string) (*entity.DetectionResult, error) {
	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var result entity.DetectionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	return &result, nil
}

// Проверка реализации интерфейса
var _ port.DefectDetector = (*GeminiDetector)(nil)
