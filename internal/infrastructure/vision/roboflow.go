package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

const roboflowTimeout = 30 * time.Second

// RoboflowClassifier клиент хостингового сервиса классификации трещин
type RoboflowClassifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRoboflowClassifier создаёт клиент. endpoint — полный URL модели,
// например https://detect.roboflow.com/crackclassification/1.
func NewRoboflowClassifier(endpoint, apiKey string) *RoboflowClassifier {
	return &RoboflowClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: roboflowTimeout},
	}
}

// Classify отправляет изображение сервису и возвращает верхнюю метку.
// Тело запроса — base64 от JPEG, ключ передаётся параметром api_key.
func (c *RoboflowClassifier) Classify(ctx context.Context, imageJPEG []byte) (*entity.RawClassification, error) {
	body := base64.StdEncoding.EncodeToString(imageJPEG)

	reqURL := c.endpoint + "?api_key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classification API error: %d - %s", resp.StatusCode, payload)
	}

	var result struct {
		Top        string  `json:"top"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &entity.RawClassification{
		Label:      result.Top,
		Confidence: result.Confidence,
	}, nil
}

// Проверка реализации интерфейса
var _ port.CrackClassifier = (*RoboflowClassifier)(nil)
