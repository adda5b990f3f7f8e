package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	app "inspect-api/internal/application"
	"inspect-api/internal/container"
	"inspect-api/internal/domain/entity"
	"inspect-api/internal/domain/port"
)

const (
	// canvasWidth и canvasHeight размер холста, к которому приводятся
	// все изображения перед инференсом и выдачей
	canvasWidth  = 512
	canvasHeight = 512

	// requestTimeout ограничивает один вызов внешнего сервиса вместе с повторами
	requestTimeout = 30 * time.Second

	// maxUploadSize предел размера загружаемого изображения
	maxUploadSize = 20 << 20
)

// Server HTTP-сервер API инспекции
type Server struct {
	classification *app.ClassificationService
	detection      *app.DetectionService
	demo           *app.DemoService
	processor      port.ImageProcessor
}

// New создаёт сервер поверх собранного контейнера.
func New(c *container.Container, processor port.ImageProcessor) *Server {
	return &Server{
		classification: c.ClassificationService,
		detection:      c.DetectionService,
		demo:           c.DemoService,
		processor:      processor,
	}
}

// Routes возвращает роутер со всеми эндпоинтами API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/classify/", s.handleClassify)
	r.Post("/api/detect/", s.handleDetect)
	r.Get("/api/demo-images/", s.handleDemoImages)
	r.Get("/api/health/", s.handleHealth)
	return r
}

// imageSize размер холста в ответе
type imageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// classifyResponse ответ эндпоинта классификации
type classifyResponse struct {
	Success        bool                         `json:"success"`
	ImageBase64    string                       `json:"image_base64"`
	ImageSize      imageSize                    `json:"image_size"`
	Classification *entity.ClassificationResult `json:"classification"`
	Confidence     float64                      `json:"confidence"`
	AnalysisType   string                       `json:"analysis_type"`
}

// detectResponse ответ эндпоинта детекции
type detectResponse struct {
	Success      bool                       `json:"success"`
	ImageBase64  string                     `json:"image_base64"`
	ImageSize    imageSize                  `json:"image_size"`
	Detections   []entity.RenderedDetection `json:"detections"`
	Counts       detectionCounts            `json:"counts"`
	AnalysisType string                     `json:"analysis_type"`
}

type detectionCounts struct {
	Damage   int `json:"damage"`
	Moisture int `json:"moisture"`
}

// demoImageItem одно демо-изображение в ответе
type demoImageItem struct {
	Name        string `json:"name"`
	ImageBase64 string `json:"image_base64"`
}

type demoImagesResponse struct {
	DemoImages []demoImageItem `json:"demo_images"`
	Error      string          `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleClassify принимает фото, классифицирует трещину и возвращает
// результат вместе с превью 512x512.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	image, ok := s.readImage(w, r)
	if !ok {
		return
	}

	resized, err := s.processor.ResizeJPEG(image, canvasWidth, canvasHeight)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := s.classification.Classify(ctx, resized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Classification failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Success:        true,
		ImageBase64:    dataURI(resized),
		ImageSize:      imageSize{Width: canvasWidth, Height: canvasHeight},
		Classification: result,
		Confidence:     result.Confidence,
		AnalysisType:   "classification",
	})
}

// handleDetect принимает фото, ищет трещины и влагу и возвращает
// найденные дефекты в координатах холста.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	image, ok := s.readImage(w, r)
	if !ok {
		return
	}

	resized, err := s.processor.ResizeJPEG(image, canvasWidth, canvasHeight)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	out, err := s.detection.Inspect(ctx, resized, canvasWidth, canvasHeight)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Detection failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, detectResponse{
		Success:     true,
		ImageBase64: dataURI(resized),
		ImageSize:   imageSize{Width: canvasWidth, Height: canvasHeight},
		Detections:  out.Detections,
		Counts: detectionCounts{
			Damage:   out.DamageCount,
			Moisture: out.MoistureCount,
		},
		AnalysisType: "detection",
	})
}

// handleDemoImages возвращает список демо-изображений.
// Отсутствие каталога — не ошибка HTTP, а пустой список с пояснением.
func (s *Server) handleDemoImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.demo.List(r.Context())
	if err != nil {
		log.Printf("Error reading demo images: %v", err)
		writeJSON(w, http.StatusOK, demoImagesResponse{
			DemoImages: []demoImageItem{},
			Error:      fmt.Sprintf("Error reading demo images: %v", err),
		})
		return
	}

	items := make([]demoImageItem, 0, len(images))
	for _, img := range images {
		items = append(items, demoImageItem{
			Name:        img.Name,
			ImageBase64: dataURI(img.JPEG),
		})
	}

	writeJSON(w, http.StatusOK, demoImagesResponse{DemoImages: items})
}

// handleHealth проверка живости API.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Building inspection API is running",
	})
}

// readImage достаёт изображение из multipart-поля image.
// При ошибке сам пишет ответ и возвращает ok=false.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Error reading image: %v", err))
		return nil, false
	}

	return data, true
}

// dataURI оборачивает JPEG в data URI для фронтенда.
func dataURI(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
