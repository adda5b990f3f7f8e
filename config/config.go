package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr     string
	RoboflowURL    string
	RoboflowAPIKey string
	GeminiAPIKey   string
	GeminiModel    string
	DemoImagesDir  string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		RoboflowURL:    getenv("ROBOFLOW_URL", "https://detect.roboflow.com/crackclassification/1"),
		RoboflowAPIKey: os.Getenv("ROBOFLOW_API_KEY"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-2.5-pro"),
		DemoImagesDir:  getenv("DEMO_IMAGES_DIR", "static/demo"),
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
