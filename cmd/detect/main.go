package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	app "inspect-api/internal/application"
	"inspect-api/internal/domain/entity"
	"inspect-api/internal/infrastructure/vision"
)

// cliConfig настройки CLI из ~/.inspect-api/config.yaml
type cliConfig struct {
	Model  string `yaml:"model"`
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
}

// defaultCLIConfig значения по умолчанию: модель и холст как в HTTP API.
func defaultCLIConfig() cliConfig {
	var cfg cliConfig
	cfg.Model = "gemini-2.5-pro"
	cfg.Canvas.Width = 512
	cfg.Canvas.Height = 512
	return cfg
}

// loadCLIConfig читает YAML-конфиг, отсутствие файла — не ошибка.
func loadCLIConfig() (cliConfig, error) {
	cfg := defaultCLIConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(home, ".inspect-api", "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

var (
	flagModel string
	flagOut   string
)

var rootCmd = &cobra.Command{
	Use:   "detect [image]...",
	Short: "Detect masonry cracks and moisture on inspection photos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Gemini model ID (overrides config)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "Optional output JSON file path")
}

// detectOutput результат по одному файлу
type detectOutput struct {
	Image      string                     `json:"image"`
	Detections []entity.RenderedDetection `json:"detections"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	detector, err := vision.NewGeminiDetector(ctx, apiKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("create detector: %w", err)
	}
	defer detector.Close()

	service := app.NewDetectionService(detector)

	results := make([]detectOutput, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read image %s: %w", path, err)
		}

		out, err := service.Inspect(ctx, data, cfg.Canvas.Width, cfg.Canvas.Height)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", path, err)
		}

		results = append(results, detectOutput{
			Image:      path,
			Detections: out.Detections,
		})
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(payload))

	if flagOut != "" {
		if err := os.WriteFile(flagOut, append(payload, '\n'), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Printf("Results written to %s", flagOut)
	}

	return nil
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
