package container

import (
	app "inspect-api/internal/application"
	"inspect-api/internal/domain/port"
)

type Container struct {
	ClassificationService *app.ClassificationService
	DetectionService      *app.DetectionService
	DemoService           *app.DemoService
}

func New(classifier port.CrackClassifier, detector port.DefectDetector, demoRepo port.DemoImageRepository) *Container {
	return &Container{
		ClassificationService: app.NewClassificationService(classifier),
		DetectionService:      app.NewDetectionService(detector),
		DemoService:           app.NewDemoService(demoRepo),
	}
}
