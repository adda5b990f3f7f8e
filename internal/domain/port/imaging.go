package port

// ImageProcessor интерфейс подготовки изображений для пайплайнов и выдачи
type ImageProcessor interface {
	// ResizeJPEG приводит изображение к заданному размеру и кодирует в JPEG.
	ResizeJPEG(data []byte, width, height int) ([]byte, error)

	// ReencodeJPEG перекодирует изображение в JPEG без изменения размера.
	ReencodeJPEG(data []byte) ([]byte, error)
}
