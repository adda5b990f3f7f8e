package entity

// DemoImage демо-изображение для фронтенда
type DemoImage struct {
	Name string // имя файла без расширения
	JPEG []byte // содержимое, перекодированное в JPEG
}
