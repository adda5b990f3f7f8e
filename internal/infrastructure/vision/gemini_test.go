package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDetectionResponse(t *testing.T) {
	text := `{
		"damage": [
			{"bbox": [100, 200, 300, 400], "category": 4, "classification": "Serviceability"}
		],
		"moisture": [
			{"bbox": [0, 0, 500, 500], "moisture_type": "RD"}
		]
	}`

	result, err := parseDetectionResponse(text)
	require.NoError(t, err)
	require.Len(t, result.Damage, 1)
	require.Equal(t, []int{100, 200, 300, 400}, result.Damage[0].BBox)
	require.Equal(t, 4, result.Damage[0].Category)
	require.Equal(t, "Serviceability", result.Damage[0].Classification)
	require.Len(t, result.Moisture, 1)
	require.Equal(t, "RD", result.Moisture[0].MoistureType)
}

func TestParseDetectionResponseEmptyLists(t *testing.T) {
	result, err := parseDetectionResponse(`{"damage": [], "moisture": []}`)
	require.NoError(t, err)
	require.Empty(t, result.Damage)
	require.Empty(t, result.Moisture)
}

func TestParseDetectionResponseErrors(t *testing.T) {
	_, err := parseDetectionResponse("")
	require.Error(t, err)

	_, err = parseDetectionResponse("not json at all")
	require.Error(t, err)
}

func TestImageFormat(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	require.Equal(t, "jpeg", imageFormat(jpeg))

	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	require.Equal(t, "png", imageFormat(png))

	// Неопознанное содержимое считаем JPEG: пайплайн сам кодирует в JPEG
	require.Equal(t, "jpeg", imageFormat([]byte("plain text")))
}
