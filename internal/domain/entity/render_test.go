package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderEmptyResult(t *testing.T) {
	var r DetectionResult

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestRenderIDOrdering(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{0, 0, 100, 100}, Category: 0, Classification: "Aesthetic"},
			{BBox: []int{200, 200, 300, 300}, Category: 5, Classification: "Stability"},
		},
		Moisture: []MoistureFinding{
			{BBox: []int{400, 400, 500, 500}, MoistureType: "RD"},
		},
	}

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Сначала трещины в исходном порядке, затем влага, нумерация с единицы
	require.Equal(t, 1, out[0].ID)
	require.Equal(t, TypeCrack, out[0].Type)
	require.Equal(t, 2, out[1].ID)
	require.Equal(t, TypeCrack, out[1].Type)
	require.Equal(t, 3, out[2].ID)
	require.Equal(t, TypeMoisture, out[2].Type)
}

func TestRenderBoundaryCoordinates(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{0, 0, 1000, 1000}, Category: 1},
		},
	}

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, PixelBox{X1: 0, Y1: 0, X2: 512, Y2: 512}, out[0].BBox)
}

func TestRenderClampsOutOfRangeCoordinates(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{-10, 1001, 2000, 1500}, Category: 2},
		},
	}

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.Len(t, out, 1)

	box := out[0].BBox
	for _, coord := range []int{box.X1, box.Y1, box.X2, box.Y2} {
		require.GreaterOrEqual(t, coord, 0)
		require.LessOrEqual(t, coord, 512)
	}
	require.Equal(t, 0, box.Y1)
	require.Equal(t, 512, box.X1)
	require.Equal(t, 512, box.Y2)
	require.Equal(t, 512, box.X2)
}

func TestRenderUnknownCategoryFallbacks(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{0, 0, 10, 10}, Category: 99},
		},
		Moisture: []MoistureFinding{
			{BBox: []int{0, 0, 10, 10}, MoistureType: "XX"},
		},
	}

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Неизвестный код трещины падает в категорию 1 (Fine)
	require.Equal(t, DamageCategory(1), out[0].Category)
	// Неизвестный тип влаги падает в C (Condensation)
	require.Equal(t, MoistureCategory("C"), out[1].Category)
	require.Equal(t, "Condensation", out[1].Category.Name)
}

func TestRenderRoundTrip(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{100, 200, 300, 400}, Category: 4, Classification: "Serviceability"},
		},
	}

	out, err := r.Render(512, 512)
	require.NoError(t, err)
	require.Len(t, out, 1)

	d := out[0]
	require.Equal(t, 1, d.ID)
	require.Equal(t, TypeCrack, d.Type)
	// Масштабирование с усечением: 200*512/1000=102, 100*512/1000=51,
	// 400*512/1000=204, 300*512/1000=153
	require.Equal(t, PixelBox{X1: 102, Y1: 51, X2: 204, Y2: 153}, d.BBox)
	require.Equal(t, "Serviceability (>15 <25mm)", d.Category.Name)
	require.Equal(t, "4", d.Category.Code)
	require.Equal(t, 0.95, d.Confidence)
}

func TestRenderMalformedBBox(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{1, 2, 3}, Category: 1},
		},
	}

	_, err := r.Render(512, 512)
	require.ErrorIs(t, err, ErrMalformedBBox)

	r = DetectionResult{
		Moisture: []MoistureFinding{
			{BBox: nil, MoistureType: "RD"},
		},
	}

	_, err = r.Render(512, 512)
	require.ErrorIs(t, err, ErrMalformedBBox)
}

func TestRenderInvalidCanvas(t *testing.T) {
	var r DetectionResult

	_, err := r.Render(0, 512)
	require.ErrorIs(t, err, ErrInvalidCanvas)

	_, err = r.Render(512, -1)
	require.ErrorIs(t, err, ErrInvalidCanvas)
}

func TestRenderNonSquareCanvas(t *testing.T) {
	r := DetectionResult{
		Damage: []DamageFinding{
			{BBox: []int{500, 500, 1000, 1000}, Category: 3},
		},
	}

	// Ширина и высота применяются к своим осям
	out, err := r.Render(1000, 200)
	require.NoError(t, err)
	require.Equal(t, PixelBox{X1: 500, Y1: 100, X2: 1000, Y2: 200}, out[0].BBox)
}

func TestClassificationForCategory(t *testing.T) {
	require.Equal(t, CategoryAesthetic, ClassificationForCategory(0))
	require.Equal(t, CategoryAesthetic, ClassificationForCategory(2))
	require.Equal(t, CategoryServiceability, ClassificationForCategory(3))
	require.Equal(t, CategoryServiceability, ClassificationForCategory(4))
	require.Equal(t, CategoryStability, ClassificationForCategory(5))
	require.Equal(t, CategoryUnknown, ClassificationForCategory(99))
	require.Equal(t, CategoryUnknown, ClassificationForCategory(-1))
}
