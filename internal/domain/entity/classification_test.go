package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapClassificationCanonicalLabels(t *testing.T) {
	cases := []struct {
		label    string
		category Category
		severity Severity
		color    string
	}{
		{"Categories 0,1&2 (Aesthetic)", CategoryAesthetic, SeverityLow, "#28a745"},
		{"Categories 3&4 (Serviceability)", CategoryServiceability, SeverityMedium, "#ffc107"},
		{"Category 5 (Stability)", CategoryStability, SeverityHigh, "#dc3545"},
	}

	for _, tc := range cases {
		res := MapClassification(tc.label, 0.5)
		require.Equal(t, tc.label, res.RawClass)
		require.Equal(t, tc.category, res.Category)
		require.Equal(t, tc.severity, res.Severity)
		require.Equal(t, tc.color, res.Color)
		require.NotEmpty(t, res.Description)
		require.NotEmpty(t, res.ActionRequired)
	}
}

func TestMapClassificationUnknownLabels(t *testing.T) {
	// Регистр и пробелы не нормализуются: почти-совпадения тоже Unknown.
	labels := []string{
		"",
		"Something else",
		"categories 0,1&2 (aesthetic)",
		"Categories 0,1&2 (Aesthetic) ",
		" Categories 3&4 (Serviceability)",
		"Category 5(Stability)",
	}

	for _, label := range labels {
		res := MapClassification(label, 0.9)
		require.Equal(t, label, res.RawClass)
		require.Equal(t, CategoryUnknown, res.Category)
		require.Equal(t, SeverityUnknown, res.Severity)
		require.Equal(t, "#6c757d", res.Color)
		require.Equal(t, "Classification uncertain", res.Description)
		require.Equal(t, "Manual inspection recommended", res.ActionRequired)
	}
}

func TestMapClassificationConfidenceRounding(t *testing.T) {
	res := MapClassification("Category 5 (Stability)", 0.87654)
	require.Equal(t, 0.877, res.Confidence)

	res = MapClassification("Category 5 (Stability)", 0.0004)
	require.Equal(t, 0.0, res.Confidence)
}

func TestMapClassificationConfidenceOutOfRangePassedThrough(t *testing.T) {
	// Диапазон [0,1] не навязывается маппером
	res := MapClassification("unknown", -0.25)
	require.Equal(t, -0.25, res.Confidence)

	res = MapClassification("unknown", 1.5)
	require.Equal(t, 1.5, res.Confidence)
}
