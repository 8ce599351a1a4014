package service

import (
	"context"
	"testing"
	"time"

	"churnsynth/models"

	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testParams(customers int, churnRate float64) models.GenerationParams {
	return models.GenerationParams{
		Customers: customers,
		ChurnRate: churnRate,
		StartDate: day(2022, time.January, 1),
		EndDate:   day(2024, time.January, 1),
		Seed:      42,
	}
}

func testWindow() models.ObservationWindow {
	return testParams(1, 0).Window()
}

func generateDataset(t *testing.T, customers int, churnRate float64) *models.Dataset {
	t.Helper()
	ds, err := NewPipeline(nil).Generate(context.Background(), testParams(customers, churnRate))
	require.NoError(t, err)
	return ds
}
