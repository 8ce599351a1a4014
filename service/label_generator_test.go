package service

import (
	"testing"

	"churnsynth/models"
	"churnsynth/sampling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChurnTarget(t *testing.T) {
	tests := []struct {
		customers int
		rate      float64
		want      int
	}{
		{100, 0.20, 20},
		{10000, 0.15, 1500},
		{7, 0.5, 4},
		{3, 0, 0},
		{3, 1, 3},
		{1, 0.49, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChurnTarget(tt.customers, tt.rate), "customers=%d rate=%v", tt.customers, tt.rate)
	}
}

func TestLabelGenerator_ExactChurnCount(t *testing.T) {
	window := testWindow()
	for _, rate := range []float64{0, 0.05, 0.15, 0.2, 1} {
		s := sampling.New(42)
		customers := NewCustomerGenerator(s).Generate(1000)
		labels := NewLabelGenerator(s, window).Generate(customers, rate)
		require.Len(t, labels, 1000)

		churned := 0
		for _, l := range labels {
			if l.Churned {
				churned++
			}
		}
		assert.Equal(t, ChurnTarget(1000, rate), churned, "rate=%v", rate)
	}
}

func TestLabelGenerator_ChurnDatesAndReasons(t *testing.T) {
	window := testWindow()
	s := sampling.New(3)
	customers := NewCustomerGenerator(s).Generate(2000)
	labels := NewLabelGenerator(s, window).Generate(customers, 0.3)

	for i, l := range labels {
		assert.Equal(t, customers[i].CustomerID, l.CustomerID)
		if !l.Churned {
			assert.Nil(t, l.ChurnDate)
			assert.Nil(t, l.ChurnReason)
			continue
		}
		require.NotNil(t, l.ChurnDate)
		require.NotNil(t, l.ChurnReason)
		assert.False(t, l.ChurnDate.Before(window.ChurnStart()), "churn date %s before churn window", l.ChurnDate)
		assert.False(t, l.ChurnDate.After(window.End), "churn date %s after window end", l.ChurnDate)
		assert.Contains(t, []models.ChurnReason{
			models.ChurnReasonPrice, models.ChurnReasonService, models.ChurnReasonFinancial,
			models.ChurnReasonCompetition, models.ChurnReasonLifeChange, models.ChurnReasonUnknown,
		}, *l.ChurnReason)
	}
}
