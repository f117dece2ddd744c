package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

func TestCallCost(t *testing.T) {
	tests := []struct {
		model   string
		in, out int
		want    float64
	}{
		{"gemini-2.5-flash", 1000, 500, 0.000225},
		{"gemini-2.0-flash", 1000, 1000, 0.0005},
		{"gemini-1.5-flash", 0, 1000, 0.0003},
		{"gemini-1.5-pro", 2000, 1000, 0.0075},
		{"unknown-model", 1000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.CallCost(tt.model, tt.in, tt.out), 1e-12)
		})
	}
}

func TestUsageSummary(t *testing.T) {
	svc := service.NewUsageService(testhelpers.SetupSQLiteDB(t))
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.UsageSummary{}, *empty)

	_, err = svc.TrackCall(ctx, "gemini-2.5-flash", 1000, 500)
	require.NoError(t, err)
	_, err = svc.TrackCall(ctx, "gemini-1.5-pro", 2000, 1000)
	require.NoError(t, err)
	failed, err := svc.Record(ctx, types.UsageReport{Model: "gemini-2.5-flash", Status: model.UsageFailed, Error: "quota"})
	require.NoError(t, err)
	assert.Equal(t, model.UsageFailed, failed.Status)
	_, err = svc.Record(ctx, types.UsageReport{Model: "mystery-model", InputTokens: 100, OutputTokens: 100})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.TotalCalls)
	assert.Equal(t, int64(3100), sum.TotalInputTokens)
	assert.Equal(t, int64(1600), sum.TotalOutputTokens)
	assert.Equal(t, int64(4700), sum.TotalTokens)
	assert.InDelta(t, 0.007725, sum.TotalCostUSD, 1e-9)
	assert.InDelta(t, 0.002575, sum.AverageCostPerCall, 1e-9)
	assert.Equal(t, int64(1567), sum.AverageTokensPerCall)

	recent, err := svc.RecentCalls(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "mystery-model", recent[0].Model)
	assert.Zero(t, recent[0].CostUSD)
	assert.Equal(t, "gemini-1.5-pro", recent[1].Model)
	assert.InDelta(t, 0.0075, recent[1].CostUSD, 1e-12)
}
