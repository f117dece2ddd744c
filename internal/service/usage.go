package service

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// Price is the USD cost of one token.
type Price struct {
	Input  float64
	Output float64
}

// Pricing lists the per-token prices of the supported Gemini models.
var Pricing = map[string]Price{
	"gemini-2.5-flash": {Input: 0.000000075, Output: 0.0000003},
	"gemini-2.0-flash": {Input: 0.0000001, Output: 0.0000004},
	"gemini-1.5-flash": {Input: 0.000000075, Output: 0.0000003},
	"gemini-1.5-pro":   {Input: 0.00000125, Output: 0.000005},
}

// CallCost prices a call. Unknown models cost nothing.
func CallCost(modelName string, inputTokens, outputTokens int) float64 {
	p := Pricing[modelName]
	return float64(inputTokens)*p.Input + float64(outputTokens)*p.Output
}

// UsageService records model calls made while extracting recipes.
type UsageService struct {
	db *gorm.DB
}

func NewUsageService(db *gorm.DB) *UsageService {
	return &UsageService{db: db}
}

// Record stores a report sent by the extractor.
func (s *UsageService) Record(ctx context.Context, r types.UsageReport) (*model.LLMUsage, error) {
	if r.Status == model.UsageFailed {
		return s.TrackFailedCall(ctx, r.Model, r.Error)
	}
	return s.TrackCall(ctx, r.Model, r.InputTokens, r.OutputTokens)
}

// TrackCall stores a successful call with its cost.
func (s *UsageService) TrackCall(ctx context.Context, modelName string, inputTokens, outputTokens int) (*model.LLMUsage, error) {
	u := &model.LLMUsage{
		Model:        modelName,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      CallCost(modelName, inputTokens, outputTokens),
		Status:       model.UsageSuccess,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to record LLM usage: %w", err)
	}
	metrics.TrackLLMCall(modelName, inputTokens, outputTokens, metrics.StatusSuccess)

	logger.For("llm_metrics").WithFields(logrus.Fields{
		"model":         modelName,
		"input_tokens":  inputTokens,
		"output_tokens": outputTokens,
		"cost_usd":      fmt.Sprintf("%.8f", u.CostUSD),
	}).Info("LLM API call tracked")
	return u, nil
}

// TrackFailedCall stores a call that did not complete. Failed calls are
// kept for auditing but are not part of the summary.
func (s *UsageService) TrackFailedCall(ctx context.Context, modelName, errMsg string) (*model.LLMUsage, error) {
	u := &model.LLMUsage{
		Model:  modelName,
		Status: model.UsageFailed,
		Error:  errMsg,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to record LLM usage: %w", err)
	}
	metrics.TrackLLMCall(modelName, 0, 0, metrics.StatusFailed)
	logger.For("llm_metrics").WithField("model", modelName).WithField("error", errMsg).Warn("LLM API call failed")
	return u, nil
}

// Summary totals the successful calls.
func (s *UsageService) Summary(ctx context.Context) (*types.UsageSummary, error) {
	var row struct {
		TotalCalls        int64
		TotalInputTokens  int64
		TotalOutputTokens int64
		TotalCostUSD      float64
	}
	err := s.db.WithContext(ctx).Model(&model.LLMUsage{}).
		Select("COUNT(*) AS total_calls, " +
			"COALESCE(SUM(input_tokens), 0) AS total_input_tokens, " +
			"COALESCE(SUM(output_tokens), 0) AS total_output_tokens, " +
			"COALESCE(SUM(cost_usd), 0) AS total_cost_usd").
		Where("status = ?", model.UsageSuccess).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarise LLM usage: %w", err)
	}

	sum := &types.UsageSummary{
		TotalCalls:        row.TotalCalls,
		TotalInputTokens:  row.TotalInputTokens,
		TotalOutputTokens: row.TotalOutputTokens,
		TotalTokens:       row.TotalInputTokens + row.TotalOutputTokens,
		TotalCostUSD:      roundPlaces(row.TotalCostUSD, 6),
	}
	if row.TotalCalls > 0 {
		sum.AverageCostPerCall = roundPlaces(row.TotalCostUSD/float64(row.TotalCalls), 6)
		sum.AverageTokensPerCall = int64(math.RoundToEven(float64(sum.TotalTokens) / float64(row.TotalCalls)))
	}
	return sum, nil
}

// RecentCalls returns up to limit successful calls, newest first.
func (s *UsageService) RecentCalls(ctx context.Context, limit int) ([]model.LLMUsage, error) {
	var calls []model.LLMUsage
	err := s.db.WithContext(ctx).
		Where("status = ?", model.UsageSuccess).
		Order("created_at DESC").
		Limit(limit).
		Find(&calls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list LLM calls: %w", err)
	}
	for i := range calls {
		calls[i].CostUSD = roundPlaces(calls[i].CostUSD, 8)
	}
	return calls, nil
}

func roundPlaces(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
