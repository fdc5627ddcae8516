package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthtrack/llm"
	"healthtrack/models"

	"go.uber.org/zap"
)

const (
	defaultAITimeout = 30 * time.Second
	aiTemperature    = 0.3

	analyzeMealTokens  = 500
	mealPlanTokens     = 1500
	insightsTokens     = 800
	improvementsTokens = 600

	defaultPlanDays = 7
	maxPlanDays     = 14
)

var errAIUnavailable = errors.New("text generation unavailable")

// outcome records whether an AI operation produced its value from the model
// or from the fallback, and why.
type outcome[T any] struct {
	value    T
	fallback bool
	reason   error
}

func success[T any](v T) outcome[T] { return outcome[T]{value: v} }

func fallbackTo[T any](v T, reason error) outcome[T] {
	return outcome[T]{value: v, fallback: true, reason: reason}
}

// NutritionAnalyzer turns free text into structured nutrition data with the
// help of an optional text generator. Every exported method returns a
// well-formed value; failures are replaced by deterministic fallbacks.
type NutritionAnalyzer struct {
	gen     llm.Generator
	timeout time.Duration
	log     *zap.Logger
}

// NewNutritionAnalyzer accepts a nil generator, which puts the analyzer in
// fallback-only mode.
func NewNutritionAnalyzer(gen llm.Generator, timeout time.Duration, log *zap.Logger) *NutritionAnalyzer {
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NutritionAnalyzer{gen: gen, timeout: timeout, log: log}
}

func (a *NutritionAnalyzer) Available() bool { return a.gen != nil }

func (a *NutritionAnalyzer) AnalyzeMeal(ctx context.Context, description, portionSize string) models.NutritionInfo {
	info, _ := a.AnalyzeMealWithSource(ctx, description, portionSize)
	return info
}

// AnalyzeMealWithSource also reports whether the result came from the model.
func (a *NutritionAnalyzer) AnalyzeMealWithSource(ctx context.Context, description, portionSize string) (models.NutritionInfo, bool) {
	if !models.IsPortionSize(portionSize) {
		portionSize = models.PortionNormal
	}
	out := generateTyped(ctx, a, mealAnalysisPrompt(description, portionSize), analyzeMealTokens,
		parseNutritionInfo,
		func() models.NutritionInfo { return fallbackMealAnalysis(description) })
	a.report("analyze_meal", out.fallback, out.reason)
	return out.value, !out.fallback
}

func (a *NutritionAnalyzer) GenerateMealPlan(ctx context.Context, profile models.UserProfile, preferences []string, calorieTarget, days int) models.MealPlan {
	if days <= 0 {
		days = defaultPlanDays
	}
	if days > maxPlanDays {
		days = maxPlanDays
	}
	if calorieTarget <= 0 {
		calorieTarget = profile.EffectiveCalorieTarget()
	}
	out := generateTyped(ctx, a, mealPlanPrompt(profile, preferences, calorieTarget, days), mealPlanTokens,
		parseMealPlan,
		func() models.MealPlan { return fallbackMealPlan(calorieTarget, days) })
	a.report("meal_plan", out.fallback, out.reason)
	return out.value
}

func (a *NutritionAnalyzer) GetHealthInsights(ctx context.Context, history map[string]models.DailyMetrics, goals []string) models.Insights {
	ins, _ := a.GetHealthInsightsWithSource(ctx, history, goals)
	return ins
}

func (a *NutritionAnalyzer) GetHealthInsightsWithSource(ctx context.Context, history map[string]models.DailyMetrics, goals []string) (models.Insights, bool) {
	out := generateTyped(ctx, a, insightsPrompt(history, goals), insightsTokens,
		parseInsights,
		fallbackInsights)
	a.report("health_insights", out.fallback, out.reason)
	return out.value, !out.fallback
}

func (a *NutritionAnalyzer) SuggestMealImprovements(ctx context.Context, description string, goals []string) models.Improvements {
	out := generateTyped(ctx, a, improvementsPrompt(description, goals), improvementsTokens,
		parseImprovements,
		func() models.Improvements { return fallbackImprovements(description) })
	a.report("meal_improvements", out.fallback, out.reason)
	return out.value
}

func generateTyped[T any](ctx context.Context, a *NutritionAnalyzer, prompt string, maxTokens int, parse func(string) (T, error), fallback func() T) outcome[T] {
	if a.gen == nil {
		return fallbackTo(fallback(), errAIUnavailable)
	}
	text, err := a.generate(ctx, prompt, maxTokens)
	if err != nil {
		return fallbackTo(fallback(), fmt.Errorf("generate: %w", err))
	}
	v, err := parse(text)
	if err != nil {
		return fallbackTo(fallback(), fmt.Errorf("parse: %w", err))
	}
	return success(v)
}

// generate bounds the call by the analyzer timeout and turns a panicking
// backend into an ordinary error.
func (a *NutritionAnalyzer) generate(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	text, err = a.gen.Generate(ctx, prompt, maxTokens, aiTemperature)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	return text, err
}

func (a *NutritionAnalyzer) report(op string, fellBack bool, reason error) {
	switch {
	case !fellBack:
		a.log.Debug("ai operation succeeded", zap.String("op", op))
	case errors.Is(reason, errAIUnavailable):
		a.log.Debug("ai unavailable, using fallback", zap.String("op", op))
	default:
		a.log.Warn("ai operation failed, using fallback", zap.String("op", op), zap.Error(reason))
	}
}
