package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"healthtrack/models"
	"healthtrack/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const insightsHistoryLimit = 12

type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type InsightsService struct {
	db         *gorm.DB
	aggregator *DailyAggregator
	analyzer   *NutritionAnalyzer
	users      *UserService
	mailer     MailSender
	log        *zap.Logger
}

// NewInsightsService accepts a nil mailer.
func NewInsightsService(db *gorm.DB, aggregator *DailyAggregator, analyzer *NutritionAnalyzer, users *UserService, mailer MailSender, log *zap.Logger) *InsightsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightsService{db: db, aggregator: aggregator, analyzer: analyzer, users: users, mailer: mailer, log: log}
}

type InsightsResult struct {
	Day      string         `json:"date"`
	Source   string         `json:"source"`
	Insights models.Insights `json:"insights"`
}

// Weekly analyzes the seven days ending at end and stores the result as
// that day's snapshot, replacing an earlier one.
func (s *InsightsService) Weekly(ctx context.Context, userID uint, end string) (*InsightsResult, error) {
	end, err := resolveDay(end)
	if err != nil {
		return nil, err
	}
	start, err := utils.AddDays(end, -(weeklyWindowDays - 1))
	if err != nil {
		return nil, ErrInvalidDay
	}
	aggs, err := s.aggregator.AggregateRange(ctx, userID, start, weeklyWindowDays)
	if err != nil {
		return nil, err
	}
	history := make(map[string]models.DailyMetrics, len(aggs))
	for _, a := range aggs {
		history[a.Date] = a.Metrics()
	}

	profile, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	ins, fromAI := s.analyzer.GetHealthInsightsWithSource(ctx, history, profile.Goals())
	res := &InsightsResult{Day: end, Source: models.SourceFallback, Insights: ins}
	if fromAI {
		res.Source = models.SourceAI
	}

	if err := s.saveSnapshot(ctx, userID, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *InsightsService) saveSnapshot(ctx context.Context, userID uint, res *InsightsResult) error {
	payload, err := json.Marshal(res.Insights)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	snap := models.InsightsSnapshot{UserID: userID, Day: res.Day}
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, res.Day).
		Assign(models.InsightsSnapshot{Source: res.Source, Payload: datatypes.JSON(payload)}).
		FirstOrCreate(&snap).Error
	if err != nil {
		return fmt.Errorf("save insights snapshot: %w", err)
	}
	return nil
}

// History lists stored snapshots, newest first.
func (s *InsightsService) History(ctx context.Context, userID uint) ([]models.InsightsSnapshot, error) {
	var rows []models.InsightsSnapshot
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(insightsHistoryLimit).
		Find(&rows).Error
	return rows, err
}

// WeeklyAndMail runs Weekly and mails the result when the user has an
// email address and a mailer is configured.
func (s *InsightsService) WeeklyAndMail(ctx context.Context, userID uint, end string) error {
	res, err := s.Weekly(ctx, userID, end)
	if err != nil {
		return err
	}
	if s.mailer == nil {
		return nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return nil
	}
	if err := s.mailer.Send(ctx, user.Email, "Your weekly health insights", formatInsightsMail(user.Username, res)); err != nil {
		s.log.Warn("insights mail failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	return nil
}

func formatInsightsMail(username string, res *InsightsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour health score for the week ending %s is %d/10.\n", username, res.Day, res.Insights.OverallScore)
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	section("Strengths", res.Insights.Strengths)
	section("Areas for improvement", res.Insights.AreasForImprovement)
	section("Try this week", res.Insights.Recommendations.Immediate)
	return b.String()
}
