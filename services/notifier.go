package services

import (
	"context"
	"strings"

	"healthtrack/models"

	"go.uber.org/zap"
)

// Notifier delivers day updates to open sockets and warning digests to
// mobile devices. Both sinks are optional.
type Notifier struct {
	hub  *RealtimeHub
	push *PushService
	log  *zap.Logger
}

func NewNotifier(hub *RealtimeHub, push *PushService, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, push: push, log: log}
}

func (n *Notifier) DayUpdated(userID uint, view *DayView) {
	if n == nil || n.hub == nil {
		return
	}
	n.hub.Broadcast(userID, map[string]any{
		"kind": "day.updated",
		"day":  view,
	})
}

// PushWarnings sends one notification listing the day's warnings. Days
// without warnings send nothing.
func (n *Notifier) PushWarnings(ctx context.Context, userID uint, day string, suggestions []models.Suggestion) bool {
	if n == nil || n.push == nil {
		return false
	}
	var msgs []string
	for _, s := range suggestions {
		if s.Severity == models.SeverityWarning {
			msgs = append(msgs, s.Message)
		}
	}
	if len(msgs) == 0 {
		return false
	}
	sent := n.push.PushToUser(ctx, userID, "Today's health check", strings.Join(msgs, " "), map[string]string{
		"type": "daily_digest",
		"day":  day,
	})
	n.log.Debug("warning digest pushed", zap.Uint("user_id", userID), zap.Int("devices", sent))
	return sent > 0
}
