// posthog_client.go wraps posthog.Client so analytics can stay switched off
// (no API key) without nil checks at every call site.
package utils

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is the PostHog EU cloud ingestion endpoint.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper forwards API and ledger events to PostHog.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient creates a wrapper. An empty apiKey yields a wrapper
// that silently drops every event.
func InitializePosthogClient(apiKey string, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return NewPosthogClientWrapper(client, logger)
}

// NewPosthogClientWrapper wraps an existing client.
func NewPosthogClientWrapper(client posthog.Client, logger *slog.Logger) *PosthogClientWrapper {
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

func (w *PosthogClientWrapper) Enqueue(distinctId string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctId), slog.String("event", event))
	}
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctId,
		Event:      event,
		Properties: properties,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Publish mirrors a committed ledger activity into PostHog. The acting staff
// member is the distinct id.
func (w *PosthogClientWrapper) Publish(activity domain.Activity) {
	if !w.IsInitialized() {
		return
	}
	props := map[string]any{
		"activity_id": activity.ActivityID,
		"entity_id":   activity.EntityID,
		"message":     activity.Message,
	}
	if activity.StudentID != "" {
		props["student_id"] = activity.StudentID
	}
	if activity.TeacherID != "" {
		props["teacher_id"] = activity.TeacherID
	}
	if activity.Amount != nil {
		props["amount"] = activity.Amount.String()
	}
	distinctID := activity.CreatedBy
	if distinctID == "" {
		distinctID = domain.SystemActor
	}
	w.Enqueue(distinctID, "ledger_"+strings.ToLower(string(activity.Kind)), props)
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to flush posthog client", slog.String("error", err.Error()))
	}
}
