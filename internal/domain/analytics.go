package domain

import "time"

type EventType string

const (
	EventSessionStart      EventType = "session_start"
	EventTabSwitch         EventType = "tab_switch"
	EventSectionRegenerate EventType = "section_regenerate"
	EventProfileSaved      EventType = "profile_saved"
	EventPracticeStart     EventType = "practice_start"
	EventPracticeStop      EventType = "practice_stop"
)

// AnalyticsEvent - событие для аналитики (аналог таблицы analytics_events)
type AnalyticsEvent struct {
	UserID    UserID    `json:"user_id"`
	SessionID string    `json:"session_id"`
	EventType EventType `json:"event_type"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
