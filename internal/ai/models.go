package ai

import "time"

// BotConfig is the persisted bot configuration. A single row (id=1) replaces
// ad-hoc process-global settings so every instance sees the same config.
type BotConfig struct {
	ID                  int       `json:"-" gorm:"primaryKey;default:1"`
	IsEnabled           bool      `json:"is_enabled" gorm:"not null;default:true"`
	MaxSessionDuration  int       `json:"max_session_duration" gorm:"not null;default:60"`
	ConfidenceThreshold float64   `json:"confidence_threshold" gorm:"type:decimal(4,2);not null;default:0.5"`
	FallbackMessage     string    `json:"fallback_message" gorm:"size:512"`
	AdminNotifications  bool      `json:"admin_notifications" gorm:"not null;default:true"`
	AutoEscalation      bool      `json:"auto_escalation" gorm:"not null;default:false"`
	EscalationThreshold int       `json:"escalation_threshold" gorm:"not null;default:3"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (BotConfig) TableName() string {
	return "bot_config"
}

// DefaultFallbackMessage seeds the config row
const DefaultFallbackMessage = "I'm sorry, I didn't understand that. Could you please rephrase your question?"

// Request/Response Models

// ChatRequest represents one message to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Entity is a value the assistant extracted from the message
type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// ChatResponse represents the assistant's reply
type ChatResponse struct {
	Message          string   `json:"message"`
	Intent           string   `json:"intent"`
	Confidence       float64  `json:"confidence"`
	Entities         []Entity `json:"entities"`
	SuggestedActions []string `json:"suggested_actions"`
}

// UpdateBotConfigRequest carries optional config fields; nil means unchanged
type UpdateBotConfigRequest struct {
	IsEnabled           *bool    `json:"is_enabled"`
	MaxSessionDuration  *int     `json:"max_session_duration"`
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
	FallbackMessage     *string  `json:"fallback_message"`
	AdminNotifications  *bool    `json:"admin_notifications"`
	AutoEscalation      *bool    `json:"auto_escalation"`
	EscalationThreshold *int     `json:"escalation_threshold"`
}

// SuggestCategoryRequest asks for title suggestions for a description
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// SuggestCategoryResponse carries up to three suggested titles
type SuggestCategoryResponse struct {
	Suggestions []string `json:"suggestions"`
	Confidence  float64  `json:"confidence"`
}

// IntentCount is one entry of the top-intents breakdown
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

// BotAnalyticsResponse is the admin bot usage report
type BotAnalyticsResponse struct {
	TotalSessions      int64         `json:"totalSessions"`
	ActiveSessions     int64         `json:"activeSessions"`
	AvgSessionDuration string        `json:"avgSessionDuration"`
	TopIntents         []IntentCount `json:"topIntents"`
	SatisfactionScore  int           `json:"satisfactionScore"`
	ResolutionRate     int           `json:"resolutionRate"`
}

// InsightsOverview summarizes operational totals for the insights report
type InsightsOverview struct {
	TotalComplaints     int64   `json:"total_complaints"`
	ResolvedComplaints  int64   `json:"resolved_complaints"`
	PendingComplaints   int64   `json:"pending_complaints"`
	ActiveResources     int64   `json:"active_resources"`
	BusyResources       int64   `json:"busy_resources"`
	ResourceUtilization float64 `json:"resource_utilization"`
}

// InsightsResponse is the admin operational insights report
type InsightsResponse struct {
	Overview        InsightsOverview `json:"overview"`
	Insights        []string         `json:"insights"`
	Recommendations []string         `json:"recommendations"`
}
