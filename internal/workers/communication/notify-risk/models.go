// internal/workers/communication/notify-risk/models.go
package notifyrisk

import "veriportal-engine/internal/engine"

// Notification statuses.
const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

type Input struct {
	Evaluation   engine.ComplianceEvaluation `json:"evaluation"`
	Recipients   []string                    `json:"recipients,omitempty"`
	PhoneNumbers []string                    `json:"phoneNumbers,omitempty"`
	Language     string                      `json:"language,omitempty"` // vi, en or empty for both
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt,omitempty"` // ISO 8601
	Failed         []string `json:"failed,omitempty"` // channel:target pairs that were not delivered
}
