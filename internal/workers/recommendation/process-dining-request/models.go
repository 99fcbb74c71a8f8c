// internal/workers/recommendation/process-dining-request/models.go
package processdiningrequest

// Outcome statuses of one pipeline run.
const (
	StatusNoWork            = "no_work"
	StatusNoRecommendations = "no_recommendations"
	StatusDiscarded         = "discarded"
	StatusProcessed         = "processed"
	StatusFailed            = "failed"
)

type Output struct {
	Status          string   `json:"status"`
	MessageID       string   `json:"messageId,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	ErrorCode       string   `json:"errorCode,omitempty"`
}
