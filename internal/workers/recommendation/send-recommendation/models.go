// internal/workers/recommendation/send-recommendation/models.go
package sendrecommendation

type Input struct {
	UserID          string   `json:"userId"`
	Recommendations []string `json:"recommendations"`
}

type Output struct {
	// Selected is the stripped recommendation stored as the user's most recent one.
	Selected     string `json:"selected"`
	StateUpdated bool   `json:"stateUpdated"`
	EmailSent    bool   `json:"emailSent"`
	MessageID    string `json:"messageId,omitempty"`
}

const DefaultSubject = "Recommended Restaurants"
