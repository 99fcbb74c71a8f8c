// internal/workers/conversation/chat-frontend/models.go
package chatfrontend

const MessageTypeUnstructured = "unstructured"

// Input is the chat request posted by the web client.
type Input struct {
	Messages []InboundMessage `json:"messages"`
}

type InboundMessage struct {
	Type         string              `json:"type"`
	Unstructured InboundUnstructured `json:"unstructured"`
}

type InboundUnstructured struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// Output is the chat reply. It always carries exactly one message.
type Output struct {
	Messages []OutboundMessage `json:"messages"`
}

type OutboundMessage struct {
	Type         string               `json:"type"`
	Unstructured OutboundUnstructured `json:"unstructured"`
}

type OutboundUnstructured struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

const (
	NoMessageError        = "No message content was found in the request."
	NotCaughtMessage      = "Apologies, I couldn't quite catch that."
	ServiceTroubleMessage = "Sorry, I'm having some difficulty understanding you at the moment."
	LastSearchAddendum    = "\n\nBy the way, your last search suggests this option: "

	GreetingIntent = "GreetingIntent"
)
