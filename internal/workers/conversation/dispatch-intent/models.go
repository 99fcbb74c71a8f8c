package dispatchintent

// Event is the Lex V2 code-hook payload the dispatcher receives.
type Event struct {
	SessionID        string           `json:"sessionId"`
	InputTranscript  string           `json:"inputTranscript,omitempty"`
	InvocationSource string           `json:"invocationSource,omitempty"`
	Interpretations  []Interpretation `json:"interpretations"`
	SessionState     SessionState     `json:"sessionState"`
}

type Interpretation struct {
	Intent Intent `json:"intent"`
}

type Intent struct {
	Name  string           `json:"name"`
	Slots map[string]*Slot `json:"slots"`
	State string           `json:"state,omitempty"`
}

// Slot is null in the payload until the user fills it.
type Slot struct {
	Value *SlotValue `json:"value,omitempty"`
}

type SlotValue struct {
	OriginalValue    string   `json:"originalValue,omitempty"`
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

type SessionState struct {
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            *Intent           `json:"intent,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Response is the dialog action returned to Lex.
type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages"`
}

const (
	IntentGreeting          = "GreetingIntent"
	IntentThankYou          = "ThankYouIntent"
	IntentDiningSuggestions = "DiningSuggestionsIntent"
)

const (
	ActionElicitSlot = "ElicitSlot"
	ActionClose      = "Close"
)

const (
	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
)

const (
	SlotLocation   = "Location"
	SlotCuisine    = "Cuisine"
	SlotDiningTime = "DiningTime"
	SlotNumPeople  = "NumPeople"
	SlotEmail      = "Email"
)

const DefaultSessionID = "default-session"

const (
	GreetingMessage = "Hi there! How can I assist you with finding a restaurant today?"
	ThankYouMessage = "You're very welcome! Hope you have a great meal."
	FallbackMessage = "Sorry, I'm not sure how to assist with that request at the moment."
)

// RequiredSlot pairs a slot with the question that elicits it.
type RequiredSlot struct {
	Name   string
	Prompt string
}

// RequiredSlots lists the dining slots in elicitation order.
var RequiredSlots = []RequiredSlot{
	{SlotLocation, "Which city would you like to dine in?"},
	{SlotCuisine, "What kind of cuisine are you in the mood for?"},
	{SlotDiningTime, "What time do you plan to have your meal?"},
	{SlotNumPeople, "How many people will be joining you?"},
	{SlotEmail, "Can you provide your email so I can send the recommendations?"},
}
