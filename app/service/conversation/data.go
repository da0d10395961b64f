package conversation

import "xpresabot/app/service/session"

const (
	ActionSendMessage = "send_message"
	ActionNone        = "none"

	ReasonBotDisabled   = "bot_disabled"
	ReasonLowConfidence = "low_confidence_or_repeat"
)

// Inbound is one customer message as delivered by the chat platform.
// LastMessages, when present, is the platform's own view of the recent
// exchange and wins over the stored session history.
type Inbound struct {
	SubscriberID string
	Text         string
	LastMessages []session.Turn
}

// Outcome tells the delivery channel what to do: send Message, or do
// nothing and leave the conversation to a human.
type Outcome struct {
	Action  string
	Reason  string
	Message string
	Source  string
}
