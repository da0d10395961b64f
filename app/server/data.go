package server

type turnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// webhookRequest is the body ManyChat posts on every inbound customer
// message, including its own view of the recent exchange.
type webhookRequest struct {
	UserID       string        `json:"user_id"`
	Content      string        `json:"content"`
	LastMessages []turnPayload `json:"last_messages"`
}

type webhookResponse struct {
	Action  string `json:"action"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type settingsPayload struct {
	BotActive bool `json:"bot_active"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

type errorResponse struct {
	Error string `json:"error"`
}
