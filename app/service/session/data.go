package session

import "xpresabot/app/service/knowledge"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Data is everything remembered about one subscriber between turns:
// the recent exchange and the last product the conversation was about.
type Data struct {
	Turns       []Turn             `json:"turns"`
	LastProduct *knowledge.Product `json:"last_product,omitempty"`
}
