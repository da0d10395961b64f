package brain

import "xpresabot/app/service/knowledge"

// Decision is the outcome of one selector run. Silent means the bot has
// nothing trustworthy to say and a human should take over; Product is the
// product now in context, to be threaded back in on the next turn.
type Decision struct {
	Silent  bool
	Reply   string
	Source  string
	Product *knowledge.Product
}

type candidate struct {
	entry knowledge.Entry
	score int
}
