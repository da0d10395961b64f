package brain

import (
	"fmt"
	"strconv"
	"strings"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/session"
	"xpresabot/app/util/textnorm"

	"github.com/elliotchance/pie/v2"
)

const (
	clarifyProductReply  = "Claro, ¿de qué producto te gustaría saber el precio?"
	freeShippingFallback = "El envío es gratis a partir de 7 piezas."
	sourceFreeShipping   = "Cerebro: Envío Gratis"
	sourceTrust          = "Cerebro: Seguridad"
)

// Select decides the bot's reply to one user message. It is a pure function
// of its arguments: knowledge and catalog are read-only snapshots, history is
// only scanned for the anti-repetition guard, and the product context the
// caller wants carried across turns comes in as lastContext and goes back
// out as Decision.Product.
func Select(query string, history []session.Turn, entries []knowledge.Entry, products []knowledge.Product, lastContext *knowledge.Product) Decision {
	cleanQuery := textnorm.Normalize(query)

	detected := detectProduct(cleanQuery, products, lastContext)

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.Content == "" {
			continue
		}

		candidates = append(candidates, candidate{entry: entry, score: scoreEntry(cleanQuery, entry)})
	}

	candidates = pie.Filter(candidates, func(c candidate) bool {
		return c.score > 0
	})
	candidates = pie.SortStableUsing(candidates, func(a, b candidate) bool {
		return a.score > b.score
	})

	decision := compose(cleanQuery, candidates, entries, detected)
	decision.Product = detected

	if !decision.Silent && alreadySaid(history, decision.Reply) {
		decision = Decision{Silent: true, Product: detected}
	}

	return decision
}

// compose picks the reply in priority order: strong knowledge hit, the
// free-shipping shortcut, a catalog price quote, a weak knowledge hit,
// silence.
func compose(cleanQuery string, candidates []candidate, entries []knowledge.Entry, detected *knowledge.Product) Decision {
	var best *candidate
	if len(candidates) > 0 {
		best = &candidates[0]
	}

	if best != nil && best.score >= directAnswerScore {
		return Decision{Reply: best.entry.Content, Source: brainSource(best.entry.Key, true)}
	}

	if strings.Contains(cleanQuery, "envio") && containsAny(cleanQuery, []string{"costo", "precio", "cuanto", "gratis"}) {
		reply := freeShippingFallback
		for _, entry := range entries {
			if entry.Key == keyFreeShipping && entry.Content != "" {
				reply = entry.Content
				break
			}
		}

		return Decision{Reply: reply, Source: sourceFreeShipping}
	}

	if containsAny(cleanQuery, []string{"precio", "cuanto", "costo", "cotiz"}) {
		if detected != nil {
			return Decision{Reply: priceQuote(detected), Source: "Catálogo: " + detected.Name}
		}

		return Decision{Reply: clarifyProductReply}
	}

	if best != nil {
		return Decision{Reply: best.entry.Content, Source: brainSource(best.entry.Key, false)}
	}

	return Decision{Silent: true}
}

// brainSource labels where a reply came from. The "Seguridad" alias is
// reserved for strong hits; a weak hit on the trust entry reports its key
// like any other.
func brainSource(key string, strong bool) string {
	switch {
	case strong && key == keyTrust:
		return sourceTrust
	case key == "":
		return "Cerebro: FAQ"
	default:
		return "Cerebro: " + key
	}
}

// priceQuote always quotes the second tier: the first bulk price is the
// hook, volume prices come later in the conversation.
func priceQuote(p *knowledge.Product) string {
	price := strconv.FormatFloat(p.Price2, 'f', -1, 64)

	return fmt.Sprintf("El precio del %s es de $%s pesos (en pedidos de %d-%d %ss). Tenemos otros precios para volumen, ¿te gustaría conocerlos?",
		p.Name, price, p.Qty1+1, p.Qty2, p.Unit)
}

// alreadySaid reports whether the bot already sent exactly this reply in
// the current session. Repeating ourselves means the customer is going in
// circles, so we escalate instead.
func alreadySaid(history []session.Turn, reply string) bool {
	for _, turn := range history {
		if turn.Role == session.RoleBot && turn.Content == reply {
			return true
		}
	}

	return false
}
