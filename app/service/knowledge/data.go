package knowledge

const (
	CategoryGeneral = "general"
	CategoryFAQ     = "faq"
)

// Entry is one canned answer of the bot knowledge base. Key is a stable
// topic slug ("envio_gratis", "saludo_inicial"), Question is only filled
// for FAQ entries.
type Entry struct {
	Key      string `json:"key" validate:"required"`
	Question string `json:"question,omitempty"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"oneof=general faq"`
	Active   bool   `json:"active"`
}

// Product is one catalog item with five cumulative quantity tiers.
// QtyN is the upper bound of tier N, tier 5 is unbounded above Qty4.
type Product struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price1      float64 `json:"price_1" validate:"gte=0"`
	Price2      float64 `json:"price_2" validate:"gte=0"`
	Price3      float64 `json:"price_3" validate:"gte=0"`
	Price4      float64 `json:"price_4" validate:"gte=0"`
	Price5      float64 `json:"price_5" validate:"gte=0"`
	Qty1        int     `json:"qty_1"`
	Qty2        int     `json:"qty_2"`
	Qty3        int     `json:"qty_3"`
	Qty4        int     `json:"qty_4"`
	Qty5        int     `json:"qty_5"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category,omitempty"`
}
