package envia

// QuoteRequest describes one shipment to price across carriers. Zero
// weight/dimensions fall back to a standard apparel box.
type QuoteRequest struct {
	DestinationZip string  `json:"destination_zip"`
	Destination    Address `json:"destination"`
	Weight         float64 `json:"weight"`
	Length         float64 `json:"length"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

type Address struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Rate is one normalized carrier offer, cheapest first in Quote results.
type Rate struct {
	Provider string  `json:"provider"`
	Service  string  `json:"service"`
	Price    float64 `json:"price"`
	Days     string  `json:"days"`
}

type CarrierError struct {
	Carrier string `json:"carrier"`
	Message string `json:"error"`
}

type party struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type pack struct {
	Content    string     `json:"content"`
	Amount     int        `json:"amount"`
	Type       string     `json:"type"`
	Weight     float64    `json:"weight"`
	WeightUnit string     `json:"weightUnit"`
	Dimensions dimensions `json:"dimensions"`
	LengthUnit string     `json:"lengthUnit"`
}

type shipment struct {
	Type    int    `json:"type"`
	Carrier string `json:"carrier,omitempty"`
}

type ratePayload struct {
	Origin      party    `json:"origin"`
	Destination party    `json:"destination"`
	Packages    []pack   `json:"packages"`
	Shipment    shipment `json:"shipment"`
}

type apiRate struct {
	Carrier           string  `json:"carrier"`
	Service           string  `json:"service"`
	TotalPrice        float64 `json:"totalPrice"`
	TotalPriceSnake   float64 `json:"total_price"`
	DeliveryEstimate  string  `json:"deliveryEstimate"`
	DeliverySnakeCase string  `json:"delivery_estimate"`
}

type rateResponse struct {
	Meta    string    `json:"meta"`
	Data    []apiRate `json:"data"`
	Message string    `json:"message"`
	Error   struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"error"`
}
