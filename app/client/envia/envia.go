package envia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"xpresabot/app/config"
	"xpresabot/app/util/textnorm"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// Carriers commonly available for national shipments in Mexico.
var carriers = []string{"estafeta", "redpack", "fedex", "99minutos", "dhl", "paquetexpress", "sendex"}

var stateCodes = map[string]string{
	"aguascalientes": "AG", "baja california": "BC", "baja california sur": "BS",
	"campeche": "CM", "chiapas": "CS", "chihuahua": "CH", "coahuila": "CO",
	"colima": "CL", "ciudad de mexico": "DF", "cdmx": "DF", "distrito federal": "DF",
	"durango": "DG", "guanajuato": "GT", "guerrero": "GR", "hidalgo": "HG",
	"jalisco": "JA", "mexico": "EM", "estado de mexico": "EM", "michoacan": "MI",
	"morelos": "MO", "nayarit": "NA", "nuevo leon": "NL", "oaxaca": "OA",
	"puebla": "PU", "queretaro": "QA", "quintana roo": "QR", "san luis potosi": "SL",
	"sinaloa": "SI", "sonora": "SO", "tabasco": "TB", "tamaulipas": "TM",
	"tlaxcala": "TL", "veracruz": "VE", "yucatan": "YU", "zacatecas": "ZA",
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Quote asks every carrier for rates in parallel and returns the offers
// sorted by price. Individual carrier failures are tolerated; only all of
// them failing is an error.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) ([]Rate, error) {
	if c.cfg.Envia.APIKey == "" {
		return nil, fmt.Errorf("envia API key is not configured")
	}
	if req.DestinationZip == "" {
		return nil, fmt.Errorf("destination zip is required")
	}

	base := c.buildPayload(req)

	var (
		mu       sync.Mutex
		rates    []Rate
		failures []CarrierError
	)

	g, gctx := errgroup.WithContext(ctx)

	for _, carrier := range carriers {
		carrier := carrier
		g.Go(func() error {
			carrierRates, err := c.rateCarrier(gctx, base, carrier)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				slog.Debug("Carrier quote failed", "carrier", carrier, "error", err)
				failures = append(failures, CarrierError{Carrier: carrier, Message: err.Error()})
				return nil
			}

			rates = append(rates, carrierRates...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(rates) == 0 {
		if len(failures) > 3 {
			failures = failures[:3]
		}
		return nil, fmt.Errorf("no rates found for zip %s: %+v", req.DestinationZip, failures)
	}

	rates = pie.SortUsing(rates, func(a, b Rate) bool {
		return a.Price < b.Price
	})

	slog.Info("Shipping quote completed",
		"zip", req.DestinationZip,
		"rates", len(rates),
		"failed_carriers", len(failures))

	return rates, nil
}

func (c *Client) buildPayload(req QuoteRequest) ratePayload {
	origin := c.cfg.Envia.Origin

	weight := req.Weight
	if weight == 0 {
		weight = 1
	}
	length, width, height := req.Length, req.Width, req.Height
	if length == 0 {
		length = 20
	}
	if width == 0 {
		width = 20
	}
	if height == 0 {
		height = 10
	}

	return ratePayload{
		Origin: party{
			Name:       origin.Name,
			Company:    origin.Company,
			Email:      origin.Email,
			Phone:      origin.Phone,
			Street:     origin.Street,
			Number:     "1",
			District:   "Centro",
			City:       origin.City,
			State:      normalizeState(origin.State),
			Country:    "MX",
			PostalCode: origin.Zip,
		},
		Destination: party{
			Name:       fallback(req.Destination.Name, "Cliente"),
			Company:    "Particular",
			Email:      fallback(req.Destination.Email, "cliente@xpresa.com.mx"),
			Phone:      fallback(req.Destination.Phone, "4420000000"),
			Street:     fallback(req.Destination.Street, "Conocida"),
			Number:     "1",
			District:   fallback(req.Destination.District, "Centro"),
			City:       fallback(req.Destination.City, "Ciudad"),
			State:      normalizeState(req.Destination.State),
			Country:    "MX",
			PostalCode: req.DestinationZip,
		},
		Packages: []pack{{
			Content:    "Ropa",
			Amount:     1,
			Type:       "box",
			Weight:     weight,
			WeightUnit: "KG",
			Dimensions: dimensions{Length: length, Width: width, Height: height},
			LengthUnit: "CM",
		}},
		// national shipment
		Shipment: shipment{Type: 1},
	}
}

func (c *Client) rateCarrier(ctx context.Context, base ratePayload, carrier string) ([]Rate, error) {
	payload := base
	payload.Shipment.Carrier = carrier

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Envia.BaseURL+"/ship/rate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Envia.APIKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed rateResponse
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if res.StatusCode != http.StatusOK || parsed.Meta == "error" {
		message := parsed.Error.Message
		if message == "" {
			message = parsed.Message
		}
		if message == "" {
			message = parsed.Error.Description
		}
		if message == "" {
			message = res.Status
		}

		return nil, fmt.Errorf("envia API error: %s", message)
	}

	if parsed.Meta != "rate" {
		return nil, fmt.Errorf("no rates returned")
	}

	result := make([]Rate, 0, len(parsed.Data))
	for _, r := range parsed.Data {
		price := r.TotalPrice
		if price == 0 {
			price = r.TotalPriceSnake
		}

		days := r.DeliveryEstimate
		if days == "" {
			days = r.DeliverySnakeCase
		}
		if days == "" {
			days = "N/A"
		}

		result = append(result, Rate{
			Provider: r.Carrier,
			Service:  r.Service,
			Price:    price,
			Days:     days,
		})
	}

	return result, nil
}

// normalizeState maps a Mexican state name to its Envia two-letter code,
// accepting already-short codes as-is.
func normalizeState(state string) string {
	if state == "" {
		return "MX"
	}

	clean := strings.TrimSpace(textnorm.Normalize(state))
	if code, ok := stateCodes[clean]; ok {
		return code
	}

	if len(state) <= 3 {
		return strings.ToUpper(state)
	}

	return "MX"
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}

	return value
}
