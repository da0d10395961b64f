package manychat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"xpresabot/app/config"

	"github.com/samber/do"
)

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

func (c *Client) GetFlows(ctx context.Context) ([]Flow, error) {
	var result flowsResponse
	if err := c.get(ctx, "/fb/page/getFlows", &result); err != nil {
		return nil, fmt.Errorf("failed to fetch flows: %w", err)
	}

	return result.Data.Flows, nil
}

func (c *Client) GetCustomFields(ctx context.Context) ([]CustomField, error) {
	var result customFieldsResponse
	if err := c.get(ctx, "/fb/page/getCustomFields", &result); err != nil {
		return nil, fmt.Errorf("failed to fetch custom fields: %w", err)
	}

	return result.Data, nil
}

func (c *Client) GetBotFields(ctx context.Context) ([]BotField, error) {
	var result botFieldsResponse
	if err := c.get(ctx, "/fb/page/getBotFields", &result); err != nil {
		return nil, fmt.Errorf("failed to fetch bot fields: %w", err)
	}

	return result.Data, nil
}

// BotFieldValues flattens bot fields into name -> value strings, dropping
// empty ones. This is the shape the knowledge importer consumes.
func (c *Client) BotFieldValues(ctx context.Context) (map[string]string, error) {
	fields, err := c.GetBotFields(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		if len(field.Value) == 0 || string(field.Value) == "null" {
			continue
		}

		var asString string
		if err := json.Unmarshal(field.Value, &asString); err != nil {
			asString = string(field.Value)
		}

		if strings.TrimSpace(asString) == "" {
			continue
		}

		values[field.Name] = asString
	}

	return values, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.cfg.ManyChat.Token == "" {
		return fmt.Errorf("manychat token is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ManyChat.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.ManyChat.Token)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)

		message := apiErr.Message
		if message == "" {
			message = apiErr.Error.Message
		}
		if message == "" {
			message = res.Status
		}

		return fmt.Errorf("manychat API error: %s", message)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
