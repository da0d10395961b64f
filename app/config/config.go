package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
	Data     Data     `yaml:"data"`
	Session  Session  `yaml:"session"`
	ManyChat ManyChat `yaml:"manychat"`
	Envia    Envia    `yaml:"envia"`
}

type Server struct {
	// Listen address of the HTTP server
	Addr string `yaml:"addr" example:":8080" validate:"required"`
}

type Data struct {
	// Directory holding the knowledge base, product catalog, settings and bot log files
	Dir string `yaml:"dir" example:"data" validate:"required"`
}

type Session struct {
	// Redis connection URL, leave empty to keep sessions in process memory
	RedisURL string `yaml:"redis_url" example:"redis://localhost:6379"`
}

type ManyChat struct {
	// ManyChat API token, obtain it in Settings -> API
	Token string `yaml:"token" example:"1234567:abc123def456ghi789jkl012mno345pqr678"`
	// ManyChat API base url
	BaseURL string `yaml:"base_url" example:"https://api.manychat.com"`
}

type Envia struct {
	// Envia.com API key
	APIKey string `yaml:"api_key" example:"abc123def456ghi789jkl012mno345pqr678stu901"`
	// Envia.com API base url
	BaseURL string `yaml:"base_url" example:"https://api.envia.com"`
	// Origin address used for every quote
	Origin Origin `yaml:"origin"`
}

type Origin struct {
	// Sender name
	Name string `yaml:"name" example:"Xpresa Remitente"`
	// Company name
	Company string `yaml:"company" example:"Xpresa"`
	// Contact email
	Email string `yaml:"email" example:"ventas@xpresa.com.mx"`
	// Contact phone
	Phone string `yaml:"phone" example:"4421234567"`
	// Street
	Street string `yaml:"street" example:"Av. Constituyentes"`
	// City
	City string `yaml:"city" example:"Queretaro"`
	// State name or two-letter code
	State string `yaml:"state" example:"QA"`
	// Postal code
	Zip string `yaml:"zip" example:"76000"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":8080"
	}
	if result.Data.Dir == "" {
		result.Data.Dir = "data"
	}
	if result.ManyChat.BaseURL == "" {
		result.ManyChat.BaseURL = "https://api.manychat.com"
	}
	if result.Envia.BaseURL == "" {
		result.Envia.BaseURL = "https://api.envia.com"
	}
	if result.Envia.Origin.Name == "" {
		result.Envia.Origin.Name = "Xpresa Remitente"
	}
	if result.Envia.Origin.Company == "" {
		result.Envia.Origin.Company = "Xpresa"
	}
	if result.Envia.Origin.Email == "" {
		result.Envia.Origin.Email = "ventas@xpresa.com.mx"
	}
	if result.Envia.Origin.City == "" {
		result.Envia.Origin.City = "Queretaro"
	}
	if result.Envia.Origin.State == "" {
		result.Envia.Origin.State = "QA"
	}
	if result.Envia.Origin.Zip == "" {
		result.Envia.Origin.Zip = "76000"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
