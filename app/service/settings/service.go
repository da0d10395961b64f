package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"xpresabot/app/config"

	"github.com/samber/do"
)

const settingsFileName = "settings.json"

type values struct {
	BotActive bool `json:"bot_active"`
}

// Service is the runtime master switch of the responder. The switch is
// persisted so a restart does not silently re-enable a paused bot.
type Service struct {
	path string

	mu      sync.RWMutex
	current values
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	s := &Service{
		path:    filepath.Join(cfg.Data.Dir, settingsFileName),
		current: values{BotActive: true},
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err = json.Unmarshal(raw, &s.current); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return s, nil
}

func (s *Service) BotActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.BotActive
}

func (s *Service) SetBotActive(active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.BotActive = active

	raw, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err = os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	slog.Info("Bot master switch changed", "active", active, "telegram", true)

	return nil
}
