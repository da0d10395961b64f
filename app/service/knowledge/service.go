package knowledge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"xpresabot/app/config"

	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
)

const (
	entriesFileName  = "knowledge.jsonl"
	productsFileName = "products.jsonl"
)

type Service struct {
	entriesPath  string
	productsPath string
	validate     *validator.Validate

	mu sync.RWMutex
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Service{
		entriesPath:  filepath.Join(cfg.Data.Dir, entriesFileName),
		productsPath: filepath.Join(cfg.Data.Dir, productsFileName),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Entries returns the active knowledge entries in file order.
func (s *Service) Entries() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := readLines[Entry](s.entriesPath)
	if err != nil {
		return nil, err
	}

	result := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.Active {
			result = append(result, e)
		}
	}

	return result, nil
}

// AllEntries returns every entry, inactive ones included.
func (s *Service) AllEntries() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return readLines[Entry](s.entriesPath)
}

func (s *Service) Products() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return readLines[Product](s.productsPath)
}

// UpsertEntry inserts the entry or replaces the one with the same key.
func (s *Service) UpsertEntry(entry Entry) error {
	if entry.Category == "" {
		entry.Category = CategoryGeneral
	}

	if err := s.validate.Struct(entry); err != nil {
		return fmt.Errorf("invalid knowledge entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := readLines[Entry](s.entriesPath)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Key == entry.Key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err = writeLines(s.entriesPath, entries); err != nil {
		return err
	}

	slog.Info("Saved knowledge entry", "key", entry.Key, "category", entry.Category)

	return nil
}

func (s *Service) DeleteEntry(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := readLines[Entry](s.entriesPath)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Key != key {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(entries) {
		return fmt.Errorf("knowledge entry %q not found", key)
	}

	if err = writeLines(s.entriesPath, kept); err != nil {
		return err
	}

	slog.Info("Deleted knowledge entry", "key", key)

	return nil
}

// ImportEntries bulk-inserts general entries, one per imported field.
// Fields with empty values are skipped. Returns how many entries landed.
func (s *Service) ImportEntries(fields map[string]string) (int, error) {
	count := 0

	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			continue
		}

		err := s.UpsertEntry(Entry{
			Key:      name,
			Content:  value,
			Category: CategoryGeneral,
			Active:   true,
		})
		if err != nil {
			return count, fmt.Errorf("failed to import field %q: %w", name, err)
		}

		count++
	}

	slog.Info("Imported knowledge entries", "count", count)

	return count, nil
}

func (s *Service) UpsertProduct(product Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	if !(product.Qty1 < product.Qty2 && product.Qty2 < product.Qty3 && product.Qty3 < product.Qty4) {
		return fmt.Errorf("product %q has non-increasing quantity tiers", product.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readLines[Product](s.productsPath)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].Name == product.Name {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}

	if err = writeLines(s.productsPath, products); err != nil {
		return err
	}

	slog.Info("Saved product", "name", product.Name)

	return nil
}

func readLines[T any](path string) ([]T, error) {
	file, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	result := make([]T, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item T
		if err = json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSON line in %s: %w", path, err)
		}

		result = append(result, item)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return result, nil
}

func writeLines[T any](path string, items []T) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create/open %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		if _, err = writer.WriteString(string(data) + "\n"); err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}
	}

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
