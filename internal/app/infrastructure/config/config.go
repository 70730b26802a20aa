package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

type Manager struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// New loads path, or writes the defaults there when the file does not exist.
// Environment overrides (see env.go) are applied on top in both cases.
func New(path string) (*Manager, error) {
	if path == "" {
		return nil, errors.New("no config path provided")
	}
	m := &Manager{path: path}

	cfg, err := m.load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = m.GetDefault()
		if err := m.validate(cfg); err != nil {
			return nil, fmt.Errorf("validate default config: %w", err)
		}
		if err := m.save(cfg); err != nil {
			return nil, fmt.Errorf("write config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if applyEnv(cfg, os.LookupEnv) {
		if err := m.validate(cfg); err != nil {
			return nil, fmt.Errorf("validate env overrides: %w", err)
		}
	}

	m.cfg = cfg
	return m, nil
}

func (m *Manager) Path() string {
	return m.path
}

// Get возвращает текущий конфиг. Изменять его можно только через Update.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg
}

// Update применяет modify к копии конфига; при ошибке валидации или записи
// текущий конфиг не меняется.
func (m *Manager) Update(modify func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return errors.New("no config loaded")
	}

	next := m.cfg.clone()
	modify(next)

	if err := m.validate(next); err != nil {
		return fmt.Errorf("invalid config update: %w", err)
	}
	if err := m.save(next); err != nil {
		return err
	}

	m.cfg = next
	return nil
}

func (c *Config) clone() *Config {
	next := *c
	if c.Proxy != nil {
		p := *c.Proxy
		next.Proxy = &p
	}
	next.Parser.MandatoryFields = slices.Clone(c.Parser.MandatoryFields)
	next.Parser.Mandatory = slices.Clone(c.Parser.Mandatory)
	next.Cors.AllowOrigins = slices.Clone(c.Cors.AllowOrigins)
	return &next
}

func (m *Manager) load() (*Config, error) {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("open/read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	if err := m.validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}

func (m *Manager) save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeAtomic(m.path, data, 0644)
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), time.Now().UnixNano()))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
