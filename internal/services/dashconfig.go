package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/validation"
)

// dashboardConfig holds the admin dashboard configuration loaded at startup.
type dashboardConfig struct {
	raw       []byte
	cfg       models.DashboardConfig
	firestore map[string]bool
	supabase  map[string]models.CollectionConfig
}

// LoadDashboardConfig reads and validates the config file at path. A missing
// file yields an empty config that allows every collection.
func LoadDashboardConfig(path string) (*dashboardConfig, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		raw, _ = json.Marshal(models.DashboardConfig{AppName: "Admin", Collections: []models.CollectionConfig{}})
		return ParseDashboardConfig(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("read dashboard config: %w", err)
	}
	return ParseDashboardConfig(raw)
}

func ParseDashboardConfig(raw []byte) (*dashboardConfig, error) {
	var cfg models.DashboardConfig
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&cfg); err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("dashboard config is not valid JSON: %v", err))
	}
	if err := validation.Struct(cfg); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cfg.Collections))
	firestore := make(map[string]bool)
	supabase := make(map[string]models.CollectionConfig)
	for _, c := range cfg.Collections {
		if seen[c.Name] {
			return nil, errs.NewValidationError(fmt.Sprintf("collection %s is configured twice", c.Name))
		}
		seen[c.Name] = true
		switch c.Source {
		case models.SourceFirestore:
			firestore[c.Name] = true
		case models.SourceSupabase:
			supabase[c.Name] = c
		}
	}

	return &dashboardConfig{raw: raw, cfg: cfg, firestore: firestore, supabase: supabase}, nil
}

// Raw returns the file contents as served to the dashboard.
func (c *dashboardConfig) Raw() []byte { return c.raw }

func (c *dashboardConfig) Config() models.DashboardConfig { return c.cfg }

// AllowsCollection reports whether admin CRUD may touch a Firestore
// collection. With no collections configured everything is allowed.
func (c *dashboardConfig) AllowsCollection(name string) bool {
	if len(c.cfg.Collections) == 0 {
		return true
	}
	return c.firestore[name]
}

// AllowsRecords reports whether signed-in users may keep their own records
// in a collection. Unlike AllowsCollection it fails closed: without
// configured Firestore collections nothing is open.
func (c *dashboardConfig) AllowsRecords(name string) bool {
	return c.firestore[name]
}

// SupabaseTable returns the config of a Supabase-backed collection.
func (c *dashboardConfig) SupabaseTable(name string) (models.CollectionConfig, bool) {
	t, ok := c.supabase[name]
	return t, ok
}
