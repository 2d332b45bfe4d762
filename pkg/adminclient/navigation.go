package adminclient

import (
	"context"
	"net/http"
)

// DashboardConfig mirrors the payload served at /configure.
type DashboardConfig struct {
	AppName     string             `json:"app_name"`
	LogoURL     string             `json:"logo_url,omitempty"`
	Collections []CollectionConfig `json:"collections"`
}

type CollectionConfig struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	Source      string        `json:"source"`
	SortBy      string        `json:"sort_by,omitempty"`
	ReadOnly    bool          `json:"read_only,omitempty"`
	Fields      []FieldConfig `json:"fields"`
}

type FieldConfig struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

type NavItem struct {
	Label string
	Icon  string
	Path  string
}

// FetchConfig loads the dashboard configuration. The endpoint is public.
func (c *Client) FetchConfig(ctx context.Context) (DashboardConfig, error) {
	var cfg DashboardConfig
	err := c.Do(ctx, http.MethodGet, "/configure", nil, &cfg)
	return cfg, err
}

// Navigation builds the sidebar: Users first, then one entry per collection
// in configured order.
func Navigation(cfg DashboardConfig) []NavItem {
	items := make([]NavItem, 0, len(cfg.Collections)+1)
	items = append(items, NavItem{Label: "Users", Icon: "pi pi-users", Path: "/users"})

	for _, c := range cfg.Collections {
		label := c.DisplayName
		if label == "" {
			label = c.Name
		}
		icon := c.Icon
		if icon == "" {
			icon = "pi pi-database"
		}
		path := "/collections/" + c.Name
		if c.Source == "supabase" {
			path = "/supabase/" + c.Name
		}
		items = append(items, NavItem{Label: label, Icon: icon, Path: path})
	}
	return items
}
