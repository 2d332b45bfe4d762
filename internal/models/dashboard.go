package models

const (
	SourceFirestore = "firestore"
	SourceSupabase  = "supabase"
)

// DashboardConfig is the payload served at /configure. The dashboard builds
// its navigation and forms from it; the backend uses Collections as the
// allow-list for admin CRUD.
type DashboardConfig struct {
	AppName     string             `json:"app_name" validate:"required"`
	LogoURL     string             `json:"logo_url,omitempty" validate:"omitempty,url"`
	Firebase    map[string]string  `json:"firebase,omitempty"`
	Supabase    map[string]string  `json:"supabase,omitempty"`
	Collections []CollectionConfig `json:"collections" validate:"dive"`
}

type CollectionConfig struct {
	Name        string        `json:"name" validate:"required,excludesall=/"`
	DisplayName string        `json:"display_name,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	Source      string        `json:"source" validate:"required,oneof=firestore supabase"`
	SortBy      string        `json:"sort_by,omitempty"`
	ReadOnly    bool          `json:"read_only,omitempty"`
	Fields      []FieldConfig `json:"fields" validate:"dive"`
}

type FieldConfig struct {
	Name     string `json:"name" validate:"required"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type" validate:"required,oneof=string text number boolean date datetime image list map reference"`
	Required bool   `json:"required,omitempty"`
}
