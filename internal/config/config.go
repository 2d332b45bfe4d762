package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ProjectID            string
	Region               string
	LogLevel             string
	Port                 string
	AllowedOrigins       []string
	RateLimit            int
	StorageBucket        string
	AdminConfigPath      string
	RequireVerifiedEmail bool
	AvatarPlaceholderURL string
	DeepLinkURI          string

	SupabaseURL           string
	SupabaseKey           string
	SupabaseJWTSecret     string
	SupabaseJWTSecretName string // Secret Manager secret ID, used when SupabaseJWTSecret is empty
	SupabaseProjectRef    string
	UsersTable            string
	ComplianceTable       string
	TermsRowID            string
	PrivacyRowID          string

	UserSyncSchedule string
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() *Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOGLEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWEDORIGINS", "*")
	v.SetDefault("RATELIMIT", 300)
	v.SetDefault("ADMINCONFIGPATH", "admin_config.json")
	v.SetDefault("REQUIREVERIFIEDEMAIL", false)
	v.SetDefault("USERSTABLE", "users")
	v.SetDefault("COMPLIANCETABLE", "compliance")
	v.SetDefault("TERMSROWID", "1")
	v.SetDefault("PRIVACYROWID", "2")
	return v
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		ProjectID:            v.GetString("PROJECTID"),
		Region:               v.GetString("REGION"),
		LogLevel:             v.GetString("LOGLEVEL"),
		Port:                 v.GetString("PORT"),
		AllowedOrigins:       splitList(v.GetString("ALLOWEDORIGINS")),
		RateLimit:            v.GetInt("RATELIMIT"),
		StorageBucket:        v.GetString("STORAGEBUCKET"),
		AdminConfigPath:      v.GetString("ADMINCONFIGPATH"),
		RequireVerifiedEmail: v.GetBool("REQUIREVERIFIEDEMAIL"),
		AvatarPlaceholderURL: v.GetString("AVATARPLACEHOLDERURL"),
		DeepLinkURI:          strings.TrimRight(v.GetString("DEEPLINKURI"), "/"),

		SupabaseURL:           strings.TrimRight(v.GetString("SUPABASEURL"), "/"),
		SupabaseKey:           v.GetString("SUPABASEKEY"),
		SupabaseJWTSecret:     v.GetString("SUPABASEJWTSECRET"),
		SupabaseJWTSecretName: v.GetString("SUPABASEJWTSECRETNAME"),
		SupabaseProjectRef:    v.GetString("SUPABASEPROJECTREF"),
		UsersTable:            v.GetString("USERSTABLE"),
		ComplianceTable:       v.GetString("COMPLIANCETABLE"),
		TermsRowID:            v.GetString("TERMSROWID"),
		PrivacyRowID:          v.GetString("PRIVACYROWID"),

		UserSyncSchedule: v.GetString("USERSYNCSCHEDULE"),
	}
}

// SupabaseEnabled reports whether the Supabase proxy and mirroring are configured.
func (c *Config) SupabaseEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
