// Package config provides configuration management for the adminctl CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDatabaseURL is the Realtime Database instance used by the admin app.
const DefaultDatabaseURL = "https://ecommerce-app-ba8ed-default-rtdb.firebaseio.com"

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	Trace        bool
	DataFile     string
	AccountsFile string
	AdminsPath   string
	Firebase     FirebaseConfig
}

// FirebaseConfig holds everything needed to initialize the Admin SDK
type FirebaseConfig struct {
	CredentialsFile   string
	CredentialsSecret string
	DatabaseURL       string
	ProjectID         string
}

// Init initializes viper with defaults and config file paths
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.adminctl")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("ADMINCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("trace", false)
	viper.SetDefault("data-file", "admin-data.json")
	viper.SetDefault("accounts-file", "")
	viper.SetDefault("admins-path", "Admins")
	viper.SetDefault("credentials-file", "../Backend/serviceAccountKey.json")
	viper.SetDefault("credentials-secret", "")
	viper.SetDefault("database-url", DefaultDatabaseURL)
	viper.SetDefault("project-id", "")
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		Trace:        viper.GetBool("trace"),
		DataFile:     viper.GetString("data-file"),
		AccountsFile: viper.GetString("accounts-file"),
		AdminsPath:   viper.GetString("admins-path"),
		Firebase: FirebaseConfig{
			CredentialsFile:   viper.GetString("credentials-file"),
			CredentialsSecret: viper.GetString("credentials-secret"),
			DatabaseURL:       viper.GetString("database-url"),
			ProjectID:         viper.GetString("project-id"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data-file must not be empty")
	}

	if err := validateAdminsPath(c.AdminsPath); err != nil {
		return err
	}

	if c.Firebase.CredentialsFile == "" && c.Firebase.CredentialsSecret == "" {
		return fmt.Errorf("one of credentials-file or credentials-secret is required")
	}

	if c.Firebase.CredentialsSecret != "" && !strings.HasPrefix(c.Firebase.CredentialsSecret, "projects/") {
		return fmt.Errorf("invalid credentials-secret: %s (must be projects/<p>/secrets/<s>/versions/<v>)", c.Firebase.CredentialsSecret)
	}

	u, err := url.Parse(c.Firebase.DatabaseURL)
	if err != nil {
		return fmt.Errorf("invalid database-url: %w", err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid database-url: %s (must be an https URL)", c.Firebase.DatabaseURL)
	}

	return nil
}

// validateAdminsPath rejects paths the Realtime Database refuses as keys.
// The path is relative to the database root, so it may not start or end
// with "/".
func validateAdminsPath(p string) error {
	if p == "" {
		return fmt.Errorf("admins-path must not be empty")
	}
	if strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return fmt.Errorf("invalid admins-path: %s (may not start or end with /)", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || strings.ContainsAny(seg, ".#$[]") {
			return fmt.Errorf("invalid admins-path: %s (segments may not be empty or contain . # $ [ ])", p)
		}
	}
	return nil
}

// Save writes cfg to the config file in use, or creates ./config.yaml when
// none was found. It returns the path written.
func Save(cfg *Config) (string, error) {
	viper.Set("trace", cfg.Trace)
	viper.Set("data-file", cfg.DataFile)
	viper.Set("accounts-file", cfg.AccountsFile)
	viper.Set("admins-path", cfg.AdminsPath)
	viper.Set("credentials-file", cfg.Firebase.CredentialsFile)
	viper.Set("credentials-secret", cfg.Firebase.CredentialsSecret)
	viper.Set("database-url", cfg.Firebase.DatabaseURL)
	viper.Set("project-id", cfg.Firebase.ProjectID)

	path := viper.ConfigFileUsed()
	if path == "" {
		path = "config.yaml"
		if err := viper.SafeWriteConfigAs(path); err != nil {
			return "", fmt.Errorf("failed to write config file: %w", err)
		}
		return path, nil
	}

	if err := viper.WriteConfig(); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// Display shows current config (for adminctl config)
func Display() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	secret := cfg.Firebase.CredentialsSecret
	if secret == "" {
		secret = "(unset)"
	}

	return fmt.Sprintf(`Configuration:
  data-file:          %s
  accounts-file:      %s
  admins-path:        %s
  trace:              %t

Firebase:
  credentials-file:   %s
  credentials-secret: %s
  database-url:       %s
  project-id:         %s

Sources:
  Config file:        %s
  Environment:        ADMINCTL_*
  Flags:              (per command)
`,
		cfg.DataFile,
		orDefault(cfg.AccountsFile, "(built-in accounts)"),
		cfg.AdminsPath,
		cfg.Trace,
		cfg.Firebase.CredentialsFile,
		secret,
		cfg.Firebase.DatabaseURL,
		orDefault(cfg.Firebase.ProjectID, "(from credentials)"),
		configFile,
	), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
