package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func validConfig() Config {
	return Config{
		Trace:      false,
		DataFile:   "admin-data.json",
		AdminsPath: "Admins",
		Firebase: FirebaseConfig{
			CredentialsFile: "serviceAccountKey.json",
			DatabaseURL:     DefaultDatabaseURL,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid nested admins path",
			mutate: func(c *Config) {
				c.AdminsPath = "shop/Admins"
			},
			wantErr: false,
		},
		{
			name: "valid secret instead of file",
			mutate: func(c *Config) {
				c.Firebase.CredentialsFile = ""
				c.Firebase.CredentialsSecret = "projects/shop/secrets/firebase-admin/versions/latest"
			},
			wantErr: false,
		},
		{
			name: "invalid - no credentials at all",
			mutate: func(c *Config) {
				c.Firebase.CredentialsFile = ""
			},
			wantErr: true,
		},
		{
			name: "invalid - malformed secret name",
			mutate: func(c *Config) {
				c.Firebase.CredentialsSecret = "firebase-admin"
			},
			wantErr: true,
		},
		{
			name: "invalid - http database url",
			mutate: func(c *Config) {
				c.Firebase.DatabaseURL = "http://example.firebaseio.com"
			},
			wantErr: true,
		},
		{
			name: "invalid - relative database url",
			mutate: func(c *Config) {
				c.Firebase.DatabaseURL = "example.firebaseio.com"
			},
			wantErr: true,
		},
		{
			name: "invalid - empty data file",
			mutate: func(c *Config) {
				c.DataFile = ""
			},
			wantErr: true,
		},
		{
			name: "invalid - empty admins path",
			mutate: func(c *Config) {
				c.AdminsPath = "/"
			},
			wantErr: true,
		},
		{
			name: "invalid - forbidden key character",
			mutate: func(c *Config) {
				c.AdminsPath = "Admins.v2"
			},
			wantErr: true,
		},
		{
			name: "invalid - empty path segment",
			mutate: func(c *Config) {
				c.AdminsPath = "shop//Admins"
			},
			wantErr: true,
		},
		{
			name: "invalid - leading slash",
			mutate: func(c *Config) {
				c.AdminsPath = "/Admins"
			},
			wantErr: true,
		},
		{
			name: "invalid - trailing slash",
			mutate: func(c *Config) {
				c.AdminsPath = "shop/Admins/"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.DataFile != "admin-data.json" {
		t.Errorf("DataFile = %q, want admin-data.json", cfg.DataFile)
	}
	if cfg.AdminsPath != "Admins" {
		t.Errorf("AdminsPath = %q, want Admins", cfg.AdminsPath)
	}
	if cfg.Firebase.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("DatabaseURL = %q, want %q", cfg.Firebase.DatabaseURL, DefaultDatabaseURL)
	}
	if cfg.Firebase.CredentialsFile != "../Backend/serviceAccountKey.json" {
		t.Errorf("CredentialsFile = %q", cfg.Firebase.CredentialsFile)
	}
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.Set("database-url", "ftp://nope")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for a non-https database url")
	}
}

func TestSaveCreatesConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.SetConfigType("yaml")

	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.AdminsPath = "shop/Admins"

	path, err := Save(cfg)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != "config.yaml" {
		t.Errorf("Save() path = %q, want config.yaml", path)
	}

	viper.Reset()
	viper.SetConfigFile("config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if got := viper.GetString("admins-path"); got != "shop/Admins" {
		t.Errorf("saved admins-path = %q, want shop/Admins", got)
	}
}

func TestDisplay(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()

	s, err := Display()
	if err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	for _, want := range []string{"admin-data.json", DefaultDatabaseURL, "(built-in accounts)", "ADMINCTL_*", "(not found)"} {
		if !strings.Contains(s, want) {
			t.Errorf("Display() missing %q:\n%s", want, s)
		}
	}
}
