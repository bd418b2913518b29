package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	if cfg.Auth.JWTSecret == "" {
		t.Error("Auth.JWTSecret should not be empty")
	}

	if cfg.Auth.TokenTTL == 0 {
		t.Error("Auth.TokenTTL should have a default")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		Auth: Auth{
			JWTSecret:       "secret",
			SuperAdminEmail: "superadmin@foodapp.com",
		},
	}

	if err := validate(base); err != nil {
		t.Errorf("validate() on valid config returned %v", err)
	}

	noPort := base
	noPort.Webserver.Port = 0

	if err := validate(noPort); err == nil {
		t.Error("validate() should fail on zero webserver port")
	}

	noSecret := base
	noSecret.Auth.JWTSecret = ""

	if err := validate(noSecret); err == nil {
		t.Error("validate() should fail on empty jwt secret")
	}
}
