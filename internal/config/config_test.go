package config

import (
	"os"
	"testing"
	"time"
)

const testSecret = "this_is_a_test_secret_key_with_32_chars_minimum"

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", testSecret)
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	os.Setenv("S3_SSL_DISABLED", "true")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}
	if cfg.AppPort != "5000" {
		t.Errorf("AppPort = %q, want %q", cfg.AppPort, "5000")
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want %q", cfg.AdminUsername, "admin")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowedOrigins = %v, want two trimmed origins", cfg.CORSAllowedOrigins)
	}
	if !cfg.S3SSLDisabled {
		t.Error("S3SSLDisabled = false, want true")
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": testSecret,
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Telegram token without chat",
			envVars: map[string]string{
				"DB_PASSWORD":        "password",
				"JWT_SECRET_KEY":     testSecret,
				"TELEGRAM_BOT_TOKEN": "123:abc",
			},
		},
		{
			name: "Invalid chat id",
			envVars: map[string]string{
				"DB_PASSWORD":            "password",
				"JWT_SECRET_KEY":         testSecret,
				"TELEGRAM_ADMIN_CHAT_ID": "not-a-number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		DBPassword:    "password",
		JWTSecret:     "short",
		JWTTTLHours:   24,
		AdminUsername: "admin",
		AdminPassword: "admin",
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:        "production",
				DBSSLMode:     "require",
				JWTSecret:     "production_secret_key_different_from_default",
				AdminPassword: "a-strong-password",
				S3AccessKey:   "key",
				S3SecretKey:   "secret",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:        "production",
				DBSSLMode:     "disable",
				JWTSecret:     "production_secret",
				AdminPassword: "a-strong-password",
				S3AccessKey:   "key",
				S3SecretKey:   "secret",
			},
			shouldErr: true,
		},
		{
			name: "Production with default admin password",
			cfg: &Config{
				AppEnv:        "production",
				DBSSLMode:     "require",
				JWTSecret:     "production_secret_key_different",
				AdminPassword: "admin",
				S3AccessKey:   "key",
				S3SecretKey:   "secret",
			},
			shouldErr: true,
		},
		{
			name: "Production without storage credentials",
			cfg: &Config{
				AppEnv:        "production",
				DBSSLMode:     "require",
				JWTSecret:     "production_secret_key_different",
				AdminPassword: "a-strong-password",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn := cfg.GetDSN(); dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{JWTTTLHours: 2, RateLimitWindowSec: 30}

	if got := cfg.GetTokenTTL(); got != 2*time.Hour {
		t.Errorf("GetTokenTTL() = %v, want %v", got, 2*time.Hour)
	}
	if got := cfg.GetRateLimitWindow(); got != 30*time.Second {
		t.Errorf("GetRateLimitWindow() = %v, want %v", got, 30*time.Second)
	}
}
