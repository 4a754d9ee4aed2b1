package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every config-relevant environment variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SMTP_LISTEN", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_MAX_MESSAGE_SIZE",
		"FORWARD_TO", "SENDER",
		"SENDGRID_API_KEY", "SENDGRID_ENDPOINT",
		"SES_REGION", "SES_ACCESS_KEY_ID", "SES_SECRET_ACCESS_KEY",
		"TLS_CERT_FILE", "TLS_KEY_FILE", "INFO_LISTEN", "LOG_LEVEL",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SMTP.Listen != ":2525" {
		t.Errorf("SMTP.Listen: got %q, want %q", cfg.SMTP.Listen, ":2525")
	}
	if cfg.SMTP.MaxMessageSize != 26214400 {
		t.Errorf("SMTP.MaxMessageSize: got %d, want %d", cfg.SMTP.MaxMessageSize, 26214400)
	}
	if cfg.Forward.To != "" {
		t.Errorf("Forward.To: got %q, want empty", cfg.Forward.To)
	}
	if cfg.Sender != "" {
		t.Errorf("Sender: got %q, want empty", cfg.Sender)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Info.Listen != "" {
		t.Errorf("Info.Listen: got %q, want empty", cfg.Info.Listen)
	}
	if cfg.ForwardConfigured() {
		t.Error("ForwardConfigured: got true, want false")
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled: got true, want false")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_LISTEN", ":9025")
	t.Setenv("SMTP_USERNAME", "admin")
	t.Setenv("SMTP_PASSWORD", "secret123")
	t.Setenv("SMTP_MAX_MESSAGE_SIZE", "10485760")
	t.Setenv("FORWARD_TO", "inbox@forward.example")
	t.Setenv("SENDER", "SendGrid")
	t.Setenv("SENDGRID_API_KEY", "sg-key")
	t.Setenv("SES_REGION", "us-east-1")
	t.Setenv("INFO_LISTEN", ":8080")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SMTP.Listen != ":9025" {
		t.Errorf("SMTP.Listen: got %q, want %q", cfg.SMTP.Listen, ":9025")
	}
	if cfg.SMTP.MaxMessageSize != 10485760 {
		t.Errorf("SMTP.MaxMessageSize: got %d, want %d", cfg.SMTP.MaxMessageSize, 10485760)
	}
	if cfg.Forward.To != "inbox@forward.example" {
		t.Errorf("Forward.To: got %q, want %q", cfg.Forward.To, "inbox@forward.example")
	}
	if cfg.Sender != "sendgrid" {
		t.Errorf("Sender: got %q, want lowercased %q", cfg.Sender, "sendgrid")
	}
	if cfg.SendGrid.APIKey != "sg-key" {
		t.Errorf("SendGrid.APIKey: got %q, want %q", cfg.SendGrid.APIKey, "sg-key")
	}
	if cfg.SES.Region != "us-east-1" {
		t.Errorf("SES.Region: got %q, want %q", cfg.SES.Region, "us-east-1")
	}
	if cfg.Info.Listen != ":8080" {
		t.Errorf("Info.Listen: got %q, want %q", cfg.Info.Listen, ":8080")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want lowercased %q", cfg.Logging.Level, "debug")
	}
	if !cfg.ForwardConfigured() {
		t.Error("ForwardConfigured: got false, want true")
	}
	if !cfg.SendGridConfigured() {
		t.Error("SendGridConfigured: got false, want true")
	}
	if !cfg.SESConfigured() {
		t.Error("SESConfigured: got false, want true")
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled: got false, want true")
	}
}

func TestLoad_InvalidMaxMessageSizeKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_MAX_MESSAGE_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SMTP.MaxMessageSize != 26214400 {
		t.Errorf("SMTP.MaxMessageSize: got %d, want default", cfg.SMTP.MaxMessageSize)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
smtp:
  listen: ":1125"
  max_message_size: 1048576
forward:
  to: file@forward.example
sender: stdout
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SMTP.Listen != ":1125" {
		t.Errorf("SMTP.Listen: got %q, want %q", cfg.SMTP.Listen, ":1125")
	}
	if cfg.SMTP.MaxMessageSize != 1048576 {
		t.Errorf("SMTP.MaxMessageSize: got %d, want %d", cfg.SMTP.MaxMessageSize, 1048576)
	}
	if cfg.Forward.To != "file@forward.example" {
		t.Errorf("Forward.To: got %q, want %q", cfg.Forward.To, "file@forward.example")
	}
	if cfg.Sender != "stdout" {
		t.Errorf("Sender: got %q, want %q", cfg.Sender, "stdout")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestLoadFromFile_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORWARD_TO", "env@forward.example")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "forward:\n  to: file@forward.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forward.To != "env@forward.example" {
		t.Errorf("Forward.To: got %q, want env value to win", cfg.Forward.To)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("smtp: [not: valid"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
