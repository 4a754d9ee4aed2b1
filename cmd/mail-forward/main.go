// Package main is the entry point for the mail forwarding server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shineum/mail-forward-lite/internal/config"
	"github.com/shineum/mail-forward-lite/internal/handler"
	"github.com/shineum/mail-forward-lite/internal/info"
	"github.com/shineum/mail-forward-lite/internal/sender"
	"github.com/shineum/mail-forward-lite/internal/sender/sendgrid"
	"github.com/shineum/mail-forward-lite/internal/sender/ses"
	"github.com/shineum/mail-forward-lite/internal/sender/stdout"
	"github.com/shineum/mail-forward-lite/internal/smtp"
	fwdtls "github.com/shineum/mail-forward-lite/internal/tls"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogger(cfg.Logging.Level)

	if !cfg.ForwardConfigured() {
		slog.Warn("no FORWARD_TO address configured, inbound messages will be rejected")
	}

	// Load or generate TLS certificates
	tlsConfig, err := fwdtls.LoadOrGenerateTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		slog.Error("failed to setup TLS", "error", err)
		os.Exit(1)
	}

	tlsMode := "self-signed"
	if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
		tlsMode = "file"
	}

	// Select delivery backend and build the forwarding handler
	snd := selectSender(cfg)
	fwd := handler.New(cfg.Forward.To, snd, cfg.SMTP.MaxMessageSize)

	// Create SMTP server
	server := smtp.New(smtp.ServerConfig{
		ListenAddr:     cfg.SMTP.Listen,
		Hostname:       "localhost",
		Handler:        fwd,
		TLSConfig:      tlsConfig,
		AuthUsername:   cfg.SMTP.Username,
		AuthPassword:   cfg.SMTP.Password,
		MaxMessageSize: cfg.SMTP.MaxMessageSize,
	})

	slog.Info("starting mail-forward-lite",
		"listen", cfg.SMTP.Listen,
		"sender", snd.Name(),
		"forward_configured", cfg.ForwardConfigured(),
		"auth_enabled", cfg.AuthEnabled(),
		"tls_mode", tlsMode,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigCh
		slog.Info("received signal, initiating shutdown", "signal", sig)
		cancel()
	}()

	// Optional informational endpoint
	if cfg.Info.Listen != "" {
		infoSrv := info.New(cfg.Info.Listen, cfg.ForwardConfigured())
		go func() {
			if err := infoSrv.ListenAndServe(ctx); err != nil {
				slog.Error("info endpoint error", "error", err)
			}
		}()
	}

	// Start the server (blocks until context is cancelled)
	if err := server.ListenAndServe(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("mail-forward-lite stopped")
}

// loadConfig loads configuration from the specified path (YAML + env
// override) or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(logHandler))
}

// selectSender chooses the delivery backend based on configuration.
// If the SENDER env var is set, it takes precedence. Otherwise, it falls
// back to auto-detection (SendGrid if configured, then SES, else stdout).
func selectSender(cfg *config.Config) sender.Sender {
	switch cfg.Sender {
	case "sendgrid":
		if !cfg.SendGridConfigured() {
			slog.Error("sendgrid sender selected but SENDGRID_API_KEY is required")
			os.Exit(1)
		}
		slog.Info("using SendGrid sender")
		return sendgrid.New(sendgrid.Config{
			APIKey:   cfg.SendGrid.APIKey,
			Endpoint: cfg.SendGrid.Endpoint,
		})

	case "ses":
		if !cfg.SESConfigured() {
			slog.Error("ses sender selected but SES_REGION is required")
			os.Exit(1)
		}
		slog.Info("using AWS SES sender", "region", cfg.SES.Region)
		p, err := ses.New(context.Background(), ses.Config{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		})
		if err != nil {
			slog.Error("failed to create SES sender", "error", err)
			os.Exit(1)
		}
		return p

	case "stdout":
		slog.Info("using stdout sender")
		return stdout.New()

	case "":
		// Auto-detection fallback
		if cfg.SendGridConfigured() {
			slog.Info("using SendGrid sender (auto-detected)")
			return sendgrid.New(sendgrid.Config{
				APIKey:   cfg.SendGrid.APIKey,
				Endpoint: cfg.SendGrid.Endpoint,
			})
		}
		if cfg.SESConfigured() {
			slog.Info("using AWS SES sender (auto-detected)", "region", cfg.SES.Region)
			p, err := ses.New(context.Background(), ses.Config{
				Region:          cfg.SES.Region,
				AccessKeyID:     cfg.SES.AccessKeyID,
				SecretAccessKey: cfg.SES.SecretAccessKey,
			})
			if err != nil {
				slog.Error("failed to create SES sender", "error", err)
				os.Exit(1)
			}
			return p
		}
		slog.Info("no sender configured, using stdout sender")
		return stdout.New()

	default:
		slog.Error("unknown sender", "sender", cfg.Sender)
		os.Exit(1)
		return nil
	}
}
