package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/nishantd01/grud/core/log"
)

// options is filled from CLI flags first, then env vars, then defaults
type options struct {
	Port               string        `long:"port" env:"PORT" default:"8083" description:"HTTP listen port"`
	UsersAPIBaseURL    string        `long:"users-api" env:"USERS_API_BASE_URL" default:"https://jsonplaceholder.typicode.com" description:"Base URL of the users REST API"`
	HTTPTimeout        time.Duration `long:"http-timeout" env:"HTTP_TIMEOUT" default:"10s" description:"Timeout for each users API call"`
	ToastTimeout       time.Duration `long:"toast-timeout" env:"TOAST_TIMEOUT" default:"3s" description:"How long a toast stays visible"`
	ToastLimit         int           `long:"toast-limit" env:"TOAST_LIMIT" default:"20" description:"Maximum queued toasts"`
	CORSAllowedOrigins string        `long:"cors-origins" env:"CORS_ALLOWED_ORIGINS" default:"*" description:"Comma separated allowed origins"`
	LogLevel           string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"debug, info, warn or error"`
	Environment        string        `long:"env" env:"ENVIRONMENT" default:"dev" description:"dev or prod"`
	GoogleCredentials  string        `long:"google-credentials" env:"GOOGLE_CREDENTIALS_FILE" description:"OAuth client secret JSON for spreadsheet export"`
	GoogleToken        string        `long:"google-token" env:"GOOGLE_TOKEN_FILE" description:"Saved OAuth token JSON for spreadsheet export"`
}

type GoogleConfig struct {
	CredentialsFile string
	TokenFile       string
}

// IsConfigured returns true if both files needed for the export are set
func (c GoogleConfig) IsConfigured() bool {
	return c.CredentialsFile != "" && c.TokenFile != ""
}

type AppConfig struct {
	Port               string
	UsersAPIBaseURL    string
	HTTPTimeout        time.Duration
	ToastTimeout       time.Duration
	ToastLimit         int
	CORSAllowedOrigins []string
	LogLevel           string
	Environment        string

	GoogleConfig GoogleConfig
}

func (c *AppConfig) IsDev() bool {
	return c.Environment == "dev"
}

// LoadConfig reads .env (if any), the environment and the given CLI args
func LoadConfig(args []string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ Could not load .env file, continuing with system env vars")
	}
	return parse(args)
}

func parse(args []string) (*AppConfig, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PrintErrors)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	config := &AppConfig{
		Port:               opts.Port,
		UsersAPIBaseURL:    strings.TrimRight(opts.UsersAPIBaseURL, "/"),
		HTTPTimeout:        opts.HTTPTimeout,
		ToastTimeout:       opts.ToastTimeout,
		ToastLimit:         opts.ToastLimit,
		CORSAllowedOrigins: splitOrigins(opts.CORSAllowedOrigins),
		LogLevel:           opts.LogLevel,
		Environment:        opts.Environment,
		GoogleConfig: GoogleConfig{
			CredentialsFile: opts.GoogleCredentials,
			TokenFile:       opts.GoogleToken,
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	if config.GoogleConfig.IsConfigured() {
		log.Info("✅ Spreadsheet export configured")
	} else {
		log.Warn("⚠️ Spreadsheet export not configured - export will be disabled")
	}

	return config, nil
}

// IsHelp reports whether err comes from --help, which is not a failure
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

func (c *AppConfig) validate() error {
	u, err := url.Parse(c.UsersAPIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("USERS_API_BASE_URL must be an absolute http(s) URL, got %q", c.UsersAPIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.ToastTimeout <= 0 {
		return fmt.Errorf("TOAST_TIMEOUT must be positive")
	}
	if c.ToastLimit <= 0 {
		return fmt.Errorf("TOAST_LIMIT must be positive")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is not set")
	}
	return nil
}

func splitOrigins(value string) []string {
	var origins []string
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
