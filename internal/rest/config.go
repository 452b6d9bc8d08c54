package rest

import (
	"encoding/base64"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds TM1 server connection settings
type Config struct {
	// Address is the TM1 REST API base URL (e.g., https://tm1.example.com:12354)
	Address string

	// User for authentication
	User string

	// Password for authentication
	Password string

	// CAMNamespace enables CAM authentication when set (IntegratedSecurityMode 4/5)
	CAMNamespace string

	// Timeout for API requests
	Timeout time.Duration

	// MaxRetries for failed requests
	MaxRetries int

	// UserAgent identifies the client to the server
	UserAgent string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	address := os.Getenv("TM1_ADDRESS")
	if address == "" {
		return nil, errors.New("TM1_ADDRESS environment variable is required")
	}
	address = strings.TrimRight(address, "/")

	timeout := 30 * time.Second
	if t := os.Getenv("TM1_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	maxRetries := 3
	if r := os.Getenv("TM1_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			maxRetries = n
		}
	}

	userAgent := os.Getenv("TM1_USER_AGENT")
	if userAgent == "" {
		userAgent = "tm1-mcp-server/1.0"
	}

	return &Config{
		Address:      address,
		User:         os.Getenv("TM1_USER"),
		Password:     os.Getenv("TM1_PASSWORD"),
		CAMNamespace: os.Getenv("TM1_CAM_NAMESPACE"),
		Timeout:      timeout,
		MaxRetries:   maxRetries,
		UserAgent:    userAgent,
	}, nil
}

// HasCredentials returns true if authentication credentials are configured
func (c *Config) HasCredentials() bool {
	return c.User != ""
}

// AuthHeader builds the Authorization header value for the configured
// security mode: "CAMNamespace user:password:namespace" when a CAM
// namespace is set, standard Basic auth otherwise. Empty without credentials.
func (c *Config) AuthHeader() string {
	if !c.HasCredentials() {
		return ""
	}
	if c.CAMNamespace != "" {
		token := base64.StdEncoding.EncodeToString([]byte(c.User + ":" + c.Password + ":" + c.CAMNamespace))
		return "CAMNamespace " + token
	}
	token := base64.StdEncoding.EncodeToString([]byte(c.User + ":" + c.Password))
	return "Basic " + token
}
