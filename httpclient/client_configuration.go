// httpclient/client_configuration.go
// Description: This file contains functions to load and validate configuration values from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = "console"
	DefaultHideSensitiveData     = true
	DefaultCustomTimeout         = 10 * time.Second
	DefaultFollowRedirects       = false
	DefaultMaxRedirects          = 5
	DefaultAuthExemptPrefix      = "/auth"
	ConfigFileExtension          = ".json"
)

// fileConfig mirrors ClientConfig for JSON loading, with durations expressed in seconds.
type fileConfig struct {
	BaseURL              string `json:"base_url"`
	LogLevel             string `json:"log_level"`
	LogOutputFormat      string `json:"log_output_format"`
	LogExportPath        string `json:"log_export_path"`
	HideSensitiveData    *bool  `json:"hide_sensitive_data"`
	CustomTimeoutSeconds int    `json:"custom_timeout_seconds"`
	FollowRedirects      bool   `json:"follow_redirects"`
	MaxRedirects         int    `json:"max_redirects"`
	AuthExemptPrefix     string `json:"auth_exempt_prefix"`
}

// LoadConfigFromFile loads http client configuration settings from a JSON file.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	absPath, err := validateConfigFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %v", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %v", err)
	}
	defer file.Close()

	byteValue, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %v", err)
	}

	var raw fileConfig
	if err := json.Unmarshal(byteValue, &raw); err != nil {
		return nil, fmt.Errorf("could not unmarshal JSON: %v", err)
	}

	config := &ClientConfig{
		BaseURL:          raw.BaseURL,
		LogLevel:         raw.LogLevel,
		LogOutputFormat:  raw.LogOutputFormat,
		LogExportPath:    raw.LogExportPath,
		FollowRedirects:  raw.FollowRedirects,
		MaxRedirects:     raw.MaxRedirects,
		AuthExemptPrefix: raw.AuthExemptPrefix,
	}
	if raw.HideSensitiveData != nil {
		config.HideSensitiveData = *raw.HideSensitiveData
	} else {
		config.HideSensitiveData = DefaultHideSensitiveData
	}
	if raw.CustomTimeoutSeconds > 0 {
		config.CustomTimeout = time.Duration(raw.CustomTimeoutSeconds) * time.Second
	}

	SetDefaultValuesClientConfig(config)

	return config, nil
}

// LoadConfigFromEnv loads HTTP client configuration settings from environment variables.
// If any environment variables are not set, the default values defined in the constants are used instead.
func LoadConfigFromEnv() (*ClientConfig, error) {
	config := &ClientConfig{
		BaseURL:           getEnvAsString("API_BASE_URL", ""),
		LogLevel:          getEnvAsString("LOG_LEVEL", DefaultLogLevelString),
		LogOutputFormat:   getEnvAsString("LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString),
		LogExportPath:     getEnvAsString("LOG_EXPORT_PATH", ""),
		HideSensitiveData: getEnvAsBool("HIDE_SENSITIVE_DATA", DefaultHideSensitiveData),
		CustomTimeout:     getEnvAsDuration("CUSTOM_TIMEOUT", DefaultCustomTimeout),
		FollowRedirects:   getEnvAsBool("FOLLOW_REDIRECTS", DefaultFollowRedirects),
		MaxRedirects:      getEnvAsInt("MAX_REDIRECTS", DefaultMaxRedirects),
		AuthExemptPrefix:  getEnvAsString("AUTH_EXEMPT_PREFIX", DefaultAuthExemptPrefix),
	}

	return config, nil
}

// validateClientConfig checks the configuration a client is being built from,
// optionally populating defaults first.
func validateClientConfig(config *ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		SetDefaultValuesClientConfig(config)
	}

	if config.BaseURL == "" {
		return errors.New("no base URL supplied, set base_url in the config file or the API_BASE_URL environment variable")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base URL %q is not an absolute URL", config.BaseURL)
	}

	if config.CustomTimeout < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	if config.AuthExemptPrefix == "" && config.AuthExempt == nil {
		return errors.New("auth exempt prefix cannot be empty; the refresh and csrf endpoints must be exempt")
	}

	return nil
}

// SetDefaultValuesClientConfig sets default values for the client configuration, ensuring that all fields have a valid or minimum value.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}
	if config.CustomTimeout == 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}
	if config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	if config.AuthExemptPrefix == "" {
		config.AuthExemptPrefix = DefaultAuthExemptPrefix
	}
	// BaseURLs with a trailing slash double up when endpoints are appended.
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
}

// validateConfigFilePath verifies the config path points at a JSON file.
func validateConfigFilePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty config file path")
	}
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	if filepath.Ext(absPath) != ConfigFileExtension {
		return "", fmt.Errorf("config file must have a %s extension", ConfigFileExtension)
	}
	return absPath, nil
}

func getEnvAsString(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}
