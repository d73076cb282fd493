// Package config provides the thin configuration adapter between ambient
// process state (environment variables, config files read through Viper)
// and the core clients, which receive plain values and value sources.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Configuration keys and defaults.
const (
	// KeyServiceURL is the base URL of the management service API.
	KeyServiceURL = "INSTALLD_URL"

	// KeyProbeSync selects the probe action variant. Unset skips probing,
	// "1" selects the synchronous endpoint, anything else the default one.
	KeyProbeSync = "PROBE_SYNC"

	// DefaultServiceURL is used when no base URL is configured.
	DefaultServiceURL = "http://localhost:9090/api"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// ServiceURL returns the configured management service base URL.
func ServiceURL() string {
	if url := GetString(KeyServiceURL); url != "" {
		return url
	}
	return DefaultServiceURL
}

// ProbeSyncMode returns the current probe sync-mode flag value. It is meant
// to be passed to the manager client as its sync-mode source so the flag is
// re-read on every probe.
func ProbeSyncMode() string {
	return GetString(KeyProbeSync)
}
