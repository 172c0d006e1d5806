package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names for credentials. Secrets never live in the
// config file.
const (
	EnvClientID         = "FIREFLY_SERVICES_CLIENT_ID"
	EnvClientSecret     = "FIREFLY_SERVICES_CLIENT_SECRET"
	EnvStorageAccount   = "AZURE_STORAGE_ACCOUNT"
	EnvStorageKey       = "AZURE_STORAGE_KEY"
	EnvStorageContainer = "AZURE_STORAGE_CONTAINER"
)

// Credentials holds the API client credentials read from the environment.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// StorageCredentials holds the blob storage credentials read from the
// environment.
type StorageCredentials struct {
	Account   string
	Key       string
	Container string
}

// CredentialsFromEnv reads the API credentials, reporting every missing
// variable by name.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		ClientID:     strings.TrimSpace(os.Getenv(EnvClientID)),
		ClientSecret: strings.TrimSpace(os.Getenv(EnvClientSecret)),
	}
	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// StorageCredentialsFromEnv reads the blob storage credentials. The
// container from the environment yields to a non-empty config override.
func StorageCredentialsFromEnv(containerOverride string) (StorageCredentials, error) {
	creds := StorageCredentials{
		Account:   strings.TrimSpace(os.Getenv(EnvStorageAccount)),
		Key:       strings.TrimSpace(os.Getenv(EnvStorageKey)),
		Container: strings.TrimSpace(os.Getenv(EnvStorageContainer)),
	}
	if override := strings.TrimSpace(containerOverride); override != "" {
		creds.Container = override
	}
	var missing []string
	if creds.Account == "" {
		missing = append(missing, EnvStorageAccount)
	}
	if creds.Key == "" {
		missing = append(missing, EnvStorageKey)
	}
	if creds.Container == "" {
		missing = append(missing, EnvStorageContainer)
	}
	if len(missing) > 0 {
		return StorageCredentials{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}
