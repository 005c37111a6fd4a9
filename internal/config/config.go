// Package config manages disk and keyring state for spoctl profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/yourorg/spoctl/internal/auth"
)

const (
	serviceName = "spoctl"

	dirPermissions  = 0o700
	filePermissions = 0o600
)

// Credentials bundles the stored auth state for one profile. The refresh
// token lives in the OS keyring; the tenant and client app IDs live in the
// config file.
type Credentials struct {
	RefreshToken string
	TenantID     string
	ClientID     string
}

// configDir returns the directory where we persist structured configuration.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "spoctl"), nil
}

// ensureConfigDir ensures the configuration directory exists with restricted permissions.
func ensureConfigDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// SaveToken stores the refresh token for the provided profile in the OS
// keyring and records the tenant and client app IDs alongside it.
func SaveToken(profile, refreshToken, tenantID, clientID string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return errors.New("refresh token cannot be empty")
	}
	if profile == "" {
		return errors.New("profile name cannot be empty")
	}

	if err := keyring.Set(serviceName, profile, refreshToken); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if err := SaveProfile(profile, tenantID, clientID); err != nil {
		return err
	}
	return nil
}

// SaveProfile persists the tenant and client app IDs for a profile.
func SaveProfile(profile, tenantID, clientID string) error {
	if profile == "" {
		return errors.New("profile name cannot be empty")
	}
	if tenantID == "" {
		tenantID = auth.DefaultTenantID()
	}
	if clientID == "" {
		clientID = auth.DefaultClientID()
	}

	dir, err := ensureConfigDir()
	if err != nil {
		return err
	}

	cfg := viper.New()
	configPath := filepath.Join(dir, "config.yaml")
	cfg.SetConfigFile(configPath)
	readErr := cfg.ReadInConfig()
	if readErr != nil && !isConfigNotFound(readErr) {
		return fmt.Errorf("read config: %w", readErr)
	}

	cfg.Set(fmt.Sprintf("profiles.%s.tenant_id", profile), tenantID)
	cfg.Set(fmt.Sprintf("profiles.%s.client_id", profile), clientID)

	if err := cfg.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(configPath, filePermissions); err != nil {
		return fmt.Errorf("restrict config permissions: %w", err)
	}
	return nil
}

// LoadAuth returns the stored credentials for a profile.
func LoadAuth(profile string) (Credentials, error) {
	if profile == "" {
		return Credentials{}, errors.New("profile name cannot be empty")
	}

	token, err := keyring.Get(serviceName, profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credentials{}, fmt.Errorf("load refresh token: no stored credentials for profile %q", profile)
		}
		return Credentials{}, fmt.Errorf("load refresh token: %w", err)
	}

	tenantID, clientID, err := LoadProfile(profile)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{RefreshToken: token, TenantID: tenantID, ClientID: clientID}, nil
}

// LoadProfile fetches the configured tenant and client app IDs for a
// profile, falling back to the defaults.
func LoadProfile(profile string) (tenantID, clientID string, err error) {
	if profile == "" {
		return "", "", errors.New("profile name cannot be empty")
	}

	dir, err := ensureConfigDir()
	if err != nil {
		return "", "", err
	}

	cfg := viper.New()
	configPath := filepath.Join(dir, "config.yaml")
	cfg.SetConfigFile(configPath)
	readErr := cfg.ReadInConfig()
	if readErr != nil {
		if isConfigNotFound(readErr) {
			return auth.DefaultTenantID(), auth.DefaultClientID(), nil
		}
		return "", "", fmt.Errorf("read config: %w", readErr)
	}

	tenantID = cfg.GetString(fmt.Sprintf("profiles.%s.tenant_id", profile))
	if tenantID == "" {
		tenantID = auth.DefaultTenantID()
	}
	clientID = cfg.GetString(fmt.Sprintf("profiles.%s.client_id", profile))
	if clientID == "" {
		clientID = auth.DefaultClientID()
	}
	return tenantID, clientID, nil
}

func isConfigNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}
