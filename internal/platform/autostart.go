package platform

import (
	"fmt"
	"os"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct {
	configDir string
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// NewServiceAt returns an implementation rooted at configDir instead of the
// OS default. Linux autostart entries are written beneath it.
func NewServiceAt(configDir string) Service {
	return &platformService{configDir: configDir}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	if service.configDir != "" {
		return service.configDir, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// ApplyAutostart registers or removes the login entry. It is a no-op when
// the entry already matches enabled.
func ApplyAutostart(service Service, enabled bool, appName, execPath string) error {
	current, err := service.AutostartEnabled(appName)
	if err == nil && current == enabled {
		return nil
	}
	if enabled {
		return service.EnableAutostart(appName, execPath)
	}
	return service.DisableAutostart(appName)
}

// entrySlug turns an application name into a file-name friendly identifier.
func entrySlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "timetracker"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func checkAutostartArgs(op, appName, execPath string, needExec bool) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("%s autostart: app name is empty", op)
	}
	if needExec && strings.TrimSpace(execPath) == "" {
		return fmt.Errorf("%s autostart: exec path is empty", op)
	}
	return nil
}
