//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if err := checkAutostartArgs("enable", appName, execPath, true); err != nil {
		return err
	}

	command := quoteWindowsPath(execPath) + " gui"
	if output, err := runReg("add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", command, "/f"); err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, output)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if err := checkAutostartArgs("disable", appName, "", false); err != nil {
		return err
	}

	enabled, err := service.AutostartEnabled(appName)
	if err == nil && !enabled {
		return nil
	}
	if output, err := runReg("delete", registryRunKey, "/v", appName, "/f"); err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, output)
	}
	return nil
}

// AutostartEnabled reports whether the Run key holds a value for appName.
// reg query exits non-zero when the value is absent.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	if _, err := runReg("query", registryRunKey, "/v", appName); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func runReg(args ...string) (string, error) {
	output, err := exec.Command("reg", args...).CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	return fmt.Sprintf(`"%s"`, strings.Trim(execPath, `"`))
}
