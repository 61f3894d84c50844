// Package adb builds adb command invocations and parses their output.
package adb

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"catlog/internal/domain"
)

// LogcatArgs builds the argument list for streaming one device's log in
// threadtime format. Any extra filterspec tokens (e.g. "ActivityManager:W",
// "*:S") are passed through to logcat.
func LogcatArgs(serial string, filterSpec ...string) []string {
	args := []string{"-s", serial, "logcat", "-v", "threadtime"}
	return append(args, filterSpec...)
}

// ClearArgs builds the argument list for clearing a device's log buffer.
func ClearArgs(serial string) []string {
	return []string{"-s", serial, "logcat", "-c"}
}

// Devices runs `adb devices -l` and returns the connected devices.
func Devices(ctx context.Context, adbPath string) ([]domain.Device, error) {
	cmd := exec.CommandContext(ctx, adbPath, "devices", "-l")
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrADBNotFound, adbPath)
		}
		detail := err.Error()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandFailed, detail)
	}
	return ParseDevices(string(out)), nil
}

// ClearLog clears the device's log buffer.
func ClearLog(ctx context.Context, adbPath, serial string) error {
	cmd := exec.CommandContext(ctx, adbPath, ClearArgs(serial)...)
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrADBNotFound, adbPath)
		}
		return fmt.Errorf("%w: %v", domain.ErrCommandFailed, err)
	}
	return nil
}

// ParseDevices parses `adb devices -l` output: one row per device with a
// serial, a state token, and optional key:value attributes. Malformed rows
// are skipped individually rather than failing the whole parse.
func ParseDevices(output string) []domain.Device {
	var devices []domain.Device

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := domain.Device{
			Serial: fields[0],
			State:  fields[1],
		}
		for _, attr := range fields[2:] {
			key, value, ok := strings.Cut(attr, ":")
			if !ok {
				continue
			}
			switch key {
			case "product":
				d.Product = value
			case "model":
				d.Model = value
			case "device":
				d.DeviceName = value
			case "transport_id":
				d.TransportID = value
			}
		}
		devices = append(devices, d)
	}

	return devices
}
