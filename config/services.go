package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceMode names a component that can run in the server process.
type ServiceMode string

const (
	// ServiceModeHTTP runs the UI server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeReaper purges expired client state.
	ServiceModeReaper ServiceMode = "reaper"
)

// ParseServices parses a comma-delimited list of service names.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	if strings.TrimSpace(servicesStr) == "" {
		return nil, errors.New("at least one service must be specified")
	}

	services := make(map[ServiceMode]bool)
	for _, part := range strings.Split(servicesStr, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		switch mode := ServiceMode(name); mode {
		case ServiceModeHTTP, ServiceModeReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, reaper)", name)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}
	return services, nil
}
