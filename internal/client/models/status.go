package models

import (
	"fmt"
	"strings"
)

// OfflineStatus is the process-wide connectivity mode.
type OfflineStatus string

const (
	StatusOnline  OfflineStatus = "ONLINE"
	StatusOffline OfflineStatus = "OFFLINE"
)

func ParseOfflineStatus(s string) (OfflineStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(StatusOnline):
		return StatusOnline, nil
	case string(StatusOffline):
		return StatusOffline, nil
	default:
		return "", fmt.Errorf("unknown offline status %q", s)
	}
}

func (s OfflineStatus) IsOffline() bool { return s == StatusOffline }
