package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateRunID creates a unique ID for a step check run
func GenerateRunID(timestamp time.Time) string {
	input := fmt.Sprintf("run|%d", timestamp.UnixNano())
	hash := sha256.Sum256([]byte(input))
	return "run_" + hex.EncodeToString(hash[:])[:8]
}

// ComputeHourWindow converts a UTC instant plus the profile's millisecond UTC
// offset into the user-local query window: start of the current local hour
// through the current local minute.
func ComputeHourWindow(utcNow time.Time, offsetMillis int64) HourWindow {
	local := utcNow.UTC().Add(time.Duration(offsetMillis) * time.Millisecond)

	return HourWindow{
		Date:     local.Format("2006-01-02"),
		Start:    local.Truncate(time.Hour).Format("15:04"),
		End:      local.Format("15:04"),
		LocalNow: local,
	}
}

// ValidateThreshold checks that a configured step threshold is usable
func ValidateThreshold(threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("step threshold must be non-negative, got %d", threshold)
	}
	return nil
}
