package models

import (
	"testing"
	"time"
)

func TestComputeHourWindow_PacificOffset(t *testing.T) {
	// 16:40 UTC with a -7h offset is 09:40 local
	utcNow := time.Date(2026, 8, 25, 16, 40, 12, 0, time.UTC)
	window := ComputeHourWindow(utcNow, -25200000)

	if window.Date != "2026-08-25" {
		t.Errorf("Expected date 2026-08-25, got %s", window.Date)
	}
	if window.Start != "09:00" {
		t.Errorf("Expected window start 09:00, got %s", window.Start)
	}
	if window.End != "09:40" {
		t.Errorf("Expected window end 09:40, got %s", window.End)
	}
}

func TestComputeHourWindow_ZeroOffset(t *testing.T) {
	utcNow := time.Date(2026, 8, 25, 23, 5, 0, 0, time.UTC)
	window := ComputeHourWindow(utcNow, 0)

	if window.Start != "23:00" || window.End != "23:05" {
		t.Errorf("Expected 23:00-23:05, got %s-%s", window.Start, window.End)
	}
}

func TestComputeHourWindow_OffsetCrossesMidnight(t *testing.T) {
	// 23:30 UTC with a +9h offset lands on the next local day
	utcNow := time.Date(2026, 8, 25, 23, 30, 0, 0, time.UTC)
	window := ComputeHourWindow(utcNow, 9*60*60*1000)

	if window.Date != "2026-08-26" {
		t.Errorf("Expected local date 2026-08-26, got %s", window.Date)
	}
	if window.Start != "08:00" || window.End != "08:30" {
		t.Errorf("Expected 08:00-08:30, got %s-%s", window.Start, window.End)
	}
}

func TestComputeHourWindow_TopOfHour(t *testing.T) {
	// Invoked exactly on the hour: start and end coincide, which queries an
	// empty window and sums to zero
	utcNow := time.Date(2026, 8, 25, 17, 0, 0, 0, time.UTC)
	window := ComputeHourWindow(utcNow, 0)

	if window.Start != "17:00" || window.End != "17:00" {
		t.Errorf("Expected 17:00-17:00, got %s-%s", window.Start, window.End)
	}
}
