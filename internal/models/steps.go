package models

import "fmt"

// StepSample represents a single intraday step-count sample
type StepSample struct {
	Time  string `json:"time"`  // HH:MM:SS (24-hour, user-local)
	Value int    `json:"value"` // steps recorded in this interval, >= 0
}

// IntradaySeries represents the ordered intraday step dataset for one query window
type IntradaySeries struct {
	Dataset         []StepSample `json:"dataset"`
	DatasetInterval int          `json:"datasetInterval"` // minutes per sample
	DatasetType     string       `json:"datasetType"`     // minute
}

// Total returns the cumulative step count across all samples in the series
func (s *IntradaySeries) Total() int {
	total := 0
	for _, sample := range s.Dataset {
		total += sample.Value
	}
	return total
}

// ValidateSamples checks the dataset for malformed samples
func (s *IntradaySeries) ValidateSamples() []string {
	var issues []string
	for i, sample := range s.Dataset {
		if sample.Value < 0 {
			issues = append(issues, fmt.Sprintf("sample %d (%s) has negative value %d", i, sample.Time, sample.Value))
		}
		if sample.Time == "" {
			issues = append(issues, fmt.Sprintf("sample %d missing time label", i))
		}
	}
	return issues
}
