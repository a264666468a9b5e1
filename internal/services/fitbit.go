package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"hourly-step-notifier/internal/models"
)

// FitbitClient handles profile and intraday activity lookups against the
// Fitbit Web API. Each call is a single attempt; failures propagate to the
// caller untouched, with no local retry.
type FitbitClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	locale      string
}

// FitbitConfig holds configuration for the Fitbit client
type FitbitConfig struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
	Locale      string
}

// profileResponse is the wire envelope for the profile endpoint
type profileResponse struct {
	User models.UserProfile `json:"user"`
}

// stepsResponse is the wire envelope for the intraday time series endpoint
type stepsResponse struct {
	Intraday models.IntradaySeries `json:"activities-steps-intraday"`
}

// NewFitbitClient creates a Fitbit client from the environment
func NewFitbitClient() (*FitbitClient, error) {
	accessToken := os.Getenv("FITBIT_ACCESS_TOKEN")
	if accessToken == "" {
		return nil, fmt.Errorf("FITBIT_ACCESS_TOKEN environment variable is required")
	}

	return NewFitbitClientWithConfig(FitbitConfig{AccessToken: accessToken})
}

// NewFitbitClientWithConfig creates a Fitbit client with custom configuration
func NewFitbitClientWithConfig(cfg FitbitConfig) (*FitbitClient, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.fitbit.com"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	locale := cfg.Locale
	if locale == "" {
		locale = "en_US"
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
		DisableKeepAlives: false,
		IdleConnTimeout:   90 * time.Second,
	}

	return &FitbitClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		locale:      locale,
	}, nil
}

// GetProfile fetches the user profile, which carries the UTC offset used to
// align the step query window with the user's local hour
func (f *FitbitClient) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	url := fmt.Sprintf("%s/1/user/-/profile.json", f.baseURL)

	body, err := f.doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}

	var resp profileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}

	return &resp.User, nil
}

// GetStepsForWindow fetches the intraday step series for the given user-local
// window at 15-minute detail
func (f *FitbitClient) GetStepsForWindow(ctx context.Context, window models.HourWindow) (*models.IntradaySeries, error) {
	url := fmt.Sprintf("%s/1/user/-/activities/steps/date/%s/1d/15min/time/%s/%s.json",
		f.baseURL, window.Date, window.Start, window.End)

	body, err := f.doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("steps request failed: %w", err)
	}

	var resp stepsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse steps response: %w", err)
	}

	return &resp.Intraday, nil
}

// doGet performs a single authenticated GET request
func (f *FitbitClient) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+f.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", f.locale)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fitbit returned status %d: %s", resp.StatusCode, snippet(body))
	}

	return body, nil
}

// snippet trims an error body for log-safe inclusion in error messages
func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// GetBaseURL returns the configured API base URL
func (f *FitbitClient) GetBaseURL() string {
	return f.baseURL
}
