package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"hourly-step-notifier/internal/models"
	"hourly-step-notifier/internal/services"
)

// CheckEvent represents the EventBridge trigger event
type CheckEvent struct {
	Source      string                 `json:"source"`
	DetailType  string                 `json:"detail-type"`
	Detail      map[string]interface{} `json:"detail"`
	TriggerType string                 `json:"trigger-type,omitempty"` // manual, scheduled
	Threshold   *int                   `json:"threshold,omitempty"`    // optional override of STEP_THRESHOLD
}

// CheckResponse represents the function response
type CheckResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RunID            string `json:"run_id"`
	StepTotal        int    `json:"step_total"`
	Threshold        int    `json:"threshold"`
	Notified         bool   `json:"notified"`
	WindowStart      string `json:"window_start"`
	WindowEnd        string `json:"window_end"`
	TriggerType      string `json:"trigger_type"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}

// stepSource provides profile and intraday step lookups
type stepSource interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	GetStepsForWindow(ctx context.Context, window models.HourWindow) (*models.IntradaySeries, error)
}

// alertPublisher delivers a below-threshold notification
type alertPublisher interface {
	PublishStepAlert(ctx context.Context, message string, report *models.StepReport) (string, error)
}

// alertComposer builds the notification text
type alertComposer interface {
	ComposeStepAlert(ctx context.Context, report *models.StepReport) string
}

// StepCheckOrchestrator handles the complete step check workflow
type StepCheckOrchestrator struct {
	fitbit    stepSource
	publisher alertPublisher
	composer  alertComposer
	runID     string
	now       func() time.Time
}

// NewStepCheckOrchestrator creates a new orchestrator with all required services
func NewStepCheckOrchestrator() (*StepCheckOrchestrator, error) {
	fitbitClient, err := services.NewFitbitClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Fitbit client: %w", err)
	}

	publisher, err := services.NewSNSPublisher()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SNS publisher: %w", err)
	}

	composer := services.NewMessageComposer()

	now := time.Now()

	return &StepCheckOrchestrator{
		fitbit:    fitbitClient,
		publisher: publisher,
		composer:  composer,
		runID:     models.GenerateRunID(now),
		now:       time.Now,
	}, nil
}

// CheckSteps runs the linear flow: profile, window, steps, sum, compare,
// conditionally notify. Any failure in the two required calls aborts the run.
func (o *StepCheckOrchestrator) CheckSteps(ctx context.Context, threshold int, triggerType string) (*models.StepReport, error) {
	profile, err := o.fitbit.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if err := profile.ValidateUTCOffset(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	window := models.ComputeHourWindow(o.now().UTC(), profile.OffsetFromUTCMillis)
	log.Printf("Checking steps for %s between %s and %s (local, offset %d ms)",
		window.Date, window.Start, window.End, profile.OffsetFromUTCMillis)

	series, err := o.fitbit.GetStepsForWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps: %w", err)
	}

	if issues := series.ValidateSamples(); len(issues) > 0 {
		log.Printf("Sample validation issues (continuing): %v", issues)
	}

	report := &models.StepReport{
		RunID:       o.runID,
		Window:      window,
		StepTotal:   series.Total(),
		Threshold:   threshold,
		TriggerType: triggerType,
		GeneratedAt: o.now(),
	}

	log.Printf("Summed %d samples to %d steps against threshold %d",
		len(series.Dataset), report.StepTotal, report.Threshold)

	if !report.BelowThreshold() {
		log.Printf("Hourly goal met, no notification")
		return report, nil
	}

	message := o.composer.ComposeStepAlert(ctx, report)

	messageID, err := o.publisher.PublishStepAlert(ctx, message, report)
	if err != nil {
		return report, fmt.Errorf("failed to publish notification: %w", err)
	}

	report.Notified = true
	log.Printf("Published step alert %s for run %s", messageID, report.RunID)

	return report, nil
}

// resolveThreshold picks the event override when present, else STEP_THRESHOLD
func resolveThreshold(event CheckEvent) (int, error) {
	if event.Threshold != nil {
		if err := models.ValidateThreshold(*event.Threshold); err != nil {
			return 0, err
		}
		return *event.Threshold, nil
	}

	raw := os.Getenv("STEP_THRESHOLD")
	if raw == "" {
		return 0, fmt.Errorf("STEP_THRESHOLD environment variable is required")
	}

	threshold, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid STEP_THRESHOLD %q: %w", raw, err)
	}

	if err := models.ValidateThreshold(threshold); err != nil {
		return 0, err
	}

	return threshold, nil
}

// resolveTriggerType mirrors EventBridge's source field when not set explicitly
func resolveTriggerType(event CheckEvent) string {
	if event.TriggerType != "" {
		return event.TriggerType
	}
	if event.Source == "aws.events" {
		return models.TriggerTypeScheduled
	}
	return models.TriggerTypeManual
}

// HandleRequest is the main Lambda handler function
func HandleRequest(ctx context.Context, event CheckEvent) (CheckResponse, error) {
	start := time.Now()

	log.Printf("Step check started with event: %+v", event)

	threshold, err := resolveThreshold(event)
	if err != nil {
		log.Printf("ERROR: %v", err)
		return CheckResponse{
			Success:          false,
			Message:          err.Error(),
			ProcessingTimeMS: time.Since(start).Milliseconds(),
		}, err
	}

	orchestrator, err := NewStepCheckOrchestrator()
	if err != nil {
		log.Printf("ERROR: failed to initialize orchestrator: %v", err)
		return CheckResponse{
			Success:          false,
			Message:          err.Error(),
			ProcessingTimeMS: time.Since(start).Milliseconds(),
		}, err
	}

	triggerType := resolveTriggerType(event)
	log.Printf("Running step check %s with trigger type %s, threshold %d",
		orchestrator.runID, triggerType, threshold)

	report, err := orchestrator.CheckSteps(ctx, threshold, triggerType)
	if err != nil {
		log.Printf("ERROR: step check failed: %v", err)
		resp := CheckResponse{
			Success:          false,
			Message:          err.Error(),
			RunID:            orchestrator.runID,
			Threshold:        threshold,
			TriggerType:      triggerType,
			ProcessingTimeMS: time.Since(start).Milliseconds(),
		}
		if report != nil {
			resp.StepTotal = report.StepTotal
			resp.WindowStart = report.Window.Start
			resp.WindowEnd = report.Window.End
		}
		return resp, err
	}

	message := fmt.Sprintf("Counted %d steps between %s and %s, goal met", report.StepTotal, report.Window.Start, report.Window.End)
	if report.Notified {
		message = fmt.Sprintf("Counted %d steps between %s and %s, notification sent", report.StepTotal, report.Window.Start, report.Window.End)
	}

	response := CheckResponse{
		Success:          true,
		Message:          message,
		RunID:            report.RunID,
		StepTotal:        report.StepTotal,
		Threshold:        report.Threshold,
		Notified:         report.Notified,
		WindowStart:      report.Window.Start,
		WindowEnd:        report.Window.End,
		TriggerType:      report.TriggerType,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}

	log.Printf("Step check completed: %s", response.Message)

	return response, nil
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(HandleRequest)
}
