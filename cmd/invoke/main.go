package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdaclient "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/uuid"
)

// invokeEvent mirrors the handler's CheckEvent for manual triggers
type invokeEvent struct {
	Source      string                 `json:"source"`
	DetailType  string                 `json:"detail-type"`
	Detail      map[string]interface{} `json:"detail"`
	TriggerType string                 `json:"trigger-type"`
	Threshold   *int                   `json:"threshold,omitempty"`
}

func main() {
	functionName := flag.String("function", "hourly-step-notifier", "Lambda function name to invoke")
	threshold := flag.Int("threshold", -1, "optional step threshold override (-1 uses the function's configuration)")
	sync := flag.Bool("sync", false, "invoke synchronously and print the response payload")
	region := flag.String("region", "", "AWS region override")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var opts []func(*config.LoadOptions) error
	if *region != "" {
		opts = append(opts, config.WithRegion(*region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	client := lambdaclient.NewFromConfig(cfg)

	event := invokeEvent{
		Source:      "manual-invoke",
		DetailType:  "step-check-request",
		TriggerType: "manual",
		Detail: map[string]interface{}{
			"request_id":   uuid.New().String(),
			"requested_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if *threshold >= 0 {
		event.Threshold = threshold
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	invocationType := lambdatypes.InvocationTypeEvent
	if *sync {
		invocationType = lambdatypes.InvocationTypeRequestResponse
	}

	result, err := client.Invoke(ctx, &lambdaclient.InvokeInput{
		FunctionName:   aws.String(*functionName),
		InvocationType: invocationType,
		Payload:        payload,
	})
	if err != nil {
		log.Fatalf("Failed to invoke %s: %v", *functionName, err)
	}

	if !*sync {
		log.Printf("Triggered %s asynchronously (status %d)", *functionName, result.StatusCode)
		return
	}

	if result.FunctionError != nil {
		log.Printf("Function returned an error: %s", *result.FunctionError)
	}

	// Pretty-print the response payload
	var pretty map[string]interface{}
	if err := json.Unmarshal(result.Payload, &pretty); err != nil {
		fmt.Println(string(result.Payload))
		os.Exit(0)
	}

	formatted, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		fmt.Println(string(result.Payload))
		os.Exit(0)
	}

	fmt.Println(string(formatted))
}
