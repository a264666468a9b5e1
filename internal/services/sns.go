package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"hourly-step-notifier/internal/models"
)

// SNSPublisher delivers step alert notifications to an SNS topic
type SNSPublisher struct {
	client   *sns.Client
	topicARN string
	region   string
}

// SNSConfig holds configuration for the SNS publisher
type SNSConfig struct {
	TopicARN string
	Region   string
	Profile  string // AWS profile to use
}

// NewSNSPublisher creates an SNS publisher with AWS SDK v2
func NewSNSPublisher() (*SNSPublisher, error) {
	topicARN := os.Getenv("SNS_TOPIC_ARN")
	if topicARN == "" {
		return nil, fmt.Errorf("SNS_TOPIC_ARN environment variable is required")
	}

	return NewSNSPublisherWithConfig(SNSConfig{TopicARN: topicARN})
}

// NewSNSPublisherWithConfig creates an SNS publisher with custom configuration
func NewSNSPublisherWithConfig(snsConfig SNSConfig) (*SNSPublisher, error) {
	if snsConfig.TopicARN == "" {
		return nil, fmt.Errorf("topic ARN cannot be empty")
	}

	var cfg aws.Config
	var err error

	if snsConfig.Profile != "" {
		cfg, err = config.LoadDefaultConfig(
			context.TODO(),
			config.WithSharedConfigProfile(snsConfig.Profile),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if snsConfig.Region != "" {
		cfg.Region = snsConfig.Region
	}

	return &SNSPublisher{
		client:   sns.NewFromConfig(cfg),
		topicARN: snsConfig.TopicARN,
		region:   cfg.Region,
	}, nil
}

// PublishStepAlert publishes a below-threshold alert and returns the SNS
// message ID. Failures propagate to the caller with no retry.
func (p *SNSPublisher) PublishStepAlert(ctx context.Context, message string, report *models.StepReport) (string, error) {
	input := &sns.PublishInput{
		TopicArn:          aws.String(p.topicARN),
		Subject:           aws.String("Hourly step goal missed"),
		Message:           aws.String(message),
		MessageAttributes: alertAttributes(report),
	}

	result, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to publish to SNS: %w", err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}

	return messageID, nil
}

// alertAttributes builds the message attributes attached to every alert
func alertAttributes(report *models.StepReport) map[string]types.MessageAttributeValue {
	attrs := map[string]types.MessageAttributeValue{
		"runId": {
			DataType:    aws.String("String"),
			StringValue: aws.String(report.RunID),
		},
		"stepTotal": {
			DataType:    aws.String("Number"),
			StringValue: aws.String(strconv.Itoa(report.StepTotal)),
		},
		"threshold": {
			DataType:    aws.String("Number"),
			StringValue: aws.String(strconv.Itoa(report.Threshold)),
		},
	}

	// SNS rejects empty attribute values
	if report.TriggerType != "" {
		attrs["triggerType"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(report.TriggerType),
		}
	}

	return attrs
}

// GetTopicARN returns the configured topic ARN
func (p *SNSPublisher) GetTopicARN() string {
	return p.topicARN
}

// GetRegion returns the configured AWS region
func (p *SNSPublisher) GetRegion() string {
	return p.region
}
