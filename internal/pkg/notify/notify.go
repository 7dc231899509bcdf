package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// LateArrivalEvent is what the notification consumers receive when a
// check-in is classified late.
type LateArrivalEvent struct {
	EmployeeName    string `json:"employee_name"`
	EventKind       string `json:"event_kind"`
	Label           string `json:"label"`
	LatenessMinutes int    `json:"lateness_minutes"`
}

// Notifier publishes attendance notifications. Publishing is
// fire-and-forget from the resolver's point of view: failures are
// logged by the caller and never block or fail the resolution path.
type Notifier interface {
	PublishLateArrival(ctx context.Context, event LateArrivalEvent) error
}

// SQSClient sendMessage interface based on aws sdk
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSNotifier publishes notification events to an SQS queue consumed
// by the (out-of-process) delivery workers.
type SQSNotifier struct {
	client   SQSClient
	queueURL string
}

func NewSQSNotifier(client SQSClient, queueURL string) *SQSNotifier {
	return &SQSNotifier{
		client:   client,
		queueURL: queueURL,
	}
}

// PublishLateArrival sends a late-arrival event to the queue.
func (n *SQSNotifier) PublishLateArrival(ctx context.Context, event LateArrivalEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("LATE_ARRIVAL"),
			},
		},
	}

	if _, err := n.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to send message to notification queue: %w", err)
	}
	return nil
}

// LogNotifier is the fallback when no queue is configured; it keeps
// the notification path observable in development setups.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) PublishLateArrival(_ context.Context, event LateArrivalEvent) error {
	n.logger.Info("late arrival",
		"employee_name", event.EmployeeName,
		"event_kind", event.EventKind,
		"label", event.Label,
		"lateness_minutes", event.LatenessMinutes,
	)
	return nil
}
