// Package notify publishes order-notification jobs to the background queue.
// Post-checkout emails run as queued work so failures stay observable without
// blocking the checkout response.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/optistyle/core-engine/internal/awsx"
)

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	client   awsx.SQSAPI
	queueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(client awsx.SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
	}
}

// Publish enqueues a notification job. Order identifiers ride along as
// message attributes for queue-side filtering and tracing.
func (p *Publisher) Publish(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    &p.queueURL,
		MessageBody: awsString(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"order_id": {
				DataType:    awsString("String"),
				StringValue: &job.OrderID,
			},
			"invoice_number": {
				DataType:    awsString("String"),
				StringValue: &job.InvoiceNumber,
			},
		},
	}
	if job.CorrelationID != "" {
		input.MessageAttributes["correlation_id"] = sqstypes.MessageAttributeValue{
			DataType:    awsString("String"),
			StringValue: &job.CorrelationID,
		}
	}

	if _, err := p.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send notification message: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
