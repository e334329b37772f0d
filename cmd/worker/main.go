package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"

	"github.com/optistyle/core-engine/internal/awsx"
	"github.com/optistyle/core-engine/internal/config"
	"github.com/optistyle/core-engine/internal/logging"
	"github.com/optistyle/core-engine/internal/mailer"
	"github.com/optistyle/core-engine/internal/metrics"
	"github.com/optistyle/core-engine/internal/orders"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New("optistyle-worker", cfg.HTTP.RunLocal)

	clients, err := awsx.NewClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	p := NewProcessor(
		orders.NewStore(clients.DynamoDB, cfg.Tables.Orders),
		mailer.New(clients.SES, cfg.Mail.Sender, cfg.Mail.AdminEmail),
		metrics.NewEmitter(clients.CloudWatch, logger),
		logger,
	)

	// Local mode polls the queue directly; deployed, SQS drives the Lambda.
	if cfg.HTTP.RunLocal {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		runPoller(ctx, clients.SQS, cfg.Queue.NotificationsURL, cfg.Queue.WorkerConcurrency, p, logger)
		return
	}

	lambda.Start(p.Handle)
}

// runPoller long-polls the notification queue and dispatches messages with
// bounded concurrency until ctx is cancelled.
func runPoller(ctx context.Context, client awsx.SQSAPI, queueURL string, concurrency int, p *Processor, logger zerolog.Logger) {
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	logger.Info().Int("concurrency", concurrency).Msg("polling notification queue")

	for ctx.Err() == nil {
		out, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &queueURL,
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error().Err(err).Msg("receive message failed")
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range out.Messages {
			msg := msg
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()

				ev := events.SQSEvent{Records: []events.SQSMessage{{
					MessageId: deref(msg.MessageId),
					Body:      deref(msg.Body),
				}}}
				if err := p.Handle(ctx, ev); err != nil {
					// Malformed job: leave it for the redrive policy.
					logger.Error().Err(err).Msg("message handling failed")
					return
				}
				if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
					QueueUrl:      &queueURL,
					ReceiptHandle: msg.ReceiptHandle,
				}); err != nil {
					logger.Error().Err(err).Msg("delete message failed")
				}
			}()
		}
	}

	wg.Wait()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
