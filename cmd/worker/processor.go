package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/optistyle/core-engine/internal/invoice"
	"github.com/optistyle/core-engine/internal/metrics"
	"github.com/optistyle/core-engine/internal/notify"
	"github.com/optistyle/core-engine/internal/orders"
)

// OrderReader fetches persisted orders.
type OrderReader interface {
	Get(ctx context.Context, orderID string) (*orders.Order, error)
}

// NoticeSender sends the two transactional emails.
type NoticeSender interface {
	SendAdminNotice(ctx context.Context, o orders.Order, pdf []byte) error
	SendCustomerNotice(ctx context.Context, o orders.Order, pdf []byte) error
}

// Processor dispatches notification jobs: it re-renders the invoice from the
// persisted order at its creation time (rendering is pure, so the bytes match
// the checkout copy) and sends the admin and customer emails.
//
// Delivery is at-most-once by contract: send failures are logged and counted,
// never returned, so the queue does not redrive them. Only an undecodable job
// errors out to the DLQ.
type Processor struct {
	orders  OrderReader
	mailer  NoticeSender
	metrics *metrics.Emitter
	logger  zerolog.Logger
}

// NewProcessor creates a worker processor.
func NewProcessor(orderStore OrderReader, mailer NoticeSender, emitter *metrics.Emitter, logger zerolog.Logger) *Processor {
	return &Processor{
		orders:  orderStore,
		mailer:  mailer,
		metrics: emitter,
		logger:  logger,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var job notify.Job
	if err := json.Unmarshal([]byte(rec.Body), &job); err != nil {
		return fmt.Errorf("invalid notification job body: %w", err)
	}

	logger := p.logger.With().
		Str("order_id", job.OrderID).
		Str("invoice_number", job.InvoiceNumber).
		Str("correlation_id", job.CorrelationID).
		Logger()

	order, err := p.orders.Get(ctx, job.OrderID)
	if err != nil {
		logger.Error().Err(err).Msg("order fetch failed, notification dropped")
		return nil
	}
	if order == nil {
		logger.Error().Msg("order not found, notification dropped")
		return nil
	}

	pdf, err := invoice.Render(*order, order.CreatedAt)
	if err != nil {
		// Send the emails anyway; they carry the order summary in the body.
		logger.Error().Err(err).Msg("invoice re-render failed, sending without attachment")
		pdf = nil
	}

	if err := p.mailer.SendAdminNotice(ctx, *order, pdf); err != nil {
		logger.Error().Err(err).Str("notice", "admin").Msg("email send failed")
		p.metrics.Count(ctx, metrics.EmailSendFailure)
	}
	if err := p.mailer.SendCustomerNotice(ctx, *order, pdf); err != nil {
		logger.Error().Err(err).Str("notice", "customer").Msg("email send failed")
		p.metrics.Count(ctx, metrics.EmailSendFailure)
	}

	logger.Info().Msg("notification dispatched")
	return nil
}
