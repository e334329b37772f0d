// Package metrics emits operational counters to CloudWatch. Emission is
// best-effort: a metrics outage must never affect an order.
package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"

	"github.com/optistyle/core-engine/internal/awsx"
)

const namespace = "OptiStyle/CoreEngine"

// Metric names emitted by the engine.
const (
	OrdersCreated        = "OrdersCreated"
	InvoiceUploadFailure = "InvoiceUploadFailure"
	EmailSendFailure     = "EmailSendFailure"
	NotifyPublishFailure = "NotifyPublishFailure"
	ChatRequest          = "ChatRequest"
)

// Emitter publishes count metrics. A nil Emitter is a no-op, so callers can
// wire it unconditionally.
type Emitter struct {
	client  awsx.CloudWatchAPI
	logger  zerolog.Logger
	nowFunc func() time.Time
}

// NewEmitter returns an Emitter that logs (and swallows) publish failures.
func NewEmitter(client awsx.CloudWatchAPI, logger zerolog.Logger) *Emitter {
	return &Emitter{
		client:  client,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Count adds 1 to the named metric.
func (e *Emitter) Count(ctx context.Context, name string) {
	if e == nil || e.client == nil {
		return
	}

	now := e.nowFunc()
	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: awsString(namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      awsFloat(1),
			},
		},
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("metric", name).Msg("metric emission failed")
	}
}

func awsString(s string) *string  { return &s }
func awsFloat(f float64) *float64 { return &f }
