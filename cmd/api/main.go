package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/optistyle/core-engine/internal/awsx"
	"github.com/optistyle/core-engine/internal/chat"
	"github.com/optistyle/core-engine/internal/config"
	"github.com/optistyle/core-engine/internal/counter"
	"github.com/optistyle/core-engine/internal/handlers"
	"github.com/optistyle/core-engine/internal/logging"
	"github.com/optistyle/core-engine/internal/metrics"
	"github.com/optistyle/core-engine/internal/notify"
	"github.com/optistyle/core-engine/internal/orders"
	"github.com/optistyle/core-engine/internal/storage"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.RegisterOrdersRoutes(r, cfg)
	handlers.RegisterMiscRoutes(r, cfg)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New("optistyle-api", cfg.HTTP.RunLocal)

	clients, err := awsx.NewClients(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init aws clients")
	}

	hcfg := handlers.HandlerConfig{
		Numbers:  counter.NewStore(clients.DynamoDB, cfg.Tables.Counters),
		Orders:   orders.NewStore(clients.DynamoDB, cfg.Tables.Orders),
		Uploader: storage.NewUploader(clients.S3, cfg.Storage.InvoiceBucket, clients.Region),
		Notifier: notify.NewPublisher(clients.SQS, cfg.Queue.NotificationsURL),
		Chat:     chat.New(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model),
		Metrics:  metrics.NewEmitter(clients.CloudWatch, logger),
		Logger:   logger,
	}

	r := setupRouter(hcfg)

	// Local HTTP server for development; Lambda behind API Gateway otherwise.
	if cfg.HTTP.RunLocal {
		logger.Info().Str("addr", cfg.HTTP.Addr).Msg("running local server")
		if err := r.Run(cfg.HTTP.Addr); err != nil {
			logger.Fatal().Err(err).Msg("failed to run local server")
		}
		return
	}

	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
