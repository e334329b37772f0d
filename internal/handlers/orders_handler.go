package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/optistyle/core-engine/internal/invoice"
	"github.com/optistyle/core-engine/internal/metrics"
	"github.com/optistyle/core-engine/internal/notify"
	"github.com/optistyle/core-engine/internal/orders"
	"github.com/optistyle/core-engine/internal/validation"
)

// InvoiceNumberer hands out sequential invoice numbers.
type InvoiceNumberer interface {
	Next(ctx context.Context) (string, error)
}

// OrderStore persists and reads order records.
type OrderStore interface {
	Create(ctx context.Context, order orders.Order) error
	Get(ctx context.Context, orderID string) (*orders.Order, error)
	ListByUser(ctx context.Context, userEmail string) ([]orders.Order, error)
	List(ctx context.Context) ([]orders.Order, error)
}

// InvoiceUploader stores a rendered invoice and returns its public URL.
type InvoiceUploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// NotificationPublisher enqueues the post-checkout email job.
type NotificationPublisher interface {
	Publish(ctx context.Context, job notify.Job) error
}

// ChatService answers storefront widget messages.
type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	Numbers  InvoiceNumberer
	Orders   OrderStore
	Uploader InvoiceUploader
	Notifier NotificationPublisher
	Chat     ChatService
	Metrics  *metrics.Emitter
	Logger   zerolog.Logger

	// NowFunc defaults to time.Now; tests pin it.
	NowFunc func() time.Time
}

// RegisterOrdersRoutes registers the order ingestion and read routes.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	now := cfg.NowFunc
	if now == nil {
		now = time.Now
	}

	createOrder := func(c *gin.Context) {
		ctx := c.Request.Context()

		// Bind + validate request
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		// Sequential invoice number: the only cross-request coordination
		// point. Failure here aborts the order.
		invoiceNumber, err := cfg.Numbers.Next(ctx)
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("invoice numbering failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "invoice_numbering_failed"})
			return
		}

		orderID := uuid.NewString()
		createdAt := now().UTC()

		// Build the enriched order record
		order := orders.Order{
			OrderID:       orderID,
			InvoiceNumber: invoiceNumber,
			UserEmail:     req.UserEmail,
			CustomerName:  req.CustomerName,
			Address:       req.Address,
			TotalAmount:   req.TotalAmount,
			OrderStatus:   orders.StatusProcessing,
			PaymentStatus: orders.PaymentPaid,
			CreatedAt:     createdAt,
		}
		products := make([]orders.Product, 0, len(req.Products))
		for _, p := range req.Products {
			products = append(products, orders.Product{
				Name:     p.Name,
				Quantity: p.Quantity,
				Price:    p.Price,
				Color:    p.Color,
			})
		}
		order.Products = products

		// The invoice must exist before upload and persistence.
		pdf, err := invoice.Render(order, createdAt)
		if err != nil {
			cfg.Logger.Error().Err(err).Str("order_id", orderID).Msg("invoice rendering failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "invoice_rendering_failed"})
			return
		}

		// Best-effort upload: the order completes without an invoice URL.
		url, err := cfg.Uploader.Upload(ctx, pdf, invoice.Filename(invoiceNumber))
		if err != nil {
			cfg.Logger.Warn().Err(err).Str("order_id", orderID).Msg("invoice upload failed")
			cfg.Metrics.Count(ctx, metrics.InvoiceUploadFailure)
		} else {
			order.InvoiceURL = url
		}

		// Persist, then notify. A persistence failure aborts the request;
		// nothing already uploaded is compensated.
		if err := cfg.Orders.Create(ctx, order); err != nil {
			cfg.Logger.Error().Err(err).Str("order_id", orderID).Msg("order persistence failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "order_persistence_failed"})
			return
		}

		// Best-effort notification: queue the email job; the worker picks
		// it up off the request path.
		job := notify.Job{
			OrderID:       orderID,
			InvoiceNumber: invoiceNumber,
			CorrelationID: c.GetHeader("X-Request-Id"),
		}
		if err := cfg.Notifier.Publish(ctx, job); err != nil {
			cfg.Logger.Warn().Err(err).Str("order_id", orderID).Msg("notification publish failed")
			cfg.Metrics.Count(ctx, metrics.NotifyPublishFailure)
		}

		cfg.Metrics.Count(ctx, metrics.OrdersCreated)

		c.JSON(http.StatusCreated, gin.H{
			"success":       true,
			"orderId":       orderID,
			"invoiceNumber": invoiceNumber,
			"invoiceUrl":    order.InvoiceURL,
		})
	}

	r.POST("/api/orders", createOrder)
	r.POST("/api/order", createOrder) // legacy alias

	r.GET("/api/orders", func(c *gin.Context) {
		list, err := cfg.Orders.List(c.Request.Context())
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("order listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "order_listing_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
	})

	r.GET("/api/orders/:id", func(c *gin.Context) {
		order, err := cfg.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("order fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "order_fetch_failed"})
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	})

	r.GET("/api/users/:email/orders", func(c *gin.Context) {
		list, err := cfg.Orders.ListByUser(c.Request.Context(), c.Param("email"))
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("user order listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "order_listing_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
	})
}
