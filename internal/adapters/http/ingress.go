package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// DefaultMaxBodyBytes caps the size of an ingress request body.
const DefaultMaxBodyBytes int64 = 1 << 20

const (
	queuedMessage  = "Shipments queued for processing"
	invalidMessage = "Invalid request payload"
)

var errInvalidPayload = errors.New("invalid payload")

// Enqueuer accepts shipment events for the next dispatch cycle.
type Enqueuer interface {
	Enqueue(events ...domain.ShipmentEvent) int
	QueueLen() int
}

// IngressConfig configures the ingress router.
type IngressConfig struct {
	// MaxBodyBytes limits POST bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// Status reports the relay state for /healthz. Optional.
	Status func() string
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// shipmentRequest is the wire shape of one notification.
type shipmentRequest struct {
	SourceID       string `json:"source_id" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
	CarrierCode    string `json:"carrier_code"`
	ShipmentMethod string `json:"shipment_method"`
}

func (r shipmentRequest) event() domain.ShipmentEvent {
	return domain.ShipmentEvent{
		ExternalReference: r.SourceID,
		TrackingNumber:    r.TrackingNumber,
		CarrierCode:       r.CarrierCode,
		ShipmentMethod:    r.ShipmentMethod,
	}
}

// NewRouter builds the gin engine serving the ingress endpoints.
func NewRouter(cfg IngressConfig, queue Enqueuer, logger ports.Logger) *gin.Engine {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	router := gin.New()
	router.Use(recovery(logger), requestLogger(logger))

	h := &ingressHandler{queue: queue, logger: logger, maxBody: cfg.MaxBodyBytes}
	router.POST("/", h.enqueue)
	router.GET("/healthz", func(c *gin.Context) {
		status := "unknown"
		if cfg.Status != nil {
			status = cfg.Status()
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "queue_depth": queue.QueueLen()})
	})
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}
	return router
}

type ingressHandler struct {
	queue   Enqueuer
	logger  ports.Logger
	maxBody int64
}

func (h *ingressHandler) enqueue(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		h.reject(c, err)
		return
	}

	events, err := decodeShipments(body)
	if err != nil {
		h.reject(c, err)
		return
	}

	depth := h.queue.Enqueue(events...)
	h.logger.Debug("shipments queued",
		ports.Int("count", len(events)),
		ports.Int("queue_depth", depth),
	)
	c.JSON(http.StatusAccepted, gin.H{"message": queuedMessage, "queued": len(events)})
}

func (h *ingressHandler) reject(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"message": invalidMessage})
}

// decodeShipments accepts a single object or an array of objects. Every
// element must carry a source_id; otherwise nothing is returned.
func decodeShipments(body []byte) ([]domain.ShipmentEvent, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errInvalidPayload
	}

	var raw []json.RawMessage
	switch body[0] {
	case '{':
		raw = []json.RawMessage{body}
	case '[':
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, errInvalidPayload
	}

	events := make([]domain.ShipmentEvent, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, errInvalidPayload
		}
		var req shipmentRequest
		if err := json.Unmarshal(item, &req); err != nil {
			return nil, err
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			return nil, err
		}
		events = append(events, req.event())
	}
	return events, nil
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []ports.Field{
			ports.String("method", c.Request.Method),
			ports.String("path", c.Request.URL.Path),
			ports.Int("status", status),
			ports.Duration("latency", time.Since(start)),
			ports.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, ports.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			logger.Error("http request", fields...)
		case status >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Debug("http request", fields...)
		}
	}
}

func recovery(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					ports.String("method", c.Request.Method),
					ports.String("path", c.Request.URL.Path),
					ports.Any("panic", r),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
