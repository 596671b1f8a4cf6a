package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// DefaultGatewayURL is the OrderDesk v2 API base URL.
const DefaultGatewayURL = "https://app.orderdesk.me/api/v2"

const (
	ordersEndpoint         = "/orders"
	batchShipmentsEndpoint = "/batch-shipments"

	headerStoreID = "ORDERDESK-STORE-ID"
	headerAPIKey  = "ORDERDESK-API-KEY"

	maxResponseBytes = 1 << 20
	maxReasonBytes   = 512
)

// OrderDeskGateway implements ports.OrderGateway against the OrderDesk API.
type OrderDeskGateway struct {
	baseURL string
	client  ports.HTTPClient
	logger  ports.Logger
}

// NewOrderDeskGateway creates a gateway for the given API base URL.
func NewOrderDeskGateway(baseURL string, client ports.HTTPClient, logger ports.Logger) *OrderDeskGateway {
	return &OrderDeskGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

type ordersResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Orders  []struct {
		ID orderID `json:"id"`
	} `json:"orders"`
}

// orderID accepts both string and numeric ids.
type orderID string

func (o *orderID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = orderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	*o = orderID(n.String())
	return nil
}

// ResolveOrder looks up the order whose source id is externalRef and
// returns the id of the first match.
func (g *OrderDeskGateway) ResolveOrder(ctx context.Context, account domain.Account, externalRef string) (string, error) {
	query := url.Values{"source_id": {externalRef}}
	endpoint := g.baseURL + ordersEndpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req, account)

	body, status, err := g.do(req)
	if err != nil {
		return "", fmt.Errorf("fetch order %s: %w", externalRef, err)
	}
	if status/100 != 2 {
		return "", upstreamError(status, body)
	}

	var payload ordersResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: decode orders response: %v", domain.ErrUpstream, err)
	}
	if len(payload.Orders) == 0 {
		return "", fmt.Errorf("%w: source_id %s", domain.ErrOrderNotFound, externalRef)
	}

	id := string(payload.Orders[0].ID)
	if id == "" {
		return "", fmt.Errorf("%w: order for source_id %s has no id", domain.ErrUpstream, externalRef)
	}
	return id, nil
}

// SubmitShipments posts the shipments as one batch and returns the response
// body unmodified.
func (g *OrderDeskGateway) SubmitShipments(ctx context.Context, account domain.Account, shipments []domain.ResolvedShipment) (json.RawMessage, error) {
	if len(shipments) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(shipments)
	if err != nil {
		return nil, fmt.Errorf("marshal shipments: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+batchShipmentsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req, account)

	body, status, err := g.do(req)
	if err != nil {
		return nil, fmt.Errorf("post shipments: %w", err)
	}
	if status/100 != 2 {
		return nil, upstreamError(status, body)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: batch response is not JSON: %s", domain.ErrUpstream, truncate(body))
	}
	return json.RawMessage(body), nil
}

func (g *OrderDeskGateway) setHeaders(req *http.Request, account domain.Account) {
	req.Header.Set(headerStoreID, account.ID)
	req.Header.Set(headerAPIKey, account.Credential)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// do sends the request and reads at most maxResponseBytes of the body.
func (g *OrderDeskGateway) do(req *http.Request) ([]byte, int, error) {
	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	g.logger.Debug("gateway call",
		ports.String("method", req.Method),
		ports.String("path", req.URL.Path),
		ports.String("store_id", req.Header.Get(headerStoreID)),
		ports.Int("status", resp.StatusCode),
		ports.Duration("latency", time.Since(start)),
	)
	return body, resp.StatusCode, nil
}

// upstreamError builds an ErrUpstream error, preferring the API's own
// message over the raw body.
func upstreamError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	reason := truncate(body)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		reason = payload.Message
	}
	return fmt.Errorf("%w: server returned %d: %s", domain.ErrUpstream, status, reason)
}

func truncate(b []byte) string {
	if len(b) > maxReasonBytes {
		return string(b[:maxReasonBytes]) + "..."
	}
	return string(b)
}

// Ensure OrderDeskGateway implements ports.OrderGateway.
var _ ports.OrderGateway = (*OrderDeskGateway)(nil)
