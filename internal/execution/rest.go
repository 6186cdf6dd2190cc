package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dorive/FiggieMachine/internal/infra"
	"github.com/dorive/FiggieMachine/pkg/cards"
)

const (
	minOrderPrice = 1
	maxOrderPrice = 99

	tempNamePrefix = "Temp player name: "
)

// Venue response statuses.
const (
	statusSuccess           = "SUCCESS"
	statusNoGame            = "NO_GAME"
	statusRateLimit         = "RATE_LIMIT"
	statusInvalidDirection  = "INVALID_DIRECTION"
	statusInvalidCard       = "INVALID_CARD"
	statusInvalidPrice      = "INVALID_PRICE"
	statusInsufficientFunds = "INSUFFICIENT_FUNDS"
	statusSelfTrade         = "SELF_TRADE"
	statusNoInventory       = "NO_INVENTORY"
	statusUnknownPlayer     = "UNKNOWN_PLAYER"
	statusMissingHeader     = "MISSING_HEADER"
)

// envelope is the venue's response payload. The venue double-encodes it:
// the HTTP body is a JSON string whose content is the JSON object.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RESTClient talks to the venue's HTTP API. All endpoints are POSTs
// identified by the Playerid header.
type RESTClient struct {
	baseURL    string
	playerID   string
	httpClient *http.Client
	limiter    *infra.RateLimiter
	breaker    *infra.CircuitBreaker
}

// NewRESTClient creates a venue client. maxBurst and perSecond bound the
// outgoing request rate; the venue enforces its own limit on top.
func NewRESTClient(baseURL, playerID string, maxBurst int, perSecond float64) *RESTClient {
	return &RESTClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		playerID: playerID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: infra.NewRateLimiter(maxBurst, perSecond),
		breaker: infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("venue-rest")),
	}
}

// SetPlayerID overrides the identity header. Used on competition day when
// the id is assigned instead of registered.
func (c *RESTClient) SetPlayerID(playerID string) {
	c.playerID = playerID
}

// RegisterTestnet registers the player id with the testnet venue and
// returns the temporary player name the venue assigned.
func (c *RESTClient) RegisterTestnet(ctx context.Context) (string, bool) {
	env, err := c.post(ctx, "/register_testnet", nil)
	if err != nil {
		slog.Error("Testnet registration failed", "error", err)
		return "", false
	}

	switch env.Status {
	case statusSuccess:
		name, ok := parseTempName(env.Message)
		if !ok {
			slog.Error("Testnet registration succeeded with unreadable message",
				"message", env.Message)
			return "", false
		}
		slog.Info("Registered to testnet", "name", name)
		return name, true
	case statusMissingHeader:
		slog.Error("Testnet registration rejected: missing player header")
		return "", false
	default:
		slog.Error("Testnet registration rejected", "status", env.Status)
		return "", false
	}
}

// PlaceOrder posts a resting order. Prices outside the venue's accepted
// band are rejected locally without a round trip.
func (c *RESTClient) PlaceOrder(ctx context.Context, suit cards.Suit, price int, direction cards.Direction) bool {
	if price < minOrderPrice || price > maxOrderPrice {
		slog.Error("Invalid order price", "price", price,
			"min", minOrderPrice, "max", maxOrderPrice)
		return false
	}

	body := map[string]any{
		"card":      suit.Wire(),
		"price":     price,
		"direction": direction.String(),
	}
	env, err := c.post(ctx, "/order", body)
	if err != nil {
		slog.Error("Order request failed", "suit", suit, "price", price,
			"direction", direction, "error", err)
		return false
	}

	if env.Status == statusSuccess {
		slog.Info("Order placed", "suit", suit, "price", price, "direction", direction)
		return true
	}
	logVenueRejection("order", env.Status)
	return false
}

// CancelOrder cancels the resting order on one side of a suit.
func (c *RESTClient) CancelOrder(ctx context.Context, suit cards.Suit, direction cards.Direction) bool {
	body := map[string]any{
		"card":      suit.Wire(),
		"direction": direction.String(),
	}
	env, err := c.post(ctx, "/cancel", body)
	if err != nil {
		slog.Error("Cancel request failed", "suit", suit,
			"direction", direction, "error", err)
		return false
	}

	if env.Status == statusSuccess {
		slog.Info("Order cancelled", "suit", suit, "direction", direction)
		return true
	}
	logVenueRejection("cancel", env.Status)
	return false
}

// Inventory queries the agent's own per-suit counts. The venue reports
// them as "spades,clubs,diamonds,hearts"; the result is reordered to the
// canonical suit order.
func (c *RESTClient) Inventory(ctx context.Context) ([cards.NumSuits]int, bool) {
	var inv [cards.NumSuits]int

	env, err := c.post(ctx, "/inventory", nil)
	if err != nil {
		slog.Error("Inventory request failed", "error", err)
		return inv, false
	}
	if env.Status != statusSuccess {
		logVenueRejection("inventory", env.Status)
		return inv, false
	}

	parsed, ok := parseInventory(env.Message)
	if !ok {
		slog.Error("Unreadable inventory message", "message", env.Message)
		return inv, false
	}
	return parsed, true
}

// post sends one request through the rate limiter and circuit breaker and
// decodes the status envelope. A nil body sends an empty POST.
func (c *RESTClient) post(ctx context.Context, path string, body map[string]any) (envelope, error) {
	if !c.breaker.Allow() {
		return envelope{}, fmt.Errorf("circuit breaker open for %s", path)
	}
	c.limiter.Wait()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encoding %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Playerid", c.playerID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return envelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return envelope{}, err
	}
	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()
		return envelope{}, fmt.Errorf("%s returned HTTP %d", path, resp.StatusCode)
	}
	c.breaker.RecordSuccess()

	return decodeEnvelope(raw)
}

// decodeEnvelope unwraps the venue's double-encoded response: the body is
// a JSON string containing the JSON object. A plain object is accepted
// too in case the venue ever drops the extra layer.
func decodeEnvelope(raw []byte) (envelope, error) {
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		var env envelope
		if err := json.Unmarshal([]byte(inner), &env); err != nil {
			return envelope{}, fmt.Errorf("decoding inner payload: %w", err)
		}
		return env, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, fmt.Errorf("decoding payload: %w", err)
	}
	return env, nil
}

// logVenueRejection maps each venue status to the severity it deserves.
// Transient game-state statuses are warnings, everything else points at a
// bug on our side.
func logVenueRejection(op, status string) {
	switch status {
	case statusNoGame:
		slog.Warn("No game is currently active", "op", op)
	case statusRateLimit:
		slog.Warn("Venue rate limit reached", "op", op)
	case statusInvalidDirection:
		slog.Error("Order direction rejected", "op", op)
	case statusInvalidCard:
		slog.Error("Suit rejected", "op", op)
	case statusInvalidPrice:
		slog.Error("Price rejected", "op", op)
	case statusInsufficientFunds:
		slog.Error("Not enough funds", "op", op)
	case statusSelfTrade:
		slog.Error("Order would self-trade", "op", op)
	case statusNoInventory:
		slog.Error("Selling a card we do not hold", "op", op)
	case statusUnknownPlayer:
		slog.Error("Player is not known to the venue", "op", op)
	case statusMissingHeader:
		slog.Error("Player header is missing", "op", op)
	default:
		slog.Error("Unrecognized venue status", "op", op, "status", status)
	}
}

// parseTempName extracts the assigned name from a registration message of
// the form "... Temp player name: NAME. ...".
func parseTempName(msg string) (string, bool) {
	start := strings.Index(msg, tempNamePrefix)
	if start < 0 {
		return "", false
	}
	start += len(tempNamePrefix)
	end := strings.Index(msg[start:], ".")
	if end < 0 {
		return "", false
	}
	return msg[start : start+end], true
}

// parseInventory reorders the venue's "spades,clubs,diamonds,hearts"
// counts into the canonical suit order.
func parseInventory(msg string) ([cards.NumSuits]int, bool) {
	var inv [cards.NumSuits]int

	parts := strings.Split(msg, ",")
	if len(parts) != cards.NumSuits {
		return inv, false
	}
	var wire [cards.NumSuits]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return inv, false
		}
		wire[i] = n
	}

	inv[cards.Spades] = wire[0]
	inv[cards.Clubs] = wire[1]
	inv[cards.Diamonds] = wire[2]
	inv[cards.Hearts] = wire[3]
	return inv, true
}
