package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	syncPath      = "/api/sync"
	forceSyncPath = "/api/sync/force"
	statusPath    = "/api/sync/status"
	versionPath   = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and installs adapterCfg.Token as the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(adapterCfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) HasToken() bool {
	return h.Token() != ""
}

// Pull implements [ServerAdapter] with GET /api/sync.
func (h *httpServerAdapter) Pull(ctx context.Context) (models.PullResult, error) {
	var body models.PullResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&body).
		Get(syncPath)
	if err != nil {
		return models.PullResult{}, fmt.Errorf("%w: pull request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResult{}, err
	}

	result := models.PullResult{LastSync: body.LastSync}
	if !models.IsEmptyPayload(body.Data) {
		result.Data = body.Data
	}
	return result, nil
}

// Push implements [ServerAdapter] with POST /api/sync.
func (h *httpServerAdapter) Push(ctx context.Context, payload models.SyncPayload) (time.Time, error) {
	localTimestamp := payload.LocalTimestamp
	return h.push(ctx, syncPath, models.PushRequest{
		AppData:        payload.AppData,
		LocalTimestamp: &localTimestamp,
	})
}

// ForcePush implements [ServerAdapter] with POST /api/sync/force.
func (h *httpServerAdapter) ForcePush(ctx context.Context, data models.Payload) (time.Time, error) {
	return h.push(ctx, forceSyncPath, models.ForcePushRequest{AppData: data})
}

func (h *httpServerAdapter) push(ctx context.Context, path string, request any) (time.Time, error) {
	var body models.PushResponse

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		SetResult(&body).
		Post(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: push request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "httpServerAdapter.push").Str("path", path).Msg("push rejected")
		return time.Time{}, err
	}

	return body.LastSync, nil
}

// Status implements [ServerAdapter] with GET /api/sync/status.
func (h *httpServerAdapter) Status(ctx context.Context) (models.StatusResponse, error) {
	var body models.StatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&body).
		Get(statusPath)
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("%w: status request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	return body, nil
}

// Version implements [ServerAdapter] with GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("%w: version request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
