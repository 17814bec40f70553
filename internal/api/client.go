package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dagimg/prdesk/internal/config"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/dagimg/prdesk/internal/session"
	"github.com/google/uuid"
)

// Client wraps every outbound call to the approval API. It attaches the
// bearer token from the session store, classifies failures into the shared
// error taxonomy, and invalidates the session on any 401 so dependents are
// redirected to login instead of retrying with a dead token.
type Client struct {
	cfg      config.Config
	http     *http.Client
	sessions *session.Store
	observer Observer
}

// NewClient creates a Client against the configured API origin.
func NewClient(cfg config.Config, sessions *session.Store, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{},
		sessions: sessions,
		observer: observer,
	}
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// RegisterInput is the body sent to the register endpoint.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsHOD     bool   `json:"is_HOD"`
}

// RequestPayload is the wire shape for creating or fully updating a purchase
// request. Approver and item quantities are integers on the wire; the editor
// performs the coercion before building one of these.
type RequestPayload struct {
	Title        string            `json:"title"`
	Department   string            `json:"department"`
	Approver     int               `json:"approver"`
	PurchaseType string            `json:"purchase_type"`
	Status       domain.Status     `json:"status,omitempty"`
	Items        []domain.LineItem `json:"items"`
}

// StatusUpdate is the body of a status transition. RejectionReason is only
// present when rejecting.
type StatusUpdate struct {
	Status          domain.Status `json:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login/", body, &resp, false); err != nil {
		return nil, err
	}
	if err := c.sessions.Set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/user/register/", in, nil, false)
}

// RequestPasswordReset asks the server to start a password reset for email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/user/password-reset/", body, nil, false)
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/api/user/profile/", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches the given profile fields.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodPatch, "/api/user/profile/", fields, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListRequests fetches the full purchase-request collection. The server does
// no paging on this endpoint; filtering and pagination happen client-side.
func (c *Client) ListRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	var out []domain.PurchaseRequest
	if err := c.do(ctx, http.MethodGet, "/api/purchase-requests-list/", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRequest fetches a single purchase request including its line items.
func (c *Client) GetRequest(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	path := fmt.Sprintf("/api/purchase-requests/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRequest submits a new purchase request.
func (c *Client) CreateRequest(ctx context.Context, payload RequestPayload) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	if err := c.do(ctx, http.MethodPost, "/api/purchase-requests/", payload, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequest replaces an existing purchase request in full.
func (c *Client) UpdateRequest(ctx context.Context, id int, payload RequestPayload) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	path := fmt.Sprintf("/api/purchase-requests/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, payload, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequest deletes a purchase request and all of its items.
func (c *Client) DeleteRequest(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/purchase-requests/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// UpdateStatus submits an approve/reject transition.
func (c *Client) UpdateStatus(ctx context.Context, id int, update StatusUpdate) (*domain.PurchaseRequest, error) {
	var out domain.PurchaseRequest
	path := fmt.Sprintf("/api/purchase-request-status/%d/update_status/", id)
	if err := c.do(ctx, http.MethodPatch, path, update, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// HODUsers fetches the eligible approvers.
func (c *Client) HODUsers(ctx context.Context) ([]domain.HODUser, error) {
	var out []domain.HODUser
	if err := c.do(ctx, http.MethodGet, "/api/hod-users/", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications fetches the full notification collection for the user.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications/", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead marks one notification as read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/notifications/%d/mark-read/", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, true)
}

// DashboardMetrics fetches the aggregate metrics for the given period.
func (c *Client) DashboardMetrics(ctx context.Context, period domain.MetricsPeriod) (*domain.DashboardMetrics, error) {
	var out domain.DashboardMetrics
	path := "/api/dashboard/metrics/?period=" + url.QueryEscape(string(period))
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// detailBody is the error envelope the server uses for failures.
type detailBody struct {
	Detail string `json:"detail"`
}

// do issues one HTTP call. Authenticated calls fail fast when no session is
// present or the stored JWT is already expired, without touching the network.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	start := time.Now()
	requestID := uuid.NewString()

	var token string
	if authed {
		token = c.sessions.Token()
		if token == "" {
			c.emit(method, path, 0, start, requestID, ErrNoSession)
			return ErrNoSession
		}
		if c.sessions.TokenExpired(time.Now()) {
			c.sessions.Invalidate(ctx)
			c.emit(method, path, 0, start, requestID, ErrAuthExpired)
			return ErrAuthExpired
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.emit(method, path, 0, start, requestID, err)
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.emit(method, path, resp.StatusCode, start, requestID, err)
		return fmt.Errorf("reading response: %w", err)
	}

	if err := c.classify(ctx, resp.StatusCode, respBody); err != nil {
		c.emit(method, path, resp.StatusCode, start, requestID, err)
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.emit(method, path, resp.StatusCode, start, requestID, err)
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	c.emit(method, path, resp.StatusCode, start, requestID, nil)
	return nil
}

// classify maps a non-2xx status to the shared error taxonomy. A 401 is the
// global signal to drop the local session.
func (c *Client) classify(ctx context.Context, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch status {
	case http.StatusUnauthorized:
		c.sessions.Invalidate(ctx)
		return ErrAuthExpired
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	var detail detailBody
	_ = json.Unmarshal(body, &detail)
	return &ServerError{StatusCode: status, Detail: detail.Detail}
}

func (c *Client) emit(method, path string, status int, start time.Time, requestID string, err error) {
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		RequestID: requestID,
		ErrorCode: errorCode(err),
	})
}
