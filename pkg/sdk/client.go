// Package sdk is a typed HTTP client for the vaadly catalogue API. It
// covers admin login, tool invocation, resource reads, and report prompt
// generation.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the service, decoded from the
// problem-details body.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Title, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Title, e.Status)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to a vaadly server. It is safe for concurrent use after
// Login; SetToken and Login must not race with in-flight requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sets the bearer token up front, skipping Login.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the server at baseURL (scheme://host[:port],
// no trailing path).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges the admin password for an access token and stores it on
// the client for subsequent requests.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, body, &out); err != nil {
		return "", fmt.Errorf("sdk.Login: %w", err)
	}
	c.token = out.AccessToken
	return out.AccessToken, nil
}

// CreateTenant registers a tenant in a vacant apartment.
func (c *Client) CreateTenant(ctx context.Context, params CreateTenantParams) (*TenantInfo, error) {
	var out struct {
		Tenant *TenantInfo `json:"tenant"`
	}
	if err := c.invokeTool(ctx, "create_tenant", params, &out); err != nil {
		return nil, fmt.Errorf("sdk.CreateTenant: %w", err)
	}
	return out.Tenant, nil
}

// GetTenant returns the active tenant of an apartment, or nil when vacant.
func (c *Client) GetTenant(ctx context.Context, building, apartment int) (*TenantInfo, error) {
	args := map[string]any{
		"building_number":  building,
		"apartment_number": apartment,
	}
	var out struct {
		Tenant *TenantInfo `json:"tenant"`
	}
	if err := c.invokeTool(ctx, "get_tenant", args, &out); err != nil {
		return nil, fmt.Errorf("sdk.GetTenant: %w", err)
	}
	return out.Tenant, nil
}

// UpdateTenant applies a partial update to the active tenant. Keys follow
// the tenant JSON field names; unknown keys are rejected by the server.
func (c *Client) UpdateTenant(ctx context.Context, building, apartment int, updates map[string]any) (*TenantInfo, error) {
	args := map[string]any{
		"building_number":  building,
		"apartment_number": apartment,
	}
	for k, v := range updates {
		args[k] = v
	}
	var out struct {
		Tenant *TenantInfo `json:"tenant"`
	}
	if err := c.invokeTool(ctx, "update_tenant", args, &out); err != nil {
		return nil, fmt.Errorf("sdk.UpdateTenant: %w", err)
	}
	return out.Tenant, nil
}

// EndTenancy moves the active tenant out and returns the archived record.
// An empty moveOutDate means today.
func (c *Client) EndTenancy(ctx context.Context, building, apartment int, moveOutDate string) (*HistoryRecord, error) {
	args := map[string]any{
		"building_number":  building,
		"apartment_number": apartment,
	}
	if moveOutDate != "" {
		args["move_out_date"] = moveOutDate
	}
	var out struct {
		History *HistoryRecord `json:"history"`
	}
	if err := c.invokeTool(ctx, "end_tenancy", args, &out); err != nil {
		return nil, fmt.Errorf("sdk.EndTenancy: %w", err)
	}
	return out.History, nil
}

// Buildings lists the configured buildings.
func (c *Client) Buildings(ctx context.Context) ([]BuildingInfo, error) {
	var out struct {
		Buildings []BuildingInfo `json:"buildings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/resources/buildings", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("sdk.Buildings: %w", err)
	}
	return out.Buildings, nil
}

// BuildingOccupancy returns a building's identity merged with its occupancy
// stats, or nil when the building is not configured.
func (c *Client) BuildingOccupancy(ctx context.Context, building int) (*BuildingInfo, error) {
	var out struct {
		Building  BuildingInfo `json:"building"`
		Occupancy struct {
			Occupied      int     `json:"occupied"`
			Vacant        int     `json:"vacant"`
			OccupancyRate float64 `json:"occupancy_rate"`
		} `json:"occupancy"`
	}
	path := "/api/v1/resources/buildings/" + strconv.Itoa(building)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("sdk.BuildingOccupancy: %w", err)
	}
	return &BuildingInfo{
		Number:          out.Building.Number,
		TotalApartments: out.Building.TotalApartments,
		Occupied:        out.Occupancy.Occupied,
		Vacant:          out.Occupancy.Vacant,
		OccupancyRate:   out.Occupancy.OccupancyRate,
	}, nil
}

// AllTenants lists active tenants, optionally scoped to one building.
func (c *Client) AllTenants(ctx context.Context, building *int) ([]TenantInfo, error) {
	var query url.Values
	if building != nil {
		query = url.Values{"building": []string{strconv.Itoa(*building)}}
	}
	var out struct {
		Tenants []TenantInfo `json:"tenants"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/resources/tenants", query, nil, &out); err != nil {
		return nil, fmt.Errorf("sdk.AllTenants: %w", err)
	}
	return out.Tenants, nil
}

// TenantHistory lists the archived tenancies of an apartment, most recent
// move-in first.
func (c *Client) TenantHistory(ctx context.Context, building, apartment int) ([]HistoryRecord, error) {
	path := fmt.Sprintf("/api/v1/resources/tenants/%d/%d/history", building, apartment)
	var out struct {
		History []HistoryRecord `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("sdk.TenantHistory: %w", err)
	}
	return out.History, nil
}

// OccupancyReportPrompt renders the occupancy report prompt, optionally
// scoped to one building.
func (c *Client) OccupancyReportPrompt(ctx context.Context, building *int) ([]PromptMessage, error) {
	args := map[string]any{}
	if building != nil {
		args["building"] = *building
	}
	msgs, err := c.generatePrompt(ctx, "occupancy_report", args)
	if err != nil {
		return nil, fmt.Errorf("sdk.OccupancyReportPrompt: %w", err)
	}
	return msgs, nil
}

// TenantListReportPrompt renders the tenant list report prompt.
func (c *Client) TenantListReportPrompt(ctx context.Context, building *int, includeContacts bool) ([]PromptMessage, error) {
	args := map[string]any{"include_contacts": includeContacts}
	if building != nil {
		args["building"] = *building
	}
	msgs, err := c.generatePrompt(ctx, "tenant_list_report", args)
	if err != nil {
		return nil, fmt.Errorf("sdk.TenantListReportPrompt: %w", err)
	}
	return msgs, nil
}

func (c *Client) invokeTool(ctx context.Context, name string, args any, out any) error {
	body := map[string]any{
		"name":      name,
		"arguments": args,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/tools/invoke", nil, body, out)
}

func (c *Client) generatePrompt(ctx context.Context, name string, args map[string]any) ([]PromptMessage, error) {
	body := map[string]any{
		"name":      name,
		"arguments": args,
	}
	var out struct {
		Messages []PromptMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/prompts/generate", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
