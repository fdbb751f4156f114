package ui

import (
	"context"
	"culinary-calc/backend/app/dto"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is the JSON error body every backend endpoint returns.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client talks to the backend admin API. The session cookie lives in the
// client's cookie jar after Login.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json")
	return &Client{http: rc}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	apiErr := &APIError{}
	req := c.http.R().SetContext(ctx).SetError(apiErr)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if res.IsError() {
		apiErr.Status = res.StatusCode()
		return apiErr
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.UserSummary, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, "POST", "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.User.Role != "admin" {
		return nil, fmt.Errorf("%s is not an administrator", out.User.Email)
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/api/auth/logout", nil, nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*dto.AdminStats, error) {
	var out dto.AdminStats
	if err := c.do(ctx, "GET", "/api/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Users(ctx context.Context, page int, search string) (*dto.UserList, error) {
	var out dto.UserList
	if err := c.do(ctx, "GET", "/api/admin/users", map[string]string{"page": strconv.Itoa(page), "search": search}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tickets(ctx context.Context, page int, status string) (*dto.TicketList, error) {
	var out dto.TicketList
	if err := c.do(ctx, "GET", "/api/admin/support", map[string]string{"page": strconv.Itoa(page), "status": status}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetActive(ctx context.Context, userID string, active bool) error {
	return c.do(ctx, "PATCH", "/api/admin/users/"+userID+"/toggle-status", nil, dto.ToggleStatusRequest{IsActive: &active}, nil)
}

func (c *Client) SetRole(ctx context.Context, userID, role string) error {
	return c.do(ctx, "PATCH", "/api/admin/users/"+userID+"/role", nil, dto.UpdateRoleRequest{Role: role}, nil)
}

func (c *Client) Respond(ctx context.Context, ticketID, response, status string) error {
	return c.do(ctx, "POST", "/api/admin/support/"+ticketID+"/respond", nil, dto.RespondTicketRequest{Response: response, Status: status}, nil)
}
