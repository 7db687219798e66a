package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Product mirrors the server's catalog record.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrl"`
	Stock       int      `json:"stock"`
}

// ContactMessage mirrors a stored contact-form submission.
type ContactMessage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ProductPatch carries a partial edit. Nil fields are left untouched by
// the server; a non-nil zero (stock 0) is a real update.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURLs   []string `json:"imageUrl,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// APIError carries the server's message field verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client is the admin storefront client. It attaches the session token to
// every outgoing request uniformly and applies one centralized policy on
// authorization failure: clear the session and notify the configured hook.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *Session
	onUnauthorized func()

	// Cache mirrors the last confirmed product listing; mutations are
	// applied only after the server confirms them.
	Cache *ProductCache
}

// New builds a client for the given base URL.
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		session:    session,
		Cache:      NewProductCache(),
	}
}

// OnUnauthorized registers the single handler invoked when any request
// comes back 401. The session is cleared before the hook runs.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Session exposes the held session.
func (c *Client) Session() *Session {
	return c.session
}

type envelope struct {
	Success   bool            `json:"success"`
	Error     bool            `json:"error"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Product   json.RawMessage `json:"product"`
	ProductID string          `json:"productId"`
	Valid     bool            `json:"valid"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body still yields the status-based error below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

// Register creates the admin account and stores the issued token.
func (c *Client) Register(ctx context.Context, username, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	return c.storeToken(env)
}

// Login authenticates and stores the issued token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	return c.storeToken(env)
}

func (c *Client) storeToken(env *envelope) error {
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return err
	}
	return c.session.Set(data.Token)
}

// Logout discards the held token. The server keeps no session state to
// clear, so this is purely local.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// ChangePassword confirms the new password locally, then asks the server
// to replace the stored hash.
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return &APIError{StatusCode: http.StatusBadRequest, Message: "new password and confirmation do not match"}
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/forgetPassword", map[string]string{
		"username":    username,
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	return err
}

// Verify reports whether the held token is still accepted.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/verify", nil)
	if err != nil {
		var apiErr *APIError
		if asAPIError(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return env.Valid, nil
}

// SendMessage submits the public contact form.
func (c *Client) SendMessage(ctx context.Context, name, email, message string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/sendMessage", map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	})
	return err
}

// Messages fetches the admin's contact messages.
func (c *Client) Messages(ctx context.Context) ([]ContactMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/getMessages", nil)
	if err != nil {
		return nil, err
	}
	var messages []ContactMessage
	if err := json.Unmarshal(env.Data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Products fetches the catalog and replaces the local cache with the
// confirmed listing.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/getAllProducts", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Count    int       `json:"count"`
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	c.Cache.Replace(data.Products)
	return data.Products, nil
}

// UploadProduct creates a product; the confirmed record is prepended to
// the cache, matching the newest-first listing.
func (c *Client) UploadProduct(ctx context.Context, product Product) (*Product, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/uploadProduct", product)
	if err != nil {
		return nil, err
	}
	var created Product
	if err := json.Unmarshal(env.Product, &created); err != nil {
		return nil, err
	}
	c.Cache.Prepend(created)
	return &created, nil
}

// EditProduct applies a partial edit; the confirmed record replaces the
// cached one in place.
func (c *Client) EditProduct(ctx context.Context, productID string, patch ProductPatch) (*Product, error) {
	body := struct {
		ProductID string `json:"productId"`
		ProductPatch
	}{ProductID: productID, ProductPatch: patch}

	env, err := c.do(ctx, http.MethodPut, "/auth/editProduct", body)
	if err != nil {
		return nil, err
	}
	var updated Product
	if err := json.Unmarshal(env.Product, &updated); err != nil {
		return nil, err
	}
	c.Cache.Update(updated)
	return &updated, nil
}

// DeleteProduct removes a product; the confirmed id is dropped from the
// cache.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	env, err := c.do(ctx, http.MethodDelete, "/auth/deleteProduct/"+productID, nil)
	if err != nil {
		return err
	}
	removed := env.ProductID
	if removed == "" {
		removed = productID
	}
	c.Cache.Remove(removed)
	return nil
}

func asAPIError(err error, target **APIError) bool {
	apiErr, ok := err.(*APIError)
	if ok {
		*target = apiErr
	}
	return ok
}
