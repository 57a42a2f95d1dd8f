package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rosterhq/roster/internal/application/ports"
	"github.com/rosterhq/roster/internal/domain"
)

// HTTPProvider talks to the external identity provider's admin REST API.
// Provider errors are returned as-is (wrapped with the failed operation and
// status only); callers never interpret them.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// HTTPProviderOption configures HTTPProvider.
type HTTPProviderOption func(*HTTPProvider)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.client = c
	}
}

// NewHTTPProvider returns an IdentityProvider backed by the admin API at
// baseURL. apiKey is sent as a bearer token on every request.
func NewHTTPProvider(baseURL, apiKey string, opts ...HTTPProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HTTPProvider) CreateIdentity(ctx context.Context, params ports.IdentityParams) error {
	body := map[string]string{
		"uid":          params.UID,
		"email":        params.Email,
		"password":     params.Password,
		"display_name": params.DisplayName,
	}
	return p.do(ctx, http.MethodPost, "/admin/identities", body, "create identity")
}

func (p *HTTPProvider) DeleteIdentity(ctx context.Context, uid string) error {
	return p.do(ctx, http.MethodDelete, "/admin/identities/"+url.PathEscape(uid), nil, "delete identity")
}

func (p *HTTPProvider) SetCustomClaims(ctx context.Context, uid string, role domain.Role) error {
	body := map[string]string{"role": role.String()}
	return p.do(ctx, http.MethodPut, "/admin/identities/"+url.PathEscape(uid)+"/claims", body, "set custom claims")
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body interface{}, op string) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &providerError{op: op, status: resp.StatusCode}
	}
	return nil
}

type providerError struct {
	op     string
	status int
}

func (e *providerError) Error() string {
	return fmt.Sprintf("identity provider: %s returned status %d", e.op, e.status)
}

var _ ports.IdentityProvider = (*HTTPProvider)(nil)
