package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/campusly/lms-platform/internal/core/ports"
)

const (
	signupPath     = "/auth/v1/signup"
	healthPath     = "/auth/v1/health"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// GoTrueConfig holds the endpoint and project key of a GoTrue-compatible auth server.
type GoTrueConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// RatePerSecond caps outbound signup calls. Zero disables the limit.
	RatePerSecond float64
	Burst         int
}

// GoTrueClient creates accounts through the GoTrue signup endpoint.
type GoTrueClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewGoTrueClient(cfg GoTrueConfig, httpClient *http.Client) *GoTrueClient {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	c := &GoTrueClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return c
}

type signupBody struct {
	Email    string               `json:"email"`
	Password string               `json:"password"`
	Data     ports.SignupMetadata `json:"data"`
}

// GoTrue returns the user at the top level when autoconfirm is on and nested
// under "user" when a session is issued.
type signupResponse struct {
	ID   string `json:"id"`
	User *struct {
		ID string `json:"id"`
	} `json:"user"`
}

type errorResponse struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SignUp creates the account and returns its id. Non-2xx responses become
// *ports.ProviderError carrying the provider's own message text.
func (c *GoTrueClient) SignUp(ctx context.Context, email, password string, meta ports.SignupMetadata) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("signup rate limit: %w", err)
		}
	}

	payload, err := json.Marshal(signupBody{Email: email, Password: password, Data: meta})
	if err != nil {
		return "", fmt.Errorf("encode signup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+signupPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("signup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", fmt.Errorf("read signup response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeProviderError(resp.StatusCode, body)
	}

	var out signupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode signup response: %w", err)
	}
	if out.ID != "" {
		return out.ID, nil
	}
	if out.User != nil {
		return out.User.ID, nil
	}
	return "", nil
}

// Health checks that the auth server answers its health endpoint.
func (c *GoTrueClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity health: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity health: status %d", resp.StatusCode)
	}
	return nil
}

func decodeProviderError(status int, body []byte) *ports.ProviderError {
	perr := &ports.ProviderError{Status: status}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		perr.Message = strings.TrimSpace(string(body))
		if perr.Message == "" {
			perr.Message = http.StatusText(status)
		}
		return perr
	}

	perr.Code = er.ErrorCode
	if s, ok := er.Code.(string); ok && perr.Code == "" {
		perr.Code = s
	}
	perr.Message = firstNonEmpty(er.Msg, er.Message, er.ErrorDescription, er.Error, http.StatusText(status))
	return perr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
