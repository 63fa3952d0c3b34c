package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// ClientOpts configures a [Client].
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *log.Logger
	// RateLimit paces requests (per second). Zero disables pacing.
	RateLimit float64
}

// Client talks to the MoodShift backend and implements [API].
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
	limiter    *rate.Limiter
}

var _ API = (*Client)(nil)

type noToken struct{}

func (noToken) Get() (string, bool) { return "", false }

// envelope is the backend's response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// NewClient creates a [Client]. The base URL defaults to [shared.DefaultBaseURL].
func NewClient(opts ClientOpts) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = shared.DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var tokens TokenSource = noToken{}
	if opts.Tokens != nil {
		tokens = opts.Tokens
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}

	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return c
}

// BaseURL returns the backend origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) AuthRedirectURL() string {
	return c.baseURL + "/auth/spotify"
}

func (c *Client) ExchangeCode(ctx context.Context, code string) Result[models.LoginResult] {
	endpoint := "/auth/callback?" + url.Values{"code": {code}}.Encode()
	return do[models.LoginResult](ctx, c, http.MethodGet, endpoint, nil)
}

func (c *Client) CurrentUser(ctx context.Context) Result[models.User] {
	return do[models.User](ctx, c, http.MethodGet, "/auth/me", nil)
}

func (c *Client) CreatePlaylist(ctx context.Context, text, name string) Result[models.Playlist] {
	body := models.CreatePlaylistRequest{CurhatanText: text, PlaylistName: name}
	return do[models.Playlist](ctx, c, http.MethodPost, "/playlists", body)
}

func (c *Client) ListPlaylists(ctx context.Context) Result[[]models.Playlist] {
	res := do[[]models.Playlist](ctx, c, http.MethodGet, "/playlists", nil)
	if res.Success && res.Data == nil {
		res.Data = []models.Playlist{}
	}
	return res
}

func (c *Client) GetPlaylist(ctx context.Context, id string) Result[models.Playlist] {
	return do[models.Playlist](ctx, c, http.MethodGet, "/playlists/"+url.PathEscape(id), nil)
}

// do performs a request and normalizes every outcome into a [Result].
func do[T any](ctx context.Context, c *Client, method, endpoint string, body any) Result[T] {
	requestID := shared.GenerateID()
	logger := c.logger.With("request_id", requestID, "method", method, "endpoint", endpoint)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Warn("rate limiter wait failed", "error", err)
			return Fail[T](networkMessage(err))
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			logger.Error("failed to encode request body", "error", err)
			return Fail[T](MsgUnknownError)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		logger.Error("failed to create request", "error", err)
		return Fail[T](networkMessage(err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token, ok := c.tokens.Get(); ok {
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	}

	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", "error", err)
		return Fail[T](networkMessage(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response", "status", resp.StatusCode, "error", err)
		return Fail[T](networkMessage(err))
	}

	res := decode[T](resp.StatusCode, data)
	if !res.Success {
		logger.Warn("request unsuccessful", "status", resp.StatusCode, "error", res.Error)
	} else {
		logger.Debug("request succeeded", "status", resp.StatusCode)
	}
	return res
}

// decode maps a status code and body to a [Result].
func decode[T any](status int, data []byte) Result[T] {
	var env envelope[T]
	decodeErr := json.Unmarshal(data, &env)

	if status < 200 || status >= 300 {
		if decodeErr == nil && strings.TrimSpace(env.Error) != "" {
			return Fail[T](env.Error)
		}
		return Fail[T](fmt.Sprintf("%s (status %d)", MsgUnknownError, status))
	}

	if decodeErr != nil {
		return Fail[T](MsgUnknownError)
	}

	if !env.Success {
		return Fail[T](strings.TrimSpace(env.Error))
	}

	return Ok(env.Data)
}

// networkMessage extracts a readable message from a transport failure.
func networkMessage(err error) string {
	if err == nil {
		return MsgNetworkError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgNetworkError
}
