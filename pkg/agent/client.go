// Package agent is the HTTP client for the on-device companion agent. The
// agent runs on the attached handset (adb-forwarded on Android, tunneled on
// iOS) and exposes the raw OS telephony state as JSON; the platform bridges
// turn those raw answers into the normalized esim vocabulary.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	base string
	http *retryablehttp.Client
}

// New returns a client for the agent at baseURL. A timeout of zero picks a
// 15s default; it bounds single requests, not a whole OpenSetup call.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: rc,
	}
}

// Get performs a GET against the agent and returns the parsed JSON body.
func (c *Client) Get(ctx context.Context, path string) (gjson.Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	return c.do(req)
}

// Post performs a POST with a JSON body and returns the parsed JSON reply.
func (c *Client) Post(ctx context.Context, path string, body map[string]any) (gjson.Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.base+path, payload)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// do executes the request and maps agent-level failures onto the esim
// sentinel errors the bridges branch on: 403 means the companion app lacks
// the telephony permission, 404/501/503 mean the requested OS service does
// not exist on this device.
func (c *Client) do(req *retryablehttp.Request) (gjson.Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", esim.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("agent: reading %s: %w", req.URL.Path, err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return gjson.Result{}, esim.ErrPermissionDenied
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusNotImplemented,
		resp.StatusCode == http.StatusServiceUnavailable:
		return gjson.Result{}, fmt.Errorf("%w: agent returned %d for %s", esim.ErrServiceUnavailable, resp.StatusCode, req.URL.Path)
	case resp.StatusCode != http.StatusOK:
		return gjson.Result{}, fmt.Errorf("agent: %s returned %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return gjson.ParseBytes(raw), nil
}

// OSInfo identifies the handset behind the agent.
type OSInfo struct {
	Platform esim.Platform
	APILevel int    // Android only
	Major    int    // iOS only
	Minor    int    // iOS only
	Version  string // human-readable OS version
}

// OS fetches and parses GET /v1/os.
func (c *Client) OS(ctx context.Context) (OSInfo, error) {
	res, err := c.Get(ctx, "/v1/os")
	if err != nil {
		return OSInfo{}, err
	}

	info := OSInfo{Version: res.Get("version").String()}
	switch res.Get("platform").String() {
	case "android":
		info.Platform = esim.PlatformAndroid
		info.APILevel = int(res.Get("apiLevel").Int())
	case "ios":
		info.Platform = esim.PlatformIOS
		info.Major = int(res.Get("major").Int())
		info.Minor = int(res.Get("minor").Int())
	default:
		return OSInfo{}, fmt.Errorf("agent: unknown platform %q", res.Get("platform").String())
	}
	return info, nil
}
