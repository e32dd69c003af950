package httpy

import (
	"context"
	"fmt"

	"github.com/samvad-hq/httpy/pkg/httpclient"
)

// HTTPSRequest sends one request over TLS. A zero port means the port embedded
// in host, or 443.
func (c *Client) HTTPSRequest(ctx context.Context, method, host, path string, port int) (Result, error) {
	return c.dispatch(ctx, httpclient.Target{Secure: true, Method: method, Host: host, Path: path, Port: port})
}

// HTTPRequest sends one request over plain TCP. A zero port means the port
// embedded in host, or 80.
func (c *Client) HTTPRequest(ctx context.Context, method, host, path string, port int) (Result, error) {
	return c.dispatch(ctx, httpclient.Target{Method: method, Host: host, Path: path, Port: port})
}

func (c *Client) dispatch(ctx context.Context, target httpclient.Target) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.log.DebugObj("dispatching request", "target", map[string]any{
		"scheme": target.Scheme(),
		"method": target.Method,
		"addr":   target.Addr(),
		"path":   target.RequestPath(),
	})

	resp, err := c.transport.Do(ctx, target)
	if err != nil {
		c.log.ErrorObj("request failed", "error", err)
		return Result{}, fmt.Errorf("%s %s: %w", target.Method, target.URL(), err)
	}

	res, err := BuildResult(resp)
	if err != nil {
		c.log.ErrorObj("response normalization failed", "error", err)
		return Result{}, fmt.Errorf("%s %s: %w", target.Method, target.URL(), err)
	}
	c.log.DebugObj("request completed", "result_meta", map[string]any{
		"status":  res.Status,
		"version": res.Version,
		"empty":   res.Body.IsEmpty(),
	})
	return res, nil
}
