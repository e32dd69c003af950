package httpy

import (
	"context"
	"net/http"

	"github.com/samvad-hq/httpy/pkg/httpclient"
)

// Get fetches url with the default client.
func Get(ctx context.Context, url string) (Result, error) {
	return defaultClient().Get(ctx, url)
}

// GetPort fetches url on port with the default client.
func GetPort(ctx context.Context, url string, port int) (Result, error) {
	return defaultClient().GetPort(ctx, url, port)
}

// Get issues a GET for url. The request goes over TLS only when url starts
// with "https://"; everything else, including scheme-less input, is plain HTTP.
func (c *Client) Get(ctx context.Context, url string) (Result, error) {
	return c.get(ctx, url, 0)
}

// GetPort is Get with an explicit port. Port 443 forces TLS even without an
// "https://" prefix. A port <= 0 behaves like Get.
func (c *Client) GetPort(ctx context.Context, url string, port int) (Result, error) {
	if port < 0 {
		port = 0
	}
	return c.get(ctx, url, port)
}

func (c *Client) get(ctx context.Context, url string, port int) (Result, error) {
	host, path, _ := SplitHost(StripScheme(url))
	if IsHTTPS(url) || port == httpclient.DefaultHTTPSPort {
		return c.HTTPSRequest(ctx, http.MethodGet, host, path, port)
	}
	return c.HTTPRequest(ctx, http.MethodGet, host, path, port)
}
