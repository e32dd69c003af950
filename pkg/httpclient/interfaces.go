package httpclient

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
)

const (
	// DefaultHTTPSPort is used for TLS targets without an explicit or embedded port.
	DefaultHTTPSPort = 443
	// DefaultHTTPPort is used for plain targets without an explicit or embedded port.
	DefaultHTTPPort = 80
)

// ErrEmptyHost is returned for targets whose host is empty once any port is removed.
var ErrEmptyHost = errors.New("empty host")

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	// Reason is the reason phrase sent by the server, without the status code.
	Reason() string
	// ProtoCode encodes the protocol version as major*10+minor (11 for HTTP/1.1).
	ProtoCode() int
}

// Transport opens a connection for a single request, sends it, reads the whole
// response and closes the connection before returning.
type Transport interface {
	Do(ctx context.Context, target Target) (Response, error)
}

// Target describes one request against one host.
type Target struct {
	Secure bool
	Method string
	// Host carries no scheme and no path. It may end in ":port".
	Host string
	// Port overrides any port embedded in Host. Zero keeps the embedded port,
	// falling back to the scheme default.
	Port int
	// Path is sent as "/" when empty.
	Path string
}

// Scheme returns "https" for secure targets and "http" otherwise.
func (t Target) Scheme() string {
	if t.Secure {
		return "https"
	}
	return "http"
}

// Addr resolves the host:port the transport dials.
func (t Target) Addr() string {
	host, port := t.resolve()
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Authority is the host part of the request URL and Host header. The port is
// left out when it is the scheme default.
func (t Target) Authority() string {
	host, port := t.resolve()
	if port == t.defaultPort() {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Validate rejects targets the transport cannot dial.
func (t Target) Validate() error {
	if host, _ := splitPort(t.Host); host == "" {
		return ErrEmptyHost
	}
	return nil
}

// RequestPath returns the path placed on the request line, byte for byte.
func (t Target) RequestPath() string {
	if t.Path == "" {
		return "/"
	}
	return t.Path
}

// URL renders the absolute URL, used for error messages.
func (t Target) URL() string {
	return t.Scheme() + "://" + t.Authority() + t.RequestPath()
}

func (t Target) resolve() (string, int) {
	host, embedded := splitPort(t.Host)
	port := t.Port
	if port <= 0 {
		port = embedded
	}
	if port <= 0 {
		port = t.defaultPort()
	}
	return host, port
}

func (t Target) defaultPort() int {
	if t.Secure {
		return DefaultHTTPSPort
	}
	return DefaultHTTPPort
}

func splitPort(host string) (string, int) {
	h, p, err := net.SplitHostPort(host)
	if err != nil {
		return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"), 0
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return h, 0
	}
	return h, port
}
