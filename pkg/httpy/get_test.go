package httpy

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/samvad-hq/httpy/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	targets []httpclient.Target
	resp    httpclient.Response
	err     error
}

func (r *recordingTransport) Do(_ context.Context, target httpclient.Target) (httpclient.Response, error) {
	r.targets = append(r.targets, target)
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

func okTransport(body string) *recordingTransport {
	return &recordingTransport{resp: stubResponse{code: 200, reason: "OK", proto: 11, body: []byte(body)}}
}

func TestGetHTTPSScheme(t *testing.T) {
	tr := okTransport(`{"id":5}`)
	c := NewClient(WithTransport(tr))

	res, err := c.Get(context.Background(), "https://example.com/resource")
	require.NoError(t, err)

	assert.Equal(t, "200 OK", res.Status)
	assert.Equal(t, "HTTP/1.1", res.Version)
	assert.Equal(t, map[string]interface{}{"id": float64(5)}, res.Body.Value())

	require.Len(t, tr.targets, 1)
	got := tr.targets[0]
	assert.True(t, got.Secure)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "example.com", got.Host)
	assert.Equal(t, "/resource", got.Path)
	assert.Equal(t, "example.com:443", got.Addr())
}

func TestGetPort443ForcesHTTPS(t *testing.T) {
	tr := okTransport("")
	c := NewClient(WithTransport(tr))

	_, err := c.GetPort(context.Background(), "example.com/path", 443)
	require.NoError(t, err)

	require.Len(t, tr.targets, 1)
	assert.True(t, tr.targets[0].Secure)
	assert.Equal(t, "example.com", tr.targets[0].Host)
	assert.Equal(t, "/path", tr.targets[0].Path)
	assert.Equal(t, "example.com:443", tr.targets[0].Addr())
}

func TestGetWithoutSchemeOrPathUsesHTTP80(t *testing.T) {
	tr := okTransport("")
	c := NewClient(WithTransport(tr))

	res, err := c.Get(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, res.Body.IsEmpty())

	require.Len(t, tr.targets, 1)
	got := tr.targets[0]
	assert.False(t, got.Secure)
	assert.Equal(t, "example.com", got.Host)
	assert.Empty(t, got.Path)
	assert.Equal(t, "/", got.RequestPath())
	assert.Equal(t, "example.com:80", got.Addr())
}

func TestGetDecisionTable(t *testing.T) {
	tests := []struct {
		url     string
		port    int
		secure  bool
		addr    string
		comment string
	}{
		{"https://example.com", 0, true, "example.com:443", "scheme"},
		{"https://example.com", 8443, true, "example.com:8443", "scheme with custom port"},
		{"http://example.com", 443, true, "example.com:443", "port 443 beats http scheme"},
		{"http://example.com", 0, false, "example.com:80", "plain default"},
		{"example.com", 8080, false, "example.com:8080", "custom plain port"},
		{"HTTPS://example.com", 0, false, "HTTPS:80", "scheme check is case-sensitive"},
	}
	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			tr := okTransport("")
			c := NewClient(WithTransport(tr))

			_, err := c.GetPort(context.Background(), tt.url, tt.port)
			require.NoError(t, err)
			require.Len(t, tr.targets, 1)
			assert.Equal(t, tt.secure, tr.targets[0].Secure)
			assert.Equal(t, tt.addr, tr.targets[0].Addr())
		})
	}
}

func TestGetPropagatesTransportError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	c := NewClient(WithTransport(&recordingTransport{err: opErr}))

	_, err := c.Get(context.Background(), "http://example.com/x")
	require.Error(t, err)

	var got *net.OpError
	assert.True(t, errors.As(err, &got))
	assert.Contains(t, err.Error(), "GET http://example.com/x")
}

func TestGetPropagatesFormatError(t *testing.T) {
	c := NewClient(WithTransport(okTransport("not json")))

	_, err := c.Get(context.Background(), "example.com/page")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestGetIsRepeatable(t *testing.T) {
	c := NewClient(WithTransport(okTransport(`{"a":[1,2]}`)))

	first, err := c.Get(context.Background(), "example.com/a")
	require.NoError(t, err)
	second, err := c.Get(context.Background(), "example.com/a")
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.Body.Value(), second.Body.Value())
}

func TestGetAgainstPlainServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"seven"}`))
	}))
	defer srv.Close()

	res, err := NewClient().Get(context.Background(), srv.URL+"/items/7")
	require.NoError(t, err)
	assert.Equal(t, "200 OK", res.Status)
	assert.Equal(t, "HTTP/1.1", res.Version)
	assert.Equal(t, "seven", res.Body.Get("name").String())
}

func TestGetAgainstTLSServer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resource", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":5}`))
	}))
	defer srv.Close()

	pool := x509.NewCertPool()
	pool.AddCert(srv.Certificate())
	tr := httpclient.NewRestyTransport(httpclient.Options{TLSConfig: &tls.Config{RootCAs: pool}})

	res, err := NewClient(WithTransport(tr)).Get(context.Background(), srv.URL+"/resource")
	require.NoError(t, err)
	assert.Equal(t, "200 OK", res.Status)
	assert.Equal(t, "HTTP/1.1", res.Version)
	assert.Equal(t, map[string]interface{}{"id": float64(5)}, res.Body.Value())
}

func TestGetHTTP10Server(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		_, _ = conn.Read(buf)
		_, _ = conn.Write([]byte("HTTP/1.0 404 Not Found\r\nContent-Length: 0\r\n\r\n"))
	}()

	res, err := NewClient().Get(context.Background(), "http://"+ln.Addr().String()+"/missing")
	require.NoError(t, err)
	assert.Equal(t, "404 Not Found", res.Status)
	assert.Equal(t, "HTTP/1.0", res.Version)
	assert.True(t, res.Body.IsEmpty())
}

func TestGetPortOverridesEmbeddedPort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, port, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)

	tr := okTransport("")
	c := NewClient(WithTransport(tr))
	_, err = c.GetPort(context.Background(), "http://127.0.0.1:1/x", 0)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", tr.targets[0].Addr())

	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	res, err := NewClient().GetPort(context.Background(), "http://127.0.0.1:1/x", n)
	require.NoError(t, err)
	assert.Equal(t, "204 No Content", res.Status)
}

func TestGetEmptyHostIsTransportError(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, port, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	n, err := strconv.Atoi(port)
	require.NoError(t, err)

	for _, url := range []string{"/x", "http:///x", ""} {
		_, err := NewClient().GetPort(context.Background(), url, n)
		require.Error(t, err, "url %q", url)
		assert.ErrorIs(t, err, httpclient.ErrEmptyHost)
	}
	assert.False(t, hit, "empty host must not dial localhost")
}

func TestGetSendsPathUnescaped(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/a%2Fb?q=1#frag", r.RequestURI)
		assert.Equal(t, strings.TrimPrefix(srv.URL, "http://"), r.Host)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := NewClient().Get(context.Background(), srv.URL+"/a%2Fb?q=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "204 No Content", res.Status)
}
