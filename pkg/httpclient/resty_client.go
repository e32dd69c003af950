package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options tunes the resty-backed transport. The zero value dials without a
// timeout and verifies certificates against the system roots.
type Options struct {
	Timeout            time.Duration
	TLSConfig          *tls.Config
	InsecureSkipVerify bool
	// Logger receives resty's own warnings. A *zap.SugaredLogger satisfies it.
	Logger resty.Logger
}

// RestyTransport adapts resty.Client to the httpclient.Transport interface.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport creates a transport that opens a fresh connection per request.
func NewRestyTransport(opts Options) *RestyTransport {
	return &RestyTransport{client: newRestyBaseClient(opts)}
}

// newRestyBaseClient creates a resty.Client that never pools connections,
// never follows redirects and only speaks HTTP/1.x.
func newRestyBaseClient(opts Options) *resty.Client {
	tlsCfg := opts.TLSConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{}
	} else {
		tlsCfg = tlsCfg.Clone()
	}
	if opts.InsecureSkipVerify {
		tlsCfg.InsecureSkipVerify = true
	}

	transport := &http.Transport{
		DisableKeepAlives: true,
		TLSClientConfig:   tlsCfg,
		// A non-nil empty map disables the HTTP/2 upgrade on TLS connections.
		TLSNextProto: map[string]func(string, *tls.Conn) http.RoundTripper{},
	}

	c := resty.New()
	c.SetTransport(transport)
	c.SetTimeout(opts.Timeout)
	c.SetCloseConnection(true)
	c.SetCookieJar(nil)
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	c.SetPreRequestHook(sendRawPath)
	if opts.Logger != nil {
		c.SetLogger(opts.Logger)
	}
	return c
}

type rawPathKey struct{}

// sendRawPath puts the caller's path on the request line untouched, so it is
// never re-escaped or stripped of a fragment by net/url.
func sendRawPath(_ *resty.Client, req *http.Request) error {
	path, ok := req.Context().Value(rawPathKey{}).(string)
	if !ok {
		return nil
	}
	// An opaque "//x" is rewritten to "scheme://x" by URL.RequestURI.
	if strings.HasPrefix(path, "//") {
		req.URL.Path = path
		return nil
	}
	req.URL.Opaque = path
	return nil
}

// Do performs the request described by target.
func (r *RestyTransport) Do(ctx context.Context, target Target) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := target.Method
	if method == "" {
		method = http.MethodGet
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithValue(ctx, rawPathKey{}, target.RequestPath())
	base := target.Scheme() + "://" + target.Authority() + "/"
	resp, err := r.client.R().SetContext(ctx).Execute(method, base)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

func (r *restyResponseAdapter) Reason() string {
	return reasonPhrase(r.resp.StatusCode(), r.resp.Status())
}

func (r *restyResponseAdapter) ProtoCode() int {
	raw := r.resp.RawResponse
	if raw == nil {
		return 0
	}
	return raw.ProtoMajor*10 + raw.ProtoMinor
}

// reasonPhrase trims the numeric code from a status line such as "404 Not Found".
func reasonPhrase(code int, status string) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}
