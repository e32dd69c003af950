package httpy

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samvad-hq/httpy/pkg/httpclient"
	"github.com/tidwall/gjson"
)

const (
	versionHTTP11 = "HTTP/1.1"
	versionHTTP10 = "HTTP/1.0"

	maxErrorBodySnippet = 256
)

// ErrInvalidJSON is matched by every FormatError.
var ErrInvalidJSON = errors.New("response body is not valid json")

// FormatError reports a non-empty response body that could not be decoded.
type FormatError struct {
	Body []byte
}

func (e *FormatError) Error() string {
	snippet := e.Body
	if len(snippet) > maxErrorBodySnippet {
		snippet = snippet[:maxErrorBodySnippet]
	}
	return fmt.Sprintf("%v: %q", ErrInvalidJSON, snippet)
}

func (e *FormatError) Unwrap() error { return ErrInvalidJSON }

// Result is the normalized view of a response.
type Result struct {
	// Status is "<code> <reason>", e.g. "200 OK".
	Status string `json:"status" yaml:"status"`
	// Version is "HTTP/1.1", or "HTTP/1.0" for every other protocol.
	Version string `json:"version" yaml:"version"`
	Body    Body   `json:"body" yaml:"body"`
}

// Body holds either a parsed JSON document or the empty-body marker.
type Body struct {
	raw    []byte
	parsed gjson.Result
	set    bool
}

// IsEmpty reports whether the response carried no body at all.
func (b Body) IsEmpty() bool { return !b.set }

// Raw returns the undecoded body bytes, nil for an empty body.
func (b Body) Raw() []byte { return b.raw }

// Value returns the decoded document: map[string]any, []any, float64, string,
// bool or nil. An empty body yields "". Numbers are float64, so integers beyond
// 2^53 lose precision; Raw, Get(path).Raw and MarshalJSON keep the exact digits.
func (b Body) Value() any {
	if !b.set {
		return ""
	}
	return b.parsed.Value()
}

// Get looks up a gjson path inside the body. An empty body never matches.
func (b Body) Get(path string) gjson.Result {
	if !b.set {
		return gjson.Result{}
	}
	return b.parsed.Get(path)
}

func (b Body) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte(`""`), nil
	}
	return bytes.TrimSpace(b.raw), nil
}

func (b Body) MarshalYAML() (interface{}, error) {
	return b.Value(), nil
}

// ParseBody decodes raw as JSON. Empty input yields the empty marker; anything
// else must be a complete, valid UTF-8 JSON document.
func ParseBody(raw []byte) (Body, error) {
	if len(raw) == 0 {
		return Body{}, nil
	}
	if !utf8.Valid(raw) || !gjson.ValidBytes(raw) {
		return Body{}, &FormatError{Body: raw}
	}
	return Body{raw: raw, parsed: gjson.ParseBytes(raw), set: true}, nil
}

// BuildResult converts a transport response into a Result.
func BuildResult(resp httpclient.Response) (Result, error) {
	body, err := ParseBody(resp.Body())
	if err != nil {
		return Result{}, err
	}
	return Result{
		Status:  fmt.Sprintf("%d %s", resp.StatusCode(), resp.Reason()),
		Version: versionString(resp.ProtoCode()),
		Body:    body,
	}, nil
}

func versionString(code int) string {
	if code == 11 {
		return versionHTTP11
	}
	return versionHTTP10
}
