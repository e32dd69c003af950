package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/samvad-hq/httpy/internal/config"
	"github.com/samvad-hq/httpy/internal/storage"
	"github.com/samvad-hq/httpy/pkg/httpy"
	"gopkg.in/yaml.v3"
)

// historyView is how a stored entry is rendered: the body is decoded back into
// a value so YAML output stays structured.
type historyView struct {
	URL       string `json:"url" yaml:"url"`
	Port      int    `json:"port,omitempty" yaml:"port,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Version   string `json:"version" yaml:"version"`
	Body      any    `json:"body" yaml:"body"`
	FetchedAt string `json:"fetched_at" yaml:"fetched_at"`
}

// RenderResult writes res to w in the given format.
func RenderResult(w io.Writer, format string, res httpy.Result) error {
	switch format {
	case config.OutputJSON, "":
		return writeJSON(w, res)
	case config.OutputYAML:
		return writeYAML(w, res)
	case config.OutputText:
		return writeText(w, res)
	default:
		return config.ValidateOutput(format)
	}
}

// RenderHistory writes entries to w in the given format.
func RenderHistory(w io.Writer, format string, entries []storage.Entry) error {
	views := make([]historyView, 0, len(entries))
	for _, e := range entries {
		var body any = ""
		if len(e.Body) > 0 {
			if err := json.Unmarshal(e.Body, &body); err != nil {
				return fmt.Errorf("decode history body: %w", err)
			}
		}
		views = append(views, historyView{
			URL:       e.URL,
			Port:      e.Port,
			Status:    e.Status,
			Version:   e.Version,
			Body:      body,
			FetchedAt: e.FetchedAt.UTC().Format(time.RFC3339),
		})
	}

	switch format {
	case config.OutputJSON, "":
		return writeJSON(w, views)
	case config.OutputYAML:
		return writeYAML(w, views)
	case config.OutputText:
		bold := color.New(color.Bold).SprintFunc()
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s  %s  %s %s\n", v.FetchedAt, statusColor(v.Status)(v.Status), v.Version, bold(v.URL)); err != nil {
				return err
			}
		}
		return nil
	default:
		return config.ValidateOutput(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, res httpy.Result) error {
	bold := color.New(color.Bold).SprintFunc()
	if _, err := fmt.Fprintf(w, "%s %s\n", bold(res.Version), statusColor(res.Status)(res.Status)); err != nil {
		return err
	}
	if res.Body.IsEmpty() {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, res.Body.Raw(), "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", buf.String())
	return err
}

// statusColor picks green for 2xx, yellow for 3xx and red for everything else.
func statusColor(status string) func(a ...interface{}) string {
	switch {
	case strings.HasPrefix(status, "2"):
		return color.New(color.FgGreen).SprintFunc()
	case strings.HasPrefix(status, "3"):
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}
