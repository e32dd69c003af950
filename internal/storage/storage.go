package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a local, expiring history of fetched results.

// Entry is one recorded fetch.
type Entry struct {
	URL       string          `json:"url" yaml:"url"`
	Port      int             `json:"port,omitempty" yaml:"port,omitempty"`
	Status    string          `json:"status" yaml:"status"`
	Version   string          `json:"version" yaml:"version"`
	Body      json.RawMessage `json:"body" yaml:"-"`
	FetchedAt time.Time       `json:"fetched_at" yaml:"fetched_at"`
}

// Store records fetched results and lists the most recent ones.
type Store interface {
	Close() error
	Record(e Entry) error
	Recent(limit int) ([]Entry, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                { return nil }
func (noopStore) Record(Entry) error          { return nil }
func (noopStore) Recent(int) ([]Entry, error) { return nil, nil }
