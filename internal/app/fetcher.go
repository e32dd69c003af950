package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samvad-hq/httpy/internal/config"
	"github.com/samvad-hq/httpy/internal/logger"
	"github.com/samvad-hq/httpy/internal/storage"
	"github.com/samvad-hq/httpy/pkg/httpclient"
	"github.com/samvad-hq/httpy/pkg/httpy"
)

// Fetcher is the CLI runtime. It owns the GET client and the history store.
type Fetcher struct {
	cfg    *config.Config
	client *httpy.Client
	store  storage.Store
	log    logger.Logger
}

// NewFetcher wires a client and history store from cfg. A nil transport builds
// the resty transport described by cfg.
func NewFetcher(cfg *config.Config, log logger.Logger, transport httpclient.Transport) (*Fetcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	if transport == nil {
		opts := httpclient.Options{
			Timeout:            cfg.Timeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}
		if zl, ok := log.(*logger.Log); ok {
			opts.Logger = zl.Sugar()
		}
		transport = httpclient.NewRestyTransport(opts)
	}
	log.InfoObj("transport initialized", "transport_config", map[string]any{
		"timeout":              cfg.Timeout.String(),
		"insecure_skip_verify": cfg.InsecureSkipVerify,
	})

	storeType := "none"
	if cfg.HistoryEnabled {
		storeType = "bbolt"
	}
	store, err := storage.NewStore(storeType, cfg.HistoryPath, storage.Options{
		EntryTTL:        cfg.HistoryTTL,
		CleanupInterval: cfg.HistoryCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":                     storeType,
		"path":                     cfg.HistoryPath,
		"entry_ttl_seconds":        int(cfg.HistoryTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.HistoryCleanupInterval.Seconds()),
	})

	return &Fetcher{
		cfg:    cfg,
		client: httpy.NewClient(httpy.WithTransport(transport), httpy.WithLogger(log)),
		store:  store,
		log:    log,
	}, nil
}

// Fetch performs one GET and records the result. A port <= 0 means none was given.
// History failures are logged and never fail the fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string, port int) (httpy.Result, error) {
	if f == nil || f.client == nil {
		return httpy.Result{}, fmt.Errorf("fetcher is not initialized")
	}

	var (
		res httpy.Result
		err error
	)
	if port > 0 {
		res, err = f.client.GetPort(ctx, url, port)
	} else {
		res, err = f.client.Get(ctx, url)
	}
	if err != nil {
		return httpy.Result{}, err
	}

	f.record(url, port, res)
	return res, nil
}

// History returns up to limit recent fetches, newest first.
func (f *Fetcher) History(limit int) ([]storage.Entry, error) {
	if f == nil || f.store == nil {
		return nil, fmt.Errorf("fetcher is not initialized")
	}
	return f.store.Recent(limit)
}

// Close releases the history store, logging any errors encountered.
func (f *Fetcher) Close() error {
	if f == nil || f.store == nil {
		return nil
	}
	if err := f.store.Close(); err != nil {
		f.log.ErrorObj("storage close failed", "error", err)
		return err
	}
	return nil
}

func (f *Fetcher) record(url string, port int, res httpy.Result) {
	body, err := json.Marshal(res.Body)
	if err != nil {
		f.log.WarnObj("history encode failed", "error", err)
		return
	}
	entry := storage.Entry{
		URL:     url,
		Port:    port,
		Status:  res.Status,
		Version: res.Version,
		Body:    body,
	}
	if err := f.store.Record(entry); err != nil {
		f.log.WarnObj("history record failed", "error", err)
	}
}
