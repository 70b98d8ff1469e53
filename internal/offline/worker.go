// Package offline is the client-side offline layer: an http.RoundTripper that
// precaches the app shell, serves static resources cache-first and API calls
// network-first, and handles push and notification events.
package offline

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"music_hub/infrastructure/metrics"
	"music_hub/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

const (
	StaticCacheName  = "static-v1"
	DynamicCacheName = "dynamic-v1"
)

// StaticAssets is the app shell precached on install. Relative entries resolve against the origin.
var StaticAssets = []string{
	"/",
	"/index.html",
	"/homepage.html",
	"/manifest.json",
	"/assets/icon-192.png",
	"/assets/icon-512.png",
	"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
}

type State int

const (
	StateParsed State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
	StateRedundant
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	}
	return "unknown"
}

type Worker struct {
	origin   *url.URL
	store    Store
	network  http.RoundTripper
	logger   ports.LoggerPort
	assets   []string
	notifier Notifier
	opener   WindowOpener

	mu          sync.Mutex
	state       State
	skipWaiting bool
	clients     map[string]Client
	controlled  map[string]bool
}

type Option func(*Worker)

// WithNetwork replaces http.DefaultTransport as the worker's way to the network.
func WithNetwork(rt http.RoundTripper) Option {
	return func(w *Worker) { w.network = rt }
}

func WithAssets(assets []string) Option {
	return func(w *Worker) { w.assets = assets }
}

func WithNotifier(n Notifier) Option {
	return func(w *Worker) { w.notifier = n }
}

func WithWindowOpener(o WindowOpener) Option {
	return func(w *Worker) { w.opener = o }
}

func New(origin string, store Store, logger ports.LoggerPort, opts ...Option) (*Worker, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: scheme and host are required", origin)
	}

	w := &Worker{
		origin:     &url.URL{Scheme: u.Scheme, Host: u.Host},
		store:      store,
		network:    http.DefaultTransport,
		logger:     logger,
		assets:     StaticAssets,
		clients:    make(map[string]Client),
		controlled: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
	w.logger.Debug(fmt.Sprintf("offline worker %s", s))
}

// Register installs the worker and, when it asked to skip waiting, activates it right away.
func (w *Worker) Register(ctx context.Context) error {
	if err := w.Install(ctx); err != nil {
		return err
	}

	w.mu.Lock()
	skip := w.skipWaiting
	w.mu.Unlock()

	if !skip {
		return nil
	}
	return w.Activate(ctx)
}

// Install precaches every static asset. Either all of them land in the static
// cache or none do, and the worker goes back to redundant.
func (w *Worker) Install(ctx context.Context) error {
	w.setState(StateInstalling)

	entries := make([]*Entry, len(w.assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range w.assets {
		g.Go(func() error {
			e, err := w.fetchAsset(gctx, asset)
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		w.setState(StateRedundant)
		w.logger.Error("offline install failed", err)
		return fmt.Errorf("install: %w", err)
	}

	batch := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		batch[e.URL] = e
	}
	if err := w.store.PutAll(StaticCacheName, batch); err != nil {
		w.setState(StateRedundant)
		w.logger.Error("offline install failed", err)
		return fmt.Errorf("install: %w", err)
	}

	w.logger.Info(fmt.Sprintf("Caching static assets: %d stored in %s", len(batch), StaticCacheName))
	w.SkipWaiting()
	w.setState(StateInstalled)
	return nil
}

func (w *Worker) fetchAsset(ctx context.Context, asset string) (*Entry, error) {
	u, err := w.resolve(asset)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.network.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	if !ok(resp.StatusCode) {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}

	e, _, err := capture(u.String(), resp)
	return e, err
}

func (w *Worker) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid asset %q: %w", ref, err)
	}
	return w.origin.ResolveReference(u), nil
}

// Activate deletes every cache other than the current static and dynamic ones
// and takes control of all registered clients.
func (w *Worker) Activate(ctx context.Context) error {
	w.setState(StateActivating)

	names, err := w.store.Keys()
	if err != nil {
		return fmt.Errorf("activate: %w", err)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if name == StaticCacheName || name == DynamicCacheName {
			continue
		}
		w.logger.Info("Deleting old cache: " + name)
		if _, err := w.store.Delete(name); err != nil {
			return fmt.Errorf("activate: %w", err)
		}
	}

	w.claim()
	w.setState(StateActivated)
	return nil
}

// SkipWaiting lets an installed worker activate without waiting for old clients to go away.
func (w *Worker) SkipWaiting() {
	w.mu.Lock()
	w.skipWaiting = true
	waiting := w.state == StateInstalled
	w.mu.Unlock()

	if waiting {
		if err := w.Activate(context.Background()); err != nil {
			w.logger.Error("offline activation failed", err)
		}
	}
}

// RoundTrip implements http.RoundTripper. Requests are only intercepted once the
// worker is active and only for the worker's own origin.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	if w.State() != StateActivated || !w.sameOrigin(req.URL) {
		return w.network.RoundTrip(req)
	}

	if strings.Contains(req.URL.String(), "/api/") {
		return w.networkFirst(req)
	}
	return w.cacheFirst(req)
}

func (w *Worker) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, w.origin.Scheme) && strings.EqualFold(u.Host, w.origin.Host)
}

func (w *Worker) networkFirst(req *http.Request) (*http.Response, error) {
	key := req.URL.String()

	resp, netErr := w.network.RoundTrip(req)
	if netErr == nil {
		metrics.OfflineCacheLookups.WithLabelValues("network-first", "network").Inc()
		if req.Method != http.MethodGet {
			return resp, nil
		}
		return w.keep(DynamicCacheName, key, resp)
	}

	e, err := w.store.Match(key)
	if err != nil {
		w.logger.Error("offline cache lookup failed", err)
	}
	if e == nil || req.Method != http.MethodGet {
		metrics.OfflineCacheLookups.WithLabelValues("network-first", "miss").Inc()
		return nil, netErr
	}

	metrics.OfflineCacheLookups.WithLabelValues("network-first", "fallback").Inc()
	w.logger.Debug("serving cached copy of " + key)
	return e.Response(req), nil
}

func (w *Worker) cacheFirst(req *http.Request) (*http.Response, error) {
	key := req.URL.String()

	if req.Method == http.MethodGet {
		e, err := w.store.Match(key)
		if err != nil {
			w.logger.Error("offline cache lookup failed", err)
		}
		if e != nil {
			metrics.OfflineCacheLookups.WithLabelValues("cache-first", "hit").Inc()
			return e.Response(req), nil
		}
	}

	metrics.OfflineCacheLookups.WithLabelValues("cache-first", "miss").Inc()
	resp, err := w.network.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if req.Method != http.MethodGet || !ok(resp.StatusCode) {
		return resp, nil
	}
	return w.keep(DynamicCacheName, key, resp)
}

// keep stores a copy of resp in cache. A failed write is logged and the
// response still goes back to the caller.
func (w *Worker) keep(cache, key string, resp *http.Response) (*http.Response, error) {
	e, out, err := capture(key, resp)
	if err != nil {
		return nil, err
	}
	if err := w.store.Put(cache, key, e); err != nil {
		w.logger.Error("offline cache write failed", err)
	}
	return out, nil
}

// Sync handles a background sync event.
func (w *Worker) Sync(ctx context.Context, tag string) error {
	if tag != "sync-playlists" {
		return nil
	}
	w.logger.Info("Background sync: playlists")
	return ctx.Err()
}
