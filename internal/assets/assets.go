// Package assets fetches and decodes model assets and thumbnails, with a
// process-wide cache so that viewers showing the same reference share one
// parsed scene.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

var (
	// ErrNotFound is returned when a reference points at nothing.
	ErrNotFound = errors.New("asset not found")
	// ErrUnsupported is returned for unknown schemes and formats.
	ErrUnsupported = errors.New("unsupported asset")
)

// Options configure a Manager.
type Options struct {
	HTTPTimeout time.Duration
	// Remote is an optional shared byte cache consulted before the source.
	Remote RemoteCache
	Log    *zap.Logger
}

// Manager loads assets by reference: a file path, a file:// URL or an
// http(s):// URL.
type Manager struct {
	client *http.Client
	remote RemoteCache
	log    *zap.Logger

	bytes  *Cache[[]byte]
	scenes *Cache[*model.Scene]
}

// NewManager creates a new asset manager.
func NewManager(opts Options) *Manager {
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = 30 * time.Second
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Manager{
		client: &http.Client{Timeout: opts.HTTPTimeout},
		remote: opts.Remote,
		log:    opts.Log,
		bytes:  NewCache[[]byte](),
		scenes: NewCache[*model.Scene](),
	}
}

// Fetch returns the raw bytes behind ref, checking the local and remote
// caches first. Bytes read from the source are shared with the remote cache
// as they are.
func (m *Manager) Fetch(ctx context.Context, ref string) ([]byte, error) {
	data, fresh, err := m.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	if fresh {
		m.share(ctx, ref, data)
	}
	return data, nil
}

// fetch reports fresh when data came from the source rather than a cache.
// Only the local cache is filled; the caller decides when the bytes are
// good enough for the remote cache.
func (m *Manager) fetch(ctx context.Context, ref string) (data []byte, fresh bool, err error) {
	if data, ok := m.bytes.Get(ref); ok {
		return data, false, nil
	}

	if m.remote != nil {
		data, ok, err := m.remote.Get(ctx, ref)
		if err != nil {
			m.log.Warn("remote cache get failed", zap.String("ref", ref), zap.Error(err))
		} else if ok {
			m.log.Debug("remote cache hit", zap.String("ref", ref), zap.Int("bytes", len(data)))
			m.bytes.Set(ref, data)
			return data, false, nil
		}
	}

	data, err = m.fetchSource(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	m.bytes.Set(ref, data)
	return data, true, nil
}

func (m *Manager) share(ctx context.Context, ref string, data []byte) {
	if m.remote == nil {
		return
	}
	if err := m.remote.Set(ctx, ref, data); err != nil {
		m.log.Warn("remote cache set failed", zap.String("ref", ref), zap.Error(err))
	}
}

// LoadScene returns the parsed scene for ref. The scene is shared by every
// caller asking for the same reference and must be cloned before it is
// mutated.
func (m *Manager) LoadScene(ctx context.Context, ref string) (*model.Scene, error) {
	if s, ok := m.scenes.Get(ref); ok {
		return s, nil
	}

	start := time.Now()
	s, err := m.decodeScene(ctx, ref)
	if err != nil {
		return nil, err
	}
	m.scenes.Set(ref, s)
	m.log.Info("model loaded",
		zap.String("ref", ref),
		zap.Int("meshes", len(s.Meshes())),
		zap.Duration("took", time.Since(start)))
	return s, nil
}

func (m *Manager) decodeScene(ctx context.Context, ref string) (*model.Scene, error) {
	name := baseName(ref)

	// Plain .gltf files may reference sibling buffers; let the decoder
	// resolve them from disk.
	if path, ok := localPath(ref); ok && strings.EqualFold(filepath.Ext(path), ".gltf") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, notFound(ref, err)
		}
		return OpenGLTF(name, path)
	}

	data, fresh, err := m.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	s, err := DecodeGLTF(name, data)
	if err != nil {
		// Undecodable bytes must not satisfy the next attempt.
		m.bytes.Delete(ref)
		return nil, err
	}
	if fresh {
		m.share(ctx, ref, data)
	}
	return s, nil
}

// Evict drops ref from every local cache so that the next load goes back to
// the remote cache or the source.
func (m *Manager) Evict(ref string) {
	m.bytes.Delete(ref)
	m.scenes.Delete(ref)
}

// Stats returns hit and miss counts of the scene cache.
func (m *Manager) Stats() (hits, misses int) {
	return m.scenes.Stats()
}

// Close clears the caches and closes the remote cache.
func (m *Manager) Close() {
	m.bytes.Clear()
	m.scenes.Clear()
	if m.remote != nil {
		m.remote.Close()
	}
}

func (m *Manager) fetchSource(ctx context.Context, ref string) ([]byte, error) {
	if path, ok := localPath(ref); ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, notFound(ref, err)
		}
		return data, nil
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("fetching %s: %w", ref, ErrUnsupported)
	}
	return m.fetchHTTP(ctx, ref)
}

func (m *Manager) fetchHTTP(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("fetching %s: %w", ref, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", ref, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	m.log.Debug("fetched asset", zap.String("ref", ref), zap.Int("bytes", len(data)))
	return data, nil
}

// localPath returns the file path for plain paths and file:// URLs.
func localPath(ref string) (string, bool) {
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", false
		}
		return filepath.FromSlash(u.Path), true
	}
	u, err := url.Parse(ref)
	// Single-letter schemes are Windows drive letters.
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return ref, true
	}
	return "", false
}

func baseName(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	name := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	if name == "" || name == "." || name == "/" {
		return "model"
	}
	return name
}

func notFound(ref string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("opening %s: %w", ref, ErrNotFound)
	}
	return fmt.Errorf("opening %s: %w", ref, err)
}
