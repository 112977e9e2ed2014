package source

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	cacheEnvVar         = "LEARNMASTER_CACHE_DIR"
	cacheSubdir         = "learnmaster/sources"
	cacheTTL            = 24 * time.Hour
	partialSuffix       = ".part"
	metaSuffix          = ".meta"
	defaultFetchTimeout = 90 * time.Second
)

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// remoteCache keeps downloaded documents for a day and revalidates them with
// conditional requests afterwards.
type remoteCache struct {
	dir    string
	client *http.Client
}

type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

func newRemoteCache(client *http.Client) (*remoteCache, error) {
	dir := os.Getenv(cacheEnvVar)
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "learnmaster-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &remoteCache{dir: dir, client: client}, nil
}

// Fetch returns a local path holding the document at rawURL. A stale copy is
// served when the origin cannot be reached.
func (c *remoteCache) Fetch(ctx context.Context, rawURL string) (string, error) {
	dataPath, metaPath, partialPath := c.pathsFor(rawURL)

	if info, err := os.Stat(dataPath); err == nil && time.Since(info.ModTime()) < cacheTTL && info.Size() > 0 {
		return dataPath, nil
	}

	meta, _ := readMeta(metaPath)
	current, _ := os.Stat(dataPath)
	err := c.download(ctx, rawURL, dataPath, metaPath, partialPath, meta, current)
	if err == nil {
		return dataPath, nil
	}
	if current != nil && current.Size() > 0 {
		return dataPath, nil
	}
	return "", err
}

func (c *remoteCache) download(ctx context.Context, rawURL, dataPath, metaPath, partialPath string, meta cacheMeta, current os.FileInfo) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("invalid document url: %w", err)
	}
	if current != nil && current.Size() > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("document download failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		if current == nil || current.Size() == 0 {
			return fmt.Errorf("document download failed: %s without a cached copy", resp.Status)
		}
		now := time.Now()
		if err := os.Chtimes(dataPath, now, now); err != nil {
			return err
		}
		meta.CachedAt = now.UTC()
		return writeMeta(metaPath, meta)
	case http.StatusOK:
		return c.saveBody(resp, dataPath, metaPath, partialPath)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("document download failed: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}
}

func (c *remoteCache) saveBody(resp *http.Response, dataPath, metaPath, partialPath string) error {
	file, err := os.OpenFile(partialPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Rename(partialPath, dataPath); err != nil {
		return err
	}

	meta := cacheMeta{
		URL:          resp.Request.URL.String(),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		CachedAt:     time.Now().UTC(),
	}
	if info, err := os.Stat(dataPath); err == nil {
		meta.Size = info.Size()
	}
	return writeMeta(metaPath, meta)
}

// pathsFor keeps the document's extension so Load can pick the right reader.
func (c *remoteCache) pathsFor(rawURL string) (string, string, string) {
	key := cacheKey(rawURL)
	base := filepath.Join(c.dir, key)
	return base + documentExt(rawURL), base + metaSuffix, base + partialSuffix
}

func cacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

func documentExt(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".txt"
	}
	if strings.EqualFold(path.Ext(parsed.Path), ".pdf") {
		return ".pdf"
	}
	return ".txt"
}

func readMeta(path string) (cacheMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheMeta{}, err
	}
	var meta cacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta cacheMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
