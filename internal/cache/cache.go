// Package cache persists analysis results keyed by fingerprint hash, one
// JSON document per fingerprint under a configurable root. Every read
// re-validates TTL and schema version; entries failing validation are
// deleted before the miss is returned, so a corrupt or stale cache heals
// itself. There is no cross-process locking: concurrent writers to the
// same fingerprint race and the last writer wins, which is acceptable
// because recomputation is idempotent.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"stackscan/internal/analyzer"
	scanerrors "stackscan/internal/errors"
	"stackscan/internal/logging"
	"stackscan/internal/paths"
	"stackscan/internal/version"
)

// DefaultTTL is how long a cached analysis stays valid.
const DefaultTTL = 30 * 24 * time.Hour

const (
	entryExt     = ".json"
	entryExtGzip = ".json.gz"
)

// Options configures a Cache. Zero values fall back to defaults, so tests
// can inject temporary roots and short TTLs without touching real state.
type Options struct {
	// Root is the cache directory; a "~" prefix expands to the home
	// directory. Defaults to ~/.stackscan/cache.
	Root string
	// TTL is the entry lifetime. Defaults to DefaultTTL.
	TTL time.Duration
	// SchemaPrefix is the accepted schemaVersion major prefix.
	// Defaults to the current schema's major prefix.
	SchemaPrefix string
	// Compress stores entries gzip-compressed
	Compress bool
	// Logger receives eviction debug output
	Logger *logging.Logger
}

// Stats summarizes cache contents. Collection is best-effort: entries that
// fail to parse are counted but contribute no timestamps.
type Stats struct {
	EntryCount        int   `json:"entryCount"`
	TotalBytes        int64 `json:"totalBytes"`
	OldestTimestampMs int64 `json:"oldestTimestampMs,omitempty"`
	NewestTimestampMs int64 `json:"newestTimestampMs,omitempty"`
}

// Cache is a fingerprint-keyed store of analysis results.
type Cache struct {
	root         string
	ttl          time.Duration
	schemaPrefix string
	compress     bool
	logger       *logging.Logger
}

// New creates a Cache, filling unset options with defaults.
func New(opts Options) (*Cache, error) {
	root := opts.Root
	if root == "" {
		var err error
		root, err = paths.DefaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default cache dir: %w", err)
		}
	}
	root = paths.ExpandHome(root)

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	prefix := opts.SchemaPrefix
	if prefix == "" {
		prefix = version.SchemaMajorPrefix()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Cache{
		root:         root,
		ttl:          ttl,
		schemaPrefix: prefix,
		compress:     opts.Compress,
		logger:       logger,
	}, nil
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// Get returns the cached analysis for a fingerprint, or nil on a miss.
// Validation order: missing file, unparseable payload, TTL expiry, schema
// mismatch. Any entry failing a check after the first is deleted before
// the miss is returned.
func (c *Cache) Get(fingerprint string) *analyzer.Result {
	path, data, err := c.readEntry(fingerprint)
	if err != nil {
		return nil
	}

	result, err := decodeEntry(data)
	if err != nil {
		c.logger.Warn("deleting corrupt cache entry", map[string]interface{}{
			"fingerprint": fingerprint,
			"error":       scanerrors.New(scanerrors.CorruptCacheEntry, "entry failed to parse", err).Error(),
		})
		c.remove(path)
		return nil
	}

	if reason := c.validate(result, time.Now()); reason != "" {
		c.logger.Debug("deleting invalid cache entry", map[string]interface{}{
			"fingerprint": fingerprint,
			"error":       scanerrors.New(scanerrors.StaleCacheEntry, reason, nil).Error(),
		})
		c.remove(path)
		return nil
	}

	return result
}

// Set writes the analysis result for a fingerprint, creating the cache root
// if absent. Writes are unconditional: no merge, last write wins.
func (c *Cache) Set(fingerprint string, result *analyzer.Result) error {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return fmt.Errorf("failed to create cache root: %w", err)
	}

	data, err := c.encodeEntry(result)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(c.entryPath(fingerprint), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	// A leftover entry in the other format would shadow this write on a
	// later read after another compression toggle
	c.remove(c.altEntryPath(fingerprint))
	return nil
}

// Has reports whether a valid entry exists. It shares Get's cost and
// self-healing side effects; it is not a cheap existence probe.
func (c *Cache) Has(fingerprint string) bool {
	return c.Get(fingerprint) != nil
}

// Clear deletes every entry under the root. The root directory itself
// persists.
func (c *Cache) Clear() error {
	entries, err := c.listEntries()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, name := range entries {
		c.remove(filepath.Join(c.root, name))
	}
	return nil
}

// ClearExpired scans all entries and deletes any failing the TTL or schema
// predicate, returning the count removed. Entries that cannot be parsed at
// all are removed too, consistent with the self-healing read path.
func (c *Cache) ClearExpired() (int, error) {
	entries, err := c.listEntries()
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	now := time.Now()
	removed := 0
	for _, name := range entries {
		path := filepath.Join(c.root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		result, err := decodeEntry(data)
		if err != nil || c.validate(result, now) != "" {
			c.remove(path)
			removed++
		}
	}
	return removed, nil
}

// Stats collects best-effort statistics over all entries. Unparseable
// entries are skipped, not deleted.
func (c *Cache) Stats() (Stats, error) {
	var stats Stats

	entries, err := c.listEntries()
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, err
	}

	for _, name := range entries {
		path := filepath.Join(c.root, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.EntryCount++
		stats.TotalBytes += info.Size()

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		result, err := decodeEntry(data)
		if err != nil {
			continue
		}
		ts := result.TimestampMs
		if stats.OldestTimestampMs == 0 || ts < stats.OldestTimestampMs {
			stats.OldestTimestampMs = ts
		}
		if ts > stats.NewestTimestampMs {
			stats.NewestTimestampMs = ts
		}
	}

	return stats, nil
}

// validate returns a non-empty reason when the entry fails the TTL or
// schema predicate. Both checks run on every read; nothing is memoized.
func (c *Cache) validate(result *analyzer.Result, now time.Time) string {
	age := now.UnixMilli() - result.TimestampMs
	if age > c.ttl.Milliseconds() {
		return "expired"
	}
	if !strings.HasPrefix(result.SchemaVersion, c.schemaPrefix) {
		return fmt.Sprintf("schema version %q outside accepted prefix %q", result.SchemaVersion, c.schemaPrefix)
	}
	return ""
}

func (c *Cache) entryPath(fingerprint string) string {
	ext := entryExt
	if c.compress {
		ext = entryExtGzip
	}
	return filepath.Join(c.root, fingerprint+ext)
}

// altEntryPath is the entry path in the format the current compression
// setting does not write.
func (c *Cache) altEntryPath(fingerprint string) string {
	ext := entryExtGzip
	if c.compress {
		ext = entryExt
	}
	return filepath.Join(c.root, fingerprint+ext)
}

// readEntry loads an entry in either format, preferring the one matching
// the current compression setting. Entries written before a compression
// toggle stay readable this way.
func (c *Cache) readEntry(fingerprint string) (string, []byte, error) {
	primary := c.entryPath(fingerprint)
	if data, err := os.ReadFile(primary); err == nil {
		return primary, data, nil
	}
	alt := c.altEntryPath(fingerprint)
	data, err := os.ReadFile(alt)
	return alt, data, err
}

// listEntries returns the entry file names under the root, both plain and
// compressed, so toggling compression never strands old entries.
func (c *Cache) listEntries() ([]string, error) {
	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, entryExt) || strings.HasSuffix(name, entryExtGzip) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Cache) encodeEntry(result *analyzer.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	if !c.compress {
		return data, nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeEntry parses an entry payload, transparently handling gzip.
func decodeEntry(data []byte) (*analyzer.Result, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = zr.Close() }()

		var decompressed bytes.Buffer
		if _, err := decompressed.ReadFrom(zr); err != nil {
			return nil, err
		}
		data = decompressed.Bytes()
	}

	var result analyzer.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	if result.SchemaVersion == "" && result.TimestampMs == 0 {
		return nil, fmt.Errorf("entry missing schema version and timestamp")
	}
	return &result, nil
}

func (c *Cache) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn("failed to remove cache entry", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}
