package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// CacheKey addresses the findings of one file content under one rule set.
type CacheKey [32]byte

func (k CacheKey) String() string { return hex.EncodeToString(k[:]) }

// Cache хранит диагностики файлов на диске: msgpack, сжатый zstd.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// CachePayload is the stored result of analyzing one file.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diag.Diagnostic without the file id, which differs
// between runs. Notes always point into the same file.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	RuleID   string
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenCache opens (creating) a cache in dir. An empty dir selects
// $XDG_CACHE_HOME/lintel or ~/.cache/lintel.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "lintel")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Cache{dir: dir, enc: enc, dec: dec}, nil
}

// Dir is where entries live.
func (c *Cache) Dir() string { return c.dir }

// Close releases the codec goroutines.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.dec.Close()
	return c.enc.Close()
}

// KeyFor mixes the content hash of f with the rule-set fingerprint.
func KeyFor(f *source.File, fingerprint string) CacheKey {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], cacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(f.Hash[:])
	_, _ = h.Write([]byte(fingerprint))
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) pathFor(key CacheKey) string {
	hexKey := key.String()
	// двухсимвольные подкаталоги, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp.zst")
}

// Put serializes and writes a payload to the disk cache.
func (c *Cache) Put(key CacheKey, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	compressed := c.enc.EncodeAll(data, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if _, err := f.Write(compressed); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. Entries of another schema are
// misses.
func (c *Cache) Get(key CacheKey, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	compressed, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	data, err := c.dec.DecodeAll(compressed, nil)
	if err != nil {
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return out.Schema == cacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func toPayload(path string, diags []diag.Diagnostic) *CachePayload {
	payload := &CachePayload{
		Schema:      cacheSchemaVersion,
		Path:        path,
		Diagnostics: make([]CachedDiagnostic, len(diags)),
	}
	for i, d := range diags {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			RuleID:   d.RuleID,
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// fromPayload rebuilds diagnostics against the file id of this run.
func fromPayload(payload *CachePayload, file *source.File) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(payload.Diagnostics))
	for i, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			RuleID:   cd.RuleID,
			Message:  cd.Message,
			Primary:  source.Span{File: file.ID, Start: cd.Start, End: cd.End},
			Path:     file.Path,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file.ID, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		out[i] = d
	}
	return out
}
