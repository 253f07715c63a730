// Package archive dumps page and product snapshots to disk for diagnosis.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blinkwatch/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Writer stores timestamped snapshots under a directory. A small cache of
// content digests keeps unchanged pages from piling up on disk across
// cycles.
type Writer struct {
	dir  string
	seen *lru.Cache[string, struct{}]
	now  func() time.Time
}

// NewWriter creates the snapshot directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory %q: %w", dir, err)
	}
	seen, err := lru.New[string, struct{}](128)
	if err != nil {
		return nil, fmt.Errorf("create digest cache: %w", err)
	}
	return &Writer{dir: dir, seen: seen, now: time.Now}, nil
}

// SavePage writes the raw listing text to a timestamped .html file and
// returns its path. Returns an empty path when identical content was already
// saved recently.
func (w *Writer) SavePage(text string) (string, error) {
	return w.save("page", "html", []byte(text))
}

// SaveProducts writes the summarized products as pretty-printed JSON.
func (w *Writer) SaveProducts(products []models.ProductSummary) (string, error) {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode products: %w", err)
	}
	return w.save("products", "json", data)
}

func (w *Writer) save(prefix, ext string, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	key := prefix + ":" + hex.EncodeToString(sum[:])
	if _, ok := w.seen.Get(key); ok {
		return "", nil
	}

	name := fmt.Sprintf("%s-%s.%s", prefix, w.now().UTC().Format("20060102-150405.000000000"), ext)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	w.seen.Add(key, struct{}{})
	return path, nil
}
