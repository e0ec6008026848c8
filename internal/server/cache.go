package server

import (
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/agbru/polyroots/internal/input"
	"github.com/agbru/polyroots/internal/roots"
	"github.com/agbru/polyroots/pkg/models"
)

// DefaultCacheSize is the number of solve responses kept by default.
const DefaultCacheSize = 256

// solveCache maps request digests to reports. A nil cache stores nothing.
type solveCache struct {
	entries *lru.Cache[string, models.Report]
}

func newSolveCache(size int) *solveCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[string, models.Report](size)
	if err != nil {
		return nil
	}
	return &solveCache{entries: entries}
}

func (c *solveCache) get(key string) (models.Report, bool) {
	if c == nil {
		return models.Report{}, false
	}
	return c.entries.Get(key)
}

func (c *solveCache) add(key string, report models.Report) {
	if c == nil {
		return
	}
	c.entries.Add(key, report)
}

func (c *solveCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// solveKey digests everything a solve response depends on: the strategy,
// the resolved selection count, the declared entry count (it drives the
// warnings) and every entry. Entries are sorted by label so that documents
// differing only in key order share a key.
func solveKey(doc *input.Document, algo string, k int) string {
	var b strings.Builder
	b.WriteString(algo)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(doc.SelectionCount(k)))
	b.WriteByte(0)
	if doc.Keys != nil && doc.Keys.N != nil {
		b.WriteString(strconv.Itoa(*doc.Keys.N))
	}
	b.WriteByte(0)

	entries := slices.Clone(doc.Entries)
	slices.SortFunc(entries, func(a, b roots.Entry) int { return strings.Compare(a.Label, b.Label) })
	for _, e := range entries {
		b.WriteString(e.Label)
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(e.Base))
		b.WriteByte(0)
		b.WriteString(e.Numeral)
		b.WriteByte('\n')
	}

	sum := blake3.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
