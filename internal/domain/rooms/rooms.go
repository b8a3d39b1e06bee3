// Package rooms decomposes room keys into a room type and a view category.
package rooms

import (
	"sort"
	"strings"
)

// DefaultCatalogVersion identifies DefaultViewCategories.
const DefaultCatalogVersion = "2026.1"

// DefaultViewCategories lists the view-category suffixes known to the pricing
// service. New categories are added here (or via configuration) over time.
var DefaultViewCategories = []string{
	"standard",
	"standard_view",
	"preferred",
	"preferred_view",
	"lake",
	"lake_view",
	"theme_park",
	"theme_park_view",
	"pool",
	"pool_view",
	"garden",
	"garden_view",
	"ocean",
	"ocean_view",
	"lagoon",
	"lagoon_view",
	"savanna",
	"savanna_view",
	"value",
	"woods",
	"near_pool",
	"courtyard",
}

// RoomInfo is a parsed room key. View is empty when no cataloged suffix matched,
// in which case RoomType is the key itself.
type RoomInfo struct {
	Key      string `json:"key"`
	RoomType string `json:"room_type"`
	View     string `json:"view"`
}

// DisplayType renders RoomType in title case with spaces.
func (r RoomInfo) DisplayType() string { return Humanize(r.RoomType) }

// DisplayView renders View in title case with spaces.
func (r RoomInfo) DisplayView() string { return Humanize(r.View) }

// Catalog is an immutable, versioned set of view categories ordered
// longest-first for suffix matching.
type Catalog struct {
	version string
	views   []string
}

// NewCatalog builds a catalog from categories. Empty and duplicate entries are
// dropped; matching order is by length descending, then lexical.
func NewCatalog(version string, categories []string) *Catalog {
	seen := make(map[string]struct{}, len(categories))
	views := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		views = append(views, c)
	}
	sort.Slice(views, func(i, j int) bool {
		if len(views[i]) != len(views[j]) {
			return len(views[i]) > len(views[j])
		}
		return views[i] < views[j]
	})
	return &Catalog{version: version, views: views}
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultCatalogVersion, DefaultViewCategories)
}

// Version returns the catalog version.
func (c *Catalog) Version() string { return c.version }

// Views returns the categories in matching order.
func (c *Catalog) Views() []string {
	out := make([]string, len(c.views))
	copy(out, c.views)
	return out
}

// Parse splits key at the longest cataloged "_<view>" suffix.
func (c *Catalog) Parse(key string) RoomInfo {
	for _, v := range c.views {
		suffix := "_" + v
		if len(key) > len(suffix) && strings.HasSuffix(key, suffix) {
			return RoomInfo{Key: key, RoomType: key[:len(key)-len(suffix)], View: v}
		}
	}
	return RoomInfo{Key: key, RoomType: key}
}

// ParseAll parses keys preserving order.
func (c *Catalog) ParseAll(keys []string) []RoomInfo {
	out := make([]RoomInfo, len(keys))
	for i, k := range keys {
		out[i] = c.Parse(k)
	}
	return out
}

// Humanize turns an underscore slug into space-separated title case.
func Humanize(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
