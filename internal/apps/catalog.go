// Package apps holds the application catalog and the built-in applications.
package apps

import (
	"fmt"
	"sort"

	"github.com/gaspardpetit/harness/sdk/spi"
)

// Catalog is an ordered, immutable list of applications.
type Catalog struct {
	entries []spi.AppInfo
	byID    map[string]int
}

var _ spi.Catalog = (*Catalog)(nil)

// NewCatalog builds a catalog. IDs must be unique and every entry needs a factory.
func NewCatalog(infos ...spi.AppInfo) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(infos))}
	for _, info := range infos {
		if info.ID == "" || info.Create == nil {
			return nil, fmt.Errorf("app %q: id and factory are required", info.ID)
		}
		if _, dup := c.byID[info.ID]; dup {
			return nil, fmt.Errorf("app %q registered twice", info.ID)
		}
		c.byID[info.ID] = len(c.entries)
		c.entries = append(c.entries, info)
	}
	return c, nil
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (spi.AppInfo, bool) {
	i, ok := c.byID[id]
	if !ok {
		return spi.AppInfo{}, false
	}
	return c.entries[i], true
}

// All returns every entry in catalog order.
func (c *Catalog) All() []spi.AppInfo {
	return append([]spi.AppInfo(nil), c.entries...)
}

// Filter returns entries whose category is in categories and which carry any
// of tags. An empty filter matches everything.
func (c *Catalog) Filter(categories, tags []string) []spi.AppInfo {
	var out []spi.AppInfo
	for _, e := range c.entries {
		if len(categories) > 0 && !contains(categories, e.Category) {
			continue
		}
		if len(tags) > 0 && !anyTag(e, tags) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IDs returns the sorted application IDs.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func anyTag(e spi.AppInfo, tags []string) bool {
	for _, t := range tags {
		if e.HasTag(t) {
			return true
		}
	}
	return false
}

// Builtin returns the catalog of applications shipped with the harness.
func Builtin() *Catalog {
	c, err := NewCatalog(
		spi.AppInfo{ID: "hello", Name: "Hello", Description: "Prints a greeting and a frame counter", Category: "demo", Tags: []string{"text"}, Create: NewHello},
		spi.AppInfo{ID: "bounce", Name: "Bounce", Description: "A ball bouncing inside the window", Category: "demo", Tags: []string{"animation", "input"}, Create: NewBounce},
		spi.AppInfo{ID: "crash", Name: "Crash", Description: "Fails on its third update", Category: "test", Tags: []string{"failure"}, Create: NewCrash},
	)
	if err != nil {
		panic(err)
	}
	return c
}
