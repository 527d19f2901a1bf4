// gal/cache.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/opencad/gal/log"
)

// ItemCache holds the items that store the geometry of drawable objects,
// keyed by an id chosen by the caller (typically the object's own id). It
// holds at most a fixed number of items; when it is full, the least
// recently used item is evicted and its storage freed.
type ItemCache struct {
	items *lru.Cache[uint64, *Item]
	lg    *log.Logger
}

func NewItemCache(size int, lg *log.Logger) (*ItemCache, error) {
	ic := &ItemCache{lg: lg}
	var err error
	ic.items, err = lru.NewWithEvict(size, ic.evicted)
	if err != nil {
		return nil, err
	}
	return ic, nil
}

func (ic *ItemCache) evicted(key uint64, it *Item) {
	if err := it.Free(); err != nil {
		ic.lg.Warn("unable to free evicted item", slog.Uint64("key", key), slog.Any("error", err))
	}
}

// Add stores it under the given key. An item previously stored under the
// key is freed unless it is the same item.
func (ic *ItemCache) Add(key uint64, it *Item) {
	if prev, ok := ic.items.Peek(key); ok && prev != it {
		ic.items.Remove(key)
	}
	ic.items.Add(key, it)
}

func (ic *ItemCache) Get(key uint64) (*Item, bool) {
	return ic.items.Get(key)
}

// Remove frees the item stored under the given key, returning whether
// there was one.
func (ic *ItemCache) Remove(key uint64) bool {
	return ic.items.Remove(key)
}

func (ic *ItemCache) Len() int {
	return ic.items.Len()
}

// Purge frees all of the cached items.
func (ic *ItemCache) Purge() {
	ic.items.Purge()
}
