// gal/cache_test.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"testing"
)

func TestItemCacheEviction(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	ic, err := NewItemCache(2, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := makeItem(t, c, red, 0, 3)
	b := makeItem(t, c, green, 10, 2)
	ic.Add(1, a)
	ic.Add(2, b)

	// Touch a so that b is the least recently used.
	if it, ok := ic.Get(1); !ok || it != a {
		t.Errorf("Get(1) gave (%v, %v)", it, ok)
	}

	d := makeItem(t, c, blue, 20, 4)
	ic.Add(3, d)

	if ic.Len() != 2 {
		t.Errorf("cache has %d items, expected 2", ic.Len())
	}
	if _, ok := c.Slot(b.ID()); ok {
		t.Errorf("evicted item's slot wasn't freed")
	}
	if _, ok := ic.Get(2); ok {
		t.Errorf("evicted item is still cached")
	}
	checkVertices(t, a, []float32{0, 1, 2}, red)
	checkVertices(t, d, []float32{20, 21, 22, 23}, blue)
	checkSlot(t, d, Slot{Offset: 3, Size: 4})
}

func TestItemCacheReplace(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	ic, err := NewItemCache(8, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := makeItem(t, c, red, 0, 3)
	ic.Add(7, a)
	ic.Add(7, a)
	if _, ok := c.Slot(a.ID()); !ok {
		t.Errorf("re-adding the same item freed it")
	}

	b := makeItem(t, c, green, 10, 1)
	ic.Add(7, b)
	if _, ok := c.Slot(a.ID()); ok {
		t.Errorf("replaced item wasn't freed")
	}
	if it, ok := ic.Get(7); !ok || it != b {
		t.Errorf("Get(7) gave (%v, %v)", it, ok)
	}

	if !ic.Remove(7) {
		t.Errorf("Remove(7) found nothing")
	}
	if c.Len() != 0 {
		t.Errorf("buffer has %d vertices after removal, expected 0", c.Len())
	}
}

func TestItemCachePurge(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	ic, err := NewItemCache(8, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		ic.Add(uint64(i), makeItem(t, c, red, 10*i, 2))
	}
	if c.Len() != 10 {
		t.Fatalf("buffer has %d vertices, expected 10", c.Len())
	}

	ic.Purge()
	if ic.Len() != 0 || c.Len() != 0 || len(c.Items()) != 0 {
		t.Errorf("after Purge: cache %d, buffer %d, items %d", ic.Len(), c.Len(), len(c.Items()))
	}
}
