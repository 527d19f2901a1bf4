// cmd/galstat/main.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// galstat builds a synthetic drawing of random segments, arcs, circles,
// and polygons in a vertex container, frees some fraction of them, and
// reports statistics about the resulting buffer. It is mostly useful for
// seeing how allocation settings affect growth and compaction.

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/opencad/gal/gal"
	"github.com/opencad/gal/log"
	"github.com/opencad/gal/math"
	"github.com/opencad/gal/util"
)

var (
	configFile   = flag.String("config", "", "JSON file with container configuration")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	nItems       = flag.Int("items", 1000, "number of items to draw")
	freeFraction = flag.Float64("free", 0.25, "fraction of items to free after drawing")
	cacheSize    = flag.Int("cache", 100000, "maximum number of cached items")
	seed         = flag.Uint64("seed", 1, "random seed")
	snapshotPath = flag.String("snapshot", "", "store a snapshot of the container at this path in the cache directory")
	dump         = flag.Bool("dump", false, "print the container's slot table")
	check        = flag.Bool("check", false, "verify the container's invariants after every item")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	cfg := gal.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = gal.LoadConfig(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	c, err := gal.NewContainer(cfg, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cache, err := gal.NewItemCache(*cacheSize, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	r := rand.New(rand.NewPCG(*seed, 0))
	for i := range *nItems {
		it, err := gal.NewItem(c)
		if err == nil {
			err = drawRandom(r, it)
		}
		if err == nil {
			err = it.Finish()
		}
		if err != nil {
			lg.Errorf("item %d: %v", i, err)
			fmt.Fprintf(os.Stderr, "item %d: %v\n", i, err)
			os.Exit(1)
		}
		cache.Add(uint64(i), it)

		if *check {
			checkContainer(c, lg)
		}
	}

	nFreed := 0
	for i := range *nItems {
		if r.Float64() < *freeFraction && cache.Remove(uint64(i)) {
			nFreed++
			if *check {
				checkContainer(c, lg)
			}
		}
	}

	ub := gal.GetUploadBuffer()
	defer gal.ReturnUploadBuffer(ub)
	if err := ub.Load(c); err != nil {
		lg.Errorf("upload: %v", err)
		fmt.Fprintf(os.Stderr, "upload: %v\n", err)
		os.Exit(1)
	}
	if err := ub.DrawAll(); err != nil {
		lg.Errorf("draw: %v", err)
		fmt.Fprintf(os.Stderr, "draw: %v\n", err)
		os.Exit(1)
	}

	st := c.Stats()
	lg.Info("container", slog.Any("stats", st), slog.Int("freed", nFreed), slog.Int("draws", len(ub.Draws)))
	fmt.Printf("%s\n%d items freed, %d draw commands, %d bytes to upload\n", st, nFreed, len(ub.Draws),
		len(ub.Bytes()))

	if *dump {
		fmt.Println(c.Dump())
	}

	if *snapshotPath != "" {
		if err := storeSnapshot(c, cfg, lg); err != nil {
			lg.Errorf("snapshot: %v", err)
			fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
			os.Exit(1)
		}
	}
}

func checkContainer(c *gal.Container, lg *log.Logger) {
	if err := c.Check(); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, c.Dump())
		os.Exit(1)
	}
}

// storeSnapshot writes a snapshot of the container to the cache and then
// reads it back to make sure that it restores to the same buffer.
func storeSnapshot(c *gal.Container, cfg gal.Config, lg *log.Logger) error {
	if err := util.CacheStoreObject(*snapshotPath, c.Snapshot()); err != nil {
		return err
	}

	var snap gal.Snapshot
	if _, err := util.CacheRetrieveObject(*snapshotPath, &snap); err != nil {
		return err
	}
	rc, items, err := gal.RestoreContainer(&snap, cfg, lg)
	if err != nil {
		return err
	}
	if rc.Len() != c.Len() || len(items) != len(c.Items()) {
		return fmt.Errorf("restored %d vertices in %d items, expected %d in %d", rc.Len(), len(items),
			c.Len(), len(c.Items()))
	}

	total := c.Stats()
	total.Merge(rc.Stats())
	lg.Info("stored snapshot", slog.String("path", *snapshotPath), slog.Any("restored", rc.Stats()),
		slog.Any("total", total))
	fmt.Printf("snapshot stored: %d items\ntotal with restored copy: %s\n", len(items), total)
	return nil
}

// Colors are drawn from the range between these two.
var (
	lowColor  = gal.RGBAFromHex(0x1f4e9c)
	highColor = gal.RGBAFromHex(0xe8a33d)
)

func randomPoint(r *rand.Rand) [2]float32 {
	return [2]float32{1000 * r.Float32(), 1000 * r.Float32()}
}

// drawRandom draws one randomly-chosen primitive with a random color and
// placement into the item.
func drawRandom(r *rand.Rand, it *gal.Item) error {
	it.SetColor(gal.LerpRGBA(r.Float32(), lowColor, highColor).WithAlpha(0.5 + r.Float32()/2))
	if r.IntN(4) == 0 {
		p := randomPoint(r)
		it.SetTransform(math.Translate(p[0], p[1], 0).Mul4(math.Rotate2D(2 * math.Radians(180) * r.Float32())))
	}

	width := 1 + 5*r.Float32()
	switch r.IntN(5) {
	case 0:
		it.SetShader(gal.LineShader(width))
		return gal.DrawSegment(it, randomPoint(r), randomPoint(r), width)
	case 1:
		it.SetShader(gal.LineShader(width))
		pts := make([][2]float32, 2+r.IntN(10))
		for i := range pts {
			pts[i] = randomPoint(r)
		}
		return gal.DrawPolyline(it, pts, width)
	case 2:
		radius := 1 + 50*r.Float32()
		it.SetShader(gal.CircleShader(radius, 0))
		return gal.DrawCircle(it, randomPoint(r), radius, 16)
	case 3:
		radius := 1 + 50*r.Float32()
		it.SetShader(gal.CircleShader(radius, width))
		return gal.DrawArc(it, randomPoint(r), radius, r.IntN(3600), r.IntN(3600), width, 32)
	default:
		center := randomPoint(r)
		ring := make([][2]float32, 3+r.IntN(8))
		for i, p := range math.CirclePoints(len(ring)) {
			s := 5 + 20*r.Float32()
			ring[i] = math.Add2f(center, math.Scale2f(p, s))
		}
		return gal.DrawPolygon(it, [][][2]float32{ring})
	}
}
