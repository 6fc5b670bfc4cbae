// Command bench drives synthetic workloads against the eviction engines
// and reports hit rates, with optional pprof and Prometheus endpoints.
//
// Two modes:
//   - zipf:    a concurrent read/write mix with Zipf-distributed keys
//     against one selected engine (throughput-oriented).
//   - compare: the hot-spot, loop-scan and shifting-workload scenarios run
//     single-threaded against every engine (hit-rate-oriented).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polycache/polycache/cache"
	"github.com/polycache/polycache/metrics/prom"
	"github.com/polycache/polycache/policy"
	"github.com/polycache/polycache/policy/arc"
	"github.com/polycache/polycache/policy/lfu"
	"github.com/polycache/polycache/policy/lru"
)

func main() {
	var (
		mode     = flag.String("mode", "zipf", "workload mode: zipf | compare")
		engine   = flag.String("engine", "lru", "engine for zipf mode: lru | lruk | lfu | arc | sharded-lru | sharded-lfu")
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "shard count for sharded engines (0=auto)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "worker goroutines (zipf mode)")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration (zipf mode)")
		readPct  = flag.Int("reads", 80, "read percentage [0..100] (zipf mode)")
		keys     = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV    = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	switch *mode {
	case "zipf":
		c := buildEngine(*engine, *capacity, *shards)
		if *metricsAddr != "" {
			prometheus.MustRegister(prom.NewCollector(c, "polycache", "bench", prometheus.Labels{"engine": *engine}))
			http.Handle("/metrics", promhttp.Handler())
			go func() {
				log.Printf("metrics: serving at %s", *metricsAddr)
				log.Println(http.ListenAndServe(*metricsAddr, nil))
			}()
		}
		runZipf(c, *engine, *workers, *duration, *readPct, *keys, *zipfS, *zipfV, *seed)
	case "compare":
		runCompare(*capacity, *shards, *keys, *seed)
	default:
		log.Fatalf("unknown mode: %q (use zipf or compare)", *mode)
	}
}

// buildEngine constructs one engine by name. Sharded variants route
// through the cache front; the rest are standalone policy instances.
func buildEngine(name string, capacity, shards int) policy.Policy[string, string] {
	switch name {
	case "lru":
		return lru.New[string, string](capacity)
	case "lruk":
		// History twice the main capacity, promote on the 2nd access.
		return lru.NewK[string, string](capacity, 2*capacity, 2)
	case "lfu":
		return lfu.New[string, string](capacity, lfu.DefaultMaxAverageFrequency)
	case "arc":
		return arc.New[string, string](capacity, arc.DefaultTransformThreshold)
	case "sharded-lru":
		return cache.New[string, string](cache.Options[string, string]{
			Capacity: capacity,
			Shards:   shards,
		})
	case "sharded-lfu":
		return cache.New[string, string](cache.Options[string, string]{
			Capacity: capacity,
			Shards:   shards,
			NewPolicy: func(c int) policy.Policy[string, string] {
				return lfu.New[string, string](c, lfu.DefaultMaxAverageFrequency)
			},
		})
	default:
		log.Fatalf("unknown engine: %q", name)
		return nil
	}
}

// runZipf hammers one engine with a concurrent Zipf-keyed read/write mix
// and reports throughput plus the engine's own hit tallies.
func runZipf(c policy.Policy[string, string], name string, workers int, duration time.Duration, readPct, keys int, zipfS, zipfV float64, seed int64) {
	if workers <= 0 {
		workers = 1
	}

	// Preload half the keyspace head for a realistic starting hit-rate.
	preload := keys / 2
	if preload > 500_000 {
		preload = 500_000
	}
	for i := 0; i < preload; i++ {
		c.Put("k:"+strconv.Itoa(i), "v")
	}

	stop := time.Now().Add(duration)
	var ops uint64
	var mu sync.Mutex

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			// rand.Rand is not goroutine-safe: one RNG + Zipf per worker.
			r := rand.New(rand.NewSource(seed + int64(id)*9973))
			z := rand.NewZipf(r, zipfS, zipfV, uint64(keys-1))
			local := uint64(0)
			for time.Now().Before(stop) {
				k := "k:" + strconv.FormatUint(z.Uint64(), 10)
				if int(r.Int31n(100)) < readPct {
					c.Get(k)
				} else {
					c.Put(k, "v")
				}
				local++
			}
			mu.Lock()
			ops += local
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	s := c.Stats()
	fmt.Printf("engine=%s workers=%d keys=%d dur=%v seed=%d\n", name, workers, keys, elapsed, seed)
	fmt.Printf("ops=%d (%.0f ops/s)\n", ops, float64(ops)/elapsed.Seconds())
	fmt.Printf("hits=%d misses=%d hit-rate=%.2f%% len=%d\n", s.Hits, s.Misses, 100*s.HitRate(), c.Len())
}

// runCompare replays three access patterns against every engine and
// prints per-engine hit rates: hot-spot (skewed point access), loop scan
// (sequential sweep wider than the cache) and a shifting working set.
func runCompare(capacity, shards, keys int, seed int64) {
	engines := []string{"lru", "lruk", "lfu", "arc", "sharded-lru", "sharded-lfu"}
	scenarios := []struct {
		name string
		run  func(c policy.Policy[string, string], r *rand.Rand) (hits, gets int)
	}{
		{"hot-spot", func(c policy.Policy[string, string], r *rand.Rand) (int, int) {
			return scenarioHotSpot(c, r, keys)
		}},
		{"loop-scan", func(c policy.Policy[string, string], r *rand.Rand) (int, int) {
			return scenarioLoopScan(c, r, capacity)
		}},
		{"shifting", func(c policy.Policy[string, string], r *rand.Rand) (int, int) {
			return scenarioShifting(c, r)
		}},
	}

	for _, sc := range scenarios {
		fmt.Printf("=== %s (cap=%d) ===\n", sc.name, capacity)
		for _, name := range engines {
			c := buildEngine(name, capacity, shards)
			r := rand.New(rand.NewSource(seed))
			hits, gets := sc.run(c, r)
			fmt.Printf("%-12s hit-rate %6.2f%%  (%d/%d)\n",
				name, 100*float64(hits)/float64(gets), hits, gets)
		}
	}
}

const compareOps = 100_000

// scenarioHotSpot: 40% of accesses go to 3 hot keys, the rest spread over
// a cold range far wider than the cache.
func scenarioHotSpot(c policy.Policy[string, string], r *rand.Rand, keys int) (hits, gets int) {
	const hotKeys = 3
	coldKeys := keys
	if coldKeys < hotKeys+1 {
		coldKeys = 5000
	}
	pick := func() string {
		if r.Intn(100) < 40 {
			return "k:" + strconv.Itoa(r.Intn(hotKeys))
		}
		return "k:" + strconv.Itoa(hotKeys+r.Intn(coldKeys))
	}
	for i := 0; i < compareOps; i++ {
		k := pick()
		c.Put(k, "v"+k)
	}
	for i := 0; i < compareOps; i++ {
		if _, ok := c.Get(pick()); ok {
			hits++
		}
		gets++
	}
	return hits, gets
}

// scenarioLoopScan: sequential sweeps over a range wider than the cache
// with occasional random pokes, the classic LRU-hostile pattern.
func scenarioLoopScan(c policy.Policy[string, string], r *rand.Rand, capacity int) (hits, gets int) {
	loop := 2 * capacity
	if loop <= 0 {
		loop = 1000
	}
	for i := 0; i < loop; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Put(k, "v"+k)
	}
	pos := 0
	for i := 0; i < compareOps; i++ {
		var k string
		switch {
		case i%100 < 60: // sequential scan
			k = "k:" + strconv.Itoa(pos)
			pos = (pos + 1) % loop
		case i%100 < 90: // random within the loop
			k = "k:" + strconv.Itoa(r.Intn(loop))
		default: // random outside the loop
			k = "k:" + strconv.Itoa(loop+r.Intn(loop))
		}
		if _, ok := c.Get(k); ok {
			hits++
		}
		gets++
	}
	return hits, gets
}

// scenarioShifting: the working set jumps between five disjoint key
// ranges, with a 70/30 read/write mix inside the current phase.
func scenarioShifting(c policy.Policy[string, string], r *rand.Rand) (hits, gets int) {
	const (
		phases    = 5
		phaseKeys = 1000
	)
	for p := 0; p < phases; p++ {
		base := p * phaseKeys
		for i := 0; i < compareOps/phases; i++ {
			k := "k:" + strconv.Itoa(base+r.Intn(phaseKeys))
			if r.Intn(100) < 30 {
				c.Put(k, "v"+k)
			} else {
				if _, ok := c.Get(k); ok {
					hits++
				}
				gets++
			}
		}
	}
	return hits, gets
}
