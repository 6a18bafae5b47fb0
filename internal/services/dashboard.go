package services

import (
	"context"
	"log"
	"sync"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
)

// StatFunc produces one dashboard number
type StatFunc func(ctx context.Context) (int64, error)

// Stat is one dashboard number or the reason it is missing
type Stat struct {
	Value int64       `json:"value"`
	Error string      `json:"error,omitempty"`
	Kind  apperr.Kind `json:"kind,omitempty"`
}

type statResult struct {
	name string
	stat Stat
}

// CollectStats runs every source concurrently. A failing source only
// marks its own entry; the others are still reported. If ctx ends before
// all sources finish, the results are discarded and ok is false.
func CollectStats(ctx context.Context, sources map[string]StatFunc) (stats map[string]Stat, ok bool) {
	results := make(chan statResult, len(sources))

	var wg sync.WaitGroup
	for name, fn := range sources {
		wg.Add(1)
		go func(name string, fn StatFunc) {
			defer wg.Done()
			value, err := fn(ctx)
			if err != nil {
				appErr := apperr.FromDB(err, name)
				log.Printf("Dashboard stat %s failed: %v", name, err)
				results <- statResult{name: name, stat: Stat{Error: appErr.Message, Kind: appErr.Kind}}
				return
			}
			results <- statResult{name: name, stat: Stat{Value: value}}
		}(name, fn)
	}

	wg.Wait()
	close(results)

	if ctx.Err() != nil {
		return nil, false
	}

	stats = make(map[string]Stat, len(sources))
	for r := range results {
		stats[r.name] = r.stat
	}
	return stats, true
}
