// Package cmap provides a concurrency-safe sharded map.
//
// Keys are spread over a power-of-two number of shards, each guarded by
// its own RWMutex, so unrelated keys rarely contend. The file server uses
// it to keep one rate limiter per client address.
//
//	m := cmap.New[string, *rate.Limiter]()
//	l := m.GetOrCreate(ip, func() *rate.Limiter { return rate.NewLimiter(10, 20) })
package cmap
