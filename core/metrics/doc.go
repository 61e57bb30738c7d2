// Package metrics exports Prometheus metrics for the request dispatcher and
// the in-memory session store.
//
//	reg := prometheus.NewRegistry()
//	col, err := metrics.New(reg)
//	if err != nil {
//		return err
//	}
//	_ = col.WatchSessions(store)
//
//	engine := dispatcher.New(dispatcher.WithObserver(col))
//	engine.AddRoute("/metrics", metrics.Handler(reg, log))
package metrics
