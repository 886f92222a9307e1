/*
Package observability turns machine lifecycle events into Prometheus metrics and
structured log lines.

Both producers return domain.LifecycleHooks, so they can be merged and handed to
typeb.WithLifecycleHooks:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := m.Hooks().Merge(observability.LogHooks(logger))
	machine, err := typeb.New(typeb.WithLifecycleHooks(hooks))
*/
package observability
