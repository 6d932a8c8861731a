package observability

import "time"

// ObserveRepo times one logical repository operation.
func (p *Prom) ObserveRepo(collection, op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"

	if err != nil {
		status = "error"
	}

	p.RepoOpDuration.WithLabelValues(collection, op, status).Observe(time.Since(start).Seconds())

	return err
}
