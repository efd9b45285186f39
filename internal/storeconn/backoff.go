package storeconn

import "github.com/cenkalti/backoff/v4"

// newOpenBackoff returns a fresh exponential backoff bounded by cfg's
// open timeout. BackOff implementations are stateful, so every retry
// loop needs its own instance.
func newOpenBackoff(cfg *Config) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.OpenTimeout
	return bo
}
