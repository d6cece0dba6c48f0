package common

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Timed runs fn, logs how long it took under label and, when observer is
// non-nil, records the duration in seconds.
func Timed[T any](label string, observer prometheus.Observer, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	log.Printf("[BENCH] %s took %s", label, elapsed)
	if observer != nil {
		observer.Observe(elapsed.Seconds())
	}
	return result, err
}
