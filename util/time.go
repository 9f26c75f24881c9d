package util

import (
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// NowMS returns the current wall clock reading in milliseconds.
func NowMS() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// Time records the duration of the named operation in the default metrics
// registry. Call it with defer at the top of the operation being timed.
func Time(name string) func() {
	start := NowMS()
	return func() {
		interval := time.Duration(NowMS()-start) * time.Millisecond
		t := metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
		t.Update(interval)
	}
}
