// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"io"

	"go.uber.org/zap"
)

// defaultInitialCap is the first attempt's capacity when Options leaves it unset.
const defaultInitialCap = 256

// Options configures the growth-retry driver.
type Options struct {
	// InitialCap is the capacity of the first attempt.
	InitialCap int
	// MaxCap bounds growth. Zero means unbounded.
	MaxCap int
	// Logger receives a Debug entry per retry. Nil uses [Logger].
	Logger *zap.Logger
}

// DefaultOptions returns the driver configuration used by [Gen].
func DefaultOptions() Options {
	return Options{InitialCap: defaultInitialCap}
}

// Run applies s to d once. Insufficient space is returned to the caller
// rather than retried.
func Run(s Serializer, d Dest) (Dest, error) {
	return s(d)
}

// Gen runs s with [DefaultOptions] and returns the bytes written.
func Gen(s Serializer) ([]byte, error) {
	return GenWith(s, DefaultOptions())
}

// GenWith runs s over a bounded [View]. When s fails for lack of space, the
// partial attempt is discarded, capacity grows to max(2*cap, cap+need) and s
// runs again from scratch; retries are O(log(final/initial)). Any other
// failure is returned immediately. Determinism of s guarantees the bytes
// match a single attempt with enough room.
func GenWith(s Serializer, opts Options) ([]byte, error) {
	capacity := opts.InitialCap
	if capacity <= 0 {
		capacity = defaultInitialCap
	}
	if opts.MaxCap > 0 && capacity > opts.MaxCap {
		capacity = opts.MaxCap
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}

	for attempt := 1; ; attempt++ {
		buf := make([]byte, capacity)
		d, err := s(NewView(buf))
		if err == nil {
			n, err := posOf(d)
			if err != nil {
				return nil, err
			}
			return buf[:n], nil
		}
		need, ok := Need(err)
		if !ok {
			return nil, err
		}
		next := grow(capacity, need)
		if opts.MaxCap > 0 && next > opts.MaxCap {
			next = opts.MaxCap
		}
		if next < capacity+need || next <= capacity {
			return nil, err
		}
		log.Debug("emit: growing destination",
			zap.Int("attempt", attempt),
			zap.Int("capacity", capacity),
			zap.Int("need", need),
			zap.Int("next", next))
		capacity = next
	}
}

// grow doubles capacity, clamped to at least capacity+need.
func grow(capacity, need int) int {
	return max(2*capacity, capacity+need)
}

// GenTo runs s with opts and writes the result to w in a single call.
func GenTo(w io.Writer, s Serializer, opts Options) (int, error) {
	b, err := GenWith(s, opts)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	if err != nil {
		return n, IOError(err)
	}
	return n, nil
}
