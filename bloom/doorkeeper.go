// Package bloom provides cache admission using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Doorkeeper gates cache admission: a key is admitted only once it has
// been seen before, so one-off documents never displace repeat traffic.
// False positives are possible (a first-time key may be admitted); false
// negatives are not.
type Doorkeeper struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewDoorkeeper creates a Doorkeeper sized for n expected keys with the
// given false positive rate.
func NewDoorkeeper(n uint, fpRate float64) *Doorkeeper {
	return &Doorkeeper{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Admit records the key and reports whether it had been seen before.
func (d *Doorkeeper) Admit(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.TestAndAddString(key)
}

// Reset clears all recorded keys.
func (d *Doorkeeper) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.f.ClearAll()
}

// EstimatedCount returns the approximate number of recorded keys.
func (d *Doorkeeper) EstimatedCount() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint(d.f.ApproximatedSize())
}
