// Package registry holds the block kernels that run one second-order
// section in Direct Form II Transposed. Backends register themselves from
// init functions; the biquad package picks the best one for the host CPU.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are the section coefficients with a0 normalized to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// KernelFn filters buf in place starting from the delay state (s1, s2) and
// returns the state after the last sample.
type KernelFn func(c Coefficients, s1, s2 float64, buf []float64) (float64, float64)

// Kernel is one registered backend.
type Kernel struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Process   KernelFn
}

// Registry stores the available kernels ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global is the registry the biquad package dispatches through.
var Global = &Registry{}

// Register adds a kernel. Kernels with equal priority keep their
// registration order.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	slices.SortStableFunc(r.kernels, func(a, b Kernel) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// Lookup returns the highest-priority kernel the features support, or nil.
func (r *Registry) Lookup(features cpu.Features) *Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		if cpu.Supports(features, r.kernels[i].SIMDLevel) {
			k := r.kernels[i]
			return &k
		}
	}

	return nil
}

// Names lists the registered kernels in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.kernels))
	for i, k := range r.kernels {
		names[i] = k.Name
	}

	return names
}
