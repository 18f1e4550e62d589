//go:build amd64 && !purego

package biquad

import (
	"sync"
	"testing"

	archregistry "github.com/cwbudde/algo-iir/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetKernelForTest() {
	blockKernel = nil
	blockKernelName = ""
	blockKernelOnce = sync.Once{}
}

func TestKernelDispatch_AMD64(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{"forced-generic", cpu.Features{ForceGeneric: true, Architecture: "amd64"}, "generic"},
		{"sse2", cpu.Features{HasSSE2: true, Architecture: "amd64"}, "sse2"},
		{"avx2", cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}, "avx2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)
			t.Cleanup(func() {
				cpu.ResetDetection()
				resetKernelForTest()
			})

			resetKernelForTest()

			k := archregistry.Global.Lookup(cpu.DetectFeatures())
			require.NotNil(t, k)
			assert.Equal(t, tt.want, k.Name)
			assert.Equal(t, tt.want, KernelName())

			ref := NewSection(testCoeffs())
			got := NewSection(testCoeffs())

			in := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}
			want := make([]float64, len(in))

			for i, x := range in {
				want[i] = ref.ProcessSample(x)
			}

			buf := append([]float64(nil), in...)
			got.ProcessBlock(buf)
			assert.InDeltaSlice(t, want, buf, eps)
		})
	}
}
