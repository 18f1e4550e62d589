package registry

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPrefersHigherPriority(t *testing.T) {
	reg := &Registry{}
	reg.Register(Kernel{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})
	reg.Register(Kernel{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Kernel{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	assert.Equal(t, []string{"avx2", "sse2", "generic"}, reg.Names())

	k := reg.Lookup(cpu.Features{HasSSE2: true, HasAVX2: true})
	require.NotNil(t, k)
	assert.Equal(t, "avx2", k.Name)

	k = reg.Lookup(cpu.Features{HasSSE2: true})
	require.NotNil(t, k)
	assert.Equal(t, "sse2", k.Name)

	k = reg.Lookup(cpu.Features{})
	require.NotNil(t, k)
	assert.Equal(t, "generic", k.Name)
}

func TestLookupForceGeneric(t *testing.T) {
	reg := &Registry{}
	reg.Register(Kernel{Name: "generic", SIMDLevel: cpu.SIMDNone})
	reg.Register(Kernel{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	k := reg.Lookup(cpu.Features{HasAVX2: true, ForceGeneric: true})
	require.NotNil(t, k)
	assert.Equal(t, "generic", k.Name)
}

func TestLookupEmpty(t *testing.T) {
	reg := &Registry{}
	assert.Nil(t, reg.Lookup(cpu.Features{}))
	assert.Empty(t, reg.Names())
}
