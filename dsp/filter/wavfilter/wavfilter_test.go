package wavfilter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-iir/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iir/dsp/filter/iir"
	"github.com/cwbudde/algo-iir/dsp/filter/sos"
)

type identity struct{}

func (identity) ProcessBlock([]float64) {}

type gain float64

func (g gain) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] *= float64(g)
	}
}

// runningSum outputs the sum of all samples seen so far.
type runningSum struct{ acc float64 }

func (r *runningSum) ProcessBlock(buf []float64) {
	for i, x := range buf {
		r.acc += x
		buf[i] = r.acc
	}
}

func writeWAV(t *testing.T, rate, bitDepth, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	return path
}

func readWAV(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	return dec, buf.Data
}

func process(t *testing.T, in string, factory func() BlockProcessor, opts ...Option) (string, Info) {
	t.Helper()

	src, err := os.Open(in)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	out := filepath.Join(t.TempDir(), "out.wav")
	dst, err := os.Create(out)
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()

	info, err := Process(dst, src, factory, opts...)
	require.NoError(t, err)

	return out, info
}

func TestProcess_IdentityRoundTrip(t *testing.T) {
	for _, depth := range []int{8, 16, 24} {
		full := 1 << (depth - 1)

		data := make([]int, 2*1000)
		for i := range data {
			v := (i*7919)%(2*full) - full
			if depth == 8 {
				v += 128
			}

			data[i] = v
		}

		in := writeWAV(t, 22050, depth, 2, data)

		out, info := process(t, in, func() BlockProcessor { return identity{} }, WithBlockSize(333))
		assert.Equal(t, Info{SampleRate: 22050, Channels: 2, BitDepth: depth, Frames: 1000}, info)

		dec, got := readWAV(t, out)
		assert.Equal(t, uint32(22050), dec.SampleRate)
		assert.Equal(t, uint16(depth), dec.BitDepth)
		assert.Equal(t, uint16(2), dec.NumChans)
		assert.Equal(t, data, got, "bit depth %d", depth)
	}
}

func TestProcess_ChannelsAreIndependent(t *testing.T) {
	// Left is a constant 100, right a constant -50.
	data := make([]int, 2*10)
	for i := 0; i < len(data); i += 2 {
		data[i] = 100
		data[i+1] = -50
	}

	in := writeWAV(t, 8000, 16, 2, data)

	calls := 0
	out, _ := process(t, in, func() BlockProcessor {
		calls++
		return &runningSum{}
	}, WithBlockSize(3))
	assert.Equal(t, 2, calls)

	_, got := readWAV(t, out)
	require.Len(t, got, len(data))

	for i := range 10 {
		assert.Equal(t, 100*(i+1), got[2*i], "left %d", i)
		assert.Equal(t, -50*(i+1), got[2*i+1], "right %d", i)
	}
}

func TestProcess_ClipsAndLogs(t *testing.T) {
	in := writeWAV(t, 8000, 16, 1, []int{1000, 20000, -20000, -32768})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out, info := process(t, in, func() BlockProcessor { return gain(2) }, WithLogger(logger))
	assert.Equal(t, int64(3), info.Clipped)

	_, got := readWAV(t, out)
	assert.Equal(t, []int{2000, 32767, -32768, -32768}, got)

	assert.Contains(t, logs.String(), "wavfilter: input")
	assert.Contains(t, logs.String(), "output clipped")
}

func TestProcess_Lowpass(t *testing.T) {
	const rate = 48000

	d, err := iir.New(rate)
	require.NoError(t, err)

	des, err := d.Lowpass(prototype.Prototype{Type: prototype.TypeButterworth, Order: 4}, 1000)
	require.NoError(t, err)

	cascade, err := iir.NewSOS[float64](des, sos.FirstSection)
	require.NoError(t, err)

	// Alternating full-scale samples sit at Nyquist.
	data := make([]int, 4800)
	for i := range data {
		data[i] = 16000
		if i%2 == 1 {
			data[i] = -16000
		}
	}

	in := writeWAV(t, rate, 16, 1, data)
	out, _ := process(t, in, func() BlockProcessor { return cascade.Instance() })

	_, got := readWAV(t, out)
	require.Len(t, got, len(data))

	for _, v := range got[1000:] {
		assert.LessOrEqual(t, v, 1)
		assert.GreaterOrEqual(t, v, -1)
	}
}

func TestProcess_Errors(t *testing.T) {
	_, err := Process(nil, nil, nil)
	require.ErrorIs(t, err, ErrNilFactory)

	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a wav file", 10)), 0o644))

	src, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()

	_, err = Process(dst, src, func() BlockProcessor { return identity{} })
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestFullScale(t *testing.T) {
	v, err := fullScale(24)
	require.NoError(t, err)
	assert.InDelta(t, 8388608.0, v, 0)

	_, err = fullScale(12)
	require.ErrorIs(t, err, ErrInvalidWAV)
}
