package coefdump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
)

const (
	// Magic starts every record.
	Magic uint32 = 0x544C4946
	// HeaderSize is the size of the fixed record header.
	HeaderSize = 128
	// MaxNameLen is the longest name a header stores; one byte stays NUL.
	MaxNameLen = 118

	version = 0
	nameOff = 9
)

var marker = []byte("FILT")

var (
	// ErrBadMagic is returned when a record does not start with the magic.
	ErrBadMagic = errors.New("coefdump: bad magic")
	// ErrTruncated is returned when data ends inside a record.
	ErrTruncated = errors.New("coefdump: truncated record")
	// ErrTooLarge is returned when a record would exceed 65535 bytes.
	ErrTooLarge = errors.New("coefdump: record too large")
	// ErrUnsupportedValueType is returned for value types other than
	// float32 and float64.
	ErrUnsupportedValueType = errors.New("coefdump: unsupported value type")
	// ErrUnknownStructure is returned for a structure byte other than SOS
	// or POLY.
	ErrUnknownStructure = errors.New("coefdump: unknown structure")
	// ErrUnsupportedVersion is returned for a header version other than 0.
	ErrUnsupportedVersion = errors.New("coefdump: unsupported version")
	// ErrLengthMismatch is returned when polynomial b and a differ in length
	// or a payload does not divide into whole coefficient sets.
	ErrLengthMismatch = errors.New("coefdump: length mismatch")
)

// Structure tells how the payload values are laid out.
type Structure uint8

const (
	// StructureSOS is a cascade of second-order sections.
	StructureSOS Structure = 0
	// StructurePoly is a numerator/denominator polynomial pair.
	StructurePoly Structure = 1
)

func (s Structure) String() string {
	switch s {
	case StructureSOS:
		return "sos"
	case StructurePoly:
		return "poly"
	default:
		return fmt.Sprintf("Structure(%d)", uint8(s))
	}
}

// ValueType is the storage type of the payload values.
type ValueType uint8

const (
	// Float32 stores IEEE 754 single precision values.
	Float32 ValueType = 0
	// Float64 stores IEEE 754 double precision values.
	Float64 ValueType = 1
)

// Size returns the byte size of one value, or 0 for an unsupported type.
func (v ValueType) Size() int {
	switch v {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

func (v ValueType) String() string {
	switch v {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(v))
	}
}

// Record is one decoded coefficient record. Sections is set for
// StructureSOS, B and A for StructurePoly.
type Record struct {
	Name      string
	Structure Structure
	ValueType ValueType

	Sections []biquad.Coefficients
	B, A     []float64
}

// AppendSOS appends a section record to dst. Names longer than
// [MaxNameLen] bytes are cut at the last whole rune that fits.
func AppendSOS(dst []byte, name string, sections []biquad.Coefficients, vt ValueType) ([]byte, error) {
	values := make([]float64, 0, 5*len(sections))
	for _, s := range sections {
		values = append(values, s.B0, s.B1, s.B2, s.A1, s.A2)
	}

	return appendRecord(dst, name, StructureSOS, vt, values)
}

// AppendPoly appends a polynomial record to dst. b and a must have the same
// length.
func AppendPoly(dst []byte, name string, b, a []float64, vt ValueType) ([]byte, error) {
	if len(b) != len(a) {
		return dst, fmt.Errorf("%w: len(b)=%d len(a)=%d", ErrLengthMismatch, len(b), len(a))
	}

	values := make([]float64, 0, len(b)+len(a))
	values = append(values, b...)
	values = append(values, a...)

	return appendRecord(dst, name, StructurePoly, vt, values)
}

// WriteSOS writes a section record to w.
func WriteSOS(w io.Writer, name string, sections []biquad.Coefficients, vt ValueType) error {
	buf, err := AppendSOS(nil, name, sections, vt)
	if err != nil {
		return err
	}

	_, err = w.Write(buf)

	return err
}

// WritePoly writes a polynomial record to w.
func WritePoly(w io.Writer, name string, b, a []float64, vt ValueType) error {
	buf, err := AppendPoly(nil, name, b, a, vt)
	if err != nil {
		return err
	}

	_, err = w.Write(buf)

	return err
}

func appendRecord(dst []byte, name string, st Structure, vt ValueType, values []float64) ([]byte, error) {
	size := vt.Size()
	if size == 0 {
		return dst, fmt.Errorf("%w: %v", ErrUnsupportedValueType, vt)
	}

	length := HeaderSize + size*len(values)
	if length > math.MaxUint16 {
		return dst, fmt.Errorf("%w: %d bytes", ErrTooLarge, length)
	}

	if len(name) > MaxNameLen {
		n := MaxNameLen
		for n > 0 && !utf8.RuneStart(name[n]) {
			n--
		}

		name = name[:n]
	}

	dst = binary.LittleEndian.AppendUint32(dst, Magic)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(length))
	dst = append(dst, version, byte(st), byte(vt))
	dst = append(dst, name...)
	dst = append(dst, make([]byte, HeaderSize-nameOff-len(name))...)

	for _, v := range values {
		if vt == Float32 {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
		} else {
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
		}
	}

	return dst, nil
}

// Parse decodes every record in data. After each record it skips ahead to
// the next "FILT" marker; trailing bytes without a marker must be zero.
func Parse(data []byte) ([]Record, error) {
	if bytes.HasPrefix(data, []byte("TLIF")) {
		return nil, fmt.Errorf("%w: big-endian records are not supported", ErrBadMagic)
	}

	var records []Record

	for len(data) > 0 {
		rec, n, err := parseRecord(data)
		if err != nil {
			return records, fmt.Errorf("record %d: %w", len(records), err)
		}

		records = append(records, rec)
		data = data[n:]

		i := bytes.Index(data, marker)
		if i < 0 {
			if bytes.ContainsFunc(data, func(r rune) bool { return r != 0 }) {
				return records, fmt.Errorf("%w: %d trailing bytes", ErrBadMagic, len(data))
			}

			break
		}

		data = data[i:]
	}

	return records, nil
}

func parseRecord(data []byte) (Record, int, error) {
	if len(data) < HeaderSize {
		return Record{}, 0, fmt.Errorf("%w: %d header bytes", ErrTruncated, len(data))
	}

	if m := binary.LittleEndian.Uint32(data); m != Magic {
		return Record{}, 0, fmt.Errorf("%w: %#08x", ErrBadMagic, m)
	}

	length := int(binary.LittleEndian.Uint16(data[4:]))
	if data[6] != version {
		return Record{}, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[6])
	}

	rec := Record{
		Name:      string(bytes.TrimRight(data[nameOff:HeaderSize], "\x00")),
		Structure: Structure(data[7]),
		ValueType: ValueType(data[8]),
	}

	size := rec.ValueType.Size()
	if size == 0 {
		return Record{}, 0, fmt.Errorf("%w: %v", ErrUnsupportedValueType, rec.ValueType)
	}

	if length < HeaderSize || (length-HeaderSize)%size != 0 {
		return Record{}, 0, fmt.Errorf("%w: record length %d", ErrLengthMismatch, length)
	}

	if len(data) < length {
		return Record{}, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, length, len(data))
	}

	values := decodeValues(data[HeaderSize:length], rec.ValueType)

	switch rec.Structure {
	case StructureSOS:
		if len(values)%5 != 0 {
			return Record{}, 0, fmt.Errorf("%w: %d section values", ErrLengthMismatch, len(values))
		}

		rec.Sections = make([]biquad.Coefficients, len(values)/5)
		for i := range rec.Sections {
			v := values[5*i:]
			rec.Sections[i] = biquad.Coefficients{B0: v[0], B1: v[1], B2: v[2], A1: v[3], A2: v[4]}
		}
	case StructurePoly:
		if len(values)%2 != 0 {
			return Record{}, 0, fmt.Errorf("%w: %d polynomial values", ErrLengthMismatch, len(values))
		}

		n := len(values) / 2
		rec.B = values[:n:n]
		rec.A = values[n:]
	default:
		return Record{}, 0, fmt.Errorf("%w: %v", ErrUnknownStructure, rec.Structure)
	}

	return rec, length, nil
}

func decodeValues(p []byte, vt ValueType) []float64 {
	size := vt.Size()
	out := make([]float64, len(p)/size)

	for i := range out {
		if vt == Float32 {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:])))
		} else {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(p[i*8:]))
		}
	}

	return out
}

// WriteText prints the record in a readable listing.
func (r Record) WriteText(w io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s:\n", r.Name)

	switch r.Structure {
	case StructureSOS:
		for i, s := range r.Sections {
			fmt.Fprintf(&buf, "  SOS stage %d:\n", i+1)
			fmt.Fprintf(&buf, "    b0 = %g\n    b1 = %g\n    b2 = %g\n", s.B0, s.B1, s.B2)
			fmt.Fprintf(&buf, "    a1 = %g\n    a2 = %g\n", s.A1, s.A2)
		}
	case StructurePoly:
		for i, v := range r.B {
			fmt.Fprintf(&buf, "  b[%d] = %g\n", i, v)
		}

		for i, v := range r.A {
			fmt.Fprintf(&buf, "  a[%d] = %g\n", i, v)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownStructure, r.Structure)
	}

	_, err := w.Write(buf.Bytes())

	return err
}
