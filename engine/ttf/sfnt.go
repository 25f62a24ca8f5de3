package ttf

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// table is a named chunk of font data.
type table struct {
	tag  string
	data []byte
}

func tagValue(tag string) uint32 {
	return binary.BigEndian.Uint32([]byte(tag))
}

func checksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var last [4]byte
		copy(last[:], b)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// searchParams returns the binary search hints used by the table directory
// and by cmap format 4: largest power of two ≤ n, and its exponent.
func searchParams(n int) (pow2, log2 int) {
	if n == 0 {
		return 0, 0
	}
	log2 = bits.Len(uint(n)) - 1
	return 1 << log2, log2
}

// assemble writes the table directory and the tables, which are expected
// to be sorted by tag. It then fixes up the checksum adjustment in head.
func assemble(tables []table) []byte {
	const dirEntrySize = 16
	var buf bytes.Buffer
	n := len(tables)
	pow2, log2 := searchParams(n)
	be := binary.BigEndian
	w16 := func(v int) { _ = binary.Write(&buf, be, uint16(v)) }
	w32 := func(v uint32) { _ = binary.Write(&buf, be, v) }
	w32(0x00010000) // TrueType outlines
	w16(n)
	w16(pow2 * dirEntrySize)
	w16(log2)
	w16(n*dirEntrySize - pow2*dirEntrySize)
	offset := 12 + n*dirEntrySize
	headOffset := -1
	for _, t := range tables {
		w32(tagValue(t.tag))
		w32(checksum(t.data))
		w32(uint32(offset))
		w32(uint32(len(t.data)))
		if t.tag == "head" {
			headOffset = offset
		}
		offset += pad4(len(t.data))
	}
	for _, t := range tables {
		buf.Write(t.data)
		buf.Write(make([]byte, pad4(len(t.data))-len(t.data)))
	}
	font := buf.Bytes()
	if headOffset >= 0 {
		adj := 0xB1B0AFBA - checksum(font)
		be.PutUint32(font[headOffset+8:], adj)
	}
	return font
}

// structBytes serializes a fixed-size struct in big-endian order.
func structBytes(v interface{}) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
		panic(err) // only called with fixed-size table headers
	}
	return buf.Bytes()
}
