package chunk

import (
	"encoding/binary"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// RawDataSize is the byte length of a chunk's serialized cell buffer:
// 32,768 cells * 2 bytes.
const RawDataSize = Volume * 2

// ToSerialized writes the chunk's main cell buffer as 65,536 raw
// little-endian bytes, matching the on-wire chunk-data body (spec.md
// §6). The returned slice is freshly allocated.
func (c *Chunk) ToSerialized() []byte {
	buf := make([]byte, RawDataSize)
	for i, cell := range c.data {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(cell))
	}
	return buf
}

// FromSerialized overwrites the chunk's main cell buffer from a
// 65,536-byte raw payload and marks the chunk dirty. It panics if raw is
// not exactly RawDataSize bytes, since a short read is a malformed-wire-
// buffer condition the caller must reject before reaching here (spec.md
// §7).
func (c *Chunk) FromSerialized(raw []byte) {
	if len(raw) != RawDataSize {
		panic("chunk: FromSerialized: wrong payload length")
	}
	for i := range c.data {
		c.data[i] = voxel.Cell(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	c.dirty = true
}
