package wire

import (
	"encoding/binary"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
)

// ChunkDataSize is the total byte length of a chunk data message
// (spec.md §6: "Total 65,547 bytes").
const ChunkDataSize = 1 + 2 + 2 + 2 + 4 + chunk.RawDataSize

// ChunkData is the decoded form of a chunk data message.
type ChunkData struct {
	Coord        chunk.Coord
	LastBuildSeq uint32
	Raw          []byte
}

// EncodeChunkData writes d as a chunk data message.
func EncodeChunkData(d ChunkData) []byte {
	buf := make([]byte, ChunkDataSize)
	buf[0] = byte(TagChunkData)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(int16(d.Coord.X)))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(d.Coord.Y)))
	binary.LittleEndian.PutUint16(buf[5:7], uint16(int16(d.Coord.Z)))
	binary.LittleEndian.PutUint32(buf[7:11], d.LastBuildSeq)
	copy(buf[11:], d.Raw)
	return buf
}

// DecodeChunkData parses a chunk data message.
func DecodeChunkData(buf []byte) (ChunkData, error) {
	if err := checkTag(buf, TagChunkData); err != nil {
		return ChunkData{}, err
	}
	if len(buf) != ChunkDataSize {
		return ChunkData{}, ErrShortBuffer
	}
	d := ChunkData{
		Coord: chunk.Coord{
			X: int(int16(binary.LittleEndian.Uint16(buf[1:3]))),
			Y: int(int16(binary.LittleEndian.Uint16(buf[3:5]))),
			Z: int(int16(binary.LittleEndian.Uint16(buf[5:7]))),
		},
		LastBuildSeq: binary.LittleEndian.Uint32(buf[7:11]),
	}
	d.Raw = append([]byte(nil), buf[11:]...)
	return d, nil
}

// ChunkRequestSize is the fixed length of a chunk request message
// (spec.md §6: "Total 8 bytes").
const ChunkRequestSize = 1 + 2 + 2 + 2 + 1

// ChunkRequest is the decoded form of a chunk request message.
type ChunkRequest struct {
	Coord      chunk.Coord
	ForceRegen bool
}

// EncodeChunkRequest writes r as a chunk request message.
func EncodeChunkRequest(r ChunkRequest) []byte {
	buf := make([]byte, ChunkRequestSize)
	buf[0] = byte(TagChunkRequest)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(int16(r.Coord.X)))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(r.Coord.Y)))
	binary.LittleEndian.PutUint16(buf[5:7], uint16(int16(r.Coord.Z)))
	if r.ForceRegen {
		buf[7] = 1
	}
	return buf
}

// DecodeChunkRequest parses a chunk request message.
func DecodeChunkRequest(buf []byte) (ChunkRequest, error) {
	if err := checkTag(buf, TagChunkRequest); err != nil {
		return ChunkRequest{}, err
	}
	if len(buf) != ChunkRequestSize {
		return ChunkRequest{}, ErrShortBuffer
	}
	return ChunkRequest{
		Coord: chunk.Coord{
			X: int(int16(binary.LittleEndian.Uint16(buf[1:3]))),
			Y: int(int16(binary.LittleEndian.Uint16(buf[3:5]))),
			Z: int(int16(binary.LittleEndian.Uint16(buf[5:7]))),
		},
		ForceRegen: buf[7] != 0,
	}, nil
}
