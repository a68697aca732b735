package wire

import (
	"encoding/binary"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/maptile"
)

// SurfaceColumnRequestSize is the fixed length of a surface-column
// request (spec.md §6: "Total 5 bytes").
const SurfaceColumnRequestSize = 1 + 2 + 2

// SurfaceColumnRequest is the decoded form of a surface-column request.
type SurfaceColumnRequest struct {
	TX, TZ int
}

// EncodeSurfaceColumnRequest writes r as a surface-column request.
func EncodeSurfaceColumnRequest(r SurfaceColumnRequest) []byte {
	buf := make([]byte, SurfaceColumnRequestSize)
	buf[0] = byte(TagSurfaceColumnRequest)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(int16(r.TX)))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(r.TZ)))
	return buf
}

// DecodeSurfaceColumnRequest parses a surface-column request.
func DecodeSurfaceColumnRequest(buf []byte) (SurfaceColumnRequest, error) {
	if err := checkTag(buf, TagSurfaceColumnRequest); err != nil {
		return SurfaceColumnRequest{}, err
	}
	if len(buf) != SurfaceColumnRequestSize {
		return SurfaceColumnRequest{}, ErrShortBuffer
	}
	return SurfaceColumnRequest{
		TX: int(int16(binary.LittleEndian.Uint16(buf[1:3]))),
		TZ: int(int16(binary.LittleEndian.Uint16(buf[3:5]))),
	}, nil
}

const surfaceColumnResponseHeaderSize = 1 + 2 + 2 + 2*1024 + 1024 + 1
const surfaceColumnChunkEntrySize = 2 + 4 + chunk.RawDataSize

// EncodeSurfaceColumnResponse writes resp as a surface-column response
// (spec.md §4.10, §6).
func EncodeSurfaceColumnResponse(resp maptile.Response) []byte {
	size := surfaceColumnResponseHeaderSize + len(resp.Chunks)*surfaceColumnChunkEntrySize
	buf := make([]byte, size)

	buf[0] = byte(TagSurfaceColumnResponse)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(int16(resp.Tile.TX)))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(resp.Tile.TZ)))
	encodeHeightsMaterials(buf[5:], resp.Tile.Heights[:], resp.Tile.Materials[:])

	countOffset := 5 + 2*1024 + 1024
	buf[countOffset] = uint8(len(resp.Chunks))

	off := countOffset + 1
	for _, cp := range resp.Chunks {
		binary.LittleEndian.PutUint16(buf[off:off+2], uint16(int16(cp.CY)))
		binary.LittleEndian.PutUint32(buf[off+2:off+6], cp.LastBuildSeq)
		copy(buf[off+6:off+6+chunk.RawDataSize], cp.Raw)
		off += surfaceColumnChunkEntrySize
	}
	return buf
}

// DecodeSurfaceColumnResponse parses a surface-column response.
func DecodeSurfaceColumnResponse(buf []byte) (maptile.Response, error) {
	if err := checkTag(buf, TagSurfaceColumnResponse); err != nil {
		return maptile.Response{}, err
	}
	if len(buf) < surfaceColumnResponseHeaderSize {
		return maptile.Response{}, ErrShortBuffer
	}

	tile := maptile.New(
		int(int16(binary.LittleEndian.Uint16(buf[1:3]))),
		int(int16(binary.LittleEndian.Uint16(buf[3:5]))),
	)
	decodeHeightsMaterials(buf[5:], tile.Heights[:], tile.Materials[:])

	countOffset := 5 + 2*1024 + 1024
	count := int(buf[countOffset])

	off := countOffset + 1
	want := off + count*surfaceColumnChunkEntrySize
	if len(buf) != want {
		return maptile.Response{}, ErrShortBuffer
	}

	resp := maptile.Response{Tile: tile}
	for i := 0; i < count; i++ {
		cy := int(int16(binary.LittleEndian.Uint16(buf[off : off+2])))
		seq := binary.LittleEndian.Uint32(buf[off+2 : off+6])
		raw := append([]byte(nil), buf[off+6:off+6+chunk.RawDataSize]...)
		resp.Chunks = append(resp.Chunks, maptile.ChunkPayload{CY: cy, LastBuildSeq: seq, Raw: raw})
		off += surfaceColumnChunkEntrySize
	}
	return resp, nil
}
