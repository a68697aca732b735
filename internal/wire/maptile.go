package wire

import (
	"encoding/binary"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/maptile"
)

// MapTileSize is the fixed length of a map-tile message (spec.md §6:
// "Total 3,077 bytes").
const MapTileSize = 1 + 2 + 2 + 2*1024 + 1024

// EncodeMapTile writes t as a map-tile message.
func EncodeMapTile(t *maptile.Tile) []byte {
	buf := make([]byte, MapTileSize)
	buf[0] = byte(TagMapTile)
	binary.LittleEndian.PutUint16(buf[1:3], uint16(int16(t.TX)))
	binary.LittleEndian.PutUint16(buf[3:5], uint16(int16(t.TZ)))
	encodeHeightsMaterials(buf[5:], t.Heights[:], t.Materials[:])
	return buf
}

// DecodeMapTile parses a map-tile message.
func DecodeMapTile(buf []byte) (*maptile.Tile, error) {
	if err := checkTag(buf, TagMapTile); err != nil {
		return nil, err
	}
	if len(buf) != MapTileSize {
		return nil, ErrShortBuffer
	}
	t := maptile.New(
		int(int16(binary.LittleEndian.Uint16(buf[1:3]))),
		int(int16(binary.LittleEndian.Uint16(buf[3:5]))),
	)
	decodeHeightsMaterials(buf[5:], t.Heights[:], t.Materials[:])
	return t, nil
}

// encodeHeightsMaterials writes 1024 little-endian int16 heights
// followed by 1024 raw material bytes into dst, the shared tail layout
// of both the map-tile message and the surface-column response.
func encodeHeightsMaterials(dst []byte, heights []int16, materials []uint8) {
	for i, h := range heights {
		binary.LittleEndian.PutUint16(dst[i*2:i*2+2], uint16(h))
	}
	copy(dst[len(heights)*2:], materials)
}

func decodeHeightsMaterials(src []byte, heights []int16, materials []uint8) {
	for i := range heights {
		heights[i] = int16(binary.LittleEndian.Uint16(src[i*2 : i*2+2]))
	}
	copy(materials, src[len(heights)*2:])
}
