// Package wire implements the fixed-layout little-endian binary codec
// of spec.md §6, grounded on Gekko3D-gekko's BVHNode.ToBytes
// (binary.LittleEndian.PutUint32 into a pre-sized byte slice, field by
// field) and on the teacher's chunk serialization idiom generalized
// from one cell-data payload to the full message set: chunk data/
// request, map tile, surface-column request/response, and build
// intent/commit.
package wire

import "errors"

// Tag identifies a message's wire format. Values are this protocol's
// own numbering; they carry no meaning outside this package.
type Tag uint8

const (
	TagChunkData Tag = iota + 1
	TagChunkRequest
	TagMapTile
	TagSurfaceColumnRequest
	TagSurfaceColumnResponse
	TagBuildIntent
	TagBuildCommit
)

// ErrShortBuffer is returned by every decoder when buf's length does not
// fit the message's layout: too short, or for fixed-size messages any
// length other than the exact size (spec.md §7: malformed-wire-buffer
// conditions are rejected, never partially decoded).
var ErrShortBuffer = errors.New("wire: buffer too short")

// ErrWrongTag is returned when a decoder is handed a buffer whose first
// byte doesn't match the message type it was asked to decode.
var ErrWrongTag = errors.New("wire: unexpected tag")

// ErrInvalidCode is returned when a decoded shape, mode, or result code
// falls outside the enumeration spec.md §6 defines for it.
var ErrInvalidCode = errors.New("wire: invalid enum code")

func checkTag(buf []byte, want Tag) error {
	if len(buf) < 1 {
		return ErrShortBuffer
	}
	if Tag(buf[0]) != want {
		return ErrWrongTag
	}
	return nil
}
