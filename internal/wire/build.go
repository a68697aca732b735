package wire

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/build"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/sdf"
)

const buildIntentFixedSize = 1 + 12 + 16 + 1 + 1 + 12 + 1 + 1 // 45 bytes

const (
	flagHasThickness = 1 << 0
	flagClosed       = 1 << 1
	flagHasArcSweep  = 1 << 2
)

// EncodeBuildIntent writes op as a build-intent message (spec.md §6;
// size 45–53 bytes depending on the hollow/arc-sweep flag bits).
func EncodeBuildIntent(op build.Op) []byte {
	size := buildIntentFixedSize
	if op.Shape.HasThickness {
		size += 4
	}
	if op.Shape.HasArcSweep {
		size += 4
	}

	buf := make([]byte, size)
	buf[0] = byte(TagBuildIntent)
	off := 1

	off = putVec3(buf, off, op.Center)
	off = putQuat(buf, off, op.Rotation)

	buf[off] = shapeCode(op.Shape.Shape)
	off++
	buf[off] = modeCode(op.Mode)
	off++

	off = putVec3(buf, off, op.Shape.Size)

	buf[off] = uint8(op.Material)
	off++

	var flags uint8
	if op.Shape.HasThickness {
		flags |= flagHasThickness
	}
	if op.Shape.Closed {
		flags |= flagClosed
	}
	if op.Shape.HasArcSweep {
		flags |= flagHasArcSweep
	}
	buf[off] = flags
	off++

	if op.Shape.HasThickness {
		off = putFloat32(buf, off, op.Shape.Thickness)
	}
	if op.Shape.HasArcSweep {
		off = putFloat32(buf, off, op.Shape.ArcSweep)
	}
	return buf
}

// DecodeBuildIntent parses a build-intent message.
func DecodeBuildIntent(buf []byte) (build.Op, error) {
	if err := checkTag(buf, TagBuildIntent); err != nil {
		return build.Op{}, err
	}
	if len(buf) < buildIntentFixedSize {
		return build.Op{}, ErrShortBuffer
	}

	off := 1
	center, off := getVec3(buf, off)
	rotation, off := getQuat(buf, off)

	shape, err := shapeFromCode(buf[off])
	if err != nil {
		return build.Op{}, err
	}
	off++
	mode, err := modeFromCode(buf[off])
	if err != nil {
		return build.Op{}, err
	}
	off++

	size, off := getVec3(buf, off)
	material := int(buf[off])
	off++
	flags := buf[off]
	off++

	cfg := sdf.Config{
		Shape:        shape,
		Size:         size,
		HasThickness: flags&flagHasThickness != 0,
		Closed:       flags&flagClosed != 0,
		HasArcSweep:  flags&flagHasArcSweep != 0,
	}

	if cfg.HasThickness {
		if len(buf) < off+4 {
			return build.Op{}, ErrShortBuffer
		}
		cfg.Thickness, off = getFloat32(buf, off)
	}
	if cfg.HasArcSweep {
		if len(buf) < off+4 {
			return build.Op{}, ErrShortBuffer
		}
		cfg.ArcSweep, off = getFloat32(buf, off)
	}

	return build.Op{
		Center:   center,
		Rotation: rotation,
		Shape:    cfg,
		Mode:     mode,
		Material: material,
	}, nil
}

func shapeCode(s sdf.Shape) uint8 {
	switch s {
	case sdf.ShapeSphere:
		return 1
	case sdf.ShapeCylinder:
		return 2
	case sdf.ShapePrism:
		return 3
	default:
		return 0
	}
}

func shapeFromCode(v uint8) (sdf.Shape, error) {
	switch v {
	case 0:
		return sdf.ShapeCube, nil
	case 1:
		return sdf.ShapeSphere, nil
	case 2:
		return sdf.ShapeCylinder, nil
	case 3:
		return sdf.ShapePrism, nil
	default:
		return 0, ErrInvalidCode
	}
}

func modeCode(m build.Mode) uint8 { return uint8(m) }

func modeFromCode(v uint8) (build.Mode, error) {
	if v > uint8(build.ModeFill) {
		return 0, ErrInvalidCode
	}
	return build.Mode(v), nil
}

// BuildCommitFixedSize is the length of a build-commit message without
// the optional trailing intent body (spec.md §6).
const BuildCommitFixedSize = 1 + 4 + 2 + 1

// BuildCommit is the decoded form of a build-commit message.
type BuildCommit struct {
	BuildSeq uint32
	PlayerID uint16
	Result   build.Result
	Op       build.Op // only meaningful when Result == build.ResultSuccess
}

// EncodeBuildCommit writes c as a build-commit message, appending the
// full intent body only when Result is SUCCESS (spec.md §6).
func EncodeBuildCommit(c BuildCommit) []byte {
	header := make([]byte, BuildCommitFixedSize)
	header[0] = byte(TagBuildCommit)
	binary.LittleEndian.PutUint32(header[1:5], c.BuildSeq)
	binary.LittleEndian.PutUint16(header[5:7], c.PlayerID)
	header[7] = uint8(c.Result)

	if c.Result != build.ResultSuccess {
		return header
	}
	intent := EncodeBuildIntent(c.Op)
	// Drop the intent's own tag byte; the commit message carries its own.
	return append(header, intent[1:]...)
}

// DecodeBuildCommit parses a build-commit message.
func DecodeBuildCommit(buf []byte) (BuildCommit, error) {
	if err := checkTag(buf, TagBuildCommit); err != nil {
		return BuildCommit{}, err
	}
	if len(buf) < BuildCommitFixedSize {
		return BuildCommit{}, ErrShortBuffer
	}

	c := BuildCommit{
		BuildSeq: binary.LittleEndian.Uint32(buf[1:5]),
		PlayerID: binary.LittleEndian.Uint16(buf[5:7]),
		Result:   build.Result(buf[7]),
	}
	if c.Result > build.ResultRateLimited {
		return BuildCommit{}, ErrInvalidCode
	}
	if c.Result != build.ResultSuccess {
		return c, nil
	}

	// Re-prepend a synthetic tag byte so DecodeBuildIntent's own tag
	// check can run unmodified against the trailing intent body.
	body := append([]byte{byte(TagBuildIntent)}, buf[BuildCommitFixedSize:]...)
	op, err := DecodeBuildIntent(body)
	if err != nil {
		return BuildCommit{}, err
	}
	c.Op = op
	return c, nil
}

func putVec3(buf []byte, off int, v mgl32.Vec3) int {
	off = putFloat32(buf, off, v.X())
	off = putFloat32(buf, off, v.Y())
	off = putFloat32(buf, off, v.Z())
	return off
}

func getVec3(buf []byte, off int) (mgl32.Vec3, int) {
	x, off := getFloat32(buf, off)
	y, off := getFloat32(buf, off)
	z, off := getFloat32(buf, off)
	return mgl32.Vec3{x, y, z}, off
}

func putQuat(buf []byte, off int, q mgl32.Quat) int {
	off = putFloat32(buf, off, q.W)
	off = putFloat32(buf, off, q.V.X())
	off = putFloat32(buf, off, q.V.Y())
	off = putFloat32(buf, off, q.V.Z())
	return off
}

func getQuat(buf []byte, off int) (mgl32.Quat, int) {
	w, off := getFloat32(buf, off)
	x, off := getFloat32(buf, off)
	y, off := getFloat32(buf, off)
	z, off := getFloat32(buf, off)
	return mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}, off
}

func putFloat32(buf []byte, off int, v float32) int {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	return off + 4
}

func getFloat32(buf []byte, off int) (float32, int) {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4])), off + 4
}
