package wire_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/build"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/maptile"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/sdf"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/wire"
)

func TestChunkDataRoundTrip(t *testing.T) {
	raw := make([]byte, chunk.RawDataSize)
	for i := range raw {
		raw[i] = byte(i)
	}
	want := wire.ChunkData{
		Coord:        chunk.Coord{X: -2, Y: 5, Z: 100},
		LastBuildSeq: 42,
		Raw:          raw,
	}
	buf := wire.EncodeChunkData(want)
	if len(buf) != wire.ChunkDataSize {
		t.Fatalf("expected %d bytes, got %d", wire.ChunkDataSize, len(buf))
	}
	got, err := wire.DecodeChunkData(buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Coord != want.Coord || got.LastBuildSeq != want.LastBuildSeq {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	for i := range raw {
		if got.Raw[i] != raw[i] {
			t.Fatalf("raw byte %d mismatch: got %d, want %d", i, got.Raw[i], raw[i])
		}
	}
}

func TestChunkDataDecodeRejectsShortBuffer(t *testing.T) {
	if _, err := wire.DecodeChunkData([]byte{byte(wire.TagChunkData), 0, 0}); err != wire.ErrShortBuffer {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
}

func TestChunkRequestRoundTrip(t *testing.T) {
	want := wire.ChunkRequest{Coord: chunk.Coord{X: 1, Y: -1, Z: 7}, ForceRegen: true}
	got, err := wire.DecodeChunkRequest(wire.EncodeChunkRequest(want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestSurfaceColumnRequestRoundTrip(t *testing.T) {
	want := wire.SurfaceColumnRequest{TX: -5, TZ: 9}
	got, err := wire.DecodeSurfaceColumnRequest(wire.EncodeSurfaceColumnRequest(want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestMapTileRoundTrip(t *testing.T) {
	tile := maptile.New(3, -4)
	tile.Set(0, 0, 120, 2)
	tile.Set(31, 31, -50, 9)

	got, err := wire.DecodeMapTile(wire.EncodeMapTile(tile))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.TX != tile.TX || got.TZ != tile.TZ {
		t.Fatalf("tile coord mismatch: got (%d,%d), want (%d,%d)", got.TX, got.TZ, tile.TX, tile.TZ)
	}
	if got.HeightAt(0, 0) != 120 || got.MaterialAt(0, 0) != 2 {
		t.Fatalf("tile cell (0,0) mismatch")
	}
	if got.HeightAt(31, 31) != -50 || got.MaterialAt(31, 31) != 9 {
		t.Fatalf("tile cell (31,31) mismatch")
	}
}

func TestSurfaceColumnResponseRoundTrip(t *testing.T) {
	tile := maptile.New(1, 2)
	tile.Set(5, 5, 64, 1)

	raw1 := make([]byte, chunk.RawDataSize)
	raw2 := make([]byte, chunk.RawDataSize)
	for i := range raw1 {
		raw1[i] = byte(i)
		raw2[i] = byte(255 - i)
	}
	want := maptile.Response{
		Tile: tile,
		Chunks: []maptile.ChunkPayload{
			{CY: 0, LastBuildSeq: 1, Raw: raw1},
			{CY: 3, LastBuildSeq: 2, Raw: raw2},
		},
	}

	got, err := wire.DecodeSurfaceColumnResponse(wire.EncodeSurfaceColumnResponse(want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Tile.TX != want.Tile.TX || got.Tile.TZ != want.Tile.TZ {
		t.Fatalf("tile mismatch")
	}
	if len(got.Chunks) != len(want.Chunks) {
		t.Fatalf("expected %d chunk payloads, got %d", len(want.Chunks), len(got.Chunks))
	}
	for i, c := range got.Chunks {
		if c.CY != want.Chunks[i].CY || c.LastBuildSeq != want.Chunks[i].LastBuildSeq {
			t.Fatalf("chunk payload %d header mismatch: got %+v", i, c)
		}
		for j := range c.Raw {
			if c.Raw[j] != want.Chunks[i].Raw[j] {
				t.Fatalf("chunk payload %d raw byte %d mismatch", i, j)
			}
		}
	}
}

func sampleOp(hasThickness, hasArcSweep bool) build.Op {
	op := build.Op{
		Center:   mgl32.Vec3{1.5, 2.25, -3.75},
		Rotation: mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0}).Normalize(),
		Shape: sdf.Config{
			Shape:        sdf.ShapeCylinder,
			Size:         mgl32.Vec3{2, 3, 0},
			HasThickness: hasThickness,
			Closed:       true,
			HasArcSweep:  hasArcSweep,
		},
		Mode:     build.ModeSubtract,
		Material: 7,
	}
	if hasThickness {
		op.Shape.Thickness = 0.35
	}
	if hasArcSweep {
		op.Shape.ArcSweep = 1.57
	}
	return op
}

func assertOpsClose(t *testing.T, got, want build.Op) {
	t.Helper()
	const eps = 1e-4
	if d := got.Center.Sub(want.Center).Len(); d > eps {
		t.Fatalf("center mismatch: got %v, want %v", got.Center, want.Center)
	}
	if d := got.Rotation.W - want.Rotation.W; d > eps || d < -eps {
		t.Fatalf("rotation.W mismatch: got %v, want %v", got.Rotation.W, want.Rotation.W)
	}
	if d := got.Rotation.V.Sub(want.Rotation.V).Len(); d > eps {
		t.Fatalf("rotation.V mismatch: got %v, want %v", got.Rotation.V, want.Rotation.V)
	}
	if got.Shape.Shape != want.Shape.Shape {
		t.Fatalf("shape mismatch: got %v, want %v", got.Shape.Shape, want.Shape.Shape)
	}
	if got.Mode != want.Mode {
		t.Fatalf("mode mismatch: got %v, want %v", got.Mode, want.Mode)
	}
	if got.Material != want.Material {
		t.Fatalf("material mismatch: got %v, want %v", got.Material, want.Material)
	}
	if d := got.Shape.Size.Sub(want.Shape.Size).Len(); d > eps {
		t.Fatalf("size mismatch: got %v, want %v", got.Shape.Size, want.Shape.Size)
	}
	if got.Shape.HasThickness != want.Shape.HasThickness || got.Shape.Closed != want.Shape.Closed || got.Shape.HasArcSweep != want.Shape.HasArcSweep {
		t.Fatalf("flag mismatch: got %+v, want %+v", got.Shape, want.Shape)
	}
	if got.Shape.HasThickness {
		if d := got.Shape.Thickness - want.Shape.Thickness; d > eps || d < -eps {
			t.Fatalf("thickness mismatch: got %v, want %v", got.Shape.Thickness, want.Shape.Thickness)
		}
	}
	if got.Shape.HasArcSweep {
		if d := got.Shape.ArcSweep - want.Shape.ArcSweep; d > eps || d < -eps {
			t.Fatalf("arc sweep mismatch: got %v, want %v", got.Shape.ArcSweep, want.Shape.ArcSweep)
		}
	}
}

func TestBuildIntentRoundTrip(t *testing.T) {
	cases := []build.Op{
		sampleOp(false, false),
		sampleOp(true, false),
		sampleOp(false, true),
		sampleOp(true, true),
	}
	for _, want := range cases {
		buf := wire.EncodeBuildIntent(want)
		got, err := wire.DecodeBuildIntent(buf)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		assertOpsClose(t, got, want)
	}
}

func TestBuildIntentDecodeRejectsInvalidShapeCode(t *testing.T) {
	buf := wire.EncodeBuildIntent(sampleOp(false, false))
	buf[1+12+16] = 200 // shape code byte, out of range
	if _, err := wire.DecodeBuildIntent(buf); err != wire.ErrInvalidCode {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

// Scenario 6 (spec.md §8): build commit round trip with a SUCCESS result
// carries the full intent body, matching within 1e-4.
func TestBuildCommitRoundTripSuccessCarriesIntent(t *testing.T) {
	op := sampleOp(true, false)
	want := wire.BuildCommit{
		BuildSeq: 99,
		PlayerID: 1234,
		Result:   build.ResultSuccess,
		Op:       op,
	}
	got, err := wire.DecodeBuildCommit(wire.EncodeBuildCommit(want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.BuildSeq != want.BuildSeq || got.PlayerID != want.PlayerID || got.Result != want.Result {
		t.Fatalf("commit header mismatch: got %+v, want %+v", got, want)
	}
	assertOpsClose(t, got.Op, want.Op)
}

func TestBuildCommitRoundTripFailureOmitsIntent(t *testing.T) {
	want := wire.BuildCommit{BuildSeq: 1, PlayerID: 2, Result: build.ResultTooFar}
	buf := wire.EncodeBuildCommit(want)
	if len(buf) != wire.BuildCommitFixedSize {
		t.Fatalf("expected a fixed-size header-only commit message, got %d bytes", len(buf))
	}
	got, err := wire.DecodeBuildCommit(buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.BuildSeq != want.BuildSeq || got.PlayerID != want.PlayerID || got.Result != want.Result {
		t.Fatalf("commit mismatch: got %+v, want %+v", got, want)
	}
}
