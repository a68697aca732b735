// Package chunkmesh owns the per-chunk main/preview mesh-slot lifecycle
// of spec.md §4.7, grounded on the teacher's world.ChunkStore's modCount
// idiom (chunk_store.go: "modCount uint64 // Increases on any chunk
// add/remove") generalized from a store-wide counter to a per-chunk
// generation counter that downstream systems such as collision compare
// to decide whether to rebuild.
package chunkmesh

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/material"

// LayerConfig describes one material-type layer's render conventions
// (spec.md §4.7's layer-conventions table).
type LayerConfig struct {
	CastShadow    bool
	ReceiveShadow bool
	RenderOrder   int
}

// DefaultLayerConfigs returns the spec's default per-layer conventions,
// indexed by material.Type.
func DefaultLayerConfigs() [material.Count]LayerConfig {
	var cfg [material.Count]LayerConfig
	cfg[material.Solid] = LayerConfig{CastShadow: true, ReceiveShadow: true, RenderOrder: 0}
	cfg[material.Transparent] = LayerConfig{CastShadow: true, ReceiveShadow: true, RenderOrder: 1}
	cfg[material.Liquid] = LayerConfig{CastShadow: false, ReceiveShadow: true, RenderOrder: 2}
	return cfg
}

// GeometryBuffer is the renderer-owned geometry payload for one layer.
// It is an opaque handle from chunkmesh's point of view: the package
// only tracks whether a slot is populated and bumps the generation
// counter, leaving actual GPU buffer ownership to the renderer.
type GeometryBuffer struct {
	VertexCount int
	IndexCount  int
	Payload     any // renderer-specific handle (VBO id, mgl32 buffers, ...)
}

// Slot is one material-type layer's mesh state.
type Slot struct {
	Mesh    *GeometryBuffer
	Config  LayerConfig
	Visible bool
}

// LayerBuilder constructs a GeometryBuffer for one layer, supplied by the
// renderer; kept out of this package so chunkmesh never depends on a
// concrete graphics API.
type LayerBuilder func(layer material.Type, cfg LayerConfig, vertexCount, indexCount int) *GeometryBuffer

// ChunkMesh holds one chunk's main and preview mesh slot arrays.
type ChunkMesh struct {
	main    [material.Count]Slot
	preview [material.Count]Slot

	previewActive bool
	generation    uint64
}

// New creates a ChunkMesh with the default layer conventions and all
// slots empty.
func New() *ChunkMesh {
	cfgs := DefaultLayerConfigs()
	cm := &ChunkMesh{}
	for t := range cm.main {
		cm.main[t].Config = cfgs[t]
		cm.preview[t].Config = cfgs[t]
	}
	return cm
}

// Generation returns the mesh's current generation counter. It
// increments on every successful updateFromData so collision and other
// downstream systems can cheaply detect "nothing changed" (spec.md §4.7).
func (cm *ChunkMesh) Generation() uint64 { return cm.generation }

// Main returns the read-only current state of main slot t.
func (cm *ChunkMesh) Main(t material.Type) Slot { return cm.main[t] }

// PreviewActive reports whether preview meshes are currently shown in
// place of main meshes.
func (cm *ChunkMesh) PreviewActive() bool { return cm.previewActive }

// LayerPayload is one layer's new geometry to apply: VertexCount==0 or
// IndexCount==0 means "dispose this layer".
type LayerPayload struct {
	VertexCount, IndexCount int
}

// UpdateFromData applies layers[3] to the main mesh slots: empty
// payloads with an existing mesh are disposed; non-empty payloads swap
// geometry in place when a mesh already exists (preserving slot identity
// so the generation counter is the only change signal downstream needs)
// or construct a new mesh otherwise. Always bumps the generation counter
// on success (spec.md §4.7).
func (cm *ChunkMesh) UpdateFromData(layers [material.Count]LayerPayload, build LayerBuilder) {
	for t := material.Type(0); int(t) < material.Count; t++ {
		applyLayer(&cm.main[t], t, layers[t], build)
	}
	cm.generation++
}

// UpdatePreview applies layers[3] into the preview slots using the same
// rules as UpdateFromData.
func (cm *ChunkMesh) UpdatePreview(layers [material.Count]LayerPayload, build LayerBuilder) {
	for t := material.Type(0); int(t) < material.Count; t++ {
		applyLayer(&cm.preview[t], t, layers[t], build)
	}
}

// applyLayer always calls build for a non-empty payload, even when a
// mesh already occupies the slot: vertex/index counts can stay the same
// across a rebuild while the underlying geometry changes (e.g. a build
// op that adds then removes material along the same boundary), so count
// equality alone can't be used to skip re-upload. build is expected to
// reuse the existing GPU buffer in place (resizing only if capacity is
// insufficient) when slot.Mesh.Payload already holds a renderer handle;
// chunkmesh itself stays opaque to that handle's type.
func applyLayer(slot *Slot, t material.Type, payload LayerPayload, build LayerBuilder) {
	empty := payload.VertexCount == 0 || payload.IndexCount == 0

	if empty {
		slot.Mesh = nil
		return
	}

	slot.Mesh = build(t, slot.Config, payload.VertexCount, payload.IndexCount)
}

// SetPreviewActive toggles whether preview meshes are shown in place of
// main meshes, disposing preview meshes on deactivation (spec.md §4.7,
// §3's "preview buffers are discarded on commit or cancel").
func (cm *ChunkMesh) SetPreviewActive(active bool) {
	cm.previewActive = active
	if !active {
		for t := range cm.preview {
			cm.preview[t].Mesh = nil
		}
	}
}

// SetVisible toggles layer t's main-mesh visibility (purely cosmetic,
// spec.md §4.7).
func (cm *ChunkMesh) SetVisible(t material.Type, visible bool) {
	cm.main[t].Visible = visible
}
