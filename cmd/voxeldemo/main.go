// Command voxeldemo is a thin external-renderer harness: it generates
// one flat-terrain chunk, runs it through the lighting and meshing
// pipeline, and draws the SOLID layer with a bare-bones OpenGL forward
// pass. Grounded on the teacher's cmd/triangle (window/GL-context setup,
// shader compile/link helper) and on its blocks renderer's per-chunk-
// mesh VAO/VBO/EBO ownership convention (meshing.go's chunkMesh), but
// wired to this module's chunkmesh.ChunkMesh slot lifecycle instead of
// the teacher's own mesh cache.
package main

import (
	"log"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunkmesh"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/lighting"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
)

const (
	windowWidth  = 1024
	windowHeight = 768
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxeldemo", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalf("gl init: %v", err)
	}

	program, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		log.Fatalf("build shader program: %v", err)
	}
	defer gl.DeleteProgram(program)

	uMVP := gl.GetUniformLocation(program, gl.Str("uMVP\x00"))

	pal := material.Default()
	c := chunk.New(0, 0, 0)
	c.GenerateFlat(12, 1, 0)

	cm := chunkmesh.New()
	rebuildMesh(cm, c, pal)

	proj := mgl32.Perspective(mgl32.DegToRad(60), float32(windowWidth)/float32(windowHeight), 0.1, 500)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.53, 0.72, 0.89, 1.0)

	start := time.Now()
	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		angle := float32(time.Since(start).Seconds()) * 0.3
		radius := float32(40)
		eye := mgl32.Vec3{
			radius * float32(math.Cos(float64(angle))),
			20,
			radius * float32(math.Sin(float64(angle))),
		}
		center := mgl32.Vec3{16, 12, 16}
		view := mgl32.LookAtV(eye.Add(center), center, mgl32.Vec3{0, 1, 0})
		mvp := proj.Mul4(view)

		gl.UseProgram(program)
		gl.UniformMatrix4fv(uMVP, 1, false, &mvp[0])
		drawSolidLayer(cm)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

// rebuildMesh runs the full lighting + meshing pipeline for a single
// standalone chunk (no resident neighbors) and pushes the result into
// cm, uploading GPU buffers for every non-empty layer.
func rebuildMesh(cm *chunkmesh.ChunkMesh, c *chunk.Chunk, pal *material.Palette) {
	neighbors := chunk.MapNeighbors{}

	incoming := lighting.FullSunlightColumns()
	lighting.ComputeSunlightColumns(c, pal, incoming)
	lighting.PropagateLight(c, pal, neighbors)

	expanded := meshing.Expand(c, neighbors)
	mesh := meshing.Build(expanded, pal)

	var layers [material.Count]chunkmesh.LayerPayload
	for t := 0; t < material.Count; t++ {
		layers[t] = chunkmesh.LayerPayload{
			VertexCount: len(mesh.Vertices[t]),
			IndexCount:  len(mesh.Indices[t]),
		}
	}

	build := func(layer material.Type, cfg chunkmesh.LayerConfig, vertexCount, indexCount int) *chunkmesh.GeometryBuffer {
		existing := cm.Main(layer).Mesh
		gm := uploadLayer(existing, mesh.Vertices[layer], mesh.Indices[layer])
		return &chunkmesh.GeometryBuffer{VertexCount: vertexCount, IndexCount: indexCount, Payload: gm}
	}
	cm.UpdateFromData(layers, build)
	cm.SetVisible(material.Solid, true)
}

// drawSolidLayer issues one draw call for the chunk's SOLID layer, the
// only layer this demo bothers rendering (the spec's transparent/liquid
// layers need blending state this harness doesn't set up).
func drawSolidLayer(cm *chunkmesh.ChunkMesh) {
	slot := cm.Main(material.Solid)
	if slot.Mesh == nil || !slot.Visible {
		return
	}
	gm, ok := slot.Mesh.Payload.(*glMesh)
	if !ok || gm == nil {
		return
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, int32(slot.Mesh.IndexCount), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
layout(location = 2) in float light;
uniform mat4 uMVP;
out vec3 vNormal;
out float vLight;
void main() {
	vNormal = normal;
	vLight = light;
	gl_Position = uMVP * vec4(position, 1.0);
}` + "\x00"

const fragmentSrc = `#version 410 core
in vec3 vNormal;
in float vLight;
out vec4 fragColor;
void main() {
	float sun = max(dot(normalize(vNormal), normalize(vec3(0.4, 1.0, 0.3))), 0.15);
	float shade = sun * (0.35 + 0.65 * vLight);
	fragColor = vec4(vec3(0.45, 0.62, 0.35) * shade, 1.0);
}` + "\x00"
