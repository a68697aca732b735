package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
)

// glMesh is the renderer-owned GPU handle stored behind a
// chunkmesh.GeometryBuffer's Payload field.
type glMesh struct {
	vao, vbo, ebo uint32
	capVerts      int
	capIndices    int
}

// vertexStride is the per-vertex byte size of the interleaved buffer
// this demo uploads: position (3 float32) + normal (3 float32) + light
// (1 float32, normalized from the packed 0-31 light level).
const vertexStride = (3 + 3 + 1) * 4

// uploadLayer writes verts/indices into existing's GPU buffers if it has
// enough capacity, or allocates a fresh glMesh otherwise. existing may
// be nil (first build of this layer).
func uploadLayer(existing *glMesh, verts []meshing.Vertex, indices []uint32) *glMesh {
	packed := make([]float32, len(verts)*7)
	for i, v := range verts {
		o := i * 7
		packed[o+0] = v.Position.X()
		packed[o+1] = v.Position.Y()
		packed[o+2] = v.Position.Z()
		packed[o+3] = v.Normal.X()
		packed[o+4] = v.Normal.Y()
		packed[o+5] = v.Normal.Z()
		packed[o+6] = float32(v.Light) / 31.0
	}

	if existing != nil && existing.capVerts >= len(verts) && existing.capIndices >= len(indices) {
		gl.BindBuffer(gl.ARRAY_BUFFER, existing.vbo)
		if len(packed) > 0 {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(packed)*4, gl.Ptr(packed))
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, existing.ebo)
		if len(indices) > 0 {
			gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
		}
		return existing
	}

	gm := &glMesh{capVerts: len(verts), capIndices: len(indices)}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	if len(packed) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(packed)*4, gl.Ptr(packed), gl.DYNAMIC_DRAW)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, vertexStride, gl.PtrOffset(6*4))

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return gm
}

// newProgram compiles and links a shader program, grounded on the
// teacher's cmd/triangle newProgram helper.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	f, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("program link error: %s", string(log))
	}

	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader compile error: %s", string(log))
	}
	return shader, nil
}
