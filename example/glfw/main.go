// SPDX-License-Identifier: Unlicense OR MIT

// package glfw doesn't build on OpenBSD and FreeBSD.
//go:build !openbsd && !freebsd && !android && !ios && !js
// +build !openbsd,!freebsd,!android,!ios,!js

// Command glfw draws a quad through a vertex array object in a GLFW
// window.
package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"runtime"
	"strings"

	"gioui.org/shader"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"gioui.org/glvao/gpu"
)

const vertexShader = `#version 330 core

in vec2 pos;
in vec3 color;

out vec3 vColor;

void main() {
	vColor = color;
	gl_Position = vec4(pos, 0.0, 1.0);
}
`

const fragmentShader = `#version 330 core

in vec3 vColor;

out vec4 fragColor;

void main() {
	fragColor = vec4(vColor, 1.0);
}
`

func main() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(800, 600, "Vertex arrays + GLFW", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatal(err)
	}
	prog, err := createProgram(vertexShader, fragmentShader)
	if err != nil {
		log.Fatal(err)
	}
	defer gl.DeleteProgram(prog)

	f, err := gpu.LoadFunctions(gpu.Config{})
	if err != nil {
		log.Fatal(err)
	}
	var arena gpu.Arena
	// Release before the window and its context are destroyed.
	defer arena.Release()
	quad, err := newQuad(f, &arena, gpu.Program{V: uint(prog)})
	if err != nil {
		log.Fatal(err)
	}

	for !window.ShouldClose() {
		glfw.PollEvents()
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(.2, .2, .2, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(prog)
		if err := quad.Render(gpu.RenderArgs{Mode: gpu.DrawModeTriangles}, gpu.Program{V: uint(prog)}, nil); err != nil {
			log.Fatal(err)
		}
		window.SwapBuffers()
	}
}

func newQuad(f gpu.Functions, arena *gpu.Arena, prog gpu.Program) (*gpu.VertexArray, error) {
	indices, err := gpu.NewElementBuffer(f, []uint16{0, 1, 2, 2, 1, 3})
	if err != nil {
		return nil, err
	}
	// x, y, r, g, b
	verts := []float32{
		-.5, -.5, 1, 0, 0,
		+.5, -.5, 0, 1, 0,
		-.5, +.5, 0, 0, 1,
		+.5, +.5, 1, 1, 1,
	}
	const stride = 5 * 4
	data := make([]byte, 0, len(verts)*4)
	for _, v := range verts {
		data = appendFloat32(data, v)
	}
	vertices, err := gpu.NewVertexBuffer(f, data, stride,
		gpu.Attrib{Name: "pos", InputDesc: gpu.InputDesc{Type: shader.DataTypeFloat, Size: 2, Offset: 0}},
		gpu.Attrib{Name: "color", InputDesc: gpu.InputDesc{Type: shader.DataTypeFloat, Size: 3, Offset: 2 * 4}},
	)
	if err != nil {
		indices.Release()
		return nil, err
	}
	vao, err := arena.NewVertexArray(indices, vertices)
	if err != nil {
		indices.Release()
		vertices.Release()
		return nil, err
	}
	if err := vao.Init(prog); err != nil {
		return nil, err
	}
	return vao, nil
}

func appendFloat32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func createProgram(vsrc, fsrc string) (uint32, error) {
	vs, err := compileShader(vsrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fsrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("failed to link program: %s", msg)
	}
	return prog, nil
}

func compileShader(src string, typ uint32) (uint32, error) {
	s := gl.CreateShader(typ)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(s, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(s)
		return 0, fmt.Errorf("failed to compile shader: %s", msg)
	}
	return s, nil
}

func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(n+1))
	getLog(obj, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}
