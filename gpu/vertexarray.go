// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gpu manages OpenGL vertex array objects.

A VertexArray records the attribute layout of its vertex buffers once, in
Init, so that each frame needs a single bind before the indexed draw call.

	index, err := gpu.NewElementBuffer(f, indices)
	...
	verts, err := gpu.NewVertexBuffer(f, data, stride, attribs...)
	...
	vao, err := gpu.NewVertexArray(index, verts)
	...
	if err := vao.Init(prog); err != nil {
		...
	}
	// Every frame:
	vao.Render(gpu.RenderArgs{Mode: gpu.DrawModeTriangles}, prog, nil)
	// Before the context is destroyed:
	vao.Release()

All methods must be called from the thread that owns the current OpenGL
context. Nothing in this package is safe for concurrent use.
*/
package gpu

import (
	"errors"
	"fmt"

	"gioui.org/glvao/internal/gl"
)

// VertexArray is a vertex array object binding one index buffer and
// zero or more vertex attribute buffers. It owns the buffers: releasing
// the VertexArray releases them.
type VertexArray struct {
	funcs    Functions
	obj      gl.VertexArray
	index    IndexBuffer
	attribs  []AttribBuffer
	released bool
}

var (
	// ErrInvalidArgument is the class of errors caused by bad arguments.
	ErrInvalidArgument = errors.New("gpu: invalid argument")
	// ErrInvalidState is the class of errors caused by calling a method
	// in the wrong lifecycle state.
	ErrInvalidState = errors.New("gpu: invalid state")

	ErrNoIndexBuffer  = fmt.Errorf("%w: missing index buffer", ErrInvalidArgument)
	ErrNoIndices      = fmt.Errorf("%w: empty index data", ErrInvalidArgument)
	ErrBadLayout      = fmt.Errorf("%w: bad vertex layout", ErrInvalidArgument)
	ErrInitialized    = fmt.Errorf("%w: vertex array already initialized", ErrInvalidState)
	ErrNotInitialized = fmt.Errorf("%w: vertex array not initialized", ErrInvalidState)
	ErrReleased       = fmt.Errorf("%w: vertex array released", ErrInvalidState)
)

// NewVertexArray returns a VertexArray for the index buffer and the
// attribute buffers, in the order their layouts are recorded. No native
// resources are allocated until Init.
func NewVertexArray(index IndexBuffer, attribs ...AttribBuffer) (*VertexArray, error) {
	if isNilIndexBuffer(index) {
		return nil, ErrNoIndexBuffer
	}
	for i, a := range attribs {
		if isNilAttribBuffer(a) {
			return nil, fmt.Errorf("%w: attribute buffer %d is nil", ErrInvalidArgument, i)
		}
	}
	return &VertexArray{
		index:   index,
		attribs: append([]AttribBuffer(nil), attribs...),
	}, nil
}

func isNilIndexBuffer(b IndexBuffer) bool {
	switch b := b.(type) {
	case nil:
		return true
	case *ElementBuffer:
		return b == nil
	}
	return false
}

func isNilAttribBuffer(b AttribBuffer) bool {
	switch b := b.(type) {
	case nil:
		return true
	case *VertexBuffer:
		return b == nil
	}
	return false
}

// Init allocates the native vertex array and records the layout of every
// attribute buffer for prog into it. Init fails with ErrInitialized if
// called more than once, before any native call is made.
func (v *VertexArray) Init(prog Program) error {
	switch {
	case v.released:
		return ErrReleased
	case v.obj.Valid():
		return ErrInitialized
	}
	if v.funcs == nil {
		f, err := loadFunctions(Config{})
		if err != nil {
			return fmt.Errorf("gpu: loading OpenGL: %w", err)
		}
		v.funcs = f
	}
	v.obj = v.funcs.CreateVertexArray()
	v.funcs.BindVertexArray(v.obj)
	for _, a := range v.attribs {
		a.Standby(prog)
	}
	v.funcs.BindVertexArray(gl.VertexArray{})
	return nil
}

// Render binds the vertex array and draws with override if it is not nil,
// or with the owned index buffer otherwise. The vertex array is unbound
// before Render returns. prog is the program in use by the caller.
func (v *VertexArray) Render(args RenderArgs, prog Program, override IndexBuffer) error {
	switch {
	case v.released:
		return ErrReleased
	case !v.obj.Valid():
		return ErrNotInitialized
	}
	index := v.index
	if !isNilIndexBuffer(override) {
		index = override
	}
	v.funcs.BindVertexArray(v.obj)
	index.Render(args)
	v.funcs.BindVertexArray(gl.VertexArray{})
	return nil
}

// Initialized reports whether Init has allocated the native vertex array
// and the VertexArray has not been released.
func (v *VertexArray) Initialized() bool {
	return v.obj.Valid()
}

// Released reports whether Release has been called.
func (v *VertexArray) Released() bool {
	return v.released
}

// Release the native vertex array and every owned buffer. Release is
// idempotent. If no context is current on the calling thread, native
// resources are abandoned and no OpenGL function is called.
func (v *VertexArray) Release() {
	if v.released {
		return
	}
	v.released = true
	obj := v.obj
	v.obj = gl.VertexArray{}
	if v.funcs == nil {
		f, err := loadFunctions(Config{})
		if err != nil {
			return
		}
		v.funcs = f
	}
	if !v.funcs.CurrentContext() {
		return
	}
	if obj.Valid() {
		v.funcs.DeleteVertexArray(obj)
	}
	for _, a := range v.attribs {
		a.Release()
	}
	v.index.Release()
}
