// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"gioui.org/shader"

	"gioui.org/glvao/internal/gl"
	"gioui.org/glvao/internal/unsafe"
)

// IndexBuffer issues indexed draw calls for a VertexArray.
type IndexBuffer interface {
	// Render issues the draw call. The vertex array is bound.
	Render(args RenderArgs)
	Release()
}

// AttribBuffer is a buffer of vertex attributes.
type AttribBuffer interface {
	// Standby binds the buffer and sets up its attribute pointers for
	// prog, recording them into the bound vertex array.
	Standby(prog Program)
	Release()
}

// DrawMode is the primitive type of a draw call.
type DrawMode uint8

// Draw modes, named after their OpenGL primitives.
const (
	DrawModeTriangles DrawMode = iota
	DrawModeTriangleStrip
	DrawModeLines
	DrawModePoints
)

// RenderArgs describes a single draw call.
type RenderArgs struct {
	Mode DrawMode
	// Offset is the first index to draw.
	Offset int
	// Count is the number of indices to draw. Zero means every index
	// from Offset to the end of the buffer. Counts past the end are
	// clamped.
	Count int
}

// ElementBuffer is an IndexBuffer backed by an OpenGL element array
// buffer.
type ElementBuffer struct {
	funcs    Functions
	obj      gl.Buffer
	typ      gl.Enum
	elemSize int
	count    int
}

// InputDesc describes a vertex attribute as laid out in a vertex buffer.
type InputDesc struct {
	Type shader.DataType
	// Size is the number of components, 1 to 4.
	Size int
	// Offset is the byte offset of the attribute within a vertex.
	Offset int
}

// Attrib describes a vertex attribute by the name it has in
// shader programs.
type Attrib struct {
	Name string
	InputDesc
	Normalized bool
}

// VertexBuffer is an AttribBuffer backed by an OpenGL array buffer of
// interleaved vertices.
type VertexBuffer struct {
	funcs   Functions
	obj     gl.Buffer
	stride  int
	attribs []Attrib
}

// NewElementBuffer uploads 16-bit indices to a new element buffer.
func NewElementBuffer(f Functions, indices []uint16) (*ElementBuffer, error) {
	return newElementBuffer(f, unsafe.BytesView(indices), len(indices), gl.UNSIGNED_SHORT, 2)
}

// NewElementBuffer32 uploads 32-bit indices to a new element buffer.
func NewElementBuffer32(f Functions, indices []uint32) (*ElementBuffer, error) {
	return newElementBuffer(f, unsafe.BytesView(indices), len(indices), gl.UNSIGNED_INT, 4)
}

func newElementBuffer(f Functions, data []byte, count int, typ gl.Enum, elemSize int) (*ElementBuffer, error) {
	if count == 0 {
		return nil, ErrNoIndices
	}
	b := &ElementBuffer{
		funcs:    f,
		obj:      f.CreateBuffer(),
		typ:      typ,
		elemSize: elemSize,
		count:    count,
	}
	// Binding an element buffer changes the bound vertex array's state.
	f.BindVertexArray(gl.VertexArray{})
	f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.obj)
	f.BufferData(gl.ELEMENT_ARRAY_BUFFER, data, gl.STATIC_DRAW)
	return b, nil
}

// Len returns the number of indices in the buffer.
func (b *ElementBuffer) Len() int {
	return b.count
}

// Render draws the indices selected by args, clamped to the buffer.
// Nothing is drawn if args.Offset lies outside the buffer or args.Count
// is negative.
func (b *ElementBuffer) Render(args RenderArgs) {
	if args.Offset < 0 || args.Offset >= b.count || args.Count < 0 {
		return
	}
	count := b.count - args.Offset
	if args.Count > 0 && args.Count < count {
		count = args.Count
	}
	b.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.obj)
	b.funcs.DrawElements(toGLDrawMode(args.Mode), count, b.typ, args.Offset*b.elemSize)
}

// Release deletes the buffer. It is safe to call more than once.
func (b *ElementBuffer) Release() {
	if b.obj.Valid() {
		b.funcs.DeleteBuffer(b.obj)
	}
	*b = ElementBuffer{}
}

// NewVertexBuffer uploads interleaved vertex data to a new array buffer.
// Each vertex is stride bytes and holds the attributes described by
// attribs.
func NewVertexBuffer(f Functions, data []byte, stride int, attribs ...Attrib) (*VertexBuffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w: stride %d", ErrBadLayout, stride)
	}
	for _, a := range attribs {
		if err := a.validate(stride); err != nil {
			return nil, err
		}
	}
	b := &VertexBuffer{
		funcs:   f,
		obj:     f.CreateBuffer(),
		stride:  stride,
		attribs: append([]Attrib(nil), attribs...),
	}
	f.BindBuffer(gl.ARRAY_BUFFER, b.obj)
	f.BufferData(gl.ARRAY_BUFFER, data, gl.STATIC_DRAW)
	return b, nil
}

func (a Attrib) validate(stride int) error {
	switch {
	case a.Name == "":
		return fmt.Errorf("%w: unnamed attribute", ErrBadLayout)
	case a.Type != shader.DataTypeFloat && a.Type != shader.DataTypeShort:
		return fmt.Errorf("%w: attribute %s has unsupported type %d", ErrBadLayout, a.Name, a.Type)
	case a.Size < 1 || a.Size > 4:
		return fmt.Errorf("%w: attribute %s has size %d", ErrBadLayout, a.Name, a.Size)
	case a.Offset < 0 || a.Offset >= stride:
		return fmt.Errorf("%w: attribute %s at offset %d outside stride %d", ErrBadLayout, a.Name, a.Offset, stride)
	}
	return nil
}

// Standby binds the buffer and enables every attribute that prog uses.
// Attributes prog does not use are skipped.
func (b *VertexBuffer) Standby(prog Program) {
	b.funcs.BindBuffer(gl.ARRAY_BUFFER, b.obj)
	for _, a := range b.attribs {
		loc := b.funcs.GetAttribLocation(prog, a.Name)
		if loc < 0 {
			// Unused attributes are optimized out of programs.
			continue
		}
		b.funcs.EnableVertexAttribArray(gl.Attrib(loc))
		b.funcs.VertexAttribPointer(gl.Attrib(loc), a.Size, toGLDataType(a.Type), a.Normalized, b.stride, a.Offset)
	}
}

// Release deletes the buffer. It is safe to call more than once.
func (b *VertexBuffer) Release() {
	if b.obj.Valid() {
		b.funcs.DeleteBuffer(b.obj)
	}
	*b = VertexBuffer{}
}

func toGLDrawMode(mode DrawMode) gl.Enum {
	switch mode {
	case DrawModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case DrawModeTriangles:
		return gl.TRIANGLES
	case DrawModeLines:
		return gl.LINES
	case DrawModePoints:
		return gl.POINTS
	default:
		panic("unsupported draw mode")
	}
}

func toGLDataType(t shader.DataType) gl.Enum {
	switch t {
	case shader.DataTypeFloat:
		return gl.FLOAT
	case shader.DataTypeShort:
		return gl.SHORT
	default:
		panic("unsupported data type")
	}
}
