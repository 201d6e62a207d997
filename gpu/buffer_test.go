// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"testing"

	"gioui.org/shader"

	"gioui.org/glvao/internal/unsafe"
)

func TestElementBuffer(t *testing.T) {
	r := new(recorder)
	b, err := NewElementBuffer(r, []uint16{0, 1, 2, 2, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if n := b.Len(); n != 6 {
		t.Errorf("got %d indices, expected 6", n)
	}
	checkCalls(t, r.calls,
		"CreateBuffer() 1",
		"BindVertexArray(0)",
		"BindBuffer(0x8893, 1)",
		"BufferData(0x8893, 12 bytes, 0x88e4)",
	)
	tests := []struct {
		args RenderArgs
		draw []string
	}{
		{RenderArgs{}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x4, 6, 0x1403, 0)"}},
		{RenderArgs{Offset: 3}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x4, 3, 0x1403, 6)"}},
		{RenderArgs{Mode: DrawModeTriangleStrip, Offset: 1, Count: 4}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x5, 4, 0x1403, 2)"}},
		{RenderArgs{Mode: DrawModeLines, Count: 2}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x1, 2, 0x1403, 0)"}},
		{RenderArgs{Mode: DrawModePoints}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x0, 6, 0x1403, 0)"}},
		// Clamped to the end of the buffer.
		{RenderArgs{Offset: 4, Count: 5}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x4, 2, 0x1403, 8)"}},
		{RenderArgs{Count: 100}, []string{"BindBuffer(0x8893, 1)", "DrawElements(0x4, 6, 0x1403, 0)"}},
		// Nothing left to draw.
		{RenderArgs{Offset: 6}, nil},
		{RenderArgs{Offset: 7, Count: 1}, nil},
		{RenderArgs{Offset: -1}, nil},
		{RenderArgs{Offset: -1, Count: 2}, nil},
		{RenderArgs{Count: -1}, nil},
	}
	for _, test := range tests {
		r.reset()
		b.Render(test.args)
		checkCalls(t, r.calls, test.draw...)
	}
	r.reset()
	b.Release()
	b.Release()
	checkCalls(t, r.calls, "DeleteBuffer(1)")
}

func TestElementBuffer32(t *testing.T) {
	r := new(recorder)
	b, err := NewElementBuffer32(r, []uint32{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	r.reset()
	b.Render(RenderArgs{Offset: 1, Count: 2})
	checkCalls(t, r.calls,
		"BindBuffer(0x8893, 1)",
		"DrawElements(0x4, 2, 0x1405, 4)",
	)
}

func TestElementBufferEmpty(t *testing.T) {
	r := new(recorder)
	if _, err := NewElementBuffer(r, nil); !errors.Is(err, ErrNoIndices) || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v, expected %v", err, ErrNoIndices)
	}
	if _, err := NewElementBuffer32(r, []uint32{}); !errors.Is(err, ErrNoIndices) {
		t.Errorf("got error %v, expected %v", err, ErrNoIndices)
	}
	checkCalls(t, r.calls)
}

func TestVertexBufferStandby(t *testing.T) {
	r := &recorder{locs: map[string]int{"pos": 0, "uv": 2}}
	const stride = 6 * 4
	data := unsafe.BytesView([]float32{
		0, 0, 0, 0, 0, 0,
		1, 0, 0, 1, 0, 0,
		0, 1, 0, 0, 1, 0,
	})
	b, err := NewVertexBuffer(r, data, stride,
		Attrib{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 3, Offset: 0}},
		Attrib{Name: "uv", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 2, Offset: 12}},
		// Optimized out of the program.
		Attrib{Name: "unused", InputDesc: InputDesc{Type: shader.DataTypeShort, Size: 1, Offset: 20}, Normalized: true},
	)
	if err != nil {
		t.Fatal(err)
	}
	checkCalls(t, r.calls,
		"CreateBuffer() 1",
		"BindBuffer(0x8892, 1)",
		"BufferData(0x8892, 72 bytes, 0x88e4)",
	)
	r.reset()
	b.Standby(Program{V: 9})
	checkCalls(t, r.calls,
		"BindBuffer(0x8892, 1)",
		"GetAttribLocation(9, pos) 0",
		"EnableVertexAttribArray(0)",
		"VertexAttribPointer(0, 3, 0x1406, false, 24, 0)",
		"GetAttribLocation(9, uv) 2",
		"EnableVertexAttribArray(2)",
		"VertexAttribPointer(2, 2, 0x1406, false, 24, 12)",
		"GetAttribLocation(9, unused) -1",
	)
	r.reset()
	b.Release()
	b.Release()
	checkCalls(t, r.calls, "DeleteBuffer(1)")
}

func TestVertexBufferLayout(t *testing.T) {
	float2 := InputDesc{Type: shader.DataTypeFloat, Size: 2}
	tests := []struct {
		name    string
		stride  int
		attribs []Attrib
	}{
		{"zero stride", 0, nil},
		{"negative stride", -8, nil},
		{"unnamed", 8, []Attrib{{InputDesc: float2}}},
		{"zero size", 8, []Attrib{{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat}}}},
		{"size 5", 32, []Attrib{{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 5}}}},
		{"offset past stride", 8, []Attrib{{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 2, Offset: 8}}}},
		{"negative offset", 8, []Attrib{{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 2, Offset: -4}}}},
		{"unsupported type", 8, []Attrib{{Name: "pos", InputDesc: InputDesc{Type: shader.DataType(0xff), Size: 2}}}},
	}
	for _, test := range tests {
		r := new(recorder)
		_, err := NewVertexBuffer(r, make([]byte, 64), test.stride, test.attribs...)
		if !errors.Is(err, ErrBadLayout) || !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: got error %v, expected %v", test.name, err, ErrBadLayout)
		}
		checkCalls(t, r.calls)
	}
}

func TestVertexArrayWithBuffers(t *testing.T) {
	r := newRecorder(t)
	r.locs = map[string]int{"pos": 1}
	ib, err := NewElementBuffer(r, []uint16{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	vb, err := NewVertexBuffer(r, make([]byte, 3*8), 8,
		Attrib{Name: "pos", InputDesc: InputDesc{Type: shader.DataTypeFloat, Size: 2}},
	)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVertexArray(ib, vb)
	if err != nil {
		t.Fatal(err)
	}
	r.reset()
	if err := v.Init(Program{V: 5}); err != nil {
		t.Fatal(err)
	}
	if err := v.Render(RenderArgs{}, Program{V: 5}, nil); err != nil {
		t.Fatal(err)
	}
	v.Release()
	checkCalls(t, r.calls,
		"CreateVertexArray() 3",
		"BindVertexArray(3)",
		"BindBuffer(0x8892, 2)",
		"GetAttribLocation(5, pos) 1",
		"EnableVertexAttribArray(1)",
		"VertexAttribPointer(1, 2, 0x1406, false, 8, 0)",
		"BindVertexArray(0)",
		"BindVertexArray(3)",
		"BindBuffer(0x8893, 1)",
		"DrawElements(0x4, 3, 0x1403, 0)",
		"BindVertexArray(0)",
		"DeleteVertexArray(3)",
		"DeleteBuffer(2)",
		"DeleteBuffer(1)",
	)
}
