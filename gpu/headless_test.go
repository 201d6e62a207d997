// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || windows
// +build linux windows

package gpu

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"gioui.org/glvao/internal/egl"
	"gioui.org/glvao/internal/gl"
)

func TestHeadlessVertexArray(t *testing.T) {
	contextDo(t, func(f *gl.Functions) error {
		if !f.CurrentContext() {
			return errors.New("no current context reported")
		}
		ib, err := NewElementBuffer(f, []uint16{0, 1, 2})
		if err != nil {
			return err
		}
		vb, err := NewVertexBuffer(f, make([]byte, 3*8), 8)
		if err != nil {
			return err
		}
		var a Arena
		defer a.Release()
		v, err := a.NewVertexArray(ib, vb)
		if err != nil {
			return err
		}
		if err := v.Init(Program{}); err != nil {
			return err
		}
		if !v.Initialized() {
			return errors.New("Init did not allocate a vertex array")
		}
		if err := glErr(f); err != nil {
			return fmt.Errorf("Init: %w", err)
		}
		if b := f.GetInteger(gl.VERTEX_ARRAY_BINDING); b != 0 {
			t.Errorf("vertex array %d left bound after Init", b)
		}
		if err := v.Render(RenderArgs{}, Program{}, nil); err != nil {
			return err
		}
		if b := f.GetInteger(gl.VERTEX_ARRAY_BINDING); b != 0 {
			t.Errorf("vertex array %d left bound after Render", b)
		}
		// The element buffer binding is recorded into the vertex array.
		f.BindVertexArray(v.obj)
		eb := f.GetInteger(gl.ELEMENT_ARRAY_BUFFER_BINDING)
		f.BindVertexArray(gl.VertexArray{})
		if want := int(ib.obj.V); eb != want {
			t.Errorf("vertex array records element buffer %d, expected %d", eb, want)
		}
		return nil
	})
}

func TestHeadlessReleaseWithoutContext(t *testing.T) {
	var v *VertexArray
	contextDo(t, func(f *gl.Functions) error {
		ib, err := NewElementBuffer(f, []uint16{0, 1, 2})
		if err != nil {
			return err
		}
		v, err = NewVertexArray(ib)
		if err != nil {
			return err
		}
		return v.Init(Program{})
	})
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	// No context is current on this thread.
	v.Release()
	if v.Initialized() || !v.Released() {
		t.Errorf("got initialized %v released %v after Release", v.Initialized(), v.Released())
	}
}

// contextDo runs fn on a locked thread with a headless context current.
// The test is skipped if no context can be created. EGL on Windows is
// provided by ANGLE, which only implements OpenGL ES.
func contextDo(t *testing.T, fn func(f *gl.Functions) error) {
	t.Helper()
	var skip, err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		es := runtime.GOOS == "windows"
		ctx, cerr := egl.NewContext(egl.EGL_DEFAULT_DISPLAY, es)
		if cerr != nil {
			skip = cerr
			return
		}
		defer ctx.Release()
		if cerr := ctx.MakeCurrent(); cerr != nil {
			skip = cerr
			return
		}
		f, cerr := gl.Load(gl.Config{ES: es})
		if cerr != nil {
			skip = cerr
			return
		}
		err = fn(f)
	}()
	<-done
	if skip != nil {
		t.Skipf("headless contexts not supported: %v", skip)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func glErr(f *gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", uint(st))
	}
	return nil
}
