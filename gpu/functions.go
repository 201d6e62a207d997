// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"gioui.org/glvao/internal/gl"
)

// Functions is the subset of the OpenGL API used by vertex arrays and
// the buffers they own. It is implemented by the native function table
// returned from LoadFunctions.
type Functions interface {
	CreateVertexArray() gl.VertexArray
	BindVertexArray(a gl.VertexArray)
	DeleteVertexArray(a gl.VertexArray)

	CreateBuffer() gl.Buffer
	BindBuffer(target gl.Enum, b gl.Buffer)
	BufferData(target gl.Enum, data []byte, usage gl.Enum)
	DeleteBuffer(b gl.Buffer)

	GetAttribLocation(p gl.Program, name string) int
	EnableVertexAttribArray(a gl.Attrib)
	VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int)
	DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int)

	// CurrentContext reports whether a native context is current on the
	// calling thread.
	CurrentContext() bool
}

// Config selects the native OpenGL implementation.
type Config struct {
	// ES selects OpenGL ES libraries over desktop OpenGL. On macOS
	// and Windows ES means ANGLE.
	ES bool
}

// Program is an OpenGL program object, as compiled and linked by the
// caller.
type Program = gl.Program

// loadFunctions is replaced by tests that record native calls.
var loadFunctions = func(cfg Config) (Functions, error) {
	f, err := gl.Load(gl.Config{ES: cfg.ES})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFunctions returns the process-wide native function table, resolving
// it if no earlier call succeeded. Only the Config of the first successful
// load, whether made here or implicitly by VertexArray.Init, takes effect.
// An OpenGL context should be current.
func LoadFunctions(cfg Config) (Functions, error) {
	return loadFunctions(cfg)
}
