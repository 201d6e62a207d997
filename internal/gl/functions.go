// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	gunsafe "gioui.org/glvao/internal/unsafe"
)

// Config selects the native libraries loaded by Load.
type Config struct {
	// ES selects the OpenGL ES libraries (ANGLE on macOS and Windows)
	// over desktop OpenGL.
	ES bool
}

// Functions is the process-wide table of native OpenGL entry points.
// Every method must be called on the thread owning the current context.
type Functions struct {
	glBindBuffer              func(target uint32, buffer uint32)
	glBindVertexArray         func(array uint32)
	glBufferData              func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	glDeleteBuffers           func(n int32, buffers *uint32)
	glDeleteVertexArrays      func(n int32, arrays *uint32)
	glDrawElements            func(mode uint32, count int32, typ uint32, indices uintptr)
	glEnableVertexAttribArray func(index uint32)
	glGenBuffers              func(n int32, buffers *uint32)
	glGenVertexArrays         func(n int32, arrays *uint32)
	glGetAttribLocation       func(program uint32, name *byte) int32
	glGetError                func() uint32
	glGetIntegerv             func(pname uint32, data *int32)
	glVertexAttribPointer     func(index uint32, size int32, typ uint32, normalized uint8, stride int32, pointer uintptr)

	// contextProbes report the native handle of the current context, one
	// per windowing API available on the platform.
	contextProbes []func() uintptr
}

// loader is implemented per platform.
type loader struct {
	// name of the library searched for entry points, for error messages.
	name   string
	lookup func(name string) uintptr
	probes []uintptr
}

var (
	loadMu    sync.Mutex
	loadFuncs *Functions
	// loadTable is replaced by tests.
	loadTable = load
)

// Load resolves the native entry points and returns the table. The first
// successful table is cached and returned by every later call, so only
// the Config of that call takes effect. Failures are not cached. Some
// platforms only resolve entry points while a context is current, so
// Load should be called with one.
func Load(cfg Config) (*Functions, error) {
	loadMu.Lock()
	defer loadMu.Unlock()
	if loadFuncs != nil {
		return loadFuncs, nil
	}
	f, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	loadFuncs = f
	return f, nil
}

func load(cfg Config) (*Functions, error) {
	l, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	f := new(Functions)
	procs := map[string]interface{}{
		"glBindBuffer":              &f.glBindBuffer,
		"glBindVertexArray":         &f.glBindVertexArray,
		"glBufferData":              &f.glBufferData,
		"glDeleteBuffers":           &f.glDeleteBuffers,
		"glDeleteVertexArrays":      &f.glDeleteVertexArrays,
		"glDrawElements":            &f.glDrawElements,
		"glEnableVertexAttribArray": &f.glEnableVertexAttribArray,
		"glGenBuffers":              &f.glGenBuffers,
		"glGenVertexArrays":         &f.glGenVertexArrays,
		"glGetAttribLocation":       &f.glGetAttribLocation,
		"glGetError":                &f.glGetError,
		"glGetIntegerv":             &f.glGetIntegerv,
		"glVertexAttribPointer":     &f.glVertexAttribPointer,
	}
	for name, fptr := range procs {
		addr := lookupAny(l, name)
		if addr == 0 {
			return nil, fmt.Errorf("gl: failed to locate %s in %s", name, l.name)
		}
		registerFunc(fptr, addr)
	}
	for _, addr := range l.probes {
		var probe func() uintptr
		registerFunc(&probe, addr)
		f.contextProbes = append(f.contextProbes, probe)
	}
	if len(f.contextProbes) == 0 {
		return nil, fmt.Errorf("gl: no current context query available in %s", l.name)
	}
	return f, nil
}

// lookupAny resolves name, falling back to the vendor suffixed variants
// that GLES 2 and legacy macOS contexts export vertex arrays under.
func lookupAny(l *loader, name string) uintptr {
	for _, suffix := range []string{"", "OES", "APPLE"} {
		if addr := l.lookup(name + suffix); addr != 0 {
			return addr
		}
	}
	return 0
}

// CurrentContext reports whether a native context is current on the
// calling thread.
func (f *Functions) CurrentContext() bool {
	for _, probe := range f.contextProbes {
		if probe() != 0 {
			return true
		}
	}
	return false
}

func (f *Functions) BindBuffer(target Enum, b Buffer) {
	f.glBindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	f.glBindVertexArray(uint32(a.V))
}

func (f *Functions) BufferData(target Enum, data []byte, usage Enum) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	f.glBufferData(uint32(target), uintptr(len(data)), p, uint32(usage))
	runtime.KeepAlive(data)
}

func (f *Functions) CreateBuffer() Buffer {
	var b uint32
	f.glGenBuffers(1, &b)
	return Buffer{uint(b)}
}

func (f *Functions) CreateVertexArray() VertexArray {
	var a uint32
	f.glGenVertexArrays(1, &a)
	return VertexArray{uint(a)}
}

func (f *Functions) DeleteBuffer(b Buffer) {
	v := uint32(b.V)
	f.glDeleteBuffers(1, &v)
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	v := uint32(a.V)
	f.glDeleteVertexArrays(1, &v)
}

func (f *Functions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.glDrawElements(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	f.glEnableVertexAttribArray(uint32(a))
}

// GetAttribLocation returns the location of the named attribute, or -1 if
// the program has no active attribute by that name.
func (f *Functions) GetAttribLocation(p Program, name string) int {
	cname := gunsafe.CString(name)
	loc := f.glGetAttribLocation(uint32(p.V), cname)
	runtime.KeepAlive(cname)
	return int(loc)
}

func (f *Functions) GetError() Enum {
	return Enum(f.glGetError())
}

func (f *Functions) GetInteger(pname Enum) int {
	var v int32
	f.glGetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	var n uint8
	if normalized {
		n = TRUE
	}
	f.glVertexAttribPointer(uint32(dst), int32(size), uint32(ty), n, int32(stride), uintptr(offset))
}
