// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"runtime"

	syscall "golang.org/x/sys/windows"

	gunsafe "gioui.org/glvao/internal/unsafe"
)

func newLoader(cfg Config) (*loader, error) {
	if cfg.ES {
		return newANGLELoader()
	}
	opengl32, err := loadDLL("opengl32.dll")
	if err != nil {
		return nil, err
	}
	addr, err := syscall.GetProcAddress(opengl32, "wglGetProcAddress")
	if err != nil {
		return nil, fmt.Errorf("gl: failed to locate wglGetProcAddress in opengl32.dll: %w", err)
	}
	var getProcAddress func(name *byte) uintptr
	registerFunc(&getProcAddress, addr)
	probe, err := syscall.GetProcAddress(opengl32, "wglGetCurrentContext")
	if err != nil {
		return nil, fmt.Errorf("gl: failed to locate wglGetCurrentContext in opengl32.dll: %w", err)
	}
	return &loader{
		name:   "opengl32.dll",
		probes: []uintptr{probe},
		lookup: func(name string) uintptr {
			cname := gunsafe.CString(name)
			addr := getProcAddress(cname)
			runtime.KeepAlive(cname)
			// wglGetProcAddress signals failure with small sentinel values
			// besides NULL.
			switch addr {
			case 0, 1, 2, 3, ^uintptr(0):
			default:
				return addr
			}
			// OpenGL 1.1 entry points are exported by opengl32.dll itself.
			addr, err := syscall.GetProcAddress(opengl32, name)
			if err != nil {
				return 0
			}
			return addr
		},
	}, nil
}

func newANGLELoader() (*loader, error) {
	gles, err := loadDLL("libGLESv2.dll")
	if err != nil {
		return nil, err
	}
	egl, err := loadDLL("libEGL.dll")
	if err != nil {
		return nil, err
	}
	probe, err := syscall.GetProcAddress(egl, "eglGetCurrentContext")
	if err != nil {
		return nil, fmt.Errorf("gl: failed to locate eglGetCurrentContext in libEGL.dll: %w", err)
	}
	return &loader{
		name:   "libGLESv2.dll",
		probes: []uintptr{probe},
		lookup: func(name string) uintptr {
			addr, err := syscall.GetProcAddress(gles, name)
			if err != nil {
				return 0
			}
			return addr
		},
	}, nil
}

func loadDLL(name string) (syscall.Handle, error) {
	handle, err := syscall.LoadLibraryEx(name, 0, syscall.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS)
	if err != nil {
		return 0, fmt.Errorf("gl: failed to load %s: %v", name, err)
	}
	return handle, nil
}
