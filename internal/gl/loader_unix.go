// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package gl

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"

	gunsafe "gioui.org/glvao/internal/unsafe"
)

func newLoader(cfg Config) (*loader, error) {
	libs := []string{"libGL.so.1", "libGL.so"}
	if cfg.ES {
		libs = []string{"libGLESv2.so.2", "libGLESv2.so"}
	}
	lib, name, err := dlopenAny(libs)
	if err != nil {
		return nil, err
	}
	l := &loader{name: name}
	var procAddrs []func(name *byte) uintptr
	if egl, _, err := dlopenAny([]string{"libEGL.so.1", "libEGL.so"}); err == nil {
		if addr, err := purego.Dlsym(egl, "eglGetCurrentContext"); err == nil {
			l.probes = append(l.probes, addr)
		}
		if addr, err := purego.Dlsym(egl, "eglGetProcAddress"); err == nil {
			var getProcAddress func(name *byte) uintptr
			purego.RegisterFunc(&getProcAddress, addr)
			procAddrs = append(procAddrs, getProcAddress)
		}
	}
	if !cfg.ES {
		if addr, err := purego.Dlsym(lib, "glXGetCurrentContext"); err == nil {
			l.probes = append(l.probes, addr)
		}
		if addr, err := purego.Dlsym(lib, "glXGetProcAddressARB"); err == nil {
			var getProcAddress func(name *byte) uintptr
			purego.RegisterFunc(&getProcAddress, addr)
			procAddrs = append(procAddrs, getProcAddress)
		}
	}
	l.lookup = func(name string) uintptr {
		if addr, err := purego.Dlsym(lib, name); err == nil {
			return addr
		}
		cname := gunsafe.CString(name)
		defer runtime.KeepAlive(cname)
		for _, getProcAddress := range procAddrs {
			if addr := getProcAddress(cname); addr != 0 {
				return addr
			}
		}
		return 0
	}
	return l, nil
}

func dlopenAny(names []string) (uintptr, string, error) {
	var firstErr error
	for _, name := range names {
		lib, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, name, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, "", fmt.Errorf("gl: failed to load %s: %w", names[0], firstErr)
}
