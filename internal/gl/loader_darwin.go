// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

const (
	openGLFramework = "/System/Library/Frameworks/OpenGL.framework/OpenGL"
	angleGLES       = "libGLESv2.dylib"
	angleEGL        = "libEGL.dylib"
)

func newLoader(cfg Config) (*loader, error) {
	name, probeLib, probe := openGLFramework, openGLFramework, "CGLGetCurrentContext"
	if cfg.ES {
		name, probeLib, probe = angleGLES, angleEGL, "eglGetCurrentContext"
	}
	lib, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("gl: failed to load %s: %w", name, err)
	}
	plib, err := purego.Dlopen(probeLib, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("gl: failed to load %s: %w", probeLib, err)
	}
	addr, err := purego.Dlsym(plib, probe)
	if err != nil {
		return nil, fmt.Errorf("gl: failed to locate %s in %s: %w", probe, probeLib, err)
	}
	return &loader{
		name:   name,
		probes: []uintptr{addr},
		lookup: func(name string) uintptr {
			addr, err := purego.Dlsym(lib, name)
			if err != nil {
				return 0
			}
			return addr
		},
	}, nil
}
