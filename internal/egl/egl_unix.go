// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package egl

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

type (
	_EGLint           int32
	_EGLDisplay       uintptr
	_EGLConfig        uintptr
	_EGLContext       uintptr
	_EGLSurface       uintptr
	NativeDisplayType uintptr
)

var (
	_eglBindAPI              func(api uint32) uint32
	_eglChooseConfig         func(disp _EGLDisplay, attribs *_EGLint, cfg *_EGLConfig, size _EGLint, ncfg *_EGLint) uint32
	_eglCreateContext        func(disp _EGLDisplay, cfg _EGLConfig, share _EGLContext, attribs *_EGLint) _EGLContext
	_eglCreatePbufferSurface func(disp _EGLDisplay, cfg _EGLConfig, attribs *_EGLint) _EGLSurface
	_eglDestroyContext       func(disp _EGLDisplay, ctx _EGLContext) uint32
	_eglDestroySurface       func(disp _EGLDisplay, surf _EGLSurface) uint32
	_eglGetDisplay           func(disp NativeDisplayType) _EGLDisplay
	_eglGetError             func() _EGLint
	_eglInitialize           func(disp _EGLDisplay, maj, min *_EGLint) uint32
	_eglMakeCurrent          func(disp _EGLDisplay, draw, read _EGLSurface, ctx _EGLContext) uint32
	_eglReleaseThread        func() uint32
	_eglTerminate            func(disp _EGLDisplay) uint32
)

var (
	loadOnce sync.Once
	loadErr  error
)

func loadEGL() error {
	loadOnce.Do(func() {
		loadErr = loadLibs()
	})
	return loadErr
}

func loadLibs() error {
	const name = "libEGL.so.1"
	lib, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("egl: failed to load %s: %v", name, err)
	}
	procs := map[string]interface{}{
		"eglBindAPI":              &_eglBindAPI,
		"eglChooseConfig":         &_eglChooseConfig,
		"eglCreateContext":        &_eglCreateContext,
		"eglCreatePbufferSurface": &_eglCreatePbufferSurface,
		"eglDestroyContext":       &_eglDestroyContext,
		"eglDestroySurface":       &_eglDestroySurface,
		"eglGetDisplay":           &_eglGetDisplay,
		"eglGetError":             &_eglGetError,
		"eglInitialize":           &_eglInitialize,
		"eglMakeCurrent":          &_eglMakeCurrent,
		"eglReleaseThread":        &_eglReleaseThread,
		"eglTerminate":            &_eglTerminate,
	}
	for sym, fptr := range procs {
		addr, err := purego.Dlsym(lib, sym)
		if err != nil {
			return fmt.Errorf("egl: failed to locate %s in %s: %w", sym, name, err)
		}
		purego.RegisterFunc(fptr, addr)
	}
	return nil
}

func eglBindAPI(api _EGLint) bool {
	return _eglBindAPI(uint32(api)) != 0
}

func eglChooseConfig(disp _EGLDisplay, attribs []_EGLint) (_EGLConfig, bool) {
	var cfg _EGLConfig
	var ncfg _EGLint
	r := _eglChooseConfig(disp, &attribs[0], &cfg, 1, &ncfg)
	runtime.KeepAlive(attribs)
	return cfg, r != 0
}

func eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, shareCtx _EGLContext, attribs []_EGLint) _EGLContext {
	c := _eglCreateContext(disp, cfg, shareCtx, &attribs[0])
	runtime.KeepAlive(attribs)
	return c
}

func eglCreatePbufferSurface(disp _EGLDisplay, cfg _EGLConfig, attribs []_EGLint) _EGLSurface {
	s := _eglCreatePbufferSurface(disp, cfg, &attribs[0])
	runtime.KeepAlive(attribs)
	return s
}

func eglDestroySurface(disp _EGLDisplay, surf _EGLSurface) bool {
	return _eglDestroySurface(disp, surf) != 0
}

func eglDestroyContext(disp _EGLDisplay, ctx _EGLContext) bool {
	return _eglDestroyContext(disp, ctx) != 0
}

func eglGetDisplay(disp NativeDisplayType) _EGLDisplay {
	return _eglGetDisplay(disp)
}

func eglGetError() _EGLint {
	return _eglGetError()
}

func eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool) {
	var maj, min _EGLint
	r := _eglInitialize(disp, &maj, &min)
	return maj, min, r != 0
}

func eglMakeCurrent(disp _EGLDisplay, draw, read _EGLSurface, ctx _EGLContext) bool {
	return _eglMakeCurrent(disp, draw, read, ctx) != 0
}

func eglReleaseThread() bool {
	return _eglReleaseThread() != 0
}

func eglTerminate(disp _EGLDisplay) bool {
	return _eglTerminate(disp) != 0
}
