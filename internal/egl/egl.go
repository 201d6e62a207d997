// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd || windows
// +build linux freebsd windows

// Package egl creates headless OpenGL contexts through EGL.
package egl

import (
	"errors"
	"fmt"
)

// Context is an EGL context with a 1x1 pbuffer surface.
type Context struct {
	disp _EGLDisplay
	ctx  _EGLContext
	surf _EGLSurface
}

const (
	EGL_DEFAULT_DISPLAY NativeDisplayType = 0
)

const (
	_EGL_BLUE_SIZE                       = 0x3022
	_EGL_CONTEXT_CLIENT_VERSION          = 0x3098
	_EGL_CONTEXT_MAJOR_VERSION           = 0x3098
	_EGL_CONTEXT_MINOR_VERSION           = 0x30fb
	_EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT = 0x1
	_EGL_CONTEXT_OPENGL_PROFILE_MASK     = 0x30fd
	_EGL_GREEN_SIZE                      = 0x3023
	_EGL_HEIGHT                          = 0x3056
	_EGL_NONE                            = 0x3038
	_EGL_OPENGL_API                      = 0x30a2
	_EGL_OPENGL_BIT                      = 0x0008
	_EGL_OPENGL_ES_API                   = 0x30a0
	_EGL_OPENGL_ES3_BIT                  = 0x0040
	_EGL_PBUFFER_BIT                     = 0x0001
	_EGL_RED_SIZE                        = 0x3024
	_EGL_RENDERABLE_TYPE                 = 0x3040
	_EGL_SURFACE_TYPE                    = 0x3033
	_EGL_WIDTH                           = 0x3057
	_EGL_NO_CONTEXT                      = 0
	_EGL_NO_SURFACE                      = 0
	_EGL_NO_DISPLAY                      = 0
)

// NewContext creates a context with a GL 3.3 core profile, or a GLES 3
// context if es is set. The context is not made current.
func NewContext(disp NativeDisplayType, es bool) (*Context, error) {
	if err := loadEGL(); err != nil {
		return nil, err
	}
	eglDisp := eglGetDisplay(disp)
	if eglDisp == _EGL_NO_DISPLAY {
		return nil, fmt.Errorf("egl: eglGetDisplay failed: 0x%x", eglGetError())
	}
	if _, _, ok := eglInitialize(eglDisp); !ok {
		return nil, fmt.Errorf("egl: eglInitialize failed: 0x%x", eglGetError())
	}
	c := &Context{disp: eglDisp}
	if err := c.createContext(es); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

func (c *Context) createContext(es bool) error {
	api, renderable := _EGLint(_EGL_OPENGL_API), _EGLint(_EGL_OPENGL_BIT)
	ctxAttribs := []_EGLint{
		_EGL_CONTEXT_MAJOR_VERSION, 3,
		_EGL_CONTEXT_MINOR_VERSION, 3,
		_EGL_CONTEXT_OPENGL_PROFILE_MASK, _EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		_EGL_NONE,
	}
	if es {
		api, renderable = _EGL_OPENGL_ES_API, _EGL_OPENGL_ES3_BIT
		ctxAttribs = []_EGLint{
			_EGL_CONTEXT_CLIENT_VERSION, 3,
			_EGL_NONE,
		}
	}
	if !eglBindAPI(api) {
		return fmt.Errorf("egl: eglBindAPI failed: 0x%x", eglGetError())
	}
	cfg, ok := eglChooseConfig(c.disp, []_EGLint{
		_EGL_SURFACE_TYPE, _EGL_PBUFFER_BIT,
		_EGL_RENDERABLE_TYPE, renderable,
		_EGL_RED_SIZE, 8,
		_EGL_GREEN_SIZE, 8,
		_EGL_BLUE_SIZE, 8,
		_EGL_NONE,
	})
	if !ok {
		return fmt.Errorf("egl: eglChooseConfig failed: 0x%x", eglGetError())
	}
	if cfg == 0 {
		return errors.New("egl: eglChooseConfig returned no configs")
	}
	c.ctx = eglCreateContext(c.disp, cfg, _EGL_NO_CONTEXT, ctxAttribs)
	if c.ctx == _EGL_NO_CONTEXT {
		return fmt.Errorf("egl: eglCreateContext failed: 0x%x", eglGetError())
	}
	c.surf = eglCreatePbufferSurface(c.disp, cfg, []_EGLint{
		_EGL_WIDTH, 1,
		_EGL_HEIGHT, 1,
		_EGL_NONE,
	})
	if c.surf == _EGL_NO_SURFACE {
		return fmt.Errorf("egl: eglCreatePbufferSurface failed: 0x%x", eglGetError())
	}
	return nil
}

// MakeCurrent binds the context to the calling thread. The caller must
// have locked the goroutine to its thread.
func (c *Context) MakeCurrent() error {
	if !eglMakeCurrent(c.disp, c.surf, c.surf, c.ctx) {
		return fmt.Errorf("egl: eglMakeCurrent failed: 0x%x", eglGetError())
	}
	return nil
}

// ReleaseCurrent unbinds the context from the calling thread.
func (c *Context) ReleaseCurrent() {
	if c.disp != _EGL_NO_DISPLAY {
		eglMakeCurrent(c.disp, _EGL_NO_SURFACE, _EGL_NO_SURFACE, _EGL_NO_CONTEXT)
	}
}

// Release the context and its surface.
func (c *Context) Release() {
	c.ReleaseCurrent()
	if c.surf != _EGL_NO_SURFACE {
		eglDestroySurface(c.disp, c.surf)
		c.surf = _EGL_NO_SURFACE
	}
	if c.ctx != _EGL_NO_CONTEXT {
		eglDestroyContext(c.disp, c.ctx)
		c.ctx = _EGL_NO_CONTEXT
	}
	if c.disp != _EGL_NO_DISPLAY {
		eglTerminate(c.disp)
		c.disp = _EGL_NO_DISPLAY
	}
	eglReleaseThread()
}
