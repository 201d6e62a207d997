// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !freebsd && !darwin && !windows
// +build !linux,!freebsd,!darwin,!windows

package gl

import (
	"errors"
	"runtime"
)

func newLoader(cfg Config) (*loader, error) {
	return nil, errors.New("gl: native OpenGL is not supported on " + runtime.GOOS)
}

func registerFunc(fptr interface{}, addr uintptr) {
	panic("unreachable")
}
