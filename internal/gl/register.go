// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd || darwin || windows
// +build linux freebsd darwin windows

package gl

import "github.com/ebitengine/purego"

// registerFunc binds the Go function pointed to by fptr to the native
// entry point at addr.
func registerFunc(fptr interface{}, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
