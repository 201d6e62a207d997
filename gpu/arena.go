// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"golang.org/x/exp/slices"
)

// Arena tracks vertex arrays so they can all be released at once, right
// before their context is destroyed. The zero Arena is ready for use.
type Arena struct {
	arrays []*VertexArray
}

// NewVertexArray is like the package level NewVertexArray but also
// tracks the result.
func (a *Arena) NewVertexArray(index IndexBuffer, attribs ...AttribBuffer) (*VertexArray, error) {
	v, err := NewVertexArray(index, attribs...)
	if err != nil {
		return nil, err
	}
	a.arrays = append(a.arrays, v)
	return v, nil
}

// Track adds v to the arena. Tracking a vertex array twice has no effect.
func (a *Arena) Track(v *VertexArray) {
	if v == nil || slices.Contains(a.arrays, v) {
		return
	}
	a.arrays = append(a.arrays, v)
}

// Forget stops tracking v without releasing it.
func (a *Arena) Forget(v *VertexArray) {
	if i := slices.Index(a.arrays, v); i != -1 {
		a.arrays = slices.Delete(a.arrays, i, i+1)
	}
}

// Len returns the number of tracked vertex arrays.
func (a *Arena) Len() int {
	return len(a.arrays)
}

// Release every tracked vertex array, most recently tracked first, and
// empty the arena.
func (a *Arena) Release() {
	for i := len(a.arrays) - 1; i >= 0; i-- {
		a.arrays[i].Release()
	}
	a.arrays = nil
}
