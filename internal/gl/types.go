// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Buffer      struct{ V uint }
	Program     struct{ V uint }
	VertexArray struct{ V uint }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (a VertexArray) Valid() bool {
	return a.V != 0
}
