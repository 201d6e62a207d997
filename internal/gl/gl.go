// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                 = 0x8892
	ELEMENT_ARRAY_BUFFER         = 0x8893
	ELEMENT_ARRAY_BUFFER_BINDING = 0x8895
	FALSE                        = 0
	FLOAT                        = 0x1406
	LINES                        = 0x1
	NO_ERROR                     = 0x0
	POINTS                       = 0x0
	SHORT                        = 0x1402
	STATIC_DRAW                  = 0x88e4
	TRIANGLE_STRIP               = 0x5
	TRIANGLES                    = 0x4
	TRUE                         = 1
	UNSIGNED_INT                 = 0x1405
	UNSIGNED_SHORT               = 0x1403
	VERTEX_ARRAY_BINDING         = 0x85B5
)
