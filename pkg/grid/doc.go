// Package grid provides the tile grid shared by every generation phase.
//
// A Grid stores one byte per tile (0 = floor, 1 = wall) in row-major order
// with screen coordinates: x grows rightward, y grows downward. Reads outside
// the grid return wall, which lets neighborhood rules treat the map edge as
// solid without special cases; writes outside the grid panic.
package grid
