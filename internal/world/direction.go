package world

// Direction is one of the eight compass directions, or DirNone.
type Direction int

const (
	DirNone Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Compass returns the eight movement directions, clockwise from North.
func Compass() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// Cardinals returns the four orthogonal directions.
func Cardinals() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Delta returns the coordinate offset for the direction. Y grows southwards.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{0, -1}
	case NorthEast:
		return Point{1, -1}
	case East:
		return Point{1, 0}
	case SouthEast:
		return Point{1, 1}
	case South:
		return Point{0, 1}
	case SouthWest:
		return Point{-1, 1}
	case West:
		return Point{-1, 0}
	case NorthWest:
		return Point{-1, -1}
	default:
		return Point{0, 0}
	}
}

// Orientation converts a delta back into a direction.
// Anything outside the eight neighbours maps to DirNone.
func Orientation(delta Point) Direction {
	switch delta {
	case Point{0, -1}:
		return North
	case Point{1, -1}:
		return NorthEast
	case Point{1, 0}:
		return East
	case Point{1, 1}:
		return SouthEast
	case Point{0, 1}:
		return South
	case Point{-1, 1}:
		return SouthWest
	case Point{-1, 0}:
		return West
	case Point{-1, -1}:
		return NorthWest
	default:
		return DirNone
	}
}
