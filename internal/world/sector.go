package world

// Sector is a rectangular partition of the grid used to seed cave diffusion.
type Sector struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the sector
}

// Contains returns true if the given point is inside the sector.
func (s Sector) Contains(p Point) bool {
	return p.X >= s.X && p.X < s.X+s.Width && p.Y >= s.Y && p.Y < s.Y+s.Height
}

// CaveSectors partitions the grid into params.SectorsX by params.SectorsY sectors.
// Sector sizes are truncated, so a strip along the right and bottom edges may
// belong to no sector when the grid does not divide evenly.
func CaveSectors(grid Grid, params CaveParams) []Sector {
	if params.SectorsX <= 0 || params.SectorsY <= 0 {
		return nil
	}
	width := grid.Width / params.SectorsX
	height := grid.Height / params.SectorsY
	if width <= 0 || height <= 0 {
		return nil
	}

	sectors := make([]Sector, 0, params.SectorsX*params.SectorsY)
	for i := 0; i < params.SectorsX; i++ {
		for j := 0; j < params.SectorsY; j++ {
			sectors = append(sectors, Sector{
				X:      i * width,
				Y:      j * height,
				Width:  width,
				Height: height,
			})
		}
	}
	return sectors
}
