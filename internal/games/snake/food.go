package snake

// Rand is the random source used for food placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// FoodPaletteSize is the number of cosmetic food colors.
const FoodPaletteSize = 15

// Food is the item the snake is chasing.
type Food struct {
	Pos   Point
	Color int // Index into the food palette, cosmetic only
}

// FoodSpawner picks free cells uniformly at random.
type FoodSpawner struct {
	rng  Rand
	size int
}

// NewFoodSpawner creates a spawner for a size x size grid.
func NewFoodSpawner(rng Rand, size int) *FoodSpawner {
	return &FoodSpawner{rng: rng, size: size}
}

// Spawn returns a food item on a cell for which blocked is false.
// It first tries rejection sampling; if that keeps hitting blocked cells
// it enumerates the free cells and picks one of them, which is still
// uniform. ok is false only when every cell is blocked.
func (f *FoodSpawner) Spawn(blocked func(Point) bool) (food Food, ok bool) {
	cells := f.size * f.size
	if cells == 0 {
		return Food{}, false
	}

	// A uniform draw over the whole grid, retried, is uniform over the
	// free cells. Bound the retries so a nearly full board stays cheap.
	for attempt := 0; attempt < 2*cells; attempt++ {
		p := Point{X: f.rng.Intn(f.size), Y: f.rng.Intn(f.size)}
		if !blocked(p) {
			return Food{Pos: p, Color: f.rng.Intn(FoodPaletteSize)}, true
		}
	}

	free := make([]Point, 0, cells)
	for y := 0; y < f.size; y++ {
		for x := 0; x < f.size; x++ {
			p := Point{X: x, Y: y}
			if !blocked(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Food{}, false
	}
	p := free[f.rng.Intn(len(free))]
	return Food{Pos: p, Color: f.rng.Intn(FoodPaletteSize)}, true
}
