package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type cellKey struct {
	X int
	Y int
}

// Walls is the static obstacle grid for one match. Cells are square,
// GridUnit pixels wide, and immutable once the match starts.
type Walls struct {
	gridUnit    float64
	worldWidth  float64
	worldHeight float64
	cells       map[cellKey]struct{}
}

// Layout describes a wall configuration file. Rects are specified in cell
// coordinates and expanded on load; Cells lists individual [cx, cy] pairs.
type Layout struct {
	GridUnit float64      `json:"gridUnit" jsonschema:"minimum=1,description=Wall cell size in pixels"`
	Width    float64      `json:"width" jsonschema:"minimum=1,description=World width in pixels"`
	Height   float64      `json:"height" jsonschema:"minimum=1,description=World height in pixels"`
	Rects    []LayoutRect `json:"rects,omitempty" jsonschema:"description=Rectangular wall blocks in cell coordinates"`
	Cells    [][2]int     `json:"cells,omitempty" jsonschema:"description=Individual wall cells as [cx cy] pairs"`
}

// LayoutRect is a rectangular block of wall cells.
type LayoutRect struct {
	CX int `json:"cx" jsonschema:"minimum=0"`
	CY int `json:"cy" jsonschema:"minimum=0"`
	W  int `json:"w" jsonschema:"minimum=1"`
	H  int `json:"h" jsonschema:"minimum=1"`
}

// NewWalls creates an empty grid for the given world dimensions.
func NewWalls(gridUnit, worldWidth, worldHeight float64) *Walls {
	return &Walls{
		gridUnit:    gridUnit,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		cells:       make(map[cellKey]struct{}),
	}
}

// LoadLayout reads and validates a wall layout file. Any malformed layout is
// a fatal match-start error.
func LoadLayout(path string) (*Walls, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wall layout %s: %w", path, err)
	}
	walls, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parse wall layout %s: %w", path, err)
	}
	return walls, nil
}

// ParseLayout builds a wall grid from raw layout JSON.
func ParseLayout(data []byte) (*Walls, error) {
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return WallsFromLayout(layout)
}

// WallsFromLayout validates a layout and expands it into a grid.
func WallsFromLayout(layout Layout) (*Walls, error) {
	if layout.GridUnit <= 0 {
		return nil, fmt.Errorf("layout grid unit must be positive, got %g", layout.GridUnit)
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("layout dimensions must be positive, got %gx%g", layout.Width, layout.Height)
	}

	walls := NewWalls(layout.GridUnit, layout.Width, layout.Height)
	for i, rect := range layout.Rects {
		if rect.W <= 0 || rect.H <= 0 {
			return nil, fmt.Errorf("layout rect %d has non-positive size %dx%d", i, rect.W, rect.H)
		}
		for cx := rect.CX; cx < rect.CX+rect.W; cx++ {
			for cy := rect.CY; cy < rect.CY+rect.H; cy++ {
				if !walls.validCell(cx, cy) {
					return nil, fmt.Errorf("layout rect %d cell (%d,%d) outside %gx%g world", i, cx, cy, layout.Width, layout.Height)
				}
				walls.cells[cellKey{X: cx, Y: cy}] = struct{}{}
			}
		}
	}
	for i, cell := range layout.Cells {
		if !walls.validCell(cell[0], cell[1]) {
			return nil, fmt.Errorf("layout cell %d (%d,%d) outside %gx%g world", i, cell[0], cell[1], layout.Width, layout.Height)
		}
		walls.cells[cellKey{X: cell[0], Y: cell[1]}] = struct{}{}
	}
	return walls, nil
}

// DefaultLayout returns the stock arena: a border ring plus a few interior
// blocks, matching the default world dimensions.
func DefaultLayout() Layout {
	cfg := DefaultConfig()
	maxX := int(cfg.WorldWidth / cfg.GridUnit)
	maxY := int(cfg.WorldHeight / cfg.GridUnit)
	return Layout{
		GridUnit: cfg.GridUnit,
		Width:    cfg.WorldWidth,
		Height:   cfg.WorldHeight,
		Rects: []LayoutRect{
			{CX: 0, CY: 0, W: maxX, H: 1},
			{CX: 0, CY: maxY - 1, W: maxX, H: 1},
			{CX: 0, CY: 1, W: 1, H: maxY - 2},
			{CX: maxX - 1, CY: 1, W: 1, H: maxY - 2},
			{CX: maxX / 2, CY: maxY / 4, W: 2, H: maxY / 4},
			{CX: maxX / 2, CY: maxY / 2, W: 2, H: maxY / 4},
			{CX: maxX / 4, CY: maxY/2 - 4, W: 16, H: 2},
			{CX: 3 * maxX / 4, CY: maxY/2 + 2, W: 16, H: 2},
		},
	}
}

func (w *Walls) GridUnit() float64 {
	return w.gridUnit
}

func (w *Walls) Bounds() (width, height float64) {
	return w.worldWidth, w.worldHeight
}

func (w *Walls) validCell(cx, cy int) bool {
	maxX := int(w.worldWidth / w.gridUnit)
	maxY := int(w.worldHeight / w.gridUnit)
	return cx >= 0 && cx < maxX && cy >= 0 && cy < maxY
}

// toCell converts pixel coordinates to cell indices.
func (w *Walls) toCell(px, py float64) (int, int) {
	return int(px / w.gridUnit), int(py / w.gridUnit)
}

// HasWall reports whether the cell is solid.
func (w *Walls) HasWall(cx, cy int) bool {
	_, ok := w.cells[cellKey{X: cx, Y: cy}]
	return ok
}

// HasWallAt reports whether the pixel position falls in a solid cell.
// Positions outside the world count as solid so nothing escapes the arena.
func (w *Walls) HasWallAt(px, py float64) bool {
	if px < 0 || py < 0 || px >= w.worldWidth || py >= w.worldHeight {
		return true
	}
	cx, cy := w.toCell(px, py)
	return w.HasWall(cx, cy)
}

// CircleOverlaps reports whether a circle at (x, y) intersects any solid cell.
// The scan covers every cell the circle's bounding box touches.
func (w *Walls) CircleOverlaps(x, y, radius float64) bool {
	if x-radius < 0 || y-radius < 0 || x+radius >= w.worldWidth || y+radius >= w.worldHeight {
		return true
	}
	cxMin, cyMin := w.toCell(x-radius, y-radius)
	cxMax, cyMax := w.toCell(x+radius, y+radius)
	for cx := cxMin; cx <= cxMax; cx++ {
		for cy := cyMin; cy <= cyMax; cy++ {
			if w.HasWall(cx, cy) {
				return true
			}
		}
	}
	return false
}

// Cells returns the solid cells sorted for stable wire output.
func (w *Walls) Cells() [][2]int {
	cells := make([][2]int, 0, len(w.cells))
	for key := range w.cells {
		cells = append(cells, [2]int{key.X, key.Y})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i][0] != cells[j][0] {
			return cells[i][0] < cells[j][0]
		}
		return cells[i][1] < cells[j][1]
	})
	return cells
}

// CellCount returns the number of solid cells.
func (w *Walls) CellCount() int {
	return len(w.cells)
}
