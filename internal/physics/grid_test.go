package physics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(g *SpatialGrid, x, y float64) []int {
	var got []int
	g.QueryAround(x, y, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	return got
}

func TestSpatialGridNeighborhood(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)   // cell (0,0)
	g.Insert(15, 15, 1) // cell (1,1)
	g.Insert(55, 55, 2) // far away
	g.Insert(95, 5, 3)  // opposite edge

	assert.Equal(t, []int{0, 1}, collect(g, 5, 5))
	assert.Equal(t, []int{2}, collect(g, 50, 50))
}

func TestSpatialGridStopsAtEdges(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(95, 5, 3)
	g.Insert(5, 95, 4)
	assert.Empty(t, collect(g, 5, 5), "opposite edges are not neighbors")
	assert.Equal(t, []int{3}, collect(g, 99, 0))
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(50, -80, 7) // above the field, lands in the top row
	assert.Equal(t, []int{7}, collect(g, 52, 3))
}

func TestSpatialGridClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	for i := 0; i < 5; i++ {
		g.Insert(5, 5, i)
	}
	calls := 0
	g.QueryAround(5, 5, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)

	g.Clear()
	assert.Empty(t, collect(g, 5, 5))
}
