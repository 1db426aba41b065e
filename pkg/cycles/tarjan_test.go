package cycles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/graph/simple"
)

func TestTarjanSCC_AcyclicGraphHasNoSCCs(t *testing.T) {
	g := simple.NewDirectedGraph()
	g.SetEdge(g.NewEdge(simple.Node(0), simple.Node(1)))
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))

	sccs := NewTarjanSCC(g).FindSCCs()
	assert.Empty(t, sccs, "a DAG has no strongly connected component larger than one node")
}

func TestTarjanSCC_SimpleCycleIsOneSCC(t *testing.T) {
	g := simple.NewDirectedGraph()
	g.SetEdge(g.NewEdge(simple.Node(0), simple.Node(1)))
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(0)))

	sccs := NewTarjanSCC(g).FindSCCs()
	assert.Len(t, sccs, 1)
	assert.ElementsMatch(t, []int64{0, 1}, sccs[0])
}

func TestTarjanSCC_MultipleDisjointCycles(t *testing.T) {
	g := simple.NewDirectedGraph()
	g.SetEdge(g.NewEdge(simple.Node(0), simple.Node(1)))
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(0)))
	g.SetEdge(g.NewEdge(simple.Node(2), simple.Node(3)))
	g.SetEdge(g.NewEdge(simple.Node(3), simple.Node(2)))
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))

	sccs := NewTarjanSCC(g).FindSCCs()
	require := assert.New(t)
	require.Len(sccs, 2)

	var flattened []int64
	for _, scc := range sccs {
		require.Len(scc, 2, "each disjoint cycle here has exactly two members")
		flattened = append(flattened, scc...)
	}
	assert.ElementsMatch(t, []int64{0, 1, 2, 3}, flattened)
}

func TestTarjanSCC_ThreeNodeCycle(t *testing.T) {
	g := simple.NewDirectedGraph()
	g.SetEdge(g.NewEdge(simple.Node(0), simple.Node(1)))
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))
	g.SetEdge(g.NewEdge(simple.Node(2), simple.Node(0)))

	sccs := NewTarjanSCC(g).FindSCCs()
	assert.Len(t, sccs, 1)
	assert.ElementsMatch(t, []int64{0, 1, 2}, sccs[0])
}
