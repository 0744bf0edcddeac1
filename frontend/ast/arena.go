package ast

import "fmt"

// Arena allocates NodeIDs and records parent links.
//
// A tree never points back at its parents; Arena.Parent is the only way up.
// Every node of a tree must be allocated by the same Arena, and ids are
// never reused.
type Arena struct {
	nodes   []Node
	parents []NodeID
}

func NewArena() *Arena {
	return &Arena{}
}

// Add assigns the next NodeID to n and returns it
func (a *Arena) Add(n Node) NodeID {
	h := n.header()
	if h.id != NoNode {
		panic(fmt.Sprintf("node %v already has id %d", n.Kind(), h.id))
	}
	a.nodes = append(a.nodes, n)
	a.parents = append(a.parents, NoNode)
	h.id = NodeID(len(a.nodes))
	return h.id
}

// Len returns the number of allocated nodes
func (a *Arena) Len() int {
	return len(a.nodes)
}

func (a *Arena) Node(id NodeID) (Node, bool) {
	if id == NoNode || int(id) > len(a.nodes) {
		return nil, false
	}
	return a.nodes[id-1], true
}

// Owns reports whether n was allocated by this Arena
func (a *Arena) Owns(n Node) bool {
	found, ok := a.Node(n.ID())
	return ok && found == n
}

func (a *Arena) ParentID(id NodeID) NodeID {
	if id == NoNode || int(id) > len(a.parents) {
		return NoNode
	}
	return a.parents[id-1]
}

// Parent returns the parent of n, or nil if n is a root or SetParents
// was never called on a tree containing n
func (a *Arena) Parent(n Node) Node {
	parent, _ := a.Node(a.ParentID(n.ID()))
	return parent
}

// SetParents records the parent of every node under root
func (a *Arena) SetParents(root Node) {
	Inspect(root, func(n Node) bool {
		for _, child := range Children(n) {
			if !a.Owns(child) {
				panic(fmt.Sprintf("%v node was not allocated by this arena", child.Kind()))
			}
			a.parents[child.ID()-1] = n.ID()
		}
		return true
	})
}
