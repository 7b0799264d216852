package types

// Collapsed is a read-only view of a child sequence with punctuation
// removed. Each remaining node records the punctuation immediately
// around it; punctuation between two nodes appears in both sets.
type Collapsed struct {
	Nodes []*Parse
	Prev  [][]*Parse
	Next  [][]*Parse
	index []int
	all   []*Parse
}

// Collapse drops the children whose type is in punct. When every child is
// punctuation nothing is dropped.
func Collapse(children []*Parse, punct map[string]bool) *Collapsed {
	c := &Collapsed{
		Nodes: make([]*Parse, 0, len(children)),
		index: make([]int, 0, len(children)),
		all:   children,
	}
	var pending []*Parse
	for i, child := range children {
		if punct[child.Type] {
			if n := len(c.Nodes); n > 0 {
				c.Next[n-1] = append(c.Next[n-1], child)
			}
			pending = append(pending, child)
			continue
		}
		c.Nodes = append(c.Nodes, child)
		c.index = append(c.index, i)
		c.Prev = append(c.Prev, pending)
		c.Next = append(c.Next, nil)
		pending = nil
	}
	if len(c.Nodes) == 0 && len(children) > 0 {
		return Collapse(children, nil)
	}
	return c
}

func (c *Collapsed) Len() int {
	return len(c.Nodes)
}

// Original maps a collapsed index back to the uncollapsed child index.
func (c *Collapsed) Original(i int) int {
	return c.index[i]
}

// Children returns the uncollapsed sequence the view was built from.
func (c *Collapsed) Children() []*Parse {
	return c.all
}

// Expand rebuilds the full sequence from the nodes and their punctuation.
func (c *Collapsed) Expand() []*Parse {
	if len(c.Nodes) == 0 {
		return nil
	}
	retval := make([]*Parse, 0, len(c.all))
	retval = append(retval, c.Prev[0]...)
	for i, node := range c.Nodes {
		retval = append(retval, node)
		retval = append(retval, c.Next[i]...)
	}
	return retval
}
