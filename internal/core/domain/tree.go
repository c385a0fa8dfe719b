package domain

import "sort"

// BuildTree converts a flat page list into a forest. Every input record
// appears exactly once: attached under the page matching its parent ID,
// or promoted to the root list when its parent is nil or absent from the
// input. Orphans are never dropped. Sibling order is input order; the
// builder applies no sorting of its own.
//
// Unique IDs are a precondition owned by the server. On duplicate IDs the
// last record wins the ID-to-node mapping; the builder does not detect this.
func BuildTree(pages []Page) []*Page {
	nodes := make(map[int64]*Page, len(pages))
	ordered := make([]*Page, 0, len(pages))

	for i := range pages {
		p := pages[i]
		p.Children = nil
		node := &p
		nodes[p.ID] = node
		ordered = append(ordered, node)
	}

	var roots []*Page
	for _, node := range ordered {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok || parent == node {
			// Orphan: parent not in this result set. Treat as root.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// FindInTree locates a page by ID with a depth-first search over the
// forest, returning the first match or nil. Cost is O(n); wiki page
// counts make memoisation unnecessary.
func FindInTree(forest []*Page, id int64) *Page {
	for _, node := range forest {
		if node.ID == id {
			return node
		}
		if found := FindInTree(node.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Flatten returns every node of the forest in depth-first order.
func Flatten(forest []*Page) []*Page {
	var out []*Page
	for _, node := range forest {
		out = append(out, node)
		out = append(out, Flatten(node.Children)...)
	}
	return out
}

// SortedByLikes returns a copy of the given sibling list ordered by like
// count, descending. It is a display helper: the input slice and the
// cached nodes behind it are left untouched.
func SortedByLikes(siblings []*Page) []*Page {
	out := make([]*Page, len(siblings))
	copy(out, siblings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LikeCount > out[j].LikeCount
	})
	return out
}
