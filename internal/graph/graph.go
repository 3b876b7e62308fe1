// Package graph maintains the adjacency index over approved friendships
// and computes the social-graph analytics: the number of communities
// (connected components) and the "most social community" path.
//
// The index is a cache over the friendship store and is owned by a single
// caller thread; it is not safe for concurrent use.
package graph

// Index is a symmetric adjacency index: userID -> IDs of approved friends.
// Neighbour lists keep insertion order, which makes traversal order (and
// therefore the analytics tie-breaks) deterministic.
type Index struct {
	adj map[uint][]uint
}

// NewIndex returns an empty adjacency index.
func NewIndex() *Index {
	return &Index{adj: make(map[uint][]uint)}
}

// Add records the approved friendship a-b in both directions. Adding an
// edge that is already present is a no-op, as is a self edge.
func (x *Index) Add(a, b uint) {
	if a == b || x.Connected(a, b) {
		return
	}
	x.adj[a] = append(x.adj[a], b)
	x.adj[b] = append(x.adj[b], a)
}

// Remove deletes the edge a-b in both directions. Missing edges are
// ignored, so removal is idempotent.
func (x *Index) Remove(a, b uint) {
	x.adj[a] = remove(x.adj[a], b)
	x.adj[b] = remove(x.adj[b], a)
}

// RemoveUser drops the user and every edge pointing at them.
func (x *Index) RemoveUser(u uint) {
	for _, friend := range x.adj[u] {
		x.adj[friend] = remove(x.adj[friend], u)
	}
	delete(x.adj, u)
}

// Friends returns the user's approved friends in insertion order. The
// returned slice is a copy.
func (x *Index) Friends(u uint) []uint {
	out := make([]uint, len(x.adj[u]))
	copy(out, x.adj[u])
	return out
}

// Connected reports whether the edge a-b is present.
func (x *Index) Connected(a, b uint) bool {
	for _, f := range x.adj[a] {
		if f == b {
			return true
		}
	}
	return false
}

// Communities counts the connected components of the graph induced by the
// index over the given users. Users are visited in the given store order;
// isolated users count as size-1 components.
func (x *Index) Communities(users []uint) int {
	visited := make(map[uint]bool)
	count := 0
	for _, u := range users {
		if !visited[u] {
			count++
			x.dfs(u, visited)
		}
	}
	return count
}

func (x *Index) dfs(u uint, visited map[uint]bool) {
	visited[u] = true
	for _, friend := range x.adj[u] {
		if !visited[friend] {
			x.dfs(friend, visited)
		}
	}
}

// LongestPath returns the longest shortest-path found by running one BFS
// from each not-yet-visited user, in store order, and reconstructing the
// walk to the farthest node via predecessors. Only the users on the
// reconstructed path are marked visited before moving to the next seed.
// Ties keep the first path found. The result is empty only when users is.
//
// This is a single-source approximation: it may undershoot the true
// diameter of a component, but it reproduces the behaviour the stored
// data was built against.
func (x *Index) LongestPath(users []uint) []uint {
	longest := []uint{}
	visited := make(map[uint]bool)
	for _, u := range users {
		if visited[u] {
			continue
		}
		path := x.farthestPathFrom(u)
		if len(path) > len(longest) {
			longest = path
		}
		for _, n := range path {
			visited[n] = true
		}
	}
	return longest
}

// farthestPathFrom runs a BFS from start, tracks the first node found at
// the maximum distance, and walks the predecessor chain back to start.
func (x *Index) farthestPathFrom(start uint) []uint {
	distances := map[uint]int{start: 0}
	predecessors := make(map[uint]uint)
	queue := []uint{start}
	farthest := start

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range x.adj[current] {
			if _, seen := distances[neighbor]; seen {
				continue
			}
			distances[neighbor] = distances[current] + 1
			predecessors[neighbor] = current
			queue = append(queue, neighbor)
			if distances[neighbor] > distances[farthest] {
				farthest = neighbor
			}
		}
	}

	path := []uint{}
	node := farthest
	for {
		path = append(path, node)
		prev, ok := predecessors[node]
		if !ok {
			break
		}
		node = prev
	}
	reverse(path)
	return path
}

func remove(list []uint, v uint) []uint {
	for i, e := range list {
		if e == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func reverse(list []uint) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}
