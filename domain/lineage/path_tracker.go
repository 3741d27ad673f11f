package lineage

import "sync"

// pathTracker maintains the growing set of root-to-entity paths across
// a traversal, shared across concurrent batches within a hop.
type pathTracker struct {
	mu    sync.Mutex
	paths []Path
}

func newPathTracker() *pathTracker {
	return &pathTracker{}
}

// extend finds every existing path whose growth-direction endpoint
// equals parent, clones and extends each for child, and returns the
// resulting set of paths reaching child. If no predecessor path
// exists yet, it seeds a single two-element path.
func (t *pathTracker) extend(parent, child Urn, dir Direction) []Path {
	t.mu.Lock()
	defer t.mu.Unlock()

	var childPaths []Path
	for _, existing := range t.paths {
		if endpoint(existing, dir) != parent.Value {
			continue
		}
		clone := existing.Clone()
		clone = growPath(clone, child, dir)
		t.paths = append(t.paths, clone)
		childPaths = append(childPaths, clone)
	}

	if len(childPaths) == 0 {
		var seed Path
		if dir == Outgoing {
			seed = Path{child, parent}
		} else {
			seed = Path{parent, child}
		}
		t.paths = append(t.paths, seed)
		childPaths = append(childPaths, seed)
	}

	return childPaths
}

// endpoint returns the urn value at the end of the path that grows
// next: index 0 for OUTGOING (root stays at the tail), the last index
// for INCOMING (root stays at the head).
func endpoint(p Path, dir Direction) string {
	if len(p) == 0 {
		return ""
	}
	if dir == Outgoing {
		return p[0].Value
	}
	return p[len(p)-1].Value
}

func growPath(p Path, child Urn, dir Direction) Path {
	if dir == Outgoing {
		return append(Path{child}, p...)
	}
	return append(p, child)
}
