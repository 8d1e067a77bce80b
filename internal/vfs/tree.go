package vfs

import "fmt"

// Get resolves a path against the tree rooted at root. It walks one
// segment at a time, requiring every interior node to be a folder that
// contains the segment. The boolean result is false when the path does
// not resolve; that is a normal outcome, not an error. An empty path
// returns root itself.
func Get(root *Folder, path string) (Node, bool) {
	var current Node = root
	for _, segment := range SplitPath(path) {
		folder, ok := current.(*Folder)
		if !ok {
			return nil, false
		}
		child, ok := folder.Children[segment]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Set places value at path and returns the new root. Missing
// intermediate folders are materialized on the way down. The input tree
// is left untouched; folders along the path are rebuilt and everything
// else is shared by reference.
//
// Conflicts are errors, never silent overwrites:
//   - setting a file at the empty path (the root) fails with
//     ErrInvalidRoot; a folder at the empty path replaces the root
//     wholesale
//   - an intermediate segment occupied by a file fails with
//     ErrPathConflict rather than discarding the file's content
//   - a final segment occupied by a node of the other kind fails with
//     ErrTypeConflict; same-kind overwrite replaces the node
func Set(root *Folder, path string, value Node) (*Folder, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		folder, ok := value.(*Folder)
		if !ok {
			return nil, newError(OpSet, path, ErrInvalidRoot)
		}
		return folder, nil
	}
	return setIn(root, segments, path, value)
}

func setIn(dir *Folder, segments []string, path string, value Node) (*Folder, error) {
	name := segments[0]

	if len(segments) == 1 {
		if existing, ok := dir.Children[name]; ok && existing.Kind() != value.Kind() {
			err := fmt.Errorf("%w: cannot overwrite %s with %s",
				ErrTypeConflict, existing.Kind(), value.Kind())
			return nil, newError(OpSet, path, err)
		}
		children := copyChildren(dir.Children, 1)
		children[name] = value
		return &Folder{Children: children}, nil
	}

	next := NewFolder()
	if existing, ok := dir.Children[name]; ok {
		folder, ok := existing.(*Folder)
		if !ok {
			return nil, newError(OpSet, path, ErrPathConflict)
		}
		next = folder
	}

	updated, err := setIn(next, segments[1:], path, value)
	if err != nil {
		return nil, err
	}
	children := copyChildren(dir.Children, 1)
	children[name] = updated
	return &Folder{Children: children}, nil
}

// Unset removes the node at path and returns the new root. A missing
// segment anywhere along the path makes the call a no-op: the original
// root is returned unchanged, by reference, so callers can detect
// no-ops cheaply. An intermediate segment occupied by a file fails with
// ErrPathConflict, symmetric with Set. The empty path clears the whole
// tree to a fresh empty root.
//
// Folders emptied by the removal are pruned, cascading upward until an
// ancestor keeps other children. The root is the one folder allowed to
// end up empty.
func Unset(root *Folder, path string) (*Folder, error) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return NewFolder(), nil
	}

	updated, changed, err := unsetIn(root, segments, path)
	if err != nil {
		return nil, err
	}
	if !changed {
		return root, nil
	}
	if updated == nil {
		// Every child was pruned away; only the root may stay empty.
		return NewFolder(), nil
	}
	return updated, nil
}

// unsetIn removes the addressed node inside dir. It returns the rebuilt
// folder, or nil when the folder itself emptied out and should be
// pruned by its parent. changed is false when the path did not resolve.
func unsetIn(dir *Folder, segments []string, path string) (updated *Folder, changed bool, err error) {
	name := segments[0]
	existing, ok := dir.Children[name]
	if !ok {
		return dir, false, nil
	}

	if len(segments) == 1 {
		if len(dir.Children) == 1 {
			return nil, true, nil
		}
		children := copyChildren(dir.Children, 0)
		delete(children, name)
		return &Folder{Children: children}, true, nil
	}

	folder, ok := existing.(*Folder)
	if !ok {
		return nil, false, newError(OpUnset, path, ErrPathConflict)
	}

	child, changed, err := unsetIn(folder, segments[1:], path)
	if err != nil || !changed {
		return dir, changed, err
	}

	if child == nil {
		if len(dir.Children) == 1 {
			return nil, true, nil
		}
		children := copyChildren(dir.Children, 0)
		delete(children, name)
		return &Folder{Children: children}, true, nil
	}

	children := copyChildren(dir.Children, 0)
	children[name] = child
	return &Folder{Children: children}, true, nil
}

func copyChildren(children map[string]Node, extra int) map[string]Node {
	copied := make(map[string]Node, len(children)+extra)
	for name, child := range children {
		copied[name] = child
	}
	return copied
}
