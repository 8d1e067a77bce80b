// Package vfs implements the editor's virtual filesystem: an immutable
// tree of file and folder nodes addressed by slash-separated paths.
//
// Trees are never mutated in place. Set and Unset return a new root and
// rebuild only the folders along the touched path; every other subtree is
// shared by reference with the input tree. Callers own exactly one
// "current" root at a time and swap it on every mutation.
package vfs

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Node kinds as they appear in the JSON representation.
const (
	KindFile   = "file"
	KindFolder = "folder"
)

// Node is a single entry in the virtual filesystem tree.
// The two implementations are *File and *Folder.
type Node interface {
	// Kind returns KindFile or KindFolder.
	Kind() string

	node()
}

// File is a leaf node holding text content.
type File struct {
	Content string
}

// NewFile creates a file node with the given content.
func NewFile(content string) *File {
	return &File{Content: content}
}

// Kind implements the Node interface.
func (f *File) Kind() string { return KindFile }

func (f *File) node() {}

// Folder is an interior node mapping child names to nodes.
// Names are unique within a folder; iteration order carries no meaning.
type Folder struct {
	Children map[string]Node
}

// NewFolder creates an empty folder node.
func NewFolder() *Folder {
	return &Folder{Children: map[string]Node{}}
}

// Kind implements the Node interface.
func (d *Folder) Kind() string { return KindFolder }

func (d *Folder) node() {}

// Names returns the folder's child names in sorted order.
func (d *Folder) Names() []string {
	names := make([]string, 0, len(d.Children))
	for name := range d.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nodeJSON is the wire envelope shared by both node kinds.
type nodeJSON struct {
	Kind     string                     `json:"kind"`
	Content  *string                    `json:"content,omitempty"`
	Children map[string]json.RawMessage `json:"children,omitempty"`
}

// MarshalJSON encodes the file as {"kind":"file","content":...}.
func (f *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Content string `json:"content"`
	}{Kind: KindFile, Content: f.Content})
}

// MarshalJSON encodes the folder as {"kind":"folder","children":{...}}.
func (d *Folder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string          `json:"kind"`
		Children map[string]Node `json:"children"`
	}{Kind: KindFolder, Children: d.Children})
}

// UnmarshalNode decodes a node of either kind from its JSON form.
func UnmarshalNode(data []byte) (Node, error) {
	var env nodeJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Kind {
	case KindFile:
		f := &File{}
		if env.Content != nil {
			f.Content = *env.Content
		}
		return f, nil

	case KindFolder:
		d := NewFolder()
		for name, raw := range env.Children {
			if name == "" {
				return nil, fmt.Errorf("folder has a child with an empty name")
			}
			child, err := UnmarshalNode(raw)
			if err != nil {
				return nil, fmt.Errorf("child %q: %w", name, err)
			}
			d.Children[name] = child
		}
		return d, nil

	default:
		return nil, fmt.Errorf("unknown node kind %q", env.Kind)
	}
}

// UnmarshalFolder decodes a node and requires it to be a folder.
// Used for tree roots, which are always folders.
func UnmarshalFolder(data []byte) (*Folder, error) {
	n, err := UnmarshalNode(data)
	if err != nil {
		return nil, err
	}
	d, ok := n.(*Folder)
	if !ok {
		return nil, fmt.Errorf("root node is a %s, expected a folder", n.Kind())
	}
	return d, nil
}
