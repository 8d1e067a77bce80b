package vfs

import (
	"encoding/json"
	"testing"
)

func TestNodeJSONRoundTrip(t *testing.T) {
	root := buildTree()

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded, err := UnmarshalFolder(data)
	if err != nil {
		t.Fatalf("UnmarshalFolder failed: %v", err)
	}

	node, ok := Get(decoded, "/src/lib/util.js")
	if !ok {
		t.Fatal("Expected /src/lib/util.js to survive the round trip")
	}
	if file := node.(*File); file.Content != "util" {
		t.Errorf("Expected content %q, got %q", "util", file.Content)
	}

	if len(decoded.Children) != len(root.Children) {
		t.Errorf("Expected %d top-level entries, got %d",
			len(root.Children), len(decoded.Children))
	}
}

func TestUnmarshalNodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unknown kind",
			input: `{"kind":"symlink","content":"x"}`,
		},
		{
			name:  "invalid json",
			input: `{"kind":`,
		},
		{
			name:  "bad child",
			input: `{"kind":"folder","children":{"a":{"kind":"nope"}}}`,
		},
		{
			name:  "empty child name",
			input: `{"kind":"folder","children":{"":{"kind":"file","content":""}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalNode([]byte(tt.input)); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestUnmarshalFolderRejectsFileRoot(t *testing.T) {
	if _, err := UnmarshalFolder([]byte(`{"kind":"file","content":"x"}`)); err == nil {
		t.Error("Expected an error for a file at the root, got nil")
	}
}
