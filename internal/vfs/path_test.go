package vfs

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple path",
			input:    "a/b/c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "leading slash ignored",
			input:    "/a/b",
			expected: []string{"a", "b"},
		},
		{
			name:     "trailing slash ignored",
			input:    "a/b/",
			expected: []string{"a", "b"},
		},
		{
			name:     "doubled slashes ignored",
			input:    "a//b",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty path",
			input:    "",
			expected: []string{},
		},
		{
			name:     "root path",
			input:    "/",
			expected: []string{},
		},
		{
			name:     "only slashes",
			input:    "///",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPath(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected segments %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestChildPath(t *testing.T) {
	tests := []struct {
		name     string
		parent   string
		child    string
		expected string
	}{
		{
			name:     "root parent",
			parent:   "/",
			child:    "a",
			expected: "/a",
		},
		{
			name:     "empty parent",
			parent:   "",
			child:    "a",
			expected: "/a",
		},
		{
			name:     "nested parent",
			parent:   "/a/b",
			child:    "c.txt",
			expected: "/a/b/c.txt",
		},
		{
			name:     "parent with trailing slash",
			parent:   "/a/",
			child:    "b",
			expected: "/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChildPath(tt.parent, tt.child)
			if got != tt.expected {
				t.Errorf("Expected path %q, got %q", tt.expected, got)
			}
		})
	}
}
