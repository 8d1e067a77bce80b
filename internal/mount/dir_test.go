package mount

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"

	"editkit/internal/state"
	"editkit/internal/vfs"

	"bazil.org/fuse"
)

// setupTestFS builds a filesystem over a fresh scaffolded project in a
// temp directory. No FUSE mount is involved; node methods are driven
// directly.
func setupTestFS(t *testing.T) *FS {
	t.Helper()

	manager, err := state.NewManager(filepath.Join(t.TempDir(), "project.json"))
	if err != nil {
		t.Fatalf("Failed to create state manager: %v", err)
	}
	root, err := manager.Load()
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	return New(root, manager)
}

func rootDir(t *testing.T, fs *FS) *Dir {
	t.Helper()
	node, err := fs.Root()
	if err != nil {
		t.Fatalf("Failed to get root: %v", err)
	}
	dir, ok := node.(*Dir)
	if !ok {
		t.Fatal("Root should be a Dir")
	}
	return dir
}

func TestDirOperations(t *testing.T) {
	fs := setupTestFS(t)
	ctx := context.Background()

	t.Run("RootListing", func(t *testing.T) {
		dir := rootDir(t, fs)

		attr := &fuse.Attr{}
		if err := dir.Attr(ctx, attr); err != nil {
			t.Fatalf("Failed to get root attributes: %v", err)
		}
		if !attr.Mode.IsDir() {
			t.Error("Root should be a directory")
		}

		entries, err := dir.ReadDirAll(ctx)
		if err != nil {
			t.Fatalf("Failed to read root directory: %v", err)
		}
		found := map[string]bool{}
		for _, entry := range entries {
			found[entry.Name] = true
		}
		for _, name := range []string{"index.html", "css", "js"} {
			if !found[name] {
				t.Errorf("Expected root listing to contain %q", name)
			}
		}
	})

	t.Run("LookupFileAndFolder", func(t *testing.T) {
		dir := rootDir(t, fs)

		node, err := dir.Lookup(ctx, "index.html")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if _, ok := node.(*File); !ok {
			t.Error("index.html should resolve to a File node")
		}

		node, err = dir.Lookup(ctx, "css")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if _, ok := node.(*Dir); !ok {
			t.Error("css should resolve to a Dir node")
		}

		if _, err := dir.Lookup(ctx, "missing"); err != syscall.ENOENT {
			t.Errorf("Expected ENOENT for a missing name, got %v", err)
		}
	})

	t.Run("MkdirAndRemove", func(t *testing.T) {
		dir := rootDir(t, fs)

		node, err := dir.Mkdir(ctx, &fuse.MkdirRequest{Name: "docs"})
		if err != nil {
			t.Fatalf("Mkdir failed: %v", err)
		}
		if _, ok := node.(*Dir); !ok {
			t.Fatal("Mkdir should return a Dir node")
		}
		if _, ok := vfs.Get(fs.snapshot(), "/docs"); !ok {
			t.Error("Expected /docs in the tree after mkdir")
		}

		if _, err := dir.Mkdir(ctx, &fuse.MkdirRequest{Name: "docs"}); err != syscall.EEXIST {
			t.Errorf("Expected EEXIST for duplicate mkdir, got %v", err)
		}

		if err := dir.Remove(ctx, &fuse.RemoveRequest{Name: "docs", Dir: true}); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, ok := vfs.Get(fs.snapshot(), "/docs"); ok {
			t.Error("Expected /docs to be gone after remove")
		}
	})

	t.Run("RemoveNonEmptyDirectory", func(t *testing.T) {
		dir := rootDir(t, fs)
		err := dir.Remove(ctx, &fuse.RemoveRequest{Name: "css", Dir: true})
		if err != syscall.ENOTEMPTY {
			t.Errorf("Expected ENOTEMPTY, got %v", err)
		}
	})

	t.Run("CreateWriteRead", func(t *testing.T) {
		dir := rootDir(t, fs)

		_, handle, err := dir.Create(ctx, &fuse.CreateRequest{
			Name:  "notes.txt",
			Flags: fuse.OpenReadWrite,
		}, &fuse.CreateResponse{})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		fh, ok := handle.(*FileHandle)
		if !ok {
			t.Fatal("Create should return a FileHandle")
		}

		writeResp := &fuse.WriteResponse{}
		if err := fh.Write(ctx, &fuse.WriteRequest{Data: []byte("hello"), Offset: 0}, writeResp); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if writeResp.Size != 5 {
			t.Errorf("Expected write size 5, got %d", writeResp.Size)
		}
		if err := fh.Flush(ctx, &fuse.FlushRequest{}); err != nil {
			t.Fatalf("Flush failed: %v", err)
		}

		node, ok := vfs.Get(fs.snapshot(), "/notes.txt")
		if !ok {
			t.Fatal("Expected /notes.txt in the tree after flush")
		}
		if file := node.(*vfs.File); file.Content != "hello" {
			t.Errorf("Expected content %q, got %q", "hello", file.Content)
		}

		readResp := &fuse.ReadResponse{}
		if err := fh.Read(ctx, &fuse.ReadRequest{Offset: 0, Size: 100}, readResp); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(readResp.Data) != "hello" {
			t.Errorf("Expected to read %q, got %q", "hello", string(readResp.Data))
		}
	})

	t.Run("RemoveFilePrunesEmptyFolders", func(t *testing.T) {
		if err := fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
			return vfs.Set(root, "/deep/nested/leaf.txt", vfs.NewFile("x"))
		}); err != nil {
			t.Fatalf("Failed to seed tree: %v", err)
		}

		deep := &Dir{fs: fs, path: "/deep/nested"}
		if err := deep.Remove(ctx, &fuse.RemoveRequest{Name: "leaf.txt"}); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, ok := vfs.Get(fs.snapshot(), "/deep"); ok {
			t.Error("Expected the emptied /deep chain to be pruned")
		}
	})

	t.Run("Rename", func(t *testing.T) {
		dir := rootDir(t, fs)

		target, err := dir.Lookup(ctx, "js")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		err = dir.Rename(ctx, &fuse.RenameRequest{
			OldName: "index.html",
			NewName: "main.html",
		}, target)
		if err != nil {
			t.Fatalf("Rename failed: %v", err)
		}

		if _, ok := vfs.Get(fs.snapshot(), "/index.html"); ok {
			t.Error("Expected old path to be gone after rename")
		}
		node, ok := vfs.Get(fs.snapshot(), "/js/main.html")
		if !ok {
			t.Fatal("Expected /js/main.html after rename")
		}
		if node.Kind() != vfs.KindFile {
			t.Errorf("Expected a file after rename, got %s", node.Kind())
		}
	})
}

func TestFileAttrAndTruncate(t *testing.T) {
	fs := setupTestFS(t)
	ctx := context.Background()

	file := &File{fs: fs, path: "/js/app.js"}

	attr := &fuse.Attr{}
	if err := file.Attr(ctx, attr); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if attr.Size == 0 {
		t.Error("Expected scaffold app.js to have non-zero size")
	}

	err := file.Setattr(ctx, &fuse.SetattrRequest{
		Valid: fuse.SetattrSize,
		Size:  0,
	}, &fuse.SetattrResponse{})
	if err != nil {
		t.Fatalf("Setattr failed: %v", err)
	}

	node, _ := vfs.Get(fs.snapshot(), "/js/app.js")
	if truncated := node.(*vfs.File); truncated.Content != "" {
		t.Errorf("Expected truncated content, got %q", truncated.Content)
	}
}

func TestMutationsPersist(t *testing.T) {
	manager, err := state.NewManager(filepath.Join(t.TempDir(), "project.json"))
	if err != nil {
		t.Fatalf("Failed to create state manager: %v", err)
	}
	root, err := manager.Load()
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	fs := New(root, manager)
	ctx := context.Background()

	dir := rootDir(t, fs)
	if _, err := dir.Mkdir(ctx, &fuse.MkdirRequest{Name: "assets"}); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	reloaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, ok := vfs.Get(reloaded, "/assets"); !ok {
		t.Error("Expected /assets to be persisted through the state manager")
	}
}

func TestToFuseError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil passes through",
			input:    nil,
			expected: nil,
		},
		{
			name:     "path conflict",
			input:    pathConflictErr(),
			expected: syscall.ENOTDIR,
		},
		{
			name:     "errno passes through",
			input:    syscall.ENOENT,
			expected: syscall.ENOENT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFuseError(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// pathConflictErr seeds a tree with a file and returns the conflict
// error from descending through it.
func pathConflictErr() error {
	root, err := vfs.Set(vfs.NewFolder(), "/f", vfs.NewFile("x"))
	if err != nil {
		panic(err)
	}
	_, conflictErr := vfs.Set(root, "/f/deep", vfs.NewFile("y"))
	return conflictErr
}
