package mount

import (
	"context"
	"os"
	"syscall"

	"editkit/internal/logging"
	"editkit/internal/vfs"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var dirLogger = logging.GetLogger().WithPrefix("dir")

// Dir exposes a folder node at a fixed virtual path. The node itself is
// re-resolved against the current tree on every operation, since the
// tree is replaced wholesale on each mutation.
type Dir struct {
	fs   *FS
	path string
}

// folder resolves this directory's folder node in the current tree.
func (d *Dir) folder() (*vfs.Folder, error) {
	node, ok := vfs.Get(d.fs.snapshot(), d.path)
	if !ok {
		return nil, syscall.ENOENT
	}
	folder, ok := node.(*vfs.Folder)
	if !ok {
		return nil, syscall.ENOTDIR
	}
	return folder, nil
}

// Attr implements the fusefs.Node interface.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	dirLogger.Trace("Getting attributes for directory: %q", d.path)
	a.Mode = os.ModeDir | 0755
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	childPath := vfs.ChildPath(d.path, name)
	dirLogger.Debug("Looking up %q in directory %q", name, d.path)

	node, ok := vfs.Get(d.fs.snapshot(), childPath)
	if !ok {
		dirLogger.Trace("Path not found: %q", childPath)
		return nil, syscall.ENOENT
	}

	switch node.(type) {
	case *vfs.Folder:
		return &Dir{fs: d.fs, path: childPath}, nil
	default:
		return &File{fs: d.fs, path: childPath}, nil
	}
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	dirLogger.Debug("Reading directory contents: %q", d.path)

	folder, err := d.folder()
	if err != nil {
		return nil, err
	}

	entries := []fuse.Dirent{
		{Name: ".", Type: fuse.DT_Dir},
		{Name: "..", Type: fuse.DT_Dir},
	}
	for _, name := range folder.Names() {
		entryType := fuse.DT_File
		if folder.Children[name].Kind() == vfs.KindFolder {
			entryType = fuse.DT_Dir
		}
		entries = append(entries, fuse.Dirent{Name: name, Type: entryType})
	}

	dirLogger.Debug("Directory %q contains %d entries", d.path, len(entries))
	return entries, nil
}

// Mkdir implements the NodeMkdirer interface, creating an empty folder.
func (d *Dir) Mkdir(_ context.Context, req *fuse.MkdirRequest) (fusefs.Node, error) {
	childPath := vfs.ChildPath(d.path, req.Name)
	dirLogger.Info("Creating directory: %q", childPath)

	if _, exists := vfs.Get(d.fs.snapshot(), childPath); exists {
		return nil, syscall.EEXIST
	}

	err := d.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
		return vfs.Set(root, childPath, vfs.NewFolder())
	})
	if err != nil {
		dirLogger.Error("Mkdir failed: %v", err)
		return nil, ToFuseError(err)
	}
	return &Dir{fs: d.fs, path: childPath}, nil
}

// Create implements the NodeCreater interface, creating an empty file
// and returning an open handle for it.
func (d *Dir) Create(_ context.Context, req *fuse.CreateRequest, _ *fuse.CreateResponse) (fusefs.Node, fusefs.Handle, error) {
	childPath := vfs.ChildPath(d.path, req.Name)
	dirLogger.Info("Creating file: %q", childPath)

	err := d.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
		if existing, ok := vfs.Get(root, childPath); ok {
			if existing.Kind() == vfs.KindFolder {
				return nil, syscall.EISDIR
			}
			// O_CREAT on an existing file keeps its content.
			return root, nil
		}
		return vfs.Set(root, childPath, vfs.NewFile(""))
	})
	if err != nil {
		dirLogger.Error("Create failed: %v", err)
		return nil, nil, ToFuseError(err)
	}

	file := &File{fs: d.fs, path: childPath}
	return file, file.newHandle(req.Flags.IsReadOnly()), nil
}

// Remove implements the NodeRemover interface, removing a file or an
// empty directory. Removing the last entry of a folder prunes emptied
// ancestor folders as well; that is the tree's contract, and directory
// handles re-resolve their path so pruned paths simply report ENOENT.
func (d *Dir) Remove(_ context.Context, req *fuse.RemoveRequest) error {
	childPath := vfs.ChildPath(d.path, req.Name)
	dirLogger.Info("Removing %q (dir=%v)", childPath, req.Dir)

	err := d.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
		node, ok := vfs.Get(root, childPath)
		if !ok {
			return nil, syscall.ENOENT
		}
		folder, isFolder := node.(*vfs.Folder)
		if req.Dir {
			if !isFolder {
				return nil, syscall.ENOTDIR
			}
			if len(folder.Children) > 0 {
				return nil, syscall.ENOTEMPTY
			}
		} else if isFolder {
			return nil, syscall.EISDIR
		}
		return vfs.Unset(root, childPath)
	})
	if err != nil {
		dirLogger.Warn("Remove failed: %v", err)
		return ToFuseError(err)
	}
	return nil
}

// Rename implements the NodeRenamer interface, moving a node to a new
// name, possibly under a different parent directory.
func (d *Dir) Rename(_ context.Context, req *fuse.RenameRequest, newDir fusefs.Node) error {
	target, ok := newDir.(*Dir)
	if !ok {
		dirLogger.Error("Rename target is not a directory node")
		return syscall.EINVAL
	}

	oldPath := vfs.ChildPath(d.path, req.OldName)
	newPath := vfs.ChildPath(target.path, req.NewName)
	dirLogger.Info("Renaming %q -> %q", oldPath, newPath)

	err := d.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
		node, ok := vfs.Get(root, oldPath)
		if !ok {
			return nil, syscall.ENOENT
		}
		moved, err := vfs.Set(root, newPath, node)
		if err != nil {
			return nil, err
		}
		return vfs.Unset(moved, oldPath)
	})
	if err != nil {
		dirLogger.Error("Rename failed: %v", err)
		return ToFuseError(err)
	}
	return nil
}
