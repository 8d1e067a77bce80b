package mount

import (
	"context"
	"sync"
	"syscall"

	"editkit/internal/logging"
	"editkit/internal/vfs"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var fileLogger = logging.GetLogger().WithPrefix("file")

// File exposes a file node at a fixed virtual path. Like Dir, it
// re-resolves the node in the current tree on every operation.
type File struct {
	fs   *FS
	path string
}

// content resolves this file's content in the current tree.
func (f *File) content() (string, error) {
	node, ok := vfs.Get(f.fs.snapshot(), f.path)
	if !ok {
		return "", syscall.ENOENT
	}
	file, ok := node.(*vfs.File)
	if !ok {
		return "", syscall.EISDIR
	}
	return file.Content, nil
}

// Attr implements the fusefs.Node interface.
func (f *File) Attr(_ context.Context, a *fuse.Attr) error {
	fileLogger.Trace("Getting attributes for file: %q", f.path)

	content, err := f.content()
	if err != nil {
		return err
	}
	a.Mode = 0644
	a.Size = uint64(len(content))
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	return nil
}

// Setattr implements the NodeSetattrer interface; only truncation is
// meaningful for virtual files.
func (f *File) Setattr(_ context.Context, req *fuse.SetattrRequest, _ *fuse.SetattrResponse) error {
	if req.Valid.Size() {
		fileLogger.Debug("Truncating %q to %d bytes", f.path, req.Size)
		err := f.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
			node, ok := vfs.Get(root, f.path)
			if !ok {
				return nil, syscall.ENOENT
			}
			file, ok := node.(*vfs.File)
			if !ok {
				return nil, syscall.EISDIR
			}
			content := file.Content
			if int(req.Size) < len(content) {
				content = content[:req.Size]
			} else {
				for len(content) < int(req.Size) {
					content += "\x00"
				}
			}
			return vfs.Set(root, f.path, vfs.NewFile(content))
		})
		if err != nil {
			return ToFuseError(err)
		}
	}
	return nil
}

// Open implements the NodeOpener interface. The handle snapshots the
// content at open time; writes are buffered in the handle and committed
// on flush.
func (f *File) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	fileLogger.Debug("Opening file %q with flags %v", f.path, req.Flags)
	resp.Flags |= fuse.OpenDirectIO
	return f.newHandle(req.Flags.IsReadOnly()), nil
}

func (f *File) newHandle(readOnly bool) *FileHandle {
	content, _ := f.content()
	return &FileHandle{
		file:     f,
		data:     []byte(content),
		readOnly: readOnly,
	}
}

// Fsync implements the NodeFsyncer interface. Content commits happen on
// flush; there is nothing extra to sync.
func (f *File) Fsync(_ context.Context, _ *fuse.FsyncRequest) error {
	return nil
}

// FileHandle is an open handle over a file node. It holds a private
// copy of the content; dirty handles write back through the immutable
// tree on Flush.
type FileHandle struct {
	file     *File
	mu       sync.Mutex
	data     []byte
	readOnly bool
	dirty    bool
}

// Read implements the HandleReader interface.
func (fh *FileHandle) Read(_ context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	fileLogger.Trace("Reading %d bytes from %q at offset %d",
		req.Size, fh.file.path, req.Offset)

	if req.Offset >= int64(len(fh.data)) {
		resp.Data = nil
		return nil
	}
	end := req.Offset + int64(req.Size)
	if end > int64(len(fh.data)) {
		end = int64(len(fh.data))
	}
	resp.Data = fh.data[req.Offset:end]
	return nil
}

// Write implements the HandleWriter interface, buffering into the
// handle's copy.
func (fh *FileHandle) Write(_ context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	if fh.readOnly {
		return syscall.EBADF
	}

	fileLogger.Trace("Writing %d bytes to %q at offset %d",
		len(req.Data), fh.file.path, req.Offset)

	end := req.Offset + int64(len(req.Data))
	if end > int64(len(fh.data)) {
		grown := make([]byte, end)
		copy(grown, fh.data)
		fh.data = grown
	}
	copy(fh.data[req.Offset:end], req.Data)
	fh.dirty = true
	resp.Size = len(req.Data)
	return nil
}

// Flush implements the HandleFlusher interface, committing buffered
// writes to the tree.
func (fh *FileHandle) Flush(_ context.Context, _ *fuse.FlushRequest) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	return fh.sync()
}

// Release implements the HandleReleaser interface. A still-dirty handle
// is committed on close.
func (fh *FileHandle) Release(_ context.Context, _ *fuse.ReleaseRequest) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()

	fileLogger.Debug("Closing handle for %q", fh.file.path)
	return fh.sync()
}

func (fh *FileHandle) sync() error {
	if !fh.dirty {
		return nil
	}

	content := string(fh.data)
	err := fh.file.fs.commit(func(root *vfs.Folder) (*vfs.Folder, error) {
		return vfs.Set(root, fh.file.path, vfs.NewFile(content))
	})
	if err != nil {
		fileLogger.Error("Failed to commit %q: %v", fh.file.path, err)
		return ToFuseError(err)
	}
	fh.dirty = false
	return nil
}
