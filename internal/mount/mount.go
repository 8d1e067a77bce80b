// Package mount exposes the virtual project tree as a FUSE filesystem.
// Reads walk the current immutable tree; every mutation goes through
// vfs.Set or vfs.Unset, swaps the root pointer under a lock, and
// persists the new snapshot through the state manager.
package mount

import (
	"fmt"
	"os"
	"sync"
	"time"

	"editkit/internal/logging"
	"editkit/internal/state"
	"editkit/internal/vfs"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
)

var fsLogger = logging.GetLogger().WithPrefix("mount")

// FS is the FUSE-facing filesystem. It owns the current tree root;
// prior roots remain valid for readers that already hold them.
type FS struct {
	mu    sync.RWMutex
	root  *vfs.Folder
	state *state.Manager
	conn  *fuse.Conn
	uid   uint32
	gid   uint32
}

// New creates a filesystem serving the given tree and persisting every
// mutation through the state manager.
func New(root *vfs.Folder, manager *state.Manager) *FS {
	return &FS{
		root:  root,
		state: manager,
		uid:   safeIntToUint32(os.Getuid()),
		gid:   safeIntToUint32(os.Getgid()),
	}
}

// Root implements the fusefs.FS interface.
func (f *FS) Root() (fusefs.Node, error) {
	fsLogger.Trace("Getting root directory node")
	return &Dir{fs: f, path: "/"}, nil
}

// snapshot returns the current tree root. The returned tree is
// immutable and safe to walk without holding the lock.
func (f *FS) snapshot() *vfs.Folder {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.root
}

// commit applies a mutation to the current root, swaps the new tree in,
// and saves it. The mutation function must be pure: it runs under the
// write lock and must only derive the next tree from the given one.
func (f *FS) commit(mutate func(*vfs.Folder) (*vfs.Folder, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := mutate(f.root)
	if err != nil {
		return err
	}
	if next == f.root {
		return nil
	}
	f.root = next
	return f.state.Save(next)
}

// Mount mounts the filesystem at the given path and starts serving.
func (f *FS) Mount(mountPoint string) error {
	fsLogger.Info("Mounting project filesystem at: %s", mountPoint)

	c, err := fuse.Mount(mountPoint,
		fuse.FSName("editkit"),
		fuse.Subtype("editkit"),
		fuse.DefaultPermissions(),
	)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	f.conn = c

	go func() {
		if err := fusefs.Serve(c, f); err != nil {
			fsLogger.Error("FUSE server error: %v", err)
		}
	}()

	if err := waitForMount(mountPoint); err != nil {
		c.Close()
		return fmt.Errorf("mount point failed to initialize: %w", err)
	}

	fsLogger.Info("Filesystem mounted and ready")
	return nil
}

// Unmount cleanly unmounts the filesystem.
func (f *FS) Unmount(mountPoint string) error {
	fsLogger.Info("Unmounting filesystem from: %s", mountPoint)
	if f.conn == nil {
		return nil
	}
	if err := fuse.Unmount(mountPoint); err != nil {
		fsLogger.Error("Unmount failed: %v", err)
		return err
	}
	return f.conn.Close()
}

func waitForMount(mountPoint string) error {
	for i := 0; i < 30; i++ {
		info, err := os.Stat(mountPoint)
		if err == nil && info.IsDir() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("mount point not available after 3 seconds")
}

func safeIntToUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}
