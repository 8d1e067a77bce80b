package mount

import (
	"errors"
	"syscall"

	"editkit/internal/logging"
	"editkit/internal/vfs"
)

var errLogger = logging.GetLogger().WithPrefix("error")

// ToFuseError translates vfs structural conflicts into the syscall
// errors FUSE expects.
func ToFuseError(err error) error {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}

	var fsErr *vfs.Error
	if errors.As(err, &fsErr) {
		errLogger.Trace("Converting vfs error to FUSE error: %v", fsErr)
		switch {
		case errors.Is(fsErr.Err, vfs.ErrPathConflict):
			return syscall.ENOTDIR
		case errors.Is(fsErr.Err, vfs.ErrTypeConflict):
			return syscall.EEXIST
		case errors.Is(fsErr.Err, vfs.ErrInvalidRoot):
			return syscall.EINVAL
		}
	}

	errLogger.Debug("Unknown error type, returning EIO: %v", err)
	return syscall.EIO
}
