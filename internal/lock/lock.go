// Package lock keeps a single interactive instance running per data directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	currentPID      = os.Getpid

	ErrAlreadyRunning = errors.New("another thirtyday instance is already running")
)

// Lock is a held instance lockfile. The file holds "pid|executable".
type Lock struct {
	path string
	pid  int
}

func Path(dir string) string {
	return filepath.Join(dir, constants.InstanceLockfileName)
}

// Acquire creates the lockfile in dir. A lockfile left by a process that is no
// longer running is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)

	if pid, err := holder(path); err == nil {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Debug("Replacing stale lockfile", "path", path, "reason", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	pid := currentPID()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	exe := constants.AppName
	if p, err := os.Executable(); err == nil {
		exe = filepath.Base(p)
	}
	if _, err := fmt.Fprintf(f, "%d|%s", pid, exe); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path, pid: pid}, nil
}

// holder returns the pid of a live process owning the lockfile at path.
// A missing file yields os.ErrNotExist; any other error means the file is stale.
func holder(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, fmt.Errorf("process %d is not running", pid)
	}
	if process.Executable() != parts[1] {
		return 0, fmt.Errorf("process with PID %d is %s, not %s", pid, process.Executable(), parts[1])
	}
	return pid, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !strings.HasPrefix(string(content), strconv.Itoa(l.pid)+"|") {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
