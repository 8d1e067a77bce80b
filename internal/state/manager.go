// Package state persists the project tree as a JSON snapshot and keeps
// a small rotation of timestamped backups next to it.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"editkit/internal/logging"
	"editkit/internal/vfs"
)

var logger = logging.GetLogger().WithPrefix("state")

// snapshotVersion is written into every project file for forward
// compatibility.
const snapshotVersion = 1

// snapshot is the on-disk envelope around the node tree.
type snapshot struct {
	Version int             `json:"version"`
	Root    json.RawMessage `json:"root"`
}

// Manager loads and saves project snapshots for one project file.
type Manager struct {
	projectPath string
	backupDir   string
	backupCount int
	mu          sync.Mutex
}

// NewManager creates a manager for the given project file path. The
// parent directory and the backup directory are created if missing, and
// writability is verified up front so mount-time failures surface early.
func NewManager(projectPath string) (*Manager, error) {
	logger.Debug("Creating state manager for: %s", projectPath)

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	projectDir := filepath.Dir(absPath)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory %s: %w", projectDir, err)
	}

	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create project file %s: %w", absPath, err)
	}
	f.Close()

	backupDir := filepath.Join(projectDir, ".editkit-backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", backupDir, err)
	}

	logger.Info("State manager ready (project: %s)", absPath)
	return &Manager{
		projectPath: absPath,
		backupDir:   backupDir,
		backupCount: 5,
	}, nil
}

// Load reads the project tree from disk. A missing or empty project
// file is initialized with the default scaffold and written back.
func (m *Manager) Load() (*vfs.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger.Debug("Loading project from: %s", m.projectPath)

	info, err := os.Stat(m.projectPath)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		logger.Info("No project file, creating default scaffold")
		root := DefaultProject()
		if err := m.write(root); err != nil {
			return nil, fmt.Errorf("failed to write initial project: %w", err)
		}
		return root, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check project file: %w", err)
	}

	data, err := os.ReadFile(m.projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if snap.Root == nil {
		return nil, fmt.Errorf("project file has no root node")
	}

	root, err := vfs.UnmarshalFolder(snap.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode project tree: %w", err)
	}

	logger.Info("Project loaded (%d top-level entries)", len(root.Children))
	return root, nil
}

// Save persists the given tree, creating a backup of the previous
// snapshot first. A failed backup is logged but does not block the save.
func (m *Manager) Save(root *vfs.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger.Debug("Saving project to: %s", m.projectPath)

	if err := m.backup(); err != nil {
		logger.Warn("Failed to create backup: %v", err)
	}
	return m.write(root)
}

func (m *Manager) write(root *vfs.Folder) error {
	rootJSON, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal project tree: %w", err)
	}
	data, err := json.MarshalIndent(snapshot{Version: snapshotVersion, Root: rootJSON}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(m.projectPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	logger.Trace("Wrote %d bytes of project data", len(data))
	return nil
}

// backup copies the current snapshot into the backup directory with a
// timestamped name, then trims old backups.
func (m *Manager) backup() error {
	info, err := os.Stat(m.projectPath)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		return nil
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(m.projectPath)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("project-%s.json", time.Now().Format("20060102-150405.000"))
	backupPath := filepath.Join(m.backupDir, name)
	logger.Debug("Creating backup: %s", backupPath)
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return m.trimBackups()
}

func (m *Manager) trimBackups() error {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}

	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for i := m.backupCount; i < len(names); i++ {
		path := filepath.Join(m.backupDir, names[i])
		logger.Debug("Removing old backup: %s", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", path, err)
		}
	}
	return nil
}
