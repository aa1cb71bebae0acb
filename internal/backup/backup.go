// Package backup copies the clockbill store file aside and rotates old
// copies. It works on the raw file, so it covers both the JSON and the
// SQLite store.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 14
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"
	// BackupFilePrefix is the prefix for backup files
	BackupFilePrefix = "clockbill-"
)

// Info describes one backup file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for a single store file.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

// NewManager creates a manager for the given store file. Backups land in a
// "backups" directory next to the store, keeping the store's extension.
func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		suffix:    filepath.Ext(storePath),
	}
}

// GetBackupDir returns the backup directory path.
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the store file into the backup directory and rotates
// out the oldest copies beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store file does not exist: %s", m.storePath)
	}

	// Minute precision first; fall back to seconds, then a counter, when a
	// backup with the same name already exists.
	timestamp := time.Now().Format("20060102-1504")
	backupPath := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix)
	if _, err := os.Stat(backupPath); err == nil {
		timestamp = time.Now().Format("20060102-150405")
		backupPath = filepath.Join(m.backupDir, BackupFilePrefix+timestamp+m.suffix)

		counter := 1
		for {
			if _, err := os.Stat(backupPath); os.IsNotExist(err) {
				break
			}
			backupPath = filepath.Join(m.backupDir,
				fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, m.suffix))
			counter++
			if counter > 100 {
				return "", fmt.Errorf("failed to generate unique backup filename")
			}
		}
	}

	if err := copyFile(m.storePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy store: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		timestamp, ok := parseTimestamp(strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RestoreBackup replaces the store file with the given backup. The current
// store is backed up first so a bad restore can be undone.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.createBackup(true); err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.storePath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

// rotateBackups deletes the oldest backups beyond MaxBackups.
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for _, old := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(old.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old.Path, err)
		}
	}
	return nil
}

// parseTimestamp reads the backup filename timestamp, tolerating the
// seconds and counter variants.
func parseTimestamp(s string) (time.Time, bool) {
	// Strip a trailing counter (clockbill-20240117-150405-2).
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			s = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	if t, err := time.Parse("20060102-1504", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("20060102-150405", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
