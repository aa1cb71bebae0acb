package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jtomsett/clockbill/internal/backup"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the store file."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore a backup over the current store."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		possiblePath := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
		if _, err := os.Stat(possiblePath); err == nil {
			backupPath = possiblePath
		}
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return err
	}

	fmt.Printf("✓ Restored backup: %s\n", filepath.Base(backupPath))
	return nil
}
