package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeStore(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "clockbill.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndListBackups(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{"version":1}`)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %q", data)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("backup count = %d, want 1", len(backups))
	}
	if backups[0].Path != backupPath {
		t.Errorf("listed path = %s, want %s", backups[0].Path, backupPath)
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing store file")
	}
}

func TestCreateBackup_UniqueNamesSameMinute(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{}`)
	mgr := NewManager(path)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeStore(t, dir, `{"invoice_number":1}`)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the live store, then restore.
	if err := os.WriteFile(path, []byte(`{"invoice_number":99}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != `{"invoice_number":1}` {
		t.Errorf("restored content = %q", data)
	}

	// The pre-restore state was itself backed up.
	backups, _ := mgr.ListBackups()
	if len(backups) < 2 {
		t.Errorf("backup count = %d, want at least 2 (safety copy)", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := writeStore(t, dir, `{}`)
	mgr := NewManager(path)

	// Seed more than MaxBackups files with distinct parsable timestamps.
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxBackups+5; i++ {
		name := fmt.Sprintf("%s202401%02d-1200.json", BackupFilePrefix, i+1)
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("backup count after rotation = %d, want <= %d", len(backups), MaxBackups)
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{}`)
	mgr := NewManager(path)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "clockbill-garbage.json", BackupFilePrefix + "20240117-1200.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("backup count = %d, want 1", len(backups))
	}
}
