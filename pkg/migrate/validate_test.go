package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMigration(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const validSQL = "-- +goose Up\nCREATE TABLE x (id TEXT);\n-- +goose Down\nDROP TABLE x;\n"

func TestValidateDirAcceptsEmbeddedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "init.sql", validSQL)

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "invalid migration filename") {
		t.Fatalf("expected filename error, got %v", err)
	}
}

func TestValidateDirRejectsDuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20250301120000_first.sql", validSQL)
	writeMigration(t, dir, "20250301120000_second.sql", validSQL)

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestValidateDirRequiresGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20250301120000_init.sql", "CREATE TABLE x (id TEXT);")

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "+goose Up") {
		t.Fatalf("expected marker error, got %v", err)
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Promotions! Table")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasSuffix(base, "_add_promotions_table.sql") {
		t.Fatalf("unexpected filename %q", base)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration invalid: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for unsanitizable name")
	}
}
