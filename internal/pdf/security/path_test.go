package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("expected error for empty configured directory")
	}

	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.GetConfiguredDirectory() != dir {
		t.Errorf("GetConfiguredDirectory() = %q, want %q", v.GetConfiguredDirectory(), dir)
	}
}

func TestValidatePath(t *testing.T) {
	scope := t.TempDir()
	outside := t.TempDir()

	insidePDF := filepath.Join(scope, "contract.pdf")
	if err := os.WriteFile(insidePDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	nestedDir := filepath.Join(scope, "leases")
	if err := os.Mkdir(nestedDir, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	nestedPDF := filepath.Join(nestedDir, "lease.pdf")
	if err := os.WriteFile(nestedPDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	outsidePDF := filepath.Join(outside, "secret.pdf")
	if err := os.WriteFile(outsidePDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	v, err := NewPathValidator(scope)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "pdf inside scope", path: insidePDF, wantErr: false},
		{name: "pdf in nested directory", path: nestedPDF, wantErr: false},
		{name: "scope directory itself", path: scope, wantErr: false},
		{name: "not yet created file inside scope", path: filepath.Join(scope, "upload.pdf"), wantErr: false},
		{name: "empty path", path: "", wantErr: true},
		{name: "pdf in unrelated directory", path: outsidePDF, wantErr: true},
		{name: "traversal out of scope", path: filepath.Join(scope, "..", "escape.pdf"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("ValidatePath(%q) = nil, want error", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
			}
		})
	}
}

func TestValidatePath_SymlinkEscape(t *testing.T) {
	scope := t.TempDir()
	outside := t.TempDir()

	outsidePDF := filepath.Join(outside, "secret.pdf")
	if err := os.WriteFile(outsidePDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	// a link planted inside the scope pointing at a document outside it
	link := filepath.Join(scope, "alias.pdf")
	if err := os.Symlink(outsidePDF, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	v, err := NewPathValidator(scope)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	if err := v.ValidatePath(link); err == nil {
		t.Error("expected symlink escaping the scope to be rejected")
	}
}

func TestValidatePath_ScopeNotCreatedYet(t *testing.T) {
	scope := filepath.Join(t.TempDir(), "documents")

	v, err := NewPathValidator(scope)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	// nothing to enforce until the directory exists
	if err := v.ValidatePath("/anywhere/at/all.pdf"); err != nil {
		t.Errorf("ValidatePath before scope creation = %v, want nil", err)
	}

	if err := os.MkdirAll(scope, 0o755); err != nil {
		t.Fatalf("failed to create scope dir: %v", err)
	}
	if err := v.ValidatePath("/anywhere/at/all.pdf"); err == nil {
		t.Error("expected outside path to be rejected once the scope exists")
	}
}
