package runtimepath

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/frameless-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	tests := []struct {
		host string
		want string
	}{
		{"frameless", "/frameless.sock"},
		{"frameless-ebiten", "/frameless-ebiten.sock"},
	}
	for _, tt := range tests {
		socket, err := SocketPath(tt.host)
		if err != nil {
			t.Fatalf("SocketPath(%q) error: %v", tt.host, err)
		}
		if !strings.HasPrefix(socket, td) || !strings.HasSuffix(socket, tt.want) {
			t.Fatalf("SocketPath(%q) = %q, want %q under %q", tt.host, socket, tt.want, td)
		}
	}
}
