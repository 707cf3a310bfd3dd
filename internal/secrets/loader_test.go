package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	secretFile := filepath.Join(dir, "webhook")
	if err := os.WriteFile(secretFile, []byte("  https://discord.example/hook \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr bool
	}{
		{
			name:   "inline value is trimmed",
			src:    Source{Name: "token", Value: " abc \n"},
			expect: "abc",
		},
		{
			name:   "file takes precedence over value",
			src:    Source{Name: "webhook", Value: "inline", File: secretFile},
			expect: "https://discord.example/hook",
		},
		{
			name:    "empty file is an error",
			src:     Source{Name: "webhook", File: emptyFile},
			wantErr: true,
		},
		{
			name:    "missing file is an error",
			src:     Source{Name: "webhook", File: filepath.Join(dir, "missing")},
			wantErr: true,
		},
		{
			name:    "nothing configured is an error",
			src:     Source{Name: "token"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
