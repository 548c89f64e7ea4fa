package taint

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taintinfo-labs/taintinfo/internal/errors"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tainted")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMaskReadsDecimalWord(t *testing.T) {
	cases := []struct {
		content string
		want    uint64
	}{
		{"0\n", 0},
		{"1\n", 1},
		{"131073\n", 131073},
		{"512", 512},
		{"18446744073709551615\n", ^uint64(0)},
	}
	for _, tc := range cases {
		mask, err := LoadMask(writeSource(t, tc.content))
		if err != nil {
			t.Errorf("LoadMask(%q): %v", tc.content, err)
			continue
		}
		if mask != tc.want {
			t.Errorf("LoadMask(%q) = %d, want %d", tc.content, mask, tc.want)
		}
	}
}

func TestLoadMaskMissingFile(t *testing.T) {
	_, err := LoadMask(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var unavailable *errors.ErrSourceUnavailable
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("error type = %T, want ErrSourceUnavailable", err)
	}
	if errors.ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", errors.ExitCode(err))
	}
}

func TestLoadMaskMalformedContent(t *testing.T) {
	for _, content := range []string{"", "\n", "not a number\n", "-1\n", "0x10\n", "18446744073709551616\n"} {
		_, err := LoadMask(writeSource(t, content))
		if err == nil {
			t.Errorf("LoadMask(%q): expected error", content)
			continue
		}
		var malformed *errors.ErrSourceMalformed
		if !stderrors.As(err, &malformed) {
			t.Errorf("LoadMask(%q) error type = %T, want ErrSourceMalformed", content, err)
		}
	}
}
