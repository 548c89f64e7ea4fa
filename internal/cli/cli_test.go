package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCLI() (*CLI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	c := &CLI{out: out, errOut: errOut}
	c.rootCmd = c.newRootCmd()
	return c, out, errOut
}

func writeTaintFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tainted")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTaintQueryDecodesLetters(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "taint=PG"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}

	stdout := out.String()
	if !strings.Contains(stdout, "Taint flags:            P.................") {
		t.Errorf("missing symbol line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Numeric representation: 1 / 0x0000000000000001") {
		t.Errorf("missing numeric line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "- P Proprietary modules were loaded (1)") {
		t.Errorf("missing set-flag detail:\n%s", stdout)
	}

	stderr := errOut.String()
	if !strings.Contains(stderr, "Warning: Conflicting taint flags 'P' and 'G'") {
		t.Errorf("missing conflict warning:\n%s", stderr)
	}
	if !strings.Contains(stderr, "Using taint-enabling flag 'P'") {
		t.Errorf("missing precedence line:\n%s", stderr)
	}
}

func TestTaintQueryUnknownLetterIsNonFatal(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "taint=Z"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errOut.String(), "Warning: Unknown taint flag 'Z' ignored.") {
		t.Errorf("missing unknown-flag warning:\n%s", errOut.String())
	}
	if !strings.Contains(out.String(), "(Kernel is not tainted)") {
		t.Errorf("mask 0 report missing not-tainted notice:\n%s", out.String())
	}
}

func TestListPrintsFullTable(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "list"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 19 {
		t.Fatalf("expected 19 listing lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "- G: Only GPL modules were loaded (1 unset)" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "- P: Proprietary modules were loaded (1)" {
		t.Errorf("second line = %q", lines[1])
	}
	if lines[18] != "- T: Kernel was built with the struct randomization plugin (131072)" {
		t.Errorf("last line = %q", lines[18])
	}
}

func TestCurrentReadsConfiguredSource(t *testing.T) {
	path := writeTaintFile(t, "131073\n")
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "current", "--source", path})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}

	stdout := out.String()
	if !strings.Contains(stdout, "Numeric representation: 131073 / 0x0000000000020001") {
		t.Errorf("missing numeric line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "- P Proprietary modules were loaded (1)") {
		t.Errorf("missing bit 0 detail:\n%s", stdout)
	}
	if !strings.Contains(stdout, "- T Kernel was built with the struct randomization plugin (131072)") {
		t.Errorf("missing bit 17 detail:\n%s", stdout)
	}
}

func TestCurrentFailsWhenSourceMissing(t *testing.T) {
	c, _, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "current", "--source", filepath.Join(t.TempDir(), "absent")})
	if code != ExitGeneric {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneric)
	}
	if !strings.Contains(errOut.String(), "cannot read taint status") {
		t.Errorf("missing source error:\n%s", errOut.String())
	}
}

func TestCurrentFailsOnMalformedSource(t *testing.T) {
	path := writeTaintFile(t, "definitely not a number\n")
	c, _, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "current", "--source", path})
	if code != ExitGeneric {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneric)
	}
	if !strings.Contains(errOut.String(), "unparsable data") {
		t.Errorf("missing malformed-source error:\n%s", errOut.String())
	}
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	c, out, _ := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "bogus"})
	if code != ExitGeneric {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneric)
	}
	if !strings.Contains(out.String(), "taint=<flags>") {
		t.Errorf("usage text not printed:\n%s", out.String())
	}
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	c, out, _ := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color"})
	if code != ExitGeneric {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneric)
	}
	if !strings.Contains(out.String(), "current") || !strings.Contains(out.String(), "list") {
		t.Errorf("usage text not printed:\n%s", out.String())
	}
}

func TestJSONReportShape(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "--format", "json", "taint=P"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}

	var doc struct {
		Mask    uint64 `json:"mask"`
		Hex     string `json:"hex"`
		Symbols string `json:"symbols"`
		Tainted bool   `json:"tainted"`
		Flags   []struct {
			Flag     string `json:"flag"`
			Value    uint64 `json:"value"`
			Severity string `json:"severity"`
			Set      bool   `json:"set"`
		} `json:"flags"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, out.String())
	}
	if doc.Mask != 1 || doc.Hex != "0000000000000001" || !doc.Tainted {
		t.Errorf("header = %d/%s/%v", doc.Mask, doc.Hex, doc.Tainted)
	}
	if doc.Symbols != "P................." {
		t.Errorf("symbols = %q", doc.Symbols)
	}
	if len(doc.Flags) != 1 || doc.Flags[0].Flag != "P" || !doc.Flags[0].Set || doc.Flags[0].Severity != "info" {
		t.Errorf("flags = %+v", doc.Flags)
	}
}

func TestYAMLListOutput(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "--format", "yaml", "list"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "flag: G") || !strings.Contains(out.String(), "unset: true") {
		t.Errorf("yaml listing missing entries:\n%s", out.String())
	}
}

func TestInvalidFormatRejected(t *testing.T) {
	c, _, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--format", "xml", "list"})
	if code != ExitGeneric {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneric)
	}
	if !strings.Contains(errOut.String(), "format") {
		t.Errorf("missing format error:\n%s", errOut.String())
	}
}

func TestQuietSuppressesResultsButNotWarnings(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "--quiet", "taint=PG"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("quiet mode produced stdout:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "Conflicting taint flags") {
		t.Errorf("quiet mode dropped warnings:\n%s", errOut.String())
	}
}

func TestVersionCommand(t *testing.T) {
	c, out, errOut := newTestCLI()
	code := c.ExecuteArgs([]string{"--no-color", "version"})
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Version:") || !strings.Contains(out.String(), "Go Version:") {
		t.Errorf("version output incomplete:\n%s", out.String())
	}
}
