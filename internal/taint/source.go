package taint

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taintinfo-labs/taintinfo/internal/errors"
)

// DefaultSourcePath is where the running kernel exposes its taint word.
const DefaultSourcePath = "/proc/sys/kernel/tainted"

// The kernel writes at most a 20-digit decimal plus a newline; 64 bytes
// leaves room without slurping an arbitrarily large file by mistake.
const maxSourceBytes = 64

// LoadMask reads a taint word from the file at path. The file must
// hold a single non-negative decimal integer fitting in 64 bits,
// optionally followed by whitespace. Failures come back as
// *errors.ErrSourceUnavailable or *errors.ErrSourceMalformed.
func LoadMask(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.NewSourceUnavailable(path, err)
	}
	defer file.Close()

	buf := make([]byte, maxSourceBytes)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return 0, errors.NewSourceUnavailable(path, err)
	}

	text := strings.TrimSpace(string(buf[:n]))
	if text == "" {
		return 0, errors.NewSourceMalformed(path, nil)
	}
	mask, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, errors.NewSourceMalformed(path, err)
	}
	return mask, nil
}
