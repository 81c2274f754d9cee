package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteCSV writes a detections CSV with the standard header followed by the
// given "timestamp,plate" lines and returns its path.
func WriteCSV(t testing.TB, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "detections.csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := "DateTime,LicensePlate\n" + strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
