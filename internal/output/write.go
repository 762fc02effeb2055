package output

import (
	"os"
	"path/filepath"
)

// WriteArtifact writes a rendered artifact, creating parent directories as
// needed.
func WriteArtifact(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
