package filesystem

import (
	"os"
)

func CreateDirectoryIfNotExists(path string) error {
	return os.MkdirAll(path, 0o755)
}

func IsDirectory(path string) bool {
	fs, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fs.IsDir()
}
