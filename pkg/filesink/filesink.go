// Package filesink persists downloaded artifacts on the local machine, the
// equivalent of a browser save action.
package filesink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Sink interface {
	Save(filename string, data []byte) (string, error)
}

type LocalSink struct {
	dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	dir, err := validateAndFormatPath(dir)
	if err != nil {
		return nil, fmt.Errorf("error creating local sink: %w", err)
	}

	return &LocalSink{dir: dir}, nil
}

// Save writes data under the sink directory and returns the full path.
func (sink *LocalSink) Save(filename string, data []byte) (string, error) {
	fullPath := filepath.Join(sink.dir, filepath.Base(filename))

	err := os.WriteFile(fullPath, data, 0o644)
	if err != nil {
		return "", fmt.Errorf("error writing data into file: %w", err)
	}

	return fullPath, nil
}

func validateAndFormatPath(path string) (string, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("the directory for the path doesn't exist: %w", err)
		}
		return "", fmt.Errorf("error on the provided path: %w", err)
	}

	if !pathInfo.IsDir() {
		return "", fmt.Errorf("provided path is not a directory")
	}

	return strings.TrimSuffix(path, "/"), nil
}
