package filesink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skycodec/skycodec/pkg/filesink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalSinkValidatesTheDirectory(t *testing.T) {
	_, err := filesink.NewLocalSink(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err, "a non-existing directory should be rejected")

	filePath := filepath.Join(t.TempDir(), "a-file")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644), "fixture write should not err")
	_, err = filesink.NewLocalSink(filePath)
	assert.Error(t, err, "a path pointing to a file should be rejected")

	_, err = filesink.NewLocalSink(t.TempDir())
	assert.NoError(t, err, "an existing directory should be accepted")
}

func TestSaveWritesTheDataAndReturnsTheFullPath(t *testing.T) {
	dir := t.TempDir()
	sut, err := filesink.NewLocalSink(dir)
	require.NoError(t, err, "sink creation should not err")

	savedPath, err := sut.Save("artifact.skc", []byte("some-bytes"))
	require.NoError(t, err, "save should not err")

	assert.Equal(t, filepath.Join(dir, "artifact.skc"), savedPath,
		"the returned path should be inside the sink directory")

	data, err := os.ReadFile(savedPath)
	require.NoError(t, err, "the saved file should be readable")
	assert.Equal(t, []byte("some-bytes"), data, "the saved content should match")
}

func TestSaveStripsDirectoryComponentsFromTheFilename(t *testing.T) {
	dir := t.TempDir()
	sut, err := filesink.NewLocalSink(dir)
	require.NoError(t, err, "sink creation should not err")

	savedPath, err := sut.Save("../../escape-attempt.skc", []byte("x"))
	require.NoError(t, err, "save should not err")

	assert.Equal(t, filepath.Join(dir, "escape-attempt.skc"), savedPath,
		"path traversal components should be stripped from the filename")
}
