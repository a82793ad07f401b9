package pathutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wyag/git-go/internal/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirPathFlagWithDefault(t *testing.T) {
	t.Parallel()

	t.Run("valid path should pass", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()

		p := pathutil.NewDirPathFlagWithDefault("/tmp")
		err := p.Set(path)
		assert.NoError(t, err)
		assert.Equal(t, path, p.String())
		assert.Equal(t, "dirPath", p.Type())
	})

	t.Run("no path should use default", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()

		p := pathutil.NewDirPathFlagWithDefault(path)
		assert.Equal(t, path, p.String())
	})

	t.Run("missing path should fail", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()

		p := pathutil.NewDirPathFlagWithDefault("/tmp")
		err := p.Set(filepath.Join(path, "doesn't exist"))
		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("a file should fail", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()
		filePath := filepath.Join(path, "file")
		require.NoError(t, os.WriteFile(filePath, []byte("data"), 0o644))

		p := pathutil.NewDirPathFlagWithDefault("/tmp")
		err := p.Set(filePath)
		assert.Error(t, err)
		assert.ErrorIs(t, err, pathutil.ErrIsNotDirectory)
	})
}
