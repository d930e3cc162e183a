package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FilesystemSource implements Source on a local directory.
type FilesystemSource struct {
	baseDir string
}

// NewFilesystemSource creates a source listing files below baseDir.
func NewFilesystemSource(baseDir string) (*FilesystemSource, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", baseDir)
	}
	return &FilesystemSource{baseDir: baseDir}, nil
}

// List walks baseDir recursively. Keys use "/" as separator.
func (f *FilesystemSource) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(f.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{
			Key:     key,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk "+f.baseDir)
	}
	sortObjects(objects)
	return objects, nil
}

func (f *FilesystemSource) Read(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.baseDir, filepath.FromSlash(key)))
}

func (f *FilesystemSource) Close() error {
	return nil
}

func sortObjects(objects []Object) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key < objects[j].Key
	})
}
