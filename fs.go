package trainlights

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// TrainFS is an afero FS with added functionality to replicate OS
// filesystems in testing.
type TrainFS interface {
	afero.Fs
	Abs(string) (string, error)
}

type osFS struct {
	afero.Fs
}

func NewOsFS() TrainFS {
	return &osFS{
		afero.NewOsFs(),
	}
}

func (f *osFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

type memFS struct {
	afero.Fs
}

// NewMemFS returns an in-memory TrainFS for tests.
func NewMemFS() TrainFS {
	return &memFS{
		afero.NewMemMapFs(),
	}
}

func (f *memFS) Abs(path string) (string, error) {
	return path, nil
}
