package testutils

import (
	"github.com/mandelsoft/vfs/pkg/composefs"
	"github.com/mandelsoft/vfs/pkg/layerfs"
	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/readonlyfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// TESTDATA is the mount point of the test data directory.
const TESTDATA = "/testdata"

// TestFileSystem provides an in-memory file system with the
// given directory mounted at TESTDATA. Modifications of the
// mounted files are kept in memory, or rejected for readonly
// file systems.
func TestFileSystem(dir string, readonly bool) (vfs.FileSystem, error) {
	data, err := projectionfs.New(osfs.OsFs, dir)
	if err != nil {
		return nil, err
	}
	if readonly {
		data = readonlyfs.New(data)
	} else {
		data = layerfs.New(memoryfs.New(), data)
	}

	root := memoryfs.New()
	err = root.MkdirAll(TESTDATA, 0o700)
	if err != nil {
		return nil, err
	}
	fs := composefs.New(root, "/tmp")
	err = fs.Mount(TESTDATA, data)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
