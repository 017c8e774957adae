package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// File stores every entry as <dir>/<key>.json. Writes go through a temporary
// file and a rename, so a reader never sees a half-written document.
type File struct {
	dir string
}

// OpenFile creates dir if needed and returns a File store rooted there.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("cache: file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "cache: create %q", dir)
	}
	klog.V(2).Infof("cache: file store at %s", dir)

	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store.
func (f *File) Get(ctx context.Context, key string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, errors.Wrapf(err, "cache: read %s", key)
	}

	var e Entry
	if err = json.Unmarshal(raw, &e); err != nil {
		return Entry{}, errors.Wrapf(err, "cache: decode %s", key)
	}

	return e, nil
}

// Put implements Store.
func (f *File) Put(ctx context.Context, key string, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "cache: encode %s", key)
	}

	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cache: write %s", key)
	}
	if _, err = tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: write %s", key)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: write %s", key)
	}
	if err = os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: commit %s", key)
	}

	return nil
}

// Close implements Store.
func (f *File) Close() error { return nil }
