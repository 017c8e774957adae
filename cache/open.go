package cache

import "github.com/pkg/errors"

// Store kinds accepted by Open.
const (
	KindBadger = "badger"
	KindFile   = "file"
	KindMemory = "memory"
	KindNone   = "none"
)

// Open builds the Store named by kind. KindNone returns (nil, nil): the
// caller runs without a cache.
func Open(kind, path string) (Store, error) {
	switch kind {
	case KindBadger:
		b, err := OpenBadger(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindFile:
		f, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindMemory:
		return NewMemory(), nil
	case KindNone, "":
		return nil, nil
	default:
		return nil, errors.Errorf("cache: unknown kind %q", kind)
	}
}
