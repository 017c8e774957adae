package cache

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// badgerPrefix namespaces matrix entries inside the database.
const badgerPrefix = "matrix/"

// Badger is a Store backed by an embedded badger database.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger database at path.
// An empty path keeps the database in memory.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.MetricsEnabled = false
	if len(path) == 0 {
		opts.InMemory = true
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cache: open badger at %q", path)
	}
	klog.V(2).Infof("cache: badger store opened (path=%q, in-memory=%v)", path, opts.InMemory)

	return &Badger{db: db}, nil
}

// Get implements Store.
func (b *Badger) Get(ctx context.Context, key string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerPrefix + key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, errors.Wrapf(err, "cache: badger get %s", key)
	}

	var e Entry
	if err = json.Unmarshal(raw, &e); err != nil {
		return Entry{}, errors.Wrapf(err, "cache: decode %s", key)
	}

	return e, nil
}

// Put implements Store.
func (b *Badger) Put(ctx context.Context, key string, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return errors.Wrapf(err, "cache: encode %s", key)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerPrefix+key), raw)
	})

	return errors.Wrapf(err, "cache: badger put %s", key)
}

// Close implements Store.
func (b *Badger) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil

	return errors.Wrap(err, "cache: close badger")
}
