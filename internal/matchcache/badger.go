package matchcache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type badgerCache struct {
	db *badger.DB
}

func NewBadgerCache(db *badger.DB) ICache {
	return &badgerCache{db: db}
}

func (b *badgerCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (b *badgerCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (b *badgerCache) Close() error {
	return b.db.Close()
}

// badger:///var/lib/skillmatch/cache opens an on-disk store, badger://memory an
// in-memory one.
func createBadgerCache(_ context.Context, u *url.URL) (ICache, error) {
	var opts badger.Options
	if u.Host == "memory" && u.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := u.Host + u.Path
		if dir == "" {
			return nil, fmt.Errorf("badger cache requires a directory")
		}
		opts = badger.DefaultOptions(dir)
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerCache(db), nil
}

func init() {
	Register("badger", createBadgerCache)
}
