// Package cache keeps per-genome extraction results in a bolt database so
// unchanged inputs are not parsed again on the next run.
package cache

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	"gopkg.in/vmihailenco/msgpack.v2"
)

var bucket = []byte("genomes")

// Entry is one extracted sequence as stored on disk.
type Entry struct {
	ContigID string `msgpack:"contig"`
	Product  string `msgpack:"product"`
	Gene     string `msgpack:"gene"`
	Start    int    `msgpack:"start"`
	End      int    `msgpack:"end"`
	Minus    bool   `msgpack:"minus"`
	Bases    []byte `msgpack:"bases"`
}

// Item is the stored result of one genome.
type Item struct {
	Fingerprint string         `msgpack:"fp"`
	Offered     int            `msgpack:"offered"`
	Selected    int            `msgpack:"selected"`
	Duplicates  int            `msgpack:"dups"`
	Errors      map[string]int `msgpack:"errors"`
	Entries     []Entry        `msgpack:"entries"`
}

// Cache wraps a bolt database. It is safe for concurrent use.
type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache file at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database.
func (c *Cache) Close() error { return c.db.Close() }

// Fingerprint identifies the current content of paths by name, size and
// modification time.
func Fingerprint(paths ...string) (string, error) {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s|%d|%d", p, st.Size(), st.ModTime().UnixNano()))
	}
	return strings.Join(parts, ";"), nil
}

// Get returns the item stored for genomeID if its fingerprint equals fp.
func (c *Cache) Get(genomeID, fp string) (Item, bool, error) {
	var (
		it    Item
		found bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(genomeID))
		if v == nil {
			return nil
		}
		if err := msgpack.Unmarshal(v, &it); err != nil {
			return err
		}
		found = it.Fingerprint == fp
		return nil
	})
	if err != nil {
		return Item{}, false, fmt.Errorf("cache get %s: %w", genomeID, err)
	}
	if !found {
		return Item{}, false, nil
	}
	return it, true, nil
}

// Put stores it under genomeID, replacing any previous item.
func (c *Cache) Put(genomeID string, it Item) error {
	value, err := msgpack.Marshal(it)
	if err != nil {
		return fmt.Errorf("cache put %s: %w", genomeID, err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(genomeID), value)
	})
}

// Len returns the number of stored genomes.
func (c *Cache) Len() int {
	n := 0
	_ = c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucket).Stats().KeyN
		return nil
	})
	return n
}
