/*
 * SPDX-FileCopyrightText: © Shamogulang and Contributors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package store persists finalized doc-value payloads and covering tokens
// in badger. Payload reads go through a ristretto cache, since sorting and
// aggregation re-read the same column values repeatedly.
package store

import (
	"bytes"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/shamogulang/elasticsearch/docvalues"
)

const (
	payloadPrefix = 'd'
	tokenPrefix   = 'i'
	keySep        = 0x00
)

// Store is a column store for per-document geo-shape values.
type Store struct {
	db    *badger.DB
	cache *ristretto.Cache[[]byte, *docvalues.Payload]
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrapf(err, "opening store at %q", dir)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[[]byte, *docvalues.Payload]{
		NumCounters: 1e5,
		MaxCost:     64 << 20,
		BufferItems: 64,
		Cost: func(p *docvalues.Payload) int64 {
			return int64(len(p.Triangles)*p.Codec.Size() + 64)
		},
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating payload cache")
	}
	return &Store{db: db, cache: cache}, nil
}

// Close releases the cache and the underlying badger db.
func (s *Store) Close() error {
	s.cache.Close()
	return s.db.Close()
}

func payloadKey(field, docID string) []byte {
	k := make([]byte, 0, 2+len(field)+1+len(docID))
	k = append(k, payloadPrefix, keySep)
	k = append(k, field...)
	k = append(k, keySep)
	k = append(k, docID...)
	return k
}

func tokenKey(field, token, docID string) []byte {
	k := make([]byte, 0, 2+len(field)+1+len(token)+1+len(docID))
	k = append(k, tokenPrefix, keySep)
	k = append(k, field...)
	k = append(k, keySep)
	k = append(k, token...)
	k = append(k, keySep)
	k = append(k, docID...)
	return k
}

// WriteDoc persists every finalized aggregate of pc under docID, plus the
// covering tokens per field, in one write batch. The parse context is
// finished at this point; aggregates are finalized exactly once.
func (s *Store) WriteDoc(docID string, pc *docvalues.ParseContext, tokens map[string][]string) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, f := range pc.Fields() {
		payload, err := f.Finalize().Marshal()
		if err != nil {
			return errors.Wrapf(err, "marshaling doc %q field %q", docID, f.Name())
		}
		if err := wb.Set(payloadKey(f.Name(), docID), payload); err != nil {
			return errors.Wrapf(err, "writing doc %q field %q", docID, f.Name())
		}
		for _, tok := range tokens[f.Name()] {
			if err := wb.Set(tokenKey(f.Name(), tok, docID), nil); err != nil {
				return errors.Wrapf(err, "writing token %q for doc %q", tok, docID)
			}
		}
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrapf(err, "flushing doc %q", docID)
	}
	glog.V(2).Infof("stored doc %q with %d fields", docID, len(pc.Fields()))
	return nil
}

// Payload reads the finalized column value for (field, docID), or nil if
// the document has no value for the field.
func (s *Store) Payload(field, docID string) (*docvalues.Payload, error) {
	key := payloadKey(field, docID)
	if p, ok := s.cache.Get(key); ok {
		return p, nil
	}
	var p *docvalues.Payload
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			p, err = docvalues.UnmarshalPayload(val)
			return err
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading doc %q field %q", docID, field)
	}
	if p != nil {
		s.cache.Set(key, p, 0)
	}
	return p, nil
}

// HasField reports whether a doc-value exists for (field, docID). This
// backs existence queries without decoding the payload.
func (s *Store) HasField(field, docID string) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(payloadKey(field, docID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// DocsForToken returns the IDs of documents whose covering contains the
// given cell token, in key order.
func (s *Store) DocsForToken(field, token string) ([]string, error) {
	prefix := tokenKey(field, token, "")
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(bytes.TrimPrefix(key, prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning token %q", token)
	}
	return ids, nil
}
