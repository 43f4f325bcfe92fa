package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
)

// ChangeKind identifies which document family changed.
type ChangeKind string

// Change kinds delivered to subscribers.
const (
	ChangeImports  ChangeKind = "imports"
	ChangeBinder   ChangeKind = "binder"
	ChangeWishlist ChangeKind = "wishlist"
)

// Subscribe blocks and invokes fn for every committed change to the
// application's documents until the context is canceled. Subscribers get
// the change kind, not the payload; they re-read whatever they care about.
func (s *Store) Subscribe(ctx context.Context, fn func(ChangeKind)) error {
	matches := []pb.Match{
		{Prefix: []byte(importsFamily)},
		{Prefix: []byte(binderKey)},
		{Prefix: []byte(wishlistPrefix)},
	}

	return s.db.Subscribe(ctx, func(kv *badger.KVList) error {
		for _, item := range kv.Kv {
			fn(changeKind(string(item.Key)))
		}
		return nil
	}, matches)
}

func changeKind(key string) ChangeKind {
	switch {
	case key == binderKey:
		return ChangeBinder
	case len(key) >= len(wishlistPrefix) && key[:len(wishlistPrefix)] == wishlistPrefix:
		return ChangeWishlist
	default:
		return ChangeImports
	}
}
