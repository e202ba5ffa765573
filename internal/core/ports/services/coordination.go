package services

import "context"

// KeyLocker serialises work on a key across processes.
type KeyLocker interface {
	// Lock blocks until the key is held or fails with apperrors.ErrConflict.
	// The returned func releases the lock.
	Lock(ctx context.Context, key string) (func(), error)
}

// ChangeNotifier broadcasts that a ledger partition changed.
type ChangeNotifier interface {
	// Publish announces a change in the given partition key.
	Publish(ctx context.Context, partitionKey string) error

	// Subscribe signals changes in partitions accepted by covers until ctx
	// is done. Pending signals coalesce, so a slow reader never misses
	// that a refresh is due.
	Subscribe(ctx context.Context, covers func(partitionKey string) bool) <-chan struct{}
}
