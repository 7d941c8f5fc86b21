package service

import (
	"github.com/goodnatureofminers/addressdb/internal/addressdb/store"
	"go.uber.org/zap"
)

// StoreOpener opens on-disk address databases.
type StoreOpener struct {
	Metrics store.Metrics
	// MemoryLimit overrides the physical memory size the slot table is checked against.
	MemoryLimit uint64
}

// Open opens the database described by opts.
func (o StoreOpener) Open(opts store.Options, logger *zap.Logger) (AddressDB, error) {
	if opts.Metrics == nil {
		opts.Metrics = o.Metrics
	}
	if opts.MemoryLimit == 0 {
		opts.MemoryLimit = o.MemoryLimit
	}
	db, err := store.Open(opts, logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}
