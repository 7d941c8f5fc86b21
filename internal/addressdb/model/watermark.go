package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Watermark records how much of the chain has been folded into a database.
type Watermark struct {
	// FileIndex is the block file the next update resumes from. It is the last file
	// scanned, which is rescanned because it may have grown since.
	FileIndex uint32
	// MaxBlockTime is the highest block timestamp observed, filtered blocks included.
	MaxBlockTime time.Time
	// TipHash is the hash of the last block decoded.
	TipHash chainhash.Hash
}

// Advance folds a decoded block timestamp into the watermark.
func (w *Watermark) Advance(blockTime time.Time) {
	if blockTime.After(w.MaxBlockTime) {
		w.MaxBlockTime = blockTime.UTC()
	}
}
