package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/spaolacci/murmur3"
)

const (
	minEntryWidth = 2
	maxEntryWidth = 8
)

// ExpectedSearchLength returns the expected length of an unsuccessful linear search at
// load factor alpha.
func ExpectedSearchLength(alpha float64) float64 {
	return 0.5 * (1 + 1/((1-alpha)*(1-alpha)))
}

// FalsePositiveBound returns the upper bound on the false-positive probability of a lookup
// at load alpha with fingerprints of width bytes. Every non-empty slot on the collision run
// except the terminating empty one is compared against a fingerprint drawn uniformly from
// 2^(8*width)-1 non-zero values.
func FalsePositiveBound(alpha float64, width uint8) float64 {
	return (ExpectedSearchLength(alpha) - 1) / fingerprintSpace(width)
}

// EntryWidthFor returns the smallest entry width meeting the target false-positive rate at
// the given maximum load.
func EntryWidthFor(target, maxLoad float64) (uint8, error) {
	for w := uint8(minEntryWidth); w <= maxEntryWidth; w++ {
		if FalsePositiveBound(maxLoad, w) <= target {
			return w, nil
		}
	}
	return 0, fmt.Errorf("false positive rate %g is unreachable at max load %g", target, maxLoad)
}

func fingerprintSpace(width uint8) float64 {
	return math.Exp2(float64(8*int(width))) - 1
}

func capacityLimit(capacity uint64, maxLoad float64) uint64 {
	return uint64(math.Floor(float64(capacity) * maxLoad))
}

// table is an open-addressing set of fixed-width fingerprints. A zero entry is empty.
type table struct {
	slots []byte
	width int
	mask  uint64
	fpMod uint64
}

func newTable(slots []byte, dbLength, width uint8) *table {
	t := &table{
		slots: slots,
		width: int(width),
		mask:  uint64(1)<<dbLength - 1,
	}
	if width < maxEntryWidth {
		t.fpMod = uint64(1)<<(8*uint(width)) - 1
	}
	return t
}

// position returns the home slot and the non-zero fingerprint of addr.
func (t *table) position(addr model.Address) (uint64, uint64) {
	h1, h2 := murmur3.Sum128(addr[:])
	var fp uint64
	if t.fpMod == 0 {
		fp = h2
		if fp == 0 {
			fp = 1
		}
	} else {
		fp = h2%t.fpMod + 1
	}
	return h1 & t.mask, fp
}

func (t *table) get(slot uint64) uint64 {
	off := int(slot) * t.width
	var buf [8]byte
	copy(buf[:], t.slots[off:off+t.width])
	return binary.LittleEndian.Uint64(buf[:])
}

func (t *table) set(slot, fp uint64) {
	off := int(slot) * t.width
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], fp)
	copy(t.slots[off:off+t.width], buf[:t.width])
}

// find walks the collision run of addr. It returns the slot holding its fingerprint or the
// empty slot ending the run, and whether the fingerprint was found.
func (t *table) find(addr model.Address) (slot, fp uint64, found bool) {
	slot, fp = t.position(addr)
	for steps := uint64(0); steps <= t.mask; steps++ {
		switch t.get(slot) {
		case fp:
			return slot, fp, true
		case 0:
			return slot, fp, false
		}
		slot = (slot + 1) & t.mask
	}
	// Unreachable while the load stays below 1.
	return 0, fp, false
}

// count returns the number of occupied slots.
func (t *table) count() uint64 {
	var n uint64
	for slot := uint64(0); slot <= t.mask; slot++ {
		if t.get(slot) != 0 {
			n++
		}
	}
	return n
}
