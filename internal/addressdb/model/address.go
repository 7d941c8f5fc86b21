// Package model defines domain models for address database construction.
package model

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// AddressSize is the fixed width of Address in bytes: one kind tag plus a 32-byte payload.
const AddressSize = 33

// Kind tags the spending template an Address was derived from.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindPubKeyHash covers pay-to-pubkey-hash and bare-pubkey outputs.
	KindPubKeyHash
	KindScriptHash
	KindWitnessPubKeyHash
	KindWitnessScriptHash
	KindTaproot
)

var kindNames = map[Kind]string{
	KindPubKeyHash:        "p2pkh",
	KindScriptHash:        "p2sh",
	KindWitnessPubKeyHash: "p2wpkh",
	KindWitnessScriptHash: "p2wsh",
	KindTaproot:           "p2tr",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// PayloadSize returns the payload length for the kind, or 0 if the kind is unknown.
func (k Kind) PayloadSize() int {
	switch k {
	case KindPubKeyHash, KindScriptHash, KindWitnessPubKeyHash:
		return 20
	case KindWitnessScriptHash, KindTaproot:
		return 32
	default:
		return 0
	}
}

// Address is the canonical, fixed-width identifier of a spending destination.
// Byte 0 holds the Kind, the payload follows and is zero-padded to 32 bytes.
type Address [AddressSize]byte

// NewAddress builds an Address from a kind and its payload.
func NewAddress(kind Kind, payload []byte) (Address, error) {
	var a Address
	size := kind.PayloadSize()
	if size == 0 {
		return a, fmt.Errorf("unsupported address kind %d", uint8(kind))
	}
	if len(payload) != size {
		return a, fmt.Errorf("%s payload must be %d bytes, got %d", kind, size, len(payload))
	}
	a[0] = byte(kind)
	copy(a[1:], payload)
	return a, nil
}

// Kind returns the template tag of the address.
func (a Address) Kind() Kind {
	return Kind(a[0])
}

// Payload returns the hash or witness program carried by the address.
func (a Address) Payload() []byte {
	return a[1 : 1+a.Kind().PayloadSize()]
}

// Compare orders addresses by their canonical bytes.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

func (a Address) String() string {
	return a.Kind().String() + ":" + hex.EncodeToString(a.Payload())
}
