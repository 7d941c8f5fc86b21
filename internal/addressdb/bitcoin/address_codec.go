package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// AddressCodec converts canonical addresses to and from their human-readable form.
type AddressCodec struct {
	params *chaincfg.Params
}

// NewAddressCodec initializes a codec using params of the provided network.
func NewAddressCodec(network model.Network) (*AddressCodec, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &AddressCodec{params: params}, nil
}

// Encode renders a canonical address as a base58 or bech32 string.
func (c *AddressCodec) Encode(a model.Address) (string, error) {
	var (
		addr btcutil.Address
		err  error
	)
	payload := a.Payload()
	switch a.Kind() {
	case model.KindPubKeyHash:
		addr, err = btcutil.NewAddressPubKeyHash(payload, c.params)
	case model.KindScriptHash:
		addr, err = btcutil.NewAddressScriptHashFromHash(payload, c.params)
	case model.KindWitnessPubKeyHash:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(payload, c.params)
	case model.KindWitnessScriptHash:
		addr, err = btcutil.NewAddressWitnessScriptHash(payload, c.params)
	case model.KindTaproot:
		addr, err = btcutil.NewAddressTaproot(payload, c.params)
	default:
		return "", fmt.Errorf("encode address: unsupported kind %s", a.Kind())
	}
	if err != nil {
		return "", fmt.Errorf("encode %s address: %w", a.Kind(), err)
	}
	return addr.EncodeAddress(), nil
}

// Decode parses a human-readable address into its canonical form.
func (c *AddressCodec) Decode(s string) (model.Address, error) {
	decoded, err := btcutil.DecodeAddress(s, c.params)
	if err != nil {
		return model.Address{}, fmt.Errorf("decode address %q: %w", s, err)
	}
	if !decoded.IsForNet(c.params) {
		return model.Address{}, fmt.Errorf("address %q is not for network %s", s, c.params.Name)
	}
	switch addr := decoded.(type) {
	case *btcutil.AddressPubKeyHash:
		return model.NewAddress(model.KindPubKeyHash, addr.Hash160()[:])
	case *btcutil.AddressPubKey:
		return model.NewAddress(model.KindPubKeyHash, addr.AddressPubKeyHash().Hash160()[:])
	case *btcutil.AddressScriptHash:
		return model.NewAddress(model.KindScriptHash, addr.Hash160()[:])
	case *btcutil.AddressWitnessPubKeyHash:
		return model.NewAddress(model.KindWitnessPubKeyHash, addr.Hash160()[:])
	case *btcutil.AddressWitnessScriptHash:
		return model.NewAddress(model.KindWitnessScriptHash, addr.WitnessProgram())
	case *btcutil.AddressTaproot:
		return model.NewAddress(model.KindTaproot, addr.WitnessProgram())
	default:
		return model.Address{}, fmt.Errorf("address %q has unsupported type %T", s, decoded)
	}
}
