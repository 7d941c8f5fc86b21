// Package bitcoin implements Bitcoin-specific decoding of raw block files and output scripts.
package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// ChainParams returns the consensus parameters (network magic, address prefixes) for a network name.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "test", "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// DataSubdir returns the directory Bitcoin Core nests a network's data under, relative to its data dir.
func DataSubdir(network model.Network) (string, error) {
	params, err := ChainParams(network)
	if err != nil {
		return "", err
	}
	switch params.Net {
	case chaincfg.MainNetParams.Net:
		return "", nil
	case chaincfg.TestNet3Params.Net:
		return "testnet3", nil
	case chaincfg.RegressionNetParams.Net:
		return "regtest", nil
	default:
		return "signet", nil
	}
}
