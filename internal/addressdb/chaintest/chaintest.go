// Package chaintest builds synthetic blocks and blk*.dat files for tests.
package chaintest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Block builds a block at ts with one coinbase transaction paying to each script.
// A second, segwit-encoded transaction carries the same outputs when witness is true.
func Block(ts time.Time, witness bool, pkScripts ...[]byte) *wire.MsgBlock {
	header := wire.NewBlockHeader(1, &chainhash.Hash{}, &chainhash.Hash{}, 0x1d00ffff, uint32(ts.Unix()))
	header.Timestamp = time.Unix(ts.Unix(), 0)
	block := wire.NewMsgBlock(header)

	coinbase := wire.NewMsgTx(wire.TxVersion)
	coinbase.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: math.MaxUint32}, []byte{0x04, 0xff, 0xff, 0x00, 0x1d}, nil))
	for _, script := range pkScripts {
		coinbase.AddTxOut(wire.NewTxOut(50*btcutil.SatoshiPerBitcoin, script))
	}
	_ = block.AddTransaction(coinbase)

	if witness {
		spend := wire.NewMsgTx(2)
		in := wire.NewTxIn(&wire.OutPoint{Hash: coinbase.TxHash(), Index: 0}, nil, wire.TxWitness{bytes.Repeat([]byte{0x30}, 71), bytes.Repeat([]byte{0x02}, 33)})
		spend.AddTxIn(in)
		for _, script := range pkScripts {
			spend.AddTxOut(wire.NewTxOut(1000, script))
		}
		_ = block.AddTransaction(spend)
	}
	return block
}

// Record frames a block the way Bitcoin Core stores it in blk*.dat files.
func Record(magic wire.BitcoinNet, block *wire.MsgBlock) []byte {
	var body bytes.Buffer
	if err := block.Serialize(&body); err != nil {
		panic(fmt.Sprintf("serialize block: %v", err))
	}
	out := make([]byte, 8, 8+body.Len())
	binary.LittleEndian.PutUint32(out[:4], uint32(magic))
	binary.LittleEndian.PutUint32(out[4:], uint32(body.Len()))
	return append(out, body.Bytes()...)
}

// FileName returns the Bitcoin Core name of block file index.
func FileName(index int) string {
	return fmt.Sprintf("blk%05d.dat", index)
}

// WriteFile writes blocks as block file index inside dir and returns its path.
func WriteFile(t testing.TB, dir string, index int, magic wire.BitcoinNet, blocks ...*wire.MsgBlock) string {
	t.Helper()
	var buf bytes.Buffer
	for _, b := range blocks {
		buf.Write(Record(magic, b))
	}
	return WriteRaw(t, dir, index, buf.Bytes())
}

// WriteRaw writes raw bytes as block file index inside dir and returns its path.
func WriteRaw(t testing.TB, dir string, index int, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, FileName(index))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write block file: %v", err)
	}
	return path
}

// PayToAddr returns the locking script of a human-readable address.
func PayToAddr(t testing.TB, address string, params *chaincfg.Params) []byte {
	t.Helper()
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		t.Fatalf("decode address %s: %v", address, err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatalf("pay to addr %s: %v", address, err)
	}
	return script
}

// RandomP2PKH returns a pay-to-pubkey-hash script for a random hash and the hash itself.
func RandomP2PKH(rng *rand.Rand) ([]byte, []byte) {
	hash := make([]byte, 20)
	rng.Read(hash)
	addr, err := btcutil.NewAddressPubKeyHash(hash, &chaincfg.MainNetParams)
	if err != nil {
		panic(err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		panic(err)
	}
	return script, hash
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
