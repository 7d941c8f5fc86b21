package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/cespare/xxhash/v2"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	// HeaderSize is the fixed region reserved for the header before the slot table.
	HeaderSize    = 4096
	formatVersion = 1

	lengthSize   = 4
	checksumSize = 8
)

var fileMagic = [8]byte{'A', 'D', 'D', 'R', 'D', 'B', '\r', '\n'}

var (
	errBadMagic    = errors.New("not an address database")
	errBadChecksum = errors.New("header checksum mismatch")
)

// State records whether the slot table may be ahead of the header.
type State uint8

const (
	StateClean State = 0
	StateDirty State = 1
)

func (s State) String() string {
	if s == StateClean {
		return "clean"
	}
	return "dirty"
}

const (
	typeVersion        tlv.Type = 0
	typeNetwork        tlv.Type = 2
	typeDBLength       tlv.Type = 4
	typeEntryWidth     tlv.Type = 6
	typeMaxLoad        tlv.Type = 8
	typeCreated        tlv.Type = 10
	typeCount          tlv.Type = 12
	typeState          tlv.Type = 14
	typeWatermarkFile  tlv.Type = 16
	typeMaxBlockTime   tlv.Type = 18
	typeTipHash        tlv.Type = 20
	typeWindowStart    tlv.Type = 22
	typeWindowEnd      tlv.Type = 24
	typeFirstBlockFile tlv.Type = 26
)

var requiredTypes = []tlv.Type{typeVersion, typeNetwork, typeDBLength, typeEntryWidth, typeMaxLoad, typeCount, typeState}

// Header is the decoded header region of a database file.
type Header struct {
	Version        uint16
	Network        wire.BitcoinNet
	DBLength       uint8
	EntryWidth     uint8
	MaxLoad        float64
	Created        time.Time
	Count          uint64
	State          State
	Watermark      model.Watermark
	Window         model.DateWindow
	FirstBlockFile uint32
}

// Capacity returns the number of slots.
func (h Header) Capacity() uint64 {
	return uint64(1) << h.DBLength
}

// Limit returns the largest number of entries the database accepts.
func (h Header) Limit() uint64 {
	return capacityLimit(h.Capacity(), h.MaxLoad)
}

// TableSize returns the slot table size in bytes.
func (h Header) TableSize() uint64 {
	return h.Capacity() * uint64(h.EntryWidth)
}

type headerFields struct {
	version        uint16
	network        uint32
	dbLength       uint8
	entryWidth     uint8
	maxLoad        uint16
	created        uint64
	count          uint64
	state          uint8
	watermarkFile  uint32
	maxBlockTime   uint64
	tipHash        [32]byte
	windowStart    uint64
	windowEnd      uint64
	firstBlockFile uint32
}

func (f *headerFields) stream() (*tlv.Stream, error) {
	return tlv.NewStream(
		tlv.MakePrimitiveRecord(typeVersion, &f.version),
		tlv.MakePrimitiveRecord(typeNetwork, &f.network),
		tlv.MakePrimitiveRecord(typeDBLength, &f.dbLength),
		tlv.MakePrimitiveRecord(typeEntryWidth, &f.entryWidth),
		tlv.MakePrimitiveRecord(typeMaxLoad, &f.maxLoad),
		tlv.MakePrimitiveRecord(typeCreated, &f.created),
		tlv.MakePrimitiveRecord(typeCount, &f.count),
		tlv.MakePrimitiveRecord(typeState, &f.state),
		tlv.MakePrimitiveRecord(typeWatermarkFile, &f.watermarkFile),
		tlv.MakePrimitiveRecord(typeMaxBlockTime, &f.maxBlockTime),
		tlv.MakePrimitiveRecord(typeTipHash, &f.tipHash),
		tlv.MakePrimitiveRecord(typeWindowStart, &f.windowStart),
		tlv.MakePrimitiveRecord(typeWindowEnd, &f.windowEnd),
		tlv.MakePrimitiveRecord(typeFirstBlockFile, &f.firstBlockFile),
	)
}

func unixOrZero(t time.Time) uint64 {
	if t.IsZero() || t.Unix() < 0 {
		return 0
	}
	return uint64(t.Unix())
}

func timeOrZero(v uint64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}

// MarshalBinary encodes the header into a HeaderSize region.
func (h Header) MarshalBinary() ([]byte, error) {
	f := headerFields{
		version:        h.Version,
		network:        uint32(h.Network),
		dbLength:       h.DBLength,
		entryWidth:     h.EntryWidth,
		maxLoad:        loadToPermille(h.MaxLoad),
		created:        unixOrZero(h.Created),
		count:          h.Count,
		state:          uint8(h.State),
		watermarkFile:  h.Watermark.FileIndex,
		maxBlockTime:   unixOrZero(h.Watermark.MaxBlockTime),
		tipHash:        h.Watermark.TipHash,
		windowStart:    unixOrZero(h.Window.Start),
		windowEnd:      unixOrZero(h.Window.End),
		firstBlockFile: h.FirstBlockFile,
	}
	stream, err := f.stream()
	if err != nil {
		return nil, fmt.Errorf("build header stream: %w", err)
	}
	var body bytes.Buffer
	if err := stream.Encode(&body); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	if len(fileMagic)+lengthSize+body.Len()+checksumSize > HeaderSize {
		return nil, fmt.Errorf("encoded header of %d bytes does not fit", body.Len())
	}

	out := make([]byte, HeaderSize)
	n := copy(out, fileMagic[:])
	binary.LittleEndian.PutUint32(out[n:], uint32(body.Len()))
	n += lengthSize
	n += copy(out[n:], body.Bytes())
	binary.LittleEndian.PutUint64(out[n:], xxhash.Sum64(out[:n]))
	return out, nil
}

// UnmarshalBinary decodes a header region written by MarshalBinary.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < len(fileMagic)+lengthSize+checksumSize || !bytes.Equal(data[:len(fileMagic)], fileMagic[:]) {
		return errBadMagic
	}
	n := len(fileMagic)
	length := int(binary.LittleEndian.Uint32(data[n:]))
	n += lengthSize
	if length > len(data)-n-checksumSize {
		return fmt.Errorf("header length %d out of range", length)
	}
	body := data[n : n+length]
	n += length
	if xxhash.Sum64(data[:n]) != binary.LittleEndian.Uint64(data[n:]) {
		return errBadChecksum
	}

	var f headerFields
	stream, err := f.stream()
	if err != nil {
		return fmt.Errorf("build header stream: %w", err)
	}
	parsed, err := stream.DecodeWithParsedTypes(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	for _, typ := range requiredTypes {
		if _, ok := parsed[typ]; !ok {
			return fmt.Errorf("header record %d missing", typ)
		}
	}
	if f.version != formatVersion {
		return fmt.Errorf("unsupported format version %d", f.version)
	}

	*h = Header{
		Version:    f.version,
		Network:    wire.BitcoinNet(f.network),
		DBLength:   f.dbLength,
		EntryWidth: f.entryWidth,
		MaxLoad:    float64(f.maxLoad) / 1000,
		Created:    timeOrZero(f.created),
		Count:      f.count,
		State:      State(f.state),
		Watermark: model.Watermark{
			FileIndex:    f.watermarkFile,
			MaxBlockTime: timeOrZero(f.maxBlockTime),
			TipHash:      f.tipHash,
		},
		Window: model.DateWindow{
			Start: timeOrZero(f.windowStart),
			End:   timeOrZero(f.windowEnd),
		},
		FirstBlockFile: f.firstBlockFile,
	}
	return h.validate()
}

func (h Header) validate() error {
	if h.DBLength < model.MinDBLength || h.DBLength > model.MaxDBLength {
		return fmt.Errorf("dblength %d out of range", h.DBLength)
	}
	if h.EntryWidth < minEntryWidth || h.EntryWidth > maxEntryWidth {
		return fmt.Errorf("entry width %d out of range", h.EntryWidth)
	}
	if h.MaxLoad <= 0 || h.MaxLoad >= 1 {
		return fmt.Errorf("max load %g out of range", h.MaxLoad)
	}
	if h.State != StateClean && h.State != StateDirty {
		return fmt.Errorf("unknown state %d", h.State)
	}
	return nil
}

func loadToPermille(load float64) uint16 {
	return uint16(load*1000 + 0.5)
}
