package main

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/service"
)

const defaultDBFilename = "addresses.db"

type options struct {
	DataDir        string  `long:"datadir" env:"ADDRESSDB_DATADIR" description:"Bitcoin Core data directory (its blocks subdirectory is scanned)"`
	Network        string  `long:"network" env:"ADDRESSDB_NETWORK" description:"mainnet, testnet, signet or regtest" default:"mainnet"`
	Update         bool    `long:"update" env:"ADDRESSDB_UPDATE" description:"resume an existing database from its watermark"`
	Force          bool    `long:"force" env:"ADDRESSDB_FORCE" description:"overwrite an existing database"`
	DBLength       uint8   `long:"dblength" env:"ADDRESSDB_DBLENGTH" description:"capacity exponent, the table holds 2^dblength slots" default:"30"`
	FPRate         float64 `long:"fp-rate" env:"ADDRESSDB_FP_RATE" description:"target false positive rate at full load" default:"1e-12"`
	MaxLoad        float64 `long:"max-load" env:"ADDRESSDB_MAX_LOAD" description:"load factor at which inserts fail" default:"0.75"`
	FirstBlockFile uint32  `long:"first-block-file" env:"ADDRESSDB_FIRST_BLOCK_FILE" description:"index of the first blkNNNNN.dat to scan" default:"0"`
	StartDate      string  `long:"blocks-startdate" env:"ADDRESSDB_BLOCKS_STARTDATE" description:"first block date to include (YYYY-MM-DD)" default:"2009-01-01"`
	EndDate        string  `long:"blocks-enddate" env:"ADDRESSDB_BLOCKS_ENDDATE" description:"last block date to include (YYYY-MM-DD)" default:"3000-12-31"`
	DBYolo         bool    `long:"dbyolo" env:"ADDRESSDB_DBYOLO" description:"accept block files of another chain"`
	AddrsToText    bool    `long:"addrs-to-text" env:"ADDRESSDB_ADDRS_TO_TEXT" description:"also write new addresses to a text file"`
	AddrsFile      string  `long:"addrs-file" env:"ADDRESSDB_ADDRS_FILE" description:"text file for --addrs-to-text" default:"addresses.txt"`
	AddrsFlushRate int     `long:"addrs-flush-rate" env:"ADDRESSDB_ADDRS_FLUSH_RATE" description:"maximum text file flushes per second (0 = unlimited)" default:"50"`
	NoProgress     bool    `long:"no-progress" env:"ADDRESSDB_NO_PROGRESS" description:"disable the progress display"`
	NoPause        bool    `long:"no-pause" env:"ADDRESSDB_NO_PAUSE" description:"do not wait for Enter before exiting"`
	Workers        int     `long:"workers" env:"ADDRESSDB_WORKERS" description:"block file decoders (0 = min(NumCPU, 4))" default:"0"`
	MetricsAddr    string  `long:"metrics-addr" env:"ADDRESSDB_METRICS_ADDR" description:"address serving /metrics and /status, empty to disable"`
	Debug          bool    `long:"debug" env:"ADDRESSDB_DEBUG" description:"development logging"`

	Args struct {
		DBFilename string `positional-arg-name:"dbfilename" description:"address database file (default addresses.db)"`
	} `positional-args:"yes"`
}

func (o options) mode() (model.Mode, error) {
	switch {
	case o.Update && o.Force:
		return 0, errors.New("--update and --force are mutually exclusive")
	case o.Update:
		return model.ModeUpdate, nil
	case o.Force:
		return model.ModeOverwrite, nil
	default:
		return model.ModeCreate, nil
	}
}

// buildConfig turns parsed flags into a validated build configuration.
func (o options) buildConfig(p platform) (model.BuildConfig, error) {
	network := model.Network(o.Network)
	if _, err := bitcoin.ChainParams(network); err != nil {
		return model.BuildConfig{}, err
	}
	mode, err := o.mode()
	if err != nil {
		return model.BuildConfig{}, err
	}
	window, err := model.ParseDateWindow(o.StartDate, o.EndDate)
	if err != nil {
		return model.BuildConfig{}, err
	}
	dataDir := o.DataDir
	if dataDir == "" {
		if dataDir, err = p.dataDir(); err != nil {
			return model.BuildConfig{}, err
		}
	}
	blocksDir, err := p.blocksDir(dataDir, network)
	if err != nil {
		return model.BuildConfig{}, err
	}

	cfg := model.BuildConfig{
		DBPath:            o.Args.DBFilename,
		DataDir:           dataDir,
		BlocksDir:         blocksDir,
		Network:           network,
		Mode:              mode,
		DBLength:          o.DBLength,
		FalsePositiveRate: o.FPRate,
		MaxLoad:           o.MaxLoad,
		FirstBlockFile:    o.FirstBlockFile,
		Window:            window,
		AllowIncompatible: o.DBYolo,
		AddressFlushRate:  o.AddrsFlushRate,
		Workers:           o.Workers,
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBFilename
	}
	if cfg.Workers == 0 {
		cfg.Workers = service.DefaultWorkers()
	}
	if o.AddrsToText {
		cfg.AddressTextPath = o.AddrsFile
	}
	if err := cfg.Validate(); err != nil {
		return model.BuildConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
