// Command check-address-db looks addresses up in a database built by create-address-db.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/store"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitAllFound = 0
	exitMissing  = 1
	exitUsage    = 2
)

type options struct {
	Network   string   `long:"network" env:"ADDRESSDB_NETWORK" description:"mainnet, testnet, signet or regtest" default:"mainnet"`
	Addresses []string `long:"address" description:"address to look up, repeatable; read from stdin when absent"`
	Debug     bool     `long:"debug" env:"ADDRESSDB_DEBUG" description:"development logging"`

	Args struct {
		DBFilename string `positional-arg-name:"dbfilename" description:"address database file (default addresses.db)"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout))
}

func execute(args []string, stdin io.Reader, stdout io.Writer) int {
	opts := options{}
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return exitAllFound
		}
		return exitUsage
	}
	if opts.Args.DBFilename == "" {
		opts.Args.DBFilename = "addresses.db"
	}

	logger, err := newLogger(opts.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	found, err := check(opts, stdin, stdout, logger)
	if err != nil {
		logger.Error("check failed", zap.String("kind", model.ErrorKind(err)), zap.Error(err))
		return exitUsage
	}
	if !found {
		return exitMissing
	}
	return exitAllFound
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	return cfg.Build()
}

// check prints one line per queried address and reports whether every one was found.
func check(opts options, stdin io.Reader, stdout io.Writer, logger *zap.Logger) (bool, error) {
	network := model.Network(opts.Network)
	params, err := bitcoin.ChainParams(network)
	if err != nil {
		return false, err
	}
	codec, err := bitcoin.NewAddressCodec(network)
	if err != nil {
		return false, err
	}

	db, err := store.Open(store.Options{
		Path:    opts.Args.DBFilename,
		Mode:    model.ModeReadOnly,
		Network: params.Net,
	}, logger)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("close address database", zap.Error(closeErr))
		}
	}()

	out := bufio.NewWriter(stdout)
	all := true
	lookup := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		addr, err := codec.Decode(s)
		switch {
		case err != nil:
			all = false
			fmt.Fprintf(out, "%s\tinvalid\n", s)
		case db.Contains(addr):
			fmt.Fprintf(out, "%s\tfound\n", s)
		default:
			all = false
			fmt.Fprintf(out, "%s\tabsent\n", s)
		}
	}

	if len(opts.Addresses) > 0 {
		for _, s := range opts.Addresses {
			lookup(s)
		}
	} else {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			lookup(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return false, &model.IOError{Op: "read", Path: "stdin", Err: err}
		}
	}
	if err := out.Flush(); err != nil {
		return false, &model.IOError{Op: "write", Path: "stdout", Err: err}
	}
	return all, nil
}
