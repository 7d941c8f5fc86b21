package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/bitcoin"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
)

// platform holds what the default data directory depends on.
type platform struct {
	goos   string
	getenv func(string) string
	home   func() (string, error)
}

func hostPlatform() platform {
	return platform{goos: runtime.GOOS, getenv: os.Getenv, home: os.UserHomeDir}
}

// dataDir returns Bitcoin Core's default data directory.
func (p platform) dataDir() (string, error) {
	switch p.goos {
	case "windows":
		appData := p.getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("%w: APPDATA is not set, pass --datadir", model.ErrEnvironment)
		}
		return filepath.Join(appData, "Bitcoin"), nil
	case "linux", "darwin":
		home, err := p.home()
		if err != nil {
			return "", fmt.Errorf("%w: %w, pass --datadir", model.ErrEnvironment, err)
		}
		if p.goos == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "Bitcoin"), nil
		}
		return filepath.Join(home, ".bitcoin"), nil
	default:
		return "", fmt.Errorf("%w: no default data directory on %s, pass --datadir", model.ErrEnvironment, p.goos)
	}
}

// blocksDir resolves the directory holding blkNNNNN.dat files for network.
func (p platform) blocksDir(dataDir string, network model.Network) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = p.dataDir(); err != nil {
			return "", err
		}
	}
	sub, err := bitcoin.DataSubdir(network)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, sub, "blocks"), nil
}
