package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the accepted format of date window bounds.
const DateLayout = "2006-01-02"

const (
	DefaultDBLength          uint8   = 30
	MinDBLength              uint8   = 8
	MaxDBLength              uint8   = 40
	DefaultFalsePositiveRate float64 = 1e-12
	DefaultMaxLoad           float64 = 0.75
	DefaultStartDate                 = "2009-01-01"
	DefaultEndDate                   = "3000-12-31"
	DefaultAddressFlushRate          = 50
)

// Mode selects how an existing database file is treated.
type Mode int

const (
	// ModeCreate refuses to touch an existing file.
	ModeCreate Mode = iota
	// ModeOverwrite replaces any existing file.
	ModeOverwrite
	// ModeUpdate resumes an existing file from its watermark.
	ModeUpdate
	// ModeReadOnly opens an existing file for lookups only. Builds never use it.
	ModeReadOnly
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeOverwrite:
		return "overwrite"
	case ModeUpdate:
		return "update"
	case ModeReadOnly:
		return "read-only"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DateWindow is an inclusive range of UTC calendar days.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// ParseDateWindow parses YYYY-MM-DD bounds into a window.
func ParseDateWindow(start, end string) (DateWindow, error) {
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateWindow{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateWindow{}, fmt.Errorf("parse end date %q: %w", end, err)
	}
	if e.Before(s) {
		return DateWindow{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateWindow{Start: s, End: e}, nil
}

// Contains reports whether a block timestamp falls on a day inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End.AddDate(0, 0, 1))
}

// Equal reports whether both windows cover the same days.
func (w DateWindow) Equal(o DateWindow) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

func (w DateWindow) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// BuildConfig is the resolved, validated configuration of one build run.
type BuildConfig struct {
	DBPath string
	// DataDir must exist. BlocksDir below it may be missing, which means no block files yet.
	DataDir           string
	BlocksDir         string
	Network           Network
	Mode              Mode
	DBLength          uint8
	FalsePositiveRate float64
	MaxLoad           float64
	FirstBlockFile    uint32
	Window            DateWindow
	// AllowIncompatible downgrades a network magic mismatch to a warning.
	AllowIncompatible bool
	// AddressTextPath receives every recognized address as text; empty disables it.
	AddressTextPath string
	// AddressFlushRate caps text file flushes per second; 0 means unlimited.
	AddressFlushRate int
	Workers          int
}

// Validate checks option ranges before the pipeline starts.
func (c BuildConfig) Validate() error {
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if c.BlocksDir == "" {
		return errors.New("blocks directory is required")
	}
	if c.Network == "" {
		return errors.New("network is required")
	}
	if c.Mode < ModeCreate || c.Mode > ModeUpdate {
		return fmt.Errorf("unknown mode %d", int(c.Mode))
	}
	if c.DBLength < MinDBLength || c.DBLength > MaxDBLength {
		return fmt.Errorf("dblength %d out of range [%d, %d]", c.DBLength, MinDBLength, MaxDBLength)
	}
	if c.FalsePositiveRate <= 0 || c.FalsePositiveRate >= 1 {
		return fmt.Errorf("false positive rate %g must be in (0, 1)", c.FalsePositiveRate)
	}
	if c.MaxLoad <= 0 || c.MaxLoad >= 1 {
		return fmt.Errorf("max load %g must be in (0, 1)", c.MaxLoad)
	}
	if c.Window.End.Before(c.Window.Start) {
		return fmt.Errorf("date window %s is empty", c.Window)
	}
	if c.AddressFlushRate < 0 {
		return fmt.Errorf("address flush rate must not be negative, got %d", c.AddressFlushRate)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
