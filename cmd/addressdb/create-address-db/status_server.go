package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/addressdb/internal/addressdb/model"
	"github.com/goodnatureofminers/addressdb/internal/addressdb/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// buildStatus tracks scan progress for /status while forwarding every update to the
// terminal reporter.
type buildStatus struct {
	next     service.ProgressReporter
	network  model.Network
	dbPath   string
	started  time.Time
	total    atomic.Int64
	done     atomic.Int64
	file     atomic.Value
	finished atomic.Bool
}

func newBuildStatus(cfg model.BuildConfig, next service.ProgressReporter) *buildStatus {
	s := &buildStatus{next: next, network: cfg.Network, dbPath: cfg.DBPath, started: time.Now()}
	s.file.Store("")
	return s
}

func (s *buildStatus) Start(total int) {
	s.total.Store(int64(total))
	s.next.Start(total)
}

func (s *buildStatus) Update(current int, file string) {
	s.done.Store(int64(current))
	s.file.Store(file)
	s.next.Update(current, file)
}

func (s *buildStatus) Finish() {
	s.finished.Store(true)
	s.next.Finish()
}

type statusReport struct {
	Network     model.Network `json:"network"`
	Database    string        `json:"database"`
	FilesTotal  int64         `json:"files_total"`
	FilesDone   int64         `json:"files_done"`
	LastFile    string        `json:"last_file,omitempty"`
	Finished    bool          `json:"finished"`
	ElapsedSecs float64       `json:"elapsed_seconds"`
}

func (s *buildStatus) report() statusReport {
	return statusReport{
		Network:     s.network,
		Database:    s.dbPath,
		FilesTotal:  s.total.Load(),
		FilesDone:   s.done.Load(),
		LastFile:    s.file.Load().(string),
		Finished:    s.finished.Load(),
		ElapsedSecs: time.Since(s.started).Seconds(),
	}
}

func (s *buildStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.report())
}

func newStatusHandler(status *buildStatus) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/status", status)
	return mux
}

// startStatusServer serves handler on addr until the returned stop function is called.
func startStatusServer(addr string, handler http.Handler, logger *zap.Logger) (stop func()) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("serving build status", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("status server shutdown", zap.Error(err))
		}
		<-done
	}
}
