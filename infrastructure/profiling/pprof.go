// Package profiling exposes net/http/pprof on a loopback port when
// ENABLE_PROFILING=true.
package profiling

import (
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
)

const defaultPort = "6060"

// Enabled reports whether profiling was requested.
func Enabled() bool {
	return os.Getenv("ENABLE_PROFILING") == "true"
}

// Addr returns the loopback address the profiler binds to, from PPROF_PORT.
func Addr() string {
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort("localhost", port)
}

// Handler serves the pprof index and profiles under /debug/pprof/.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer starts the profiler in the background when Enabled.
func StartPprofServer(log logger.Logger) {
	if !Enabled() {
		return
	}

	addr := Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("pprof server listening", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server stopped", logger.Error(err))
		}
	}()
}
