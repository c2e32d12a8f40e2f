// Outlook MCP server exposes the desktop mail, calendar and task store
// through Model Context Protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
	"github.com/olbridge/outlook-mcp/internal/store/outlook"
	"github.com/olbridge/outlook-mcp/internal/tool"
)

const (
	warmupAttempts = 5
	warmupDelay    = 500 * time.Millisecond
)

func main() {
	httpAddr := flag.String("http-addr", "localhost:0", "HTTP server listen addr")
	envFileParam := flag.String("env-file", "", "Path to env file")
	enableStdio := flag.Bool("stdio", false, "Enable stdio transport for MCP (disables stdout logging)")
	logFile := flag.String("log-file", "", "Path to log file (only used with stdio transport, otherwise logs to stdout)")

	flag.Parse()

	log, persistLogs := setupLogger(enableStdio, logFile)
	defer persistLogs()

	if *envFileParam != "" {
		if err := godotenv.Load(*envFileParam); err != nil {
			panic(fmt.Errorf("godotenv.Load failed: %w", err))
		}
	}

	ln := mustListen(httpAddr)

	conn := outlook.NewConnector(log)
	// The automation objects are apartment threaded: one pinned worker owns
	// the connection for its whole lifetime.
	pool := store.NewPool(1, outlook.NewApartment())
	defer pool.Close()
	defer func() {
		_ = pool.Do(context.Background(), func() error { conn.Close(); return nil })
	}()

	svc := bridge.NewPinned(bridge.New(conn, log), pool)
	warmup(log, svc)

	outlookT := tool.NewServer(svc)
	mcpHTTP := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return outlookT }, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHTTP)

	srv := &http.Server{
		Handler: mux,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	stopHTTP, errHTTPCh := serveHTTP(log, srv, ln)
	defer stopHTTP()

	var errStdioCh <-chan error
	if *enableStdio {
		var stopStdio func()
		stopStdio, errStdioCh = serveStdio(log, outlookT)
		defer stopStdio()
	}

	select {
	case err := <-errHTTPCh:
		log.Error().Err(err).Msg("http server failed")
	case err := <-errStdioCh:
		log.Error().Err(err).Msg("stdio transport failed")
	case <-shutdown:
		log.Info().Msg("shutdown signal received")
	}
}

// warmup probes the store a few times so a slow-starting desktop client
// does not fail the first tool call. Startup proceeds either way.
func warmup(log zerolog.Logger, svc *bridge.Pinned) {
	for attempt := 1; attempt <= warmupAttempts; attempt++ {
		err := svc.Warmup(context.Background())
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("store connection ready")
			return
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("store warmup failed")
		time.Sleep(warmupDelay)
	}
	log.Error().Msg("store unavailable after warmup, serving anyway")
}

func serveStdio(log zerolog.Logger, srv *mcp.Server) (func(), <-chan error) {
	errStdioCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(errStdioCh)
		log.Info().Msg("starting stdio transport")

		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			errStdioCh <- fmt.Errorf("srv.Run failed: %w", err)
		}
	}()

	return func() {
		cancel()

		<-errStdioCh
		log.Info().Msg("stdio transport stopped")
	}, errStdioCh
}

func serveHTTP(log zerolog.Logger, srv *http.Server, ln net.Listener) (func(), <-chan error) {
	errHTTPCh := make(chan error, 1)
	go func() {
		defer close(errHTTPCh)

		log.Info().Str("addr", ln.Addr().String()).Msg("starting http server")

		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errHTTPCh <- fmt.Errorf("srv.Serve failed: %w", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("srv.Shutdown failed")
		}

		<-errHTTPCh
		log.Info().Msg("http server stopped")
	}, errHTTPCh
}

func mustListen(httpAddr *string) net.Listener {
	ln, err := net.Listen("tcp", *httpAddr)
	if err != nil {
		panic(fmt.Errorf("net.Listen failed: %w", err))
	}
	return ln
}

func setupLogger(enableStdio *bool, logFile *string) (zerolog.Logger, func()) {
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}
		log := zerolog.New(f).With().Timestamp().Logger()
		return log, func() { _ = f.Close() }
	}

	if *enableStdio {
		return zerolog.New(io.Discard), func() {}
	}

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Logger(), func() {}
}
