package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nicolelu/esign/internal/config"
	"github.com/nicolelu/esign/internal/mcp"
	"github.com/nicolelu/esign/internal/pdf"
)

// Populated via -ldflags at build time
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// setupLogging configures logging for the chosen transport. Stdio carries
// the MCP protocol itself, so log output must never reach stdout there.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
		return
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func main() {
	// -version short-circuits before flag parsing so it works even with
	// an otherwise invalid command line
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}
	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if err := run(cfg); err != nil {
		// In stdio mode stderr chatter can confuse the MCP client, so
		// stay quiet unless debugging was asked for
		if cfg.IsServerMode() || os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// run builds the detection service stack and blocks until the server stops
func run(cfg *config.Config) error {
	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory)
	if err != nil {
		return fmt.Errorf("failed to create PDF service: %w", err)
	}

	server, err := mcp.NewServer(cfg, pdfService)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		return serveUntilSignal(ctx, cancel, server)
	}

	// stdio: the parent process owns our lifecycle; serve until stdin closes
	return server.Run(ctx)
}

// serveUntilSignal runs the server and shuts it down on SIGINT/SIGTERM/SIGHUP
func serveUntilSignal(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) error {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signalCh)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s, shutting down", sig)
		cancel()
		if err := <-serverErrCh; err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	case err := <-serverErrCh:
		if err != nil {
			return err
		}
	}

	log.Println("Server stopped")
	return nil
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Signable Field Detection Server\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
