// CLAUDE:SUMMARY Entry point for the threadmark auditor — one-shot scans, chi HTTP service, MCP stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/openthreads/threadmark/audit"
	"github.com/openthreads/threadmark/capture"
	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/threadmark"
)

type fileConfig struct {
	Capture capture.Config `yaml:"capture"`
}

func main() {
	var (
		serve      = flag.Bool("serve", false, "run the HTTP API server")
		mcpStdio   = flag.Bool("mcp", false, "run the MCP server on stdio")
		pageURL    = flag.String("url", "", "product page URL to capture and scan")
		htmlFile   = flag.String("file", "", "local HTML file to scan")
		category   = flag.String("category", "general", "product category: textiles, children, cosmetics, electronics or general")
		outDir     = flag.String("out", ".", "directory for exported bundles")
		markdown   = flag.Bool("markdown", false, "also write a markdown rendition of the captured page")
		configPath = flag.String("config", "", "optional YAML config file")
	)
	flag.Parse()

	logLevel := env("LOG_LEVEL", "info")
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	var fileCfg fileConfig
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			slog.Error("read config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			slog.Error("parse config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	fileCfg.Capture.Logger = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := audit.New(audit.Config{Logger: logger})

	switch {
	case *serve:
		runServer(ctx, svc)
	case *mcpStdio:
		runMCP(ctx, svc)
	case *pageURL != "" || *htmlFile != "":
		if err := runScan(ctx, svc, fileCfg.Capture, *pageURL, *htmlFile, *category, *outDir, *markdown); err != nil {
			slog.Error("scan", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: threadmark -url <page> | -file <html> | -serve | -mcp")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func runServer(ctx context.Context, svc *audit.Service) {
	port := env("PORT", "8086")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func runMCP(ctx context.Context, svc *audit.Service) {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "threadmark",
		Version: threadmark.Version,
	}, nil)
	svc.RegisterMCP(srv)

	slog.Info("MCP server starting", "transport", "stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("MCP server", "error", err)
		os.Exit(1)
	}
}

func runScan(ctx context.Context, svc *audit.Service, captureCfg capture.Config,
	pageURL, htmlFile, category, outDir string, markdown bool) error {
	cat, known := rules.ParseCategory(category)
	if !known {
		slog.Warn("unknown category, using general", "category", category)
	}

	var html string
	switch {
	case htmlFile != "":
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", htmlFile, err)
		}
		html = string(data)
		if pageURL == "" {
			pageURL = "file://" + htmlFile
		}
	default:
		fetcher := capture.NewFetcher(captureCfg)
		if err := fetcher.Start(ctx); err != nil {
			return err
		}
		defer fetcher.Close()
		fetched, err := fetcher.FetchHTML(ctx, pageURL)
		if err != nil {
			return err
		}
		html = fetched
	}

	scan, err := svc.ScanHTML(strings.NewReader(html), pageURL, cat)
	if err != nil {
		return err
	}

	bundle, data, err := svc.Export(scan, "")
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, threadmark.Filename(bundle))
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	slog.Info("bundle written", "path", outPath,
		"score", scan.RiskBreakdown.Score, "max_score", scan.RiskBreakdown.MaxScore,
		"claims", len(scan.Claims))

	if markdown {
		md := capture.NewRenderer().Render(html, pageURL, "")
		mdPath := strings.TrimSuffix(outPath, ".json") + ".md"
		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		slog.Info("markdown rendition written", "path", mdPath)
	}
	return nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
