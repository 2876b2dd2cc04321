package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booktitles/internal/platform/logger"
	"booktitles/internal/platform/openlibrary"
	"booktitles/internal/subject"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("titles", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		concurrency = fs.Int("concurrency", 4, "maximum subjects fetched at once")
		timeout     = fs.Duration("timeout", 15*time.Second, "per-request timeout")
		baseURL     = fs.String("base-url", envOr("OPENLIBRARY_BASE_URL", openlibrary.DefaultBaseURL), "Open Library base URL")
		rps         = fs.Int("rps", 5, "outbound requests per second (0 = unlimited)")
		verbose     = fs.Bool("v", false, "log fetch diagnostics")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: titles [flags] subject...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := logger.ErrorLevel
	if *verbose {
		level = logger.DebugLevel
	}
	diag := logger.NewWriterLogger(stderr, level)

	client := openlibrary.NewClient("booktitles-cli/1.0", *rps, *timeout, openlibrary.WithBaseURL(*baseURL))
	svc := subject.NewService(subject.NewFetcher(client, diag), nil, diag, subject.Config{Concurrency: *concurrency})

	keys := make([]subject.Key, fs.NArg())
	for i, arg := range fs.Args() {
		keys[i] = subject.Key(arg)
	}

	for _, lookup := range svc.LookupMany(ctx, keys) {
		if lookup.Degraded {
			fmt.Fprintf(stderr, "%s: degraded, no titles available\n", lookup.Subject)
		}
		for _, title := range lookup.Titles {
			fmt.Fprintf(stdout, "%s\t%s\n", lookup.Subject, title)
		}
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
