// Command sync-products pulls the Polar product catalog and writes it as a
// static JSON file for the storefront.
//
// Usage: POLAR_API_KEY=your_key sync-products [-config sync.yaml] [-out path]
package main

import (
	"context"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/saturnines/polar-sync/pkg/auth"
	"github.com/saturnines/polar-sync/pkg/catalog"
	"github.com/saturnines/polar-sync/pkg/config"
	"github.com/saturnines/polar-sync/pkg/errors"
	"github.com/saturnines/polar-sync/pkg/output"
	"github.com/saturnines/polar-sync/pkg/polar"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println(".env file not loaded:", err)
	}

	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	out := log.New(stdout, "", 0)
	warn := log.New(stderr, "", 0)

	flags := flag.NewFlagSet("sync-products", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "optional YAML file with sync settings")
	outPath := flags.String("out", "", "output file (default "+config.DefaultOutputPath+")")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.FromEnv(getenv)
	if err != nil {
		warn.Printf("Error: %s environment variable is required", config.APIKeyEnv)
		warn.Printf("Usage: %s=your_key sync-products [-config sync.yaml] [-out path]", config.APIKeyEnv)
		return 1
	}

	loader := config.NewDefaultLoader()
	if *configPath != "" {
		if err := loader.Load(*configPath, cfg); err != nil {
			warn.Printf("\nFatal: %v", err)
			return 1
		}
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}
	if err := loader.Validate(cfg); err != nil {
		warn.Printf("\nFatal: %v", err)
		return 1
	}

	if err := syncProducts(ctx, cfg, out, warn); err != nil {
		warn.Printf("\nFatal: %v", err)
		return 1
	}
	return 0
}

func syncProducts(ctx context.Context, cfg *config.Config, out, warn *log.Logger) error {
	bearer, err := auth.NewBearerAuth(cfg.APIKey)
	if err != nil {
		return err
	}
	client := polar.NewClient(cfg.BaseURL, bearer, polar.WithTimeout(cfg.Timeout))

	out.Printf("Fetching products from Polar...\n\n")

	syncer := catalog.NewSyncer(client, catalog.Options{
		Category:         cfg.Category,
		PaymentProcessor: cfg.PaymentProcessor,
		Limit:            cfg.ProductLimit,
		Out:              out,
		Warn:             warn,
	})
	records, report, err := syncer.Run(ctx)
	if err != nil {
		return err
	}

	data, err := output.Marshal(records)
	if err != nil {
		return err
	}
	if err := output.WriteFile(cfg.OutputPath, data); err != nil {
		return err
	}
	out.Printf("\nDone: wrote %d product(s) to %s", report.Written, cfg.OutputPath)

	if cfg.Publish == nil {
		return nil
	}
	publisher, err := output.NewS3Publisher(ctx, cfg.Publish.Region, cfg.Publish.Bucket, cfg.Publish.Key)
	if err != nil {
		return err
	}
	location, err := publisher.Publish(ctx, data)
	if err != nil {
		return err
	}
	out.Printf("Published to %s", location)
	return nil
}
