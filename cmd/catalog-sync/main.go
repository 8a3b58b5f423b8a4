package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wolfman30/maldives-travel-platform/cmd/mainconfig"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

type syncOptions struct {
	file   string
	dryRun bool
}

// deps resolves the pieces a sync run needs. Tests swap them out.
type deps struct {
	cfg      *appconfig.Config
	logger   *logging.Logger
	s3Source func(ctx context.Context) (catalog.Source, error)
	store    func(ctx context.Context) (catalog.Upserter, func(), error)
}

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := deps{
		cfg:    cfg,
		logger: logger,
		s3Source: func(ctx context.Context) (catalog.Source, error) {
			awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("load aws config: %w", err)
			}
			return catalog.S3Source{
				Client: mainconfig.NewS3Client(awsCfg, cfg),
				Bucket: cfg.CatalogBucket,
				Key:    cfg.CatalogKey,
			}, nil
		},
		store: func(ctx context.Context) (catalog.Upserter, func(), error) {
			if cfg.DatabaseURL == "" {
				return nil, nil, errors.New("DATABASE_URL is required unless --dry-run is set")
			}
			db, err := sql.Open("pgx", cfg.DatabaseURL)
			if err != nil {
				return nil, nil, fmt.Errorf("open db: %w", err)
			}
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("ping db: %w", err)
			}
			return catalog.NewStore(db), func() { _ = db.Close() }, nil
		},
	}

	if err := newRootCmd(d).ExecuteContext(ctx); err != nil {
		logger.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(d deps) *cobra.Command {
	var opts syncOptions
	cmd := &cobra.Command{
		Use:           "catalog-sync",
		Short:         "Load the resort catalog into Postgres",
		Long:          "Reads a JSON array of resorts from --file or from CATALOG_BUCKET/CATALOG_KEY in S3 and upserts it into the resorts table.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), opts, d, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "read resorts from a local JSON file instead of S3")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the document without writing")
	return cmd
}

func runSync(ctx context.Context, opts syncOptions, d deps, out io.Writer) error {
	var src catalog.Source
	if opts.file != "" {
		src = catalog.FileSource{Path: opts.file}
	} else {
		if d.cfg.CatalogBucket == "" || d.cfg.CatalogKey == "" {
			return errors.New("set --file or CATALOG_BUCKET and CATALOG_KEY")
		}
		s3src, err := d.s3Source(ctx)
		if err != nil {
			return err
		}
		src = s3src
	}

	var store catalog.Upserter
	if !opts.dryRun {
		s, closeFn, err := d.store(ctx)
		if err != nil {
			return err
		}
		if closeFn != nil {
			defer closeFn()
		}
		store = s
	}

	report, err := catalog.NewSyncer(store, d.logger).Run(ctx, src, opts.dryRun)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
