package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Source yields a JSON array of resorts.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the resort document from an S3 object.
type S3Source struct {
	Client S3API
	Bucket string
	Key    string
}

func (s S3Source) Fetch(ctx context.Context) ([]byte, error) {
	if s.Client == nil || s.Bucket == "" || s.Key == "" {
		return nil, fmt.Errorf("catalog: s3 source requires client, bucket and key")
	}
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: s3 get %s: %w", s, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s, err)
	}
	return data, nil
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// FileSource reads the resort document from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", f.Path, err)
	}
	return data, nil
}

func (f FileSource) String() string { return f.Path }

// Upserter writes one resort.
type Upserter interface {
	Upsert(ctx context.Context, r Resort) error
}

// SyncReport summarises one sync run.
type SyncReport struct {
	Source  string   `json:"source"`
	Read    int      `json:"read"`
	Written int      `json:"written"`
	Skipped []string `json:"skipped,omitempty"`
	DryRun  bool     `json:"dryRun"`
}

// Syncer copies a resort document into the catalog store.
type Syncer struct {
	store  Upserter
	logger *logging.Logger
}

func NewSyncer(store Upserter, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Syncer{store: store, logger: logger}
}

// Run fetches and validates the whole document before writing anything, so a
// malformed file never leaves the table half updated. Duplicate slugs after
// the first are skipped. With dryRun nothing is written.
func (s *Syncer) Run(ctx context.Context, src Source, dryRun bool) (SyncReport, error) {
	report := SyncReport{Source: src.String(), DryRun: dryRun}

	data, err := src.Fetch(ctx)
	if err != nil {
		return report, err
	}
	resorts, err := Decode(data)
	if err != nil {
		return report, err
	}
	report.Read = len(resorts)

	seen := make(map[string]struct{}, len(resorts))
	for _, r := range resorts {
		if _, dup := seen[r.Slug]; dup {
			report.Skipped = append(report.Skipped, r.Slug)
			continue
		}
		seen[r.Slug] = struct{}{}
		if dryRun {
			continue
		}
		if err := s.store.Upsert(ctx, r); err != nil {
			return report, err
		}
		report.Written++
	}

	s.logger.Info("resort sync complete",
		"source", report.Source,
		"read", report.Read,
		"written", report.Written,
		"skipped", len(report.Skipped),
		"dry_run", dryRun,
	)
	return report, nil
}
