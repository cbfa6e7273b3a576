package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/siteheader/internal/config"
	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/internal/publish"
)

func publishCmd(load loader) *cobra.Command {
	var (
		bucket       string
		prefix       string
		cacheControl string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload pre-rendered fragments to S3",
		Long: `Render the header for every configured path, locale and layout and
upload each fragment to S3 as <prefix>/<locale>/<layout>/<slug>.html.

Credentials and region come from the standard AWS environment and
shared config files; publish.region in siteheader.yaml takes precedence.

Examples:
  siteheader publish --bucket=acme-fragments
  siteheader publish --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if dryRun {
				return runDryRun(cfg, cacheControl)
			}
			if cfg.Publish.Bucket == "" {
				return errors.New("E170").WithField("--bucket").
					WithSuggestion("Pass --bucket, set publish.bucket or SITEHEADER_PUBLISH_BUCKET")
			}

			client, err := newS3Client(ctx, cfg.Publish.Region)
			if err != nil {
				return errors.New("E160").WithDetail("Could not load AWS configuration").Wrap(err)
			}

			p := publish.New(client, publishOptions(cfg, cacheControl))
			done, err := p.Publish(ctx, cfg.Props())
			for _, f := range done {
				info("%s", f.Key)
			}
			if err != nil {
				return err
			}
			success("Published %d fragments to s3://%s", len(done), cfg.Publish.Bucket)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&cacheControl, "cache-control", "max-age=300", "Cache-Control set on each object")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render and list keys without uploading")

	return cmd
}

func publishOptions(cfg *config.Config, cacheControl string) publish.Options {
	return publish.Options{
		Bucket:       cfg.Publish.Bucket,
		Prefix:       cfg.Publish.Prefix,
		Paths:        cfg.Publish.Paths,
		Locales:      cfg.PublishLocales(),
		Settings:     cfg.Settings(),
		CacheControl: cacheControl,
		Logger:       newLogger(cfg),
	}
}

func runDryRun(cfg *config.Config, cacheControl string) error {
	fragments, err := publish.New(nil, publishOptions(cfg, cacheControl)).Render(cfg.Props())
	if err != nil {
		return err
	}
	for _, f := range fragments {
		info("%s (%d bytes)", f.Key, len(f.HTML))
	}
	fmt.Println()
	success("Rendered %d fragments (dry run)", len(fragments))
	return nil
}

func newS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}
