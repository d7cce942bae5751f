package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relnote/pkg/cli/config"
	"github.com/m-mizutani/relnote/pkg/domain/model"
	"github.com/m-mizutani/relnote/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var (
		req        model.GenerateRequest
		dryRun     bool
		devopsCfg  config.DevOps
		jiraCfg    config.Jira
		storageCfg config.Storage
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "from",
			Usage:       `Build number to compare with, or "Auto" for the latest successful build`,
			Value:       model.AutoBuildNumber,
			Destination: &req.FromBuildNumber,
			Sources:     cli.EnvVars("RELNOTE_FROM_BUILD_NUMBER"),
		},
		&cli.StringFlag{
			Name:        "current",
			Usage:       "Build number the release note is generated for",
			Required:    true,
			Destination: &req.CurrentBuildNumber,
			Sources:     cli.EnvVars("RELNOTE_CURRENT_BUILD_NUMBER"),
		},
		&cli.StringFlag{
			Name:        "build-type",
			Usage:       "Build type, used as the release note file name prefix",
			Required:    true,
			Destination: &req.BuildType,
			Sources:     cli.EnvVars("RELNOTE_BUILD_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the release note without writing it to storage",
			Destination: &dryRun,
		},
	}
	flags = append(flags, devopsCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a release note once and exit",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			builds, err := devopsCfg.New()
			if err != nil {
				return err
			}
			tracker, err := jiraCfg.New()
			if err != nil {
				return err
			}

			ucOpts := []usecase.Option{usecase.WithKeyPattern(jiraCfg.KeyPattern)}
			if !dryRun {
				store, err := storageCfg.New(ctx)
				if err != nil {
					return err
				}
				defer safeClose(ctx, store)
				ucOpts = append(ucOpts, usecase.WithArtifactStore(store))
			}

			releaseNoteUC, err := usecase.NewReleaseNote(builds, tracker, ucOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create release note use case")
			}

			var result *model.GenerateResult
			if dryRun {
				result, err = releaseNoteUC.Compose(ctx, &req)
			} else {
				result, err = releaseNoteUC.Generate(ctx, &req)
			}
			if err != nil {
				return err
			}

			logger.Info("Release note generated",
				slog.String("id", result.ID),
				slog.String("blob_name", result.BlobName),
				slog.Bool("dry_run", dryRun),
			)

			printResult(os.Stdout, result, dryRun)
			return nil
		},
	}
}

func printResult(w io.Writer, result *model.GenerateResult, dryRun bool) {
	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	if dryRun {
		_, _ = header.Fprintf(w, "%s (dry run, not written)\n", result.BlobName)
	} else {
		_, _ = header.Fprintf(w, "%s\n", result.BlobName)
	}
	_, _ = fmt.Fprintln(w, result.Document())

	if len(result.SkippedKeys) > 0 {
		keys := make([]string, len(result.SkippedKeys))
		for i, key := range result.SkippedKeys {
			keys[i] = string(key)
		}
		_, _ = warn.Fprintf(w, "Skipped unresolved keys: %s\n", strings.Join(keys, ", "))
	}
}
