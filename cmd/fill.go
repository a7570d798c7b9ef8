package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/pipeline"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/report"
)

// dirSink writes artifacts to <root>/<placeholder>/<name>.
type dirSink string

func (d dirSink) PutArtifact(_ context.Context, placeholder domain.Placeholder, name string, data []byte) error {
	dir := filepath.Join(string(d), string(placeholder))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err //nolint: wrapcheck
	}

	return os.WriteFile(filepath.Join(dir, filepath.Base(name)), data, 0o600) //nolint: wrapcheck
}

// localInputs maps every required source to its file in dir and lists the
// missing ones.
func localInputs(dir string) (map[domain.SourceKind]string, []string) {
	inputs := make(map[domain.SourceKind]string, len(domain.RequiredSources))
	var missing []string
	for _, k := range domain.RequiredSources {
		p := filepath.Join(dir, k.FileName())
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, k.FileName())

			continue
		}
		inputs[k] = p
	}

	return inputs, missing
}

func fillCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <pdf dir>",
		Short: "Fills the template from a folder of tender PDFs and prints a report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			output, _ := cmd.Flags().GetString("output")
			artifacts, _ := cmd.Flags().GetString("artifacts")

			inputs, missing := localInputs(args[0])
			if len(missing) > 0 {
				logger.Fatal(ctx, "Missing required PDF files: ["+strings.Join(missing, ", ")+"]")
			}
			if output == "" {
				output = domain.OutputFileName(domain.MainTemplate)
			}

			runner, closeLLM := getPipeline(ctx, cfg)
			defer closeLLM()

			job := pipeline.Job{Template: domain.MainTemplate, Inputs: inputs}
			if artifacts != "" {
				job.Artifacts = dirSink(artifacts)
			}

			f := domain.Fill{
				ID:        domain.FillID(uuid.New()),
				UserID:    domain.AnonymousUser,
				Template:  domain.MainTemplate,
				Status:    domain.FillStatusCompleted,
				Attempts:  1,
				CreatedAt: time.Now(),
			}

			out, err := runner.Run(ctx, job)
			if err != nil {
				f.Status = domain.FillStatusFailed
				f.LastError = err.Error()
				var runErr *pipeline.RunError
				if errors.As(err, &runErr) {
					f.Result = runErr.Result
				}
			} else {
				f.Result = out.Result
				f.Result.OutputName = filepath.Base(output)
				if err := os.WriteFile(output, out.Document, 0o600); err != nil {
					logger.Fatal(ctx, "could not write output", zap.Error(err))
				}
				logger.Info(ctx, "document written", zap.String("path", output))
			}
			f.UpdatedAt = time.Now()

			if err := report.Write(cmd.OutOrStdout(), f); err != nil {
				logger.Error(ctx, "could not write report", zap.Error(err))
			}
			if f.Status == domain.FillStatusFailed {
				logger.Fatal(ctx, "fill failed", zap.String("error", f.LastError))
			}
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output document path (default <template>_output.docx)")
	cmd.Flags().String("artifacts", "", "Directory receiving the intermediate files of every step")

	return cmd
}
