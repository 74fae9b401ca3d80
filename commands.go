package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/extract"
	"github.com/muhammadolammi/atsworker/internal/httpapi"
)

func workerCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume scoring tasks from the queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := cfg.RequireWorker(); err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			wc, err := newWorkerConfig(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer wc.Close()

			log.Info("starting worker pool",
				zap.Int("workers", cfg.Workers),
				zap.String("queue", cfg.Queue),
				zap.Int("threshold", cfg.Threshold))
			return wc.StartConsumerWorkerPool(cmd.Context(), cfg.Workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "number of consumers (overrides WORKERS)")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string
	var scoreOnly bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			if scoreOnly {
				engine, err := ats.NewEngine(cfg.Threshold)
				if err != nil {
					return err
				}
				return httpapi.New(engine, nil, nil, log).Run(cmd.Context(), cfg.HTTPAddr)
			}

			if err := cfg.RequireTasks(); err != nil {
				return err
			}
			wc, err := newWorkerConfig(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer wc.Close()
			return httpapi.New(wc.Engine, wc.Workflow, wc.DB, log).Run(cmd.Context(), cfg.HTTPAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&scoreOnly, "score-only", false, "serve only /health and /score without a database")
	return cmd
}

func scoreCmd() *cobra.Command {
	var resumePath, jobPath, jobText, requirements string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume file against a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			resume, err := readDocument(resumePath)
			if err != nil {
				return fmt.Errorf("reading resume: %w", err)
			}
			job := jobText
			if jobPath != "" {
				if job, err = readDocument(jobPath); err != nil {
					return fmt.Errorf("reading job description: %w", err)
				}
			}

			engine, err := ats.NewEngine(cfg.Threshold)
			if err != nil {
				return err
			}
			res := engine.Score(ats.ScoreInput{
				ResumeText:      resume,
				JobDescription:  job,
				JobRequirements: httpapi.ParseRequirements(requirements),
			})
			log.Debug("scored", zap.Float64("score", res.Score), zap.Bool("auto_submit", res.AutoSubmit))
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&resumePath, "resume", "", "resume file (.pdf, .docx or .txt)")
	cmd.Flags().StringVar(&jobPath, "job", "", "job description file")
	cmd.Flags().StringVar(&jobText, "job-text", "", "job description text")
	cmd.Flags().StringVar(&requirements, "requirements", "", "required skills, comma separated or a JSON array")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print scoring statistics for the last 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := cfg.RequireDB(); err != nil {
				return err
			}

			db, err := database.Connect(cmd.Context(), cfg.DBURL)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.ScoringStats(cmd.Context(), cfg.Threshold)
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
}

// readDocument returns the text of a resume or job file, by extension.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime, err := extract.MimeFromFilename(path)
	if err != nil {
		return "", err
	}
	return extract.Text(mime, data)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
