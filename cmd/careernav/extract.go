package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Surya0265/CareerNav/internal/db"
	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/ingestion"
	"github.com/Surya0265/CareerNav/internal/logger"
	"github.com/Surya0265/CareerNav/internal/observability"
	"github.com/Surya0265/CareerNav/internal/schemas"
)

// stdinName is the file argument that reads plain text from standard input.
const stdinName = "-"

type extractFlags struct {
	out      string
	validate bool
	verbose  bool
	save     bool
}

type extracted struct {
	doc    *ingestion.Document
	result extraction.Result
}

func newExtractCmd(a *app) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract contact details, skills and entries from resumes",
		Long: "Extract structured information from one or more resume files (.txt, .md, .pdf, .docx, .doc, .html). " +
			"Use - to read plain text from standard input. Output is a JSON object for one file and an array for several.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, a, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "validate output against the result schema")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print a human-readable summary to stderr")
	cmd.Flags().BoolVar(&f.save, "save", false, "store results in the configured database")
	cmd.Flags().Int("concurrency", 0, "number of files processed in parallel")
	cmd.Flags().Int("max-entries", 0, "maximum experience and project entries per resume")
	cmd.Flags().String("header-match", "", "section header matching: prefix or substring")
	_ = a.v.BindPFlag("extraction.concurrency", cmd.Flags().Lookup("concurrency"))
	_ = a.v.BindPFlag("extraction.max-entries", cmd.Flags().Lookup("max-entries"))
	_ = a.v.BindPFlag("extraction.header-match", cmd.Flags().Lookup("header-match"))

	return cmd
}

func runExtract(cmd *cobra.Command, a *app, f extractFlags, files []string) error {
	opts, err := a.cfg.ExtractorOptions()
	if err != nil {
		return err
	}
	extractor, err := extraction.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}

	var stdin []byte
	for _, name := range files {
		if name == stdinName {
			if stdin, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			break
		}
	}

	results := make([]extracted, len(files))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Extraction.Concurrency)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := ingest(name, stdin)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res := extractor.ExtractBasicInfo(doc.CleanText, doc.RawText)
			results[i] = extracted{doc: doc, result: res}
			a.log.Debug("extracted resume",
				append(logger.DocumentFields(doc.Name, doc.Metadata.Hash),
					zap.Int("skills", len(res.Skills)),
					zap.Int("experience_entries", len(res.ExperienceEntries)),
					zap.Int("project_entries", len(res.ProjectEntries)))...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data, err := encodeResults(results)
	if err != nil {
		return err
	}

	var validationErr error
	if f.validate {
		validationErr = schemas.ValidateResultJSON(data)
	}

	if f.verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		for _, r := range results {
			p.PrintDocument(r.doc)
			p.PrintExtraction(extractor.Taxonomy(), r.result)
		}
		if f.validate {
			p.PrintValidation(validationErr)
		}
	}
	if validationErr != nil {
		return fmt.Errorf("output failed schema validation: %w", validationErr)
	}

	if f.save {
		if err := saveResults(cmd.Context(), a, extractor.Fingerprint(), results); err != nil {
			return err
		}
	}

	if f.out == "" {
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(f.out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.log.Info("wrote extraction output", zap.String("path", f.out), zap.Int("files", len(results)))
	return nil
}

func ingest(name string, stdin []byte) (*ingestion.Document, error) {
	if name == stdinName {
		return ingestion.IngestFromBytes("stdin.txt", stdin)
	}
	return ingestion.IngestFromFile(name)
}

func encodeResults(results []extracted) ([]byte, error) {
	var v any
	if len(results) == 1 {
		v = results[0].result
	} else {
		list := make([]extraction.Result, len(results))
		for i, r := range results {
			list[i] = r.result
		}
		v = list
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return data, nil
}

func saveResults(ctx context.Context, a *app, settings string, results []extracted) error {
	if a.cfg.Database.URL == "" {
		return fmt.Errorf("--save requires database.url (or DATABASE_URL) to be set")
	}

	connectCtx, cancel := context.WithTimeout(ctx, a.cfg.Database.Timeout)
	defer cancel()
	database, err := db.Connect(connectCtx, a.cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	for _, r := range results {
		rec := db.NewExtractionRecord(r.doc.Name, r.doc.Metadata.Hash, settings, r.result)
		if err := database.SaveExtraction(ctx, rec); err != nil {
			return err
		}
		a.log.Info("saved extraction",
			append(logger.DocumentFields(rec.SourceName, rec.ContentHash), zap.String("id", rec.ID.String()))...)
	}
	return nil
}
