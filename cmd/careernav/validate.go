package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Surya0265/CareerNav/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate <result.json>...",
		Short: "Validate extraction output against the result schema",
		Long: "Validate JSON written by 'careernav extract' (a single result or an array of results) against the embedded JSON Schema.\n" +
			"With --print-schema, write the schema itself instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if printSchema {
				_, err := fmt.Fprint(out, schemas.ExtractionResultSchema())
				return err
			}
			if len(args) == 0 {
				return errors.New("requires at least 1 result file")
			}

			failed := 0
			for _, path := range args {
				if err := schemas.ValidateResultFile(path); err != nil {
					failed++
					_, _ = fmt.Fprintf(out, "Validation failed: %s\n%v\n", path, err)
					continue
				}
				_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printSchema, "print-schema", false, "print the result JSON Schema and exit")
	return cmd
}
