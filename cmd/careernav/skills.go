package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Surya0265/CareerNav/internal/ingestion"
	"github.com/Surya0265/CareerNav/internal/skills"
	"github.com/Surya0265/CareerNav/internal/types"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newSkillsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect the skill taxonomy",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("invalid --format %q: must be %q or %q", format, formatText, formatJSON)
			}
			return cmd.Root().PersistentPreRunE(cmd, args)
		},
	}
	cmd.PersistentFlags().StringVar(&format, "format", formatText, "output format: text or json")

	cmd.AddCommand(
		newSkillsListCmd(a, &format),
		newSkillsNormalizeCmd(a, &format),
		newSkillsFindCmd(a, &format),
	)
	return cmd
}

func newSkillsListCmd(a *app, format *string) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skill categories and their canonical skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tax, err := a.cfg.Taxonomy()
			if err != nil {
				return err
			}

			resp := types.NewTaxonomyResponse(tax)
			if category != "" {
				c, ok := tax.Category(category)
				if !ok {
					return fmt.Errorf("unknown category %q (known: %s)", category,
						strings.Join(tax.CategoryNames(), ", "))
				}
				resp = types.NewCategoryResponse(c)
			}

			out := cmd.OutOrStdout()
			if *format == formatJSON {
				return writeJSON(out, resp)
			}
			for _, c := range resp.Categories {
				_, _ = fmt.Fprintf(out, "%s (%s)\n  %s\n", c.Label, c.Name, strings.Join(c.Skills, ", "))
			}
			_, err = fmt.Fprintf(out, "%d skills\n", resp.TotalSkills)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	return cmd
}

func newSkillsNormalizeCmd(a *app, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <name>...",
		Short: "Map free-form skill names to their canonical names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := a.cfg.Taxonomy()
			if err != nil {
				return err
			}
			normalized := skills.Normalize(tax, args)
			names := make([]string, len(normalized))
			for i, n := range normalized {
				names[i] = n.Name
			}

			out := cmd.OutOrStdout()
			if *format == formatJSON {
				return writeJSON(out, types.NormalizeSkillsResponse{
					Skills:     normalized,
					Categories: skills.Summarize(tax, names),
				})
			}
			for _, n := range normalized {
				category := n.Category
				if !n.Known {
					category = "unknown"
				}
				if _, err := fmt.Fprintf(out, "%s -> %s (%s)\n", strings.TrimSpace(n.Input), n.Name, category); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSkillsFindCmd(a *app, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "find <file>",
		Short: "List the taxonomy skills mentioned in a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := a.cfg.Taxonomy()
			if err != nil {
				return err
			}
			doc, err := ingestion.IngestFromFile(args[0])
			if err != nil {
				return err
			}
			found := skills.NewMatcher(tax).FindSkills(doc.CleanText)
			summary := skills.Summarize(tax, found)

			out := cmd.OutOrStdout()
			if *format == formatJSON {
				return writeJSON(out, summary)
			}
			if len(summary) == 0 {
				_, err := fmt.Fprintln(out, "No skills found")
				return err
			}
			for _, s := range summary {
				_, _ = fmt.Fprintf(out, "%s: %s\n", s.Label, strings.Join(s.Skills, ", "))
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
