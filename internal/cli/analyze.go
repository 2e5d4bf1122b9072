package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/api"
	"webmarcas/backend/internal/scoring"
	"webmarcas/backend/internal/store"
	"webmarcas/backend/internal/viability"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		brand      string
		area       string
		jsonOutput bool
		noAI       bool
		useDB      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a viability analysis for a brand name",
		RunE: func(cmd *cobra.Command, args []string) error {
			brand = strings.TrimSpace(brand)
			if brand == "" {
				return errors.New("--brand is required")
			}
			cfg, err := root.load()
			if err != nil {
				return err
			}

			opts := viability.Options{
				Rules:              cfg.Scoring,
				Timeout:            cfg.AI.Timeout,
				NearMatchThreshold: cfg.AI.NearMatchThreshold,
			}
			if !noAI && !cfg.AI.Disabled {
				enricher, err := ai.NewEnricher(cmd.Context(), cfg.AI.OpenAIClientConfig(), cfg.AI.GeminiClientConfig())
				if err != nil {
					return fmt.Errorf("ai enricher: %w", err)
				}
				opts.Enricher = enricher
			}
			if useDB {
				db, err := store.Open(cfg.Database.Path, cfg.Database.Silent)
				if err != nil {
					return err
				}
				defer db.Close()
				rows, err := db.ListFamousMarks()
				if err != nil {
					return err
				}
				extra := make([]scoring.FamousMark, 0, len(rows))
				for _, row := range rows {
					extra = append(extra, scoring.FamousMark{Mark: row.Mark, Sector: row.Sector})
				}
				opts.Famous = scoring.NewFamousIndex(extra)
			}

			verdict := viability.NewAnalyzer(opts).Analyze(cmd.Context(), viability.BrandQuery{
				BrandName:    brand,
				BusinessArea: area,
			})

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(api.ViabilityFromVerdict(verdict, ""))
			}
			fmt.Fprintf(out, "%s\n%s\n\n%s\n", verdict.Title(), verdict.Description(), verdict.Narrative)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "brand name to analyze")
	cmd.Flags().StringVar(&area, "area", "", "business area of the brand")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the verdict as JSON")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip AI enrichment")
	cmd.Flags().BoolVar(&useDB, "with-custom-marks", false, "include famous marks stored in the database")
	return cmd
}
