package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/config"
	"github.com/rafa/digimon-searcher/internal/dataset"
	"github.com/rafa/digimon-searcher/internal/digiapi"
	"github.com/rafa/digimon-searcher/internal/mirror"
	"github.com/rafa/digimon-searcher/internal/wikimon"
)

// digisync maintains the dataset the server reads: a full rebuild from
// the upstream catalog, a wiki enrichment pass, and a local image
// mirror. All of it runs out of process; the server never writes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	var (
		datasetPath       = cfg.DatasetPath
		syncConcurrency   int
		enrichConcurrency int
	)

	root := &cobra.Command{
		Use:           "digisync",
		Short:         "Dataset tooling for the digimon catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&datasetPath, "dataset", datasetPath, "path to the dataset file")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the dataset from the upstream digi-api catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := digiapi.NewClient(cfg.SyncBaseURL, sugar)
			digimons, err := client.SyncAll(cmd.Context(), syncConcurrency)
			if err != nil {
				return err
			}
			return dataset.Save(datasetPath, digimons)
		},
	}
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", cfg.SyncConcurrency, "in-flight detail fetches")

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich every record with description, attacks and art from the wiki",
		RunE: func(cmd *cobra.Command, args []string) error {
			digimons, err := dataset.Read(datasetPath)
			if err != nil {
				return err
			}
			client := wikimon.NewClient(cfg.WikiBaseURL, sugar)
			client.EnrichAll(cmd.Context(), digimons, enrichConcurrency)
			return dataset.Save(datasetPath, digimons)
		},
	}
	enrichCmd.Flags().IntVar(&enrichConcurrency, "concurrency", cfg.EnrichConcurrency, "in-flight wiki fetches")

	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Mirror record and field images into the public directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			digimons, err := dataset.Read(datasetPath)
			if err != nil {
				return err
			}
			m := mirror.New(cfg.PublicDir, sugar)
			if err := m.Run(cmd.Context(), digimons); err != nil {
				return err
			}
			return dataset.Save(datasetPath, digimons)
		},
	}

	root.AddCommand(syncCmd, enrichCmd, imagesCmd)

	if err := root.Execute(); err != nil {
		sugar.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
