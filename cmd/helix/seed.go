package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain/catalog"
	"github.com/kailas-cloud/helix/internal/repository/static"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the seed file into the Valkey/Redis record store",
	Long: `Reads the seed file and replaces every listing in the configured
Valkey or Redis store with its contents. Listings absent from the file
are cleared.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (default: store.seed_path)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Store.IsRemote() {
		return errors.New("seed requires store.driver valkey or redis")
	}

	path := seedFile
	if path == "" {
		path = cfg.Store.SeedPath
	}

	cat := catalog.Default()
	listings, err := static.ReadSeed(path, cat)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", path, err)
	}

	ctx := cmd.Context()
	b, err := openBackend(ctx, cfg.Store, cat, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	svc := listinguc.New(b.records, cat)
	for _, kind := range cat.Kinds() {
		if err := svc.Import(ctx, kind, listings[kind]); err != nil {
			return fmt.Errorf("import %s: %w", kind, err)
		}
	}
	logger.Info("Seed imported", zap.String("path", path))

	tbl := newTable("Listings", "kind", "records", "updated")
	for _, kind := range cat.Kinds() {
		st, err := b.records.Stats(ctx, kind)
		if err != nil {
			return fmt.Errorf("stats %s: %w", kind, err)
		}
		updated := "-"
		if !st.UpdatedAt.IsZero() {
			updated = st.UpdatedAt.Local().Format(time.DateTime)
		}
		tbl.addRow(kind, strconv.Itoa(st.Count), updated)
	}
	fmt.Fprint(cmd.OutOrStdout(), tbl.render())
	return nil
}
