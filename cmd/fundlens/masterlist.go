package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/catalog"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/cli"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

const saveBatchSize = 500

func masterlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "masterlist",
		Short: "Manage the registry master list",
		Long: `Build and inspect the local snapshot of the national fund registry,
the highest-priority catalog during resolution.`,
	}

	cmd.AddCommand(masterlistBuildCmd())
	cmd.AddCommand(masterlistStatusCmd())

	return cmd
}

func masterlistBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Download the registry feed and rebuild the master list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openSchemeStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			registry := catalog.NewRegistryClient("", catalogTimeout()*6)

			var schemes []model.Scheme
			err = common.WithRetry(ctx, func() error {
				var fetchErr error
				schemes, fetchErr = registry.FetchAll(ctx)
				return fetchErr
			}, common.RetryOptions{MaxAttempts: 3, InitialDelay: 2 * time.Second})
			if err != nil {
				return common.NewUserError("failed to download the registry feed", err)
			}

			bar := progressbar.NewOptions(len(schemes),
				progressbar.OptionSetDescription("Saving schemes"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			for start := 0; start < len(schemes); start += saveBatchSize {
				end := start + saveBatchSize
				if end > len(schemes) {
					end = len(schemes)
				}
				if err := store.SaveSchemes(ctx, schemes[start:end]); err != nil {
					return err
				}
				_ = bar.Add(end - start)
			}

			if err := store.RecordBuild(ctx, len(schemes)); err != nil {
				return err
			}

			fmt.Printf("%s %d schemes\n", cli.SuccessStyle.Render("Master list built:"), len(schemes))
			return nil
		},
	}
}

func masterlistStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show master-list size and last build time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openSchemeStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			info, err := store.LastBuild(ctx)
			if errors.Is(err, common.ErrMasterListEmpty) {
				fmt.Println(cli.WarningStyle.Render("Master list has never been built. Run: fundlens masterlist build"))
				return nil
			}
			if err != nil {
				return err
			}

			count, err := store.CountSchemes(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Schemes: %d\n", count)
			fmt.Printf("Last build: %s (%d schemes)\n", info.BuiltAt.Format(time.RFC1123), info.SchemeCount)
			return nil
		},
	}
}
