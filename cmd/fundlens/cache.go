package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/cli"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the identity cache",
		Long:  `Inspect and repair the persistent fund-name-to-ticker mapping.`,
	}

	cmd.AddCommand(cacheListCmd())
	cmd.AddCommand(cacheSetCmd())
	cmd.AddCommand(cacheDeleteCmd())
	cmd.AddCommand(cacheClearCmd())

	return cmd
}

func cacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached resolutions",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openIdentityStore()
			if err != nil {
				return err
			}

			entries := store.All()
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("(identity cache is empty)"))
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("%s  %s\n", cli.TickerStyle.Render(entry.Ticker), entry.Name)
			}
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d cached resolution(s)", len(entries))))
			return nil
		},
	}
}

func cacheSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <fund name> <ticker>",
		Short: "Pin a fund name to a ticker",
		Long:  `Write an explicit name-to-ticker mapping, bypassing catalog lookup.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			normalized := model.Normalize(args[0])
			if normalized == "" {
				return fmt.Errorf("fund name is empty")
			}

			store, err := openIdentityStore()
			if err != nil {
				return err
			}

			if err := store.Put(normalized, args[1]); err != nil {
				return err
			}
			fmt.Printf("%s %s → %s\n", cli.SuccessStyle.Render("Pinned:"), normalized, cli.TickerStyle.Render(args[1]))
			return nil
		},
	}
}

func cacheDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <fund name>",
		Short: "Remove one cached resolution",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := openIdentityStore()
			if err != nil {
				return err
			}

			normalized := model.Normalize(args[0])
			if err := store.Delete(normalized); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", cli.SuccessStyle.Render("Removed:"), normalized)
			return nil
		},
	}
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached resolution",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openIdentityStore()
			if err != nil {
				return err
			}

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Identity cache cleared."))
			return nil
		},
	}
}
