package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/cli"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/history"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/resolver"
)

func resolveCmd() *cobra.Command {
	var withHistory bool

	cmd := &cobra.Command{
		Use:   "resolve <fund name>",
		Short: "Resolve a fund name to its ticker",
		Long: `Resolve a free-text mutual fund name to a canonical ticker. Previously
resolved names come straight from the identity cache; new names are looked
up across the catalogs with fuzzy matching, and you pick the winner when
several funds remain plausible.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.Join(args, " ")

			engine, cleanup, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ticker, err := runResolution(ctx, engine, name)
			if err != nil {
				return err
			}
			if ticker == "" {
				return nil
			}

			if withHistory {
				printHistory(ctx, ticker)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&withHistory, "history", false, "fetch NAV history and returns for the resolved fund")

	return cmd
}

// runResolution resolves one name, walking the user through disambiguation
// when needed. Returns the final ticker, or "" when nothing matched.
func runResolution(ctx context.Context, engine *resolver.Engine, name string) (string, error) {
	resolution, err := engine.Resolve(ctx, name)
	if errors.Is(err, common.ErrInvalidQuery) {
		return "", common.NewUserError("enter a fund name to resolve", err)
	}
	if err != nil {
		return "", err
	}

	if resolution.Degraded {
		fmt.Println(cli.WarningStyle.Render("⚠ Some catalogs were unreachable; results may be incomplete."))
	}

	switch resolution.State {
	case model.StateResolved:
		fmt.Printf("%s %s\n",
			cli.SuccessStyle.Render("Resolved:"),
			cli.TickerStyle.Render(resolution.Ticker))
		return resolution.Ticker, nil

	case model.StateAmbiguous:
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)
		choice, err := prompter.SelectCandidate(ctx, name, resolution.Candidates)
		if errors.Is(err, cli.ErrInputCancelled) {
			fmt.Println(cli.SubtleStyle.Render("Selection canceled; nothing cached."))
			return "", nil
		}
		if err != nil {
			return "", err
		}

		if err := engine.Commit(ctx, name, choice.Ticker); err != nil {
			return "", err
		}
		fmt.Printf("%s %s %s\n",
			cli.SuccessStyle.Render("Resolved:"),
			cli.TickerStyle.Render(choice.Ticker),
			cli.SubtleStyle.Render(choice.DisplayName))
		return choice.Ticker, nil

	default:
		fmt.Println(cli.WarningStyle.Render("No match found. Try refining the fund name."))
		return "", nil
	}
}

func printHistory(ctx context.Context, ticker string) {
	client := history.NewClient("", catalogTimeout())
	series, err := client.Fetch(ctx, ticker)
	if err != nil {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("NAV history unavailable: %v", err)))
		return
	}

	latest := series.Latest()
	fmt.Printf("%s %s\n", cli.TitleStyle.Render("Fund:"), series.SchemeName)
	fmt.Printf("Latest NAV: %.4f (%s)\n", latest.NAV, latest.Date.Format("2006-01-02"))

	returns := history.ComputeReturns(series)
	printReturn("1Y", returns.OneYear)
	printReturn("3Y", returns.ThreeYear)
	printReturn("5Y", returns.FiveYear)
}

func printReturn(label string, value *float64) {
	if value == nil {
		fmt.Printf("%s: %s\n", label, cli.SubtleStyle.Render("n/a"))
		return
	}
	fmt.Printf("%s: %.2f%%\n", label, *value)
}
