package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"bounty/internal/api"
	"bounty/internal/types"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func printBalance(cmd *cobra.Command, res *types.BalanceResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s, frozen: %s\n", res.CoinBalance, res.FrozenBalance)
}

func newRechargeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "recharge <amount>",
		Short: "Top up the wallet (1, 2, 5 or 10)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			res, err := rt.svc.Recharge(cmd.Context(), amount)
			if err != nil {
				return fmt.Errorf("recharge: %w", err)
			}
			printBalance(cmd, res)
			return nil
		},
	}
}

func newWithdrawCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Request a withdrawal, the amount is frozen until settled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			res, err := rt.svc.Withdraw(cmd.Context(), amount)
			if err != nil {
				return fmt.Errorf("withdraw: %w", err)
			}
			printBalance(cmd, res)
			return nil
		},
	}
}

func newLogsCmd(rt *runtime) *cobra.Command {
	var (
		page     int
		pageSize int
		logType  string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the coin history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.svc.Logs(cmd.Context(), types.CoinLogsParams{
				Page:     page,
				PageSize: pageSize,
				Type:     types.CoinLogType(logType),
			})
			if err != nil {
				return fmt.Errorf("get logs: %w", err)
			}

			if len(res.List) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tTYPE\tAMOUNT\tID")
			for _, e := range res.List {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreateTime.Local().Format(timeLayout), e.Type, e.Amount, e.LogID)
			}
			if err = tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Page %d, %d of %d entries\n", res.Page, len(res.List), res.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", api.DefaultPage, "Page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", api.DefaultPageSize, "Entries per page")
	cmd.Flags().StringVar(&logType, "type", "", "Filter by type (Recharge, Withdraw, Freeze, Reward, Settle)")
	return cmd
}
