package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/onlinebank/internal/usecase"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

type accountView struct {
	Number  string `yaml:"number"`
	Balance int64  `yaml:"balance"`
}

type accountListing struct {
	Accounts []accountView `yaml:"accounts"`
	Count    int           `yaml:"count"`
	Total    int64         `yaml:"total"`
}

func newAccountsCmd(rt *app) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect stored accounts",
	}

	var output string
	listCmd := &cobra.Command{
		Use:   "list [acct_file_name]",
		Short: "List stored accounts without modifying them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputYAML {
				return fmt.Errorf("unknown output format %q", output)
			}
			if len(args) > 0 {
				rt.cfg.AccountsFile = args[0]
			}

			bank, handle, err := rt.openBank(cmd.Context())
			if err != nil {
				return err
			}
			defer handle.Close()

			return writeListing(cmd.OutOrStdout(), listing(bank), output)
		},
	}
	listCmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or yaml")

	accountsCmd.AddCommand(listCmd)
	return accountsCmd
}

func listing(bank *usecase.Bank) accountListing {
	accounts := bank.Accounts()
	l := accountListing{
		Accounts: make([]accountView, 0, len(accounts)),
		Count:    len(accounts),
		Total:    bank.TotalBalance(),
	}
	for _, acct := range accounts {
		l.Accounts = append(l.Accounts, accountView{
			Number:  acct.Number().String(),
			Balance: acct.Balance(),
		})
	}
	return l
}

func writeListing(w io.Writer, l accountListing, output string) error {
	if output == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("failed to encode accounts: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "NUMBER\tBALANCE\t")
	for _, a := range l.Accounts {
		fmt.Fprintf(tw, "%s\t%d\t\n", a.Number, a.Balance)
	}
	fmt.Fprintf(tw, "TOTAL (%d)\t%d\t\n", l.Count, l.Total)
	return tw.Flush()
}
