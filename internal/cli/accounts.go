package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/daybudget/internal/ledger"
)

func (a *app) accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List and manage accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.svc.View(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(a.renderAccounts(l))
			return nil
		},
	}
	cmd.AddCommand(a.accountsAddCmd(), a.accountsEditCmd(), a.accountsRmCmd())
	return cmd
}

func (a *app) accountsAddCmd() *cobra.Command {
	var (
		accType    string
		balanceArg string
		icon       string
		parentArg  string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account; an opening balance records an initial deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var balance int64
			if balanceArg != "" {
				var err error
				if balance, err = ledger.ParseAmount(balanceArg); err != nil {
					return err
				}
			}
			var created ledger.Account
			_, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				parentID := ""
				if parentArg != "" {
					parent, err := resolveAccount(l, parentArg)
					if err != nil {
						return err
					}
					parentID = parent.ID
				}
				var err error
				created, err = l.AddAccount(args[0], accType, balance, icon, parentID, a.svc.Now())
				return err
			})
			if err != nil {
				return err
			}
			fmt.Printf("Account %q created (%s)\n", created.Name, created.ID[:8])
			return nil
		},
	}
	cmd.Flags().StringVarP(&accType, "type", "t", "custom", "account type")
	cmd.Flags().StringVarP(&balanceArg, "balance", "b", "", "opening balance")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")
	cmd.Flags().StringVarP(&parentArg, "parent", "p", "", "parent account id or name")
	return cmd
}

func (a *app) accountsEditCmd() *cobra.Command {
	var (
		name       string
		balanceArg string
		icon       string
	)
	cmd := &cobra.Command{
		Use:   "edit <account>",
		Short: "Rename an account or set its balance directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				acc, err := resolveAccount(l, args[0])
				if err != nil {
					return err
				}
				updated := *acc
				if name != "" {
					updated.Name = name
				}
				if balanceArg != "" {
					if updated.Balance, err = ledger.ParseAmount(balanceArg); err != nil {
						return err
					}
				}
				if icon != "" {
					updated.Icon = icon
				}
				return l.UpdateAccount(updated, a.svc.Now())
			})
			if err != nil {
				return err
			}
			fmt.Println("Account updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&balanceArg, "balance", "b", "", "set balance (allowance re-derives if daily)")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")
	return cmd
}

func (a *app) accountsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <account>",
		Short: "Delete an account; any balance is swept into savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			var swept int64
			_, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				acc, err := resolveAccount(l, args[0])
				if err != nil {
					return err
				}
				name, swept = acc.Name, acc.Balance
				return l.DeleteAccount(acc.ID, a.svc.Now())
			})
			if err != nil {
				return err
			}
			if swept != 0 {
				fmt.Printf("Account %q deleted; %s swept into savings\n", name, a.money(swept))
			} else {
				fmt.Printf("Account %q deleted\n", name)
			}
			return nil
		},
	}
}
