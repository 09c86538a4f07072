package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/daybudget/internal/ledger"
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's allowance, remaining amount, and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.svc.View(cmd.Context())
			if err != nil {
				return err
			}
			if !l.IsSetup {
				return fmt.Errorf("%w: run 'daybudget setup <amount> <end-date>' first", ledger.ErrNotSetup)
			}
			fmt.Print(a.renderStatus(l, a.svc.Now()))
			return nil
		},
	}
}

// recordCmd is the shared shape of `add` and `income`.
func (a *app) recordCmd(use, short string, typ ledger.TransactionType) *cobra.Command {
	var (
		accountArg string
		dateArg    string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ledger.ParseAmount(args[0])
			if err != nil {
				return err
			}
			description := ""
			if len(args) == 2 {
				description = args[1]
			}

			var date time.Time
			if dateArg != "" {
				if date, err = parseDate(dateArg); err != nil {
					return err
				}
				if date.After(a.svc.Now()) {
					return fmt.Errorf("date %s is in the future", dateArg)
				}
			}

			var tx ledger.Transaction
			l, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				acc, err := resolveAccount(l, accountArg)
				if err != nil {
					return err
				}
				tx, err = l.AddTransaction(typ, amount, description, acc.ID, date, a.svc.Now())
				return err
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s %s (%s)\n", typ, a.money(amount), tx.ID[:8])
			if tx.Account == ledger.AccountDaily {
				fmt.Printf("Remaining today: %s\n", a.money(l.RemainingToday))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&accountArg, "account", "a", ledger.AccountDaily, "account id or name")
	cmd.Flags().StringVarP(&dateArg, "date", "d", "", "backdate the record (YYYY-MM-DD)")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return a.recordCmd("add <amount> [description]", "Record an expense (defaults to the daily account)", ledger.TypeExpense)
}

func (a *app) incomeCmd() *cobra.Command {
	return a.recordCmd("income <amount> [description]", "Record income (defaults to the daily account)", ledger.TypeIncome)
}

func (a *app) editCmd() *cobra.Command {
	var (
		amountArg  string
		descArg    string
		accountArg string
		dateArg    string
		typeArg    string
	)
	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction; balances are reversed and re-applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				orig, err := findTransaction(l, args[0])
				if err != nil {
					return err
				}
				updated := *orig
				if amountArg != "" {
					amt, err := ledger.ParseAmount(amountArg)
					if err != nil {
						return err
					}
					if amt < 0 {
						amt = -amt
					}
					updated.Amount = amt
				}
				if descArg != "" {
					updated.Description = descArg
				}
				if accountArg != "" {
					acc, err := resolveAccount(l, accountArg)
					if err != nil {
						return err
					}
					updated.Account = acc.ID
				}
				if dateArg != "" {
					d, err := parseDate(dateArg)
					if err != nil {
						return err
					}
					updated.Date = d
				}
				if typeArg != "" {
					switch ledger.TransactionType(typeArg) {
					case ledger.TypeExpense, ledger.TypeIncome:
						updated.Type = ledger.TransactionType(typeArg)
					default:
						return fmt.Errorf("%w: %q", ledger.ErrInvalidType, typeArg)
					}
				}
				normalizeSign(&updated, orig.Amount)
				return l.UpdateTransaction(updated, a.svc.Now())
			})
			if err != nil {
				return err
			}
			fmt.Println("Transaction updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&amountArg, "amount", "", "new amount")
	cmd.Flags().StringVar(&descArg, "desc", "", "new description")
	cmd.Flags().StringVarP(&accountArg, "account", "a", "", "move to account id or name")
	cmd.Flags().StringVarP(&dateArg, "date", "d", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typeArg, "type", "", "new type (expense/income)")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <transaction-id>",
		Short: "Remove a transaction, reversing its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				tx, err := findTransaction(l, args[0])
				if err != nil {
					return err
				}
				return l.RemoveTransaction(tx.ID, a.svc.Now())
			})
			if err != nil {
				return err
			}
			fmt.Printf("Transaction removed. Remaining today: %s\n", a.money(l.RemainingToday))
			return nil
		},
	}
}

func (a *app) transferCmd() *cobra.Command {
	var descArg string
	cmd := &cobra.Command{
		Use:   "transfer <amount> <from> <to>",
		Short: "Move money between accounts (two paired transfer records)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ledger.ParseAmount(args[0])
			if err != nil {
				return err
			}
			var overdrawn *ledger.Account
			_, err = a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				from, err := resolveAccount(l, args[1])
				if err != nil {
					return err
				}
				to, err := resolveAccount(l, args[2])
				if err != nil {
					return err
				}
				if from.Balance < amount {
					overdrawn = from
				}
				_, err = l.Transfer(amount, from.ID, to.ID, descArg, a.svc.Now())
				return err
			})
			if err != nil {
				return err
			}
			if overdrawn != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("warning: %s is now overdrawn (%s)", overdrawn.Name, a.money(overdrawn.Balance))))
			}
			fmt.Printf("Transferred %s\n", a.money(amount))
			return nil
		},
	}
	cmd.Flags().StringVar(&descArg, "desc", "", "transfer description")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var (
		limit      int
		accountArg string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.svc.View(cmd.Context())
			if err != nil {
				return err
			}
			accountID := ""
			if accountArg != "" {
				acc, err := resolveAccount(l, accountArg)
				if err != nil {
					return err
				}
				accountID = acc.ID
			}
			fmt.Print(a.renderHistory(l, limit, accountID))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max entries to show (0 = all)")
	cmd.Flags().StringVarP(&accountArg, "account", "a", "", "only this account")
	return cmd
}

// normalizeSign keeps the stored amount's sign consistent with the
// transaction type: expenses are negative, income positive. A transfer leg
// keeps its original direction, so editing a withdrawal's magnitude never
// turns it into a deposit.
func normalizeSign(updated *ledger.Transaction, origAmount int64) {
	switch updated.Type {
	case ledger.TypeExpense:
		if updated.Amount > 0 {
			updated.Amount = -updated.Amount
		}
	case ledger.TypeIncome:
		if updated.Amount < 0 {
			updated.Amount = -updated.Amount
		}
	case ledger.TypeTransfer:
		if origAmount < 0 && updated.Amount > 0 {
			updated.Amount = -updated.Amount
		}
	}
}

// findTransaction accepts a full transaction id or a unique prefix.
func findTransaction(l *ledger.Ledger, arg string) (*ledger.Transaction, error) {
	var match *ledger.Transaction
	matches := 0
	for i := range l.Transactions {
		tx := &l.Transactions[i]
		if tx.ID == arg {
			return tx, nil
		}
		if len(arg) >= 4 && len(tx.ID) >= len(arg) && tx.ID[:len(arg)] == arg {
			match = tx
			matches++
		}
	}
	switch matches {
	case 1:
		return match, nil
	case 0:
		return nil, fmt.Errorf("%q: %w", arg, ledger.ErrUnknownTransaction)
	default:
		return nil, fmt.Errorf("%q matches %d transactions: %w", arg, matches, ledger.ErrUnknownTransaction)
	}
}
