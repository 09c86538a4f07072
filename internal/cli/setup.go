package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/daybudget/internal/ledger"
)

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (want YYYY-MM-DD)", s)
}

func (a *app) setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup <amount> <end-date>",
		Short: "Configure the budget: total amount spread until end-date (inclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := ledger.ParseAmount(args[0])
			if err != nil {
				return err
			}
			endDate, err := parseDate(args[1])
			if err != nil {
				return err
			}
			l, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				return l.Setup(amount, endDate, a.svc.Now())
			})
			if err != nil {
				return err
			}
			fmt.Printf("Budget configured: %s over %d days (%s/day)\n",
				a.money(amount), l.RemainingDays(a.svc.Now()), a.money(l.DailyAllowance))
			return nil
		},
	}
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	var (
		amountFlag  string
		endDateFlag string
		autoSave    string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Adjust budget amount, end date, or auto-save",
		Long:  "Raising or lowering the amount moves the difference in or out of the\ndaily account and records a \"Budget adjustment\" transfer.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if amountFlag == "" && endDateFlag == "" && autoSave == "" {
				// no flags: show current config
				l, err := a.svc.View(cmd.Context())
				if err != nil {
					return err
				}
				if !l.IsSetup {
					return ledger.ErrNotSetup
				}
				fmt.Printf("amount:    %s\nstart:     %s\nend:       %s\nauto-save: %v\n",
					a.money(l.Budget.StartAmount), a.date(l.Budget.StartDate), a.date(l.Budget.EndDate), l.Budget.AutoSave)
				return nil
			}

			_, err := a.svc.Update(cmd.Context(), func(l *ledger.Ledger) error {
				if autoSave != "" {
					on, err := parseBool(autoSave)
					if err != nil {
						return err
					}
					if err := l.SetAutoSave(on); err != nil {
						return err
					}
				}
				if amountFlag == "" && endDateFlag == "" {
					return nil
				}
				amount := l.Budget.StartAmount
				if amountFlag != "" {
					var err error
					if amount, err = ledger.ParseAmount(amountFlag); err != nil {
						return err
					}
				}
				endDate := l.Budget.EndDate
				if endDateFlag != "" {
					var err error
					if endDate, err = parseDate(endDateFlag); err != nil {
						return err
					}
				}
				return l.UpdateConfig(amount, endDate, a.svc.Now())
			})
			if err != nil {
				return err
			}
			fmt.Println("Budget updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&amountFlag, "amount", "", "new total budget amount")
	cmd.Flags().StringVar(&endDateFlag, "end", "", "new end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&autoSave, "autosave", "", "sweep unspent allowance to savings at rollover (on/off)")
	return cmd
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}

func (a *app) daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "Print the number of budget days remaining (end date inclusive)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.svc.View(cmd.Context())
			if err != nil {
				return err
			}
			if !l.IsSetup {
				return ledger.ErrNotSetup
			}
			fmt.Println(l.RemainingDays(a.svc.Now()))
			return nil
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and return to the unconfigured state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				fmt.Print("This erases all accounts and transactions. Type 'yes' to confirm: ")
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.TrimSpace(line) != "yes" {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := a.svc.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All data erased")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
