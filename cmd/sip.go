package cmd

import (
	"errors"
	"fmt"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/plan"

	"github.com/spf13/cobra"
)

var (
	flagSipMonthly float64
	flagSipRate    float64
	flagSipYears   float64
	flagSipGoal    float64
)

var sipCmd = &cobra.Command{
	Use:   "sip",
	Short: "Project a recurring monthly investment",
	Long:  "Compound a fixed monthly contribution at an annual rate, optionally sizing the contribution a savings goal would need.",
	RunE:  runSip,
}

func init() {
	rootCmd.AddCommand(sipCmd)

	sipCmd.Flags().Float64Var(&flagSipMonthly, "monthly", 5000, "Monthly contribution")
	sipCmd.Flags().Float64Var(&flagSipRate, "rate", 12, "Expected annual return, percent")
	sipCmd.Flags().Float64Var(&flagSipYears, "years", 10, "Investment horizon in years")
	sipCmd.Flags().Float64Var(&flagSipGoal, "goal", 0, "Target amount to size the contribution for")
}

func runSip(cmd *cobra.Command, _ []string) error {
	var goal *float64
	if cmd.Flags().Changed("goal") {
		goal = &flagSipGoal
	}

	proj, err := plan.Project(flagSipMonthly, flagSipRate, flagSipYears, goal)
	if err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			return fmt.Errorf("cannot project: %w", err)
		}
		return err
	}

	led, _, err := openLedger()
	if err != nil {
		return err
	}
	symbol := led.Preferences().CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS PLAN"))
	fmt.Println()

	rows := [][]string{
		{"Monthly", cli.FormatMoney(symbol, proj.Monthly)},
		{"Annual rate", fmt.Sprintf("%.1f%%", proj.AnnualRate)},
		{"Years", fmt.Sprintf("%.1f", proj.Years)},
		{"Contributions", fmt.Sprintf("%d", proj.Periods)},
		{"---"},
		{"Future value", cli.FormatMoney(symbol, proj.FutureValue)},
	}
	if proj.HasGoal {
		rows = append(rows, []string{"Goal", cli.FormatMoney(symbol, proj.Goal)})
		rows = append(rows, []string{"Needed monthly", cli.FormatMoney(symbol, proj.RequiredMonthly)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Input", "Value"},
		Rows:    rows,
	}))

	if proj.HasGoal {
		if proj.FutureValue >= proj.Goal {
			fmt.Printf("  %s\n", cli.Good("Your current plan clears the goal."))
		} else {
			fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("Raise the monthly amount to %s to hit the goal.",
				cli.FormatMoney(symbol, proj.RequiredMonthly))))
		}
	}
	fmt.Printf("  %s\n", cli.Muted("Automate the transfer via your bank or fund platform. Start small and increase regularly."))
	fmt.Println()

	return nil
}
