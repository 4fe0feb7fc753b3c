package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagAddDate     string
	flagAddCategory string
	flagAddAmount   string
	flagAddCurrency string
	flagAddNote     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Expense date, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Expense category")
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount, plain number")
	addCmd.Flags().StringVar(&flagAddCurrency, "currency", "", "Currency symbol (default from preferences)")
	addCmd.Flags().StringVarP(&flagAddNote, "note", "m", "", "Free-form note")
}

func runAdd(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	category := strings.TrimSpace(flagAddCategory)
	if category == "" {
		return errors.New("category is required")
	}

	raw := strings.TrimSpace(flagAddAmount)
	if raw == "" {
		return errors.New("amount is required")
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount %q must be a number", raw)
	}
	if amount < 0 {
		return errors.New("amount must be zero or more")
	}

	date := strings.TrimSpace(flagAddDate)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, ok := pipeline.MonthKey(date); !ok {
		return fmt.Errorf("date %q is not a date, use YYYY-MM-DD", date)
	}

	symbol := strings.TrimSpace(flagAddCurrency)
	if symbol == "" {
		symbol = led.Preferences().CurrencySymbol
	}

	e := model.Expense{
		Date:     date,
		Category: category,
		Amount:   cli.FormatMoney(symbol, amount),
		Note:     strings.TrimSpace(flagAddNote),
	}
	if err := led.AppendExpense(e); err != nil {
		return err
	}

	fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("Expense added: %s  %s  %s", e.Date, e.Category, e.Amount)))
	return nil
}
