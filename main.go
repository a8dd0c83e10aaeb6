package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	log "github.com/sirupsen/logrus"

	"spendlog/internal"
)

func init() {
	log.SetOutput(os.Stderr)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(parsed)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

type AddParams struct {
	Amount      string `descr:"Expense amount, e.g. 12.50" positional:"true"`
	Date        string `descr:"Expense date (YYYY-MM-DD), defaults to today" optional:"true"`
	Category    string `descr:"Short category label" optional:"true"`
	Description string `descr:"Free-text description" optional:"true"`
	Config      string `descr:"Path to config file" optional:"true"`
}

type ListParams struct {
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Currency string `descr:"Currency code for display, auto-detected from locale when empty" optional:"true"`
	Config   string `descr:"Path to config file" optional:"true"`
}

type DeleteParams struct {
	Id     int    `descr:"Id of the expense to delete (see list)" positional:"true"`
	Config string `descr:"Path to config file" optional:"true"`
}

type BudgetSetParams struct {
	Amount string `descr:"Monthly budget amount, e.g. 200" positional:"true"`
	Config string `descr:"Path to config file" optional:"true"`
}

type BudgetShowParams struct {
	Currency string `descr:"Currency code for display, auto-detected from locale when empty" optional:"true"`
	Config   string `descr:"Path to config file" optional:"true"`
}

type ReportParams struct {
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Currency string `descr:"Currency code for display, auto-detected from locale when empty" optional:"true"`
	Config   string `descr:"Path to config file" optional:"true"`
}

type ImportParams struct {
	Format string `descr:"Source file format" alts:"xlsx,simple-json" strict:"true"`
	File   string `descr:"Path to the file to import" positional:"true"`
	Config string `descr:"Path to config file" optional:"true"`
}

type ServeParams struct {
	Addr     string `descr:"Listen address for the web shell" default:":8080"`
	Currency string `descr:"Currency code for display, auto-detected from locale when empty" optional:"true"`
	Config   string `descr:"Path to config file" optional:"true"`
}

func main() {
	boa.Cmd{
		Use:   "spendlog",
		Short: "Log expenses and track them against a monthly budget",
		Long:  "Records discrete expense entries (date, amount, category, description) in a flat CSV ledger, keeps a single monthly budget value, and shows aggregate spending per category and against the budget.",
		SubCmds: boa.SubCmds(
			boa.NewCmdT[AddParams]("add").
				WithShort("Record a new expense").
				WithRunFunc(runAdd),
			boa.NewCmdT[ListParams]("list").
				WithShort("List all recorded expenses in file order").
				WithRunFunc(runList),
			boa.NewCmdT[DeleteParams]("delete").
				WithShort("Delete an expense by id").
				WithRunFunc(runDelete),
			boa.Cmd{
				Use:   "budget",
				Short: "Show or set the monthly budget",
				SubCmds: boa.SubCmds(
					boa.NewCmdT[BudgetSetParams]("set").
						WithShort("Set the monthly budget").
						WithRunFunc(runBudgetSet),
					boa.NewCmdT[BudgetShowParams]("show").
						WithShort("Show the current monthly budget").
						WithRunFunc(runBudgetShow),
				),
			},
			boa.NewCmdT[ReportParams]("report").
				WithShort("Show per-category totals and remaining budget").
				WithRunFunc(runReport),
			boa.NewCmdT[ImportParams]("import").
				WithShort("Bulk-import expenses from a bank export or JSON file").
				WithRunFunc(runImport),
			boa.NewCmdT[ServeParams]("serve").
				WithShort("Serve the web form UI and JSON API").
				WithRunFunc(runServe),
		),
	}.Run()
}

func runAdd(params *AddParams) {
	ledger, _ := openStores(params.Config)

	e, err := buildExpense(params.Date, params.Amount, params.Category, params.Description)
	if err != nil {
		fail(err)
	}
	if err := ledger.Append(e); err != nil {
		fail(err)
	}
	fmt.Printf("Recorded %s expense on %s\n", e.CategoryOrDefault(), e.Date.Format(internal.DateFormat))
}

func runList(params *ListParams) {
	ledger, _ := openStores(params.Config)

	expenses, err := ledger.Load()
	if err != nil {
		fail(err)
	}
	if params.Output == "json" {
		internal.PrintExpensesJSON(os.Stdout, expenses)
		return
	}
	internal.PrintExpensesTable(os.Stdout, expenses, resolveCurrency(params.Currency))
}

func runDelete(params *DeleteParams) {
	ledger, _ := openStores(params.Config)

	if err := ledger.Delete(params.Id); err != nil {
		fail(err)
	}
	fmt.Printf("Deleted expense %d\n", params.Id)
}

func runBudgetSet(params *BudgetSetParams) {
	_, budget := openStores(params.Config)

	limit, err := parseAmount("monthly_limit", params.Amount)
	if err != nil {
		fail(err)
	}
	if err := budget.Save(limit); err != nil {
		fail(err)
	}
	fmt.Printf("Budget set to %.2f\n", limit)
}

func runBudgetShow(params *BudgetShowParams) {
	_, budget := openStores(params.Config)

	limit, err := budget.Load()
	if err != nil {
		fail(err)
	}
	if limit <= 0 {
		fmt.Println("No monthly budget set.")
		return
	}
	fmt.Printf("Monthly budget: %s\n", resolveCurrency(params.Currency).Format(limit))
}

func runReport(params *ReportParams) {
	ledger, budget := openStores(params.Config)

	expenses, err := ledger.Load()
	if err != nil {
		fail(err)
	}
	limit, err := budget.Load()
	if err != nil {
		fail(err)
	}
	summary := internal.Summarize(expenses, limit)

	if params.Output == "json" {
		internal.PrintSummaryJSON(os.Stdout, summary)
		return
	}
	internal.PrintSummaryTable(os.Stdout, summary, resolveCurrency(params.Currency))
}

func runImport(params *ImportParams) {
	ledger, _ := openStores(params.Config)

	parser, err := internal.GetParser(params.Format)
	if err != nil {
		fail(err)
	}
	expenses, err := parser.Parse(params.File)
	if err != nil {
		fail(fmt.Errorf("parsing %s: %w", params.File, err))
	}
	added, skipped, err := ledger.AppendAll(expenses)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Imported %d expenses (%d skipped)\n", added, skipped)
}

func runServe(params *ServeParams) {
	ledger, budget := openStores(params.Config)

	server := internal.NewServer(ledger, budget, resolveCurrency(params.Currency))
	if err := server.ListenAndServe(params.Addr); err != nil {
		fail(err)
	}
}

// openStores loads the config and constructs both stores with the
// configured paths.
func openStores(configPath string) (*internal.LedgerStore, *internal.BudgetStore) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		fail(err)
	}
	return internal.NewLedgerStore(cfg.LedgerPath), internal.NewBudgetStore(cfg.BudgetPath)
}

// buildExpense turns raw CLI input into an Expense. An empty date means
// today. Validation proper happens in Append.
func buildExpense(dateStr, amountStr, category, description string) (internal.Expense, error) {
	var date time.Time
	if dateStr != "" {
		var err error
		date, err = time.Parse(internal.DateFormat, dateStr)
		if err != nil {
			return internal.Expense{}, &internal.ValidationError{Field: "date", Reason: "want " + internal.DateFormat}
		}
	} else {
		now := time.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	amount, err := parseAmount("amount", amountStr)
	if err != nil {
		return internal.Expense{}, err
	}

	return internal.Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
	}, nil
}

func parseAmount(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, &internal.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return v, nil
}

// resolveCurrency picks the display currency: explicit flag first, then
// the system locale, then USD.
func resolveCurrency(flag string) internal.Currency {
	if flag != "" {
		return internal.GetCurrency(flag)
	}
	if code := internal.DetectSystemCurrency(); code != "" {
		return internal.GetCurrency(code)
	}
	return internal.GetCurrency("USD")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
