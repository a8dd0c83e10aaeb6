package internal

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

//go:embed index.gohtml
var indexTemplate string

// Server is the web presentation shell. It calls into the same stores
// and aggregator as the CLI and renders a single-page form UI, plus a
// JSON API mirror under /api.
type Server struct {
	ledger *LedgerStore
	budget *BudgetStore
	cur    Currency
	tmpl   *template.Template
}

func NewServer(ledger *LedgerStore, budget *BudgetStore, cur Currency) *Server {
	tmpl := template.Must(template.New("index").Parse(indexTemplate))
	return &Server{ledger: ledger, budget: budget, cur: cur, tmpl: tmpl}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/expenses", s.handleAddForm)
	r.Post("/expenses/{id}/delete", s.handleDeleteForm)
	r.Post("/budget", s.handleBudgetForm)

	r.Get("/api/expenses", s.handleListExpenses)
	r.Post("/api/expenses", s.handleCreateExpense)
	r.Delete("/api/expenses/{id}", s.handleDeleteExpense)
	r.Get("/api/summary", s.handleSummary)
	r.Put("/api/budget", s.handleUpdateBudget)

	return r
}

// ListenAndServe blocks serving the web shell on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Infof("web shell listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request handled")
	})
}

// indexData is what the page template renders.
type indexData struct {
	Expenses []indexExpense
	Error    string

	TotalStr     string
	BudgetStr    string
	RemainingStr string
	HasBudget    bool
	Overspent    bool
	Categories   []indexCategory
}

type indexExpense struct {
	Id          int
	Date        string
	AmountStr   string
	Category    string
	Description string
}

type indexCategory struct {
	Name     string
	TotalStr string
}

func (s *Server) renderIndex(w http.ResponseWriter, errMsg string) {
	expenses, err := s.ledger.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	limit, err := s.budget.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summary := Summarize(expenses, limit)

	data := indexData{
		Error:        errMsg,
		TotalStr:     s.cur.Format(summary.TotalSpent),
		BudgetStr:    s.cur.Format(summary.MonthlyLimit),
		RemainingStr: s.cur.Format(summary.Remaining),
		HasBudget:    summary.MonthlyLimit > 0,
		Overspent:    summary.Remaining < 0,
	}
	for _, e := range expenses {
		data.Expenses = append(data.Expenses, indexExpense{
			Id:          e.Id,
			Date:        e.Date.Format(DateFormat),
			AmountStr:   s.cur.Format(e.Amount),
			Category:    e.CategoryOrDefault(),
			Description: e.Description,
		})
	}
	for _, ct := range summary.Categories {
		data.Categories = append(data.Categories, indexCategory{
			Name:     ct.Category,
			TotalStr: s.cur.Format(ct.Total),
		})
	}

	if err := s.tmpl.Execute(w, data); err != nil {
		log.Errorf("rendering index: %v", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r.URL.Query().Get("error"))
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	e, err := expenseFromForm(r)
	if err == nil {
		err = s.ledger.Append(e)
	}
	redirectWithError(w, r, err)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectWithError(w, r, fmt.Errorf("id must be a number"))
		return
	}
	redirectWithError(w, r, s.ledger.Delete(id))
}

func (s *Server) handleBudgetForm(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.ParseFloat(r.FormValue("monthly_limit"), 64)
	if err != nil {
		redirectWithError(w, r, &ValidationError{Field: "monthly_limit", Reason: "must be a number"})
		return
	}
	redirectWithError(w, r, s.budget.Save(limit))
}

// expenseFromForm builds an Expense from the add form. An empty date
// means today, matching the CLI.
func expenseFromForm(r *http.Request) (Expense, error) {
	dateStr := r.FormValue("date")
	var date time.Time
	if dateStr != "" {
		var err error
		date, err = time.Parse(DateFormat, dateStr)
		if err != nil {
			return Expense{}, &ValidationError{Field: "date", Reason: "want " + DateFormat}
		}
	} else {
		date = today()
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		return Expense{}, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	return Expense{
		Date:        date,
		Amount:      amount,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}, nil
}

func redirectWithError(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	if err != nil {
		target = "/?error=" + template.URLQueryEscaper(err.Error())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// --- JSON API ---

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]JSONExpense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toJSONExpense(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req JSONExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	date, err := time.Parse(DateFormat, req.Date)
	if err != nil {
		writeError(w, &ValidationError{Field: "date", Reason: "want " + DateFormat})
		return
	}
	e := Expense{
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := s.ledger.Append(e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSONExpense(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &ValidationError{Field: "id", Reason: "must be a number"})
		return
	}
	if err := s.ledger.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := s.budget.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Summarize(expenses, limit))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MonthlyLimit float64 `json:"monthly_limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := s.budget.Save(req.MonthlyLimit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

// writeError maps store errors to HTTP status codes: validation
// failures are 400, unknown ids 404, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ve *ValidationError
	var nfe *NotFoundError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &nfe):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// today returns the current date truncated to midnight UTC, so the
// default date round-trips through the ledger file unchanged.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
