package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aureus/models"
	"aureus/pkg/ledger"
	"aureus/pkg/logger"
	"aureus/pkg/ocr"
	"aureus/pkg/parse"
)

// Server bundles the pieces handlers need.
type Server struct {
	reg  *Registry
	lock *Lock
	cfg  Config
	now  func() time.Time
}

func NewServer(reg *Registry, lock *Lock, cfg Config) *Server {
	return &Server{reg: reg, lock: lock, cfg: cfg, now: time.Now}
}

func (s *Server) setupRoutes(r *gin.Engine) {
	r.POST("/unlock", s.unlockHandler)

	authGroup := r.Group("")
	authGroup.Use(s.lock.Middleware())
	authGroup.GET("/state", s.stateHandler)
	authGroup.GET("/wallets", s.listWalletsHandler)
	authGroup.POST("/wallets", s.createWalletHandler)
	authGroup.DELETE("/wallets/:id", s.deleteWalletHandler)
	authGroup.POST("/wallets/:id/select", s.selectWalletHandler)
	authGroup.GET("/transactions", s.listTransactionsHandler)
	authGroup.POST("/transactions", s.createTransactionHandler)
	authGroup.DELETE("/transactions/:id", s.deleteTransactionHandler)
	authGroup.POST("/transfers", s.createTransferHandler)
	authGroup.POST("/parse", s.parseHandler)
	authGroup.POST("/transactions/voice", s.voiceTransactionHandler)
	authGroup.GET("/categories", s.listCategoriesHandler)
	authGroup.POST("/categories", s.createCategoryHandler)
	authGroup.DELETE("/categories/:id", s.deleteCategoryHandler)
	authGroup.GET("/subscriptions", s.listSubscriptionsHandler)
	authGroup.POST("/subscriptions", s.createSubscriptionHandler)
	authGroup.DELETE("/subscriptions/:id", s.deleteSubscriptionHandler)
	authGroup.GET("/budgets", s.listBudgetsHandler)
	authGroup.POST("/budgets", s.createBudgetHandler)
	authGroup.DELETE("/budgets/:id", s.deleteBudgetHandler)
	authGroup.GET("/backup", s.backupHandler)
	authGroup.POST("/restore", s.restoreHandler)
	authGroup.GET("/reports/monthly", s.monthlyReportHandler)
	authGroup.POST("/receipts", s.receiptHandler)
}

// requireConfirm gates destructive operations behind an explicit
// confirm=true, query or JSON body.
func requireConfirm(c *gin.Context) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&body); err == nil && body.Confirm {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required (confirm=true)"})
	return false
}

func (s *Server) unlockHandler(c *gin.Context) {
	if !s.lock.Enabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lock is not enabled"})
		return
	}
	var req struct {
		Passphrase string `json:"passphrase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := s.lock.Unlock(req.Passphrase)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) stateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.reg.Snapshot())
}

func (s *Server) listWalletsHandler(c *gin.Context) {
	st := s.reg.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"wallets":          st.Wallets,
		"selectedWalletId": st.SelectedWalletID,
		"totalBalance":     st.TotalBalance,
	})
}

func (s *Server) createWalletHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Kind     string `json:"type" binding:"required"`
		BankName string `json:"bankName"`
		Color    string `json:"color"`
		Icon     string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := s.reg.AddWallet(req.Name, models.WalletKind(req.Kind), req.BankName, req.Color, req.Icon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (s *Server) deleteWalletHandler(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := s.reg.DeleteWallet(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selectedWalletId": s.reg.SelectedWalletID()})
}

func (s *Server) selectWalletHandler(c *gin.Context) {
	if err := s.reg.SelectWallet(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selectedWalletId": c.Param("id")})
}

func (s *Server) listTransactionsHandler(c *gin.Context) {
	txs := s.reg.Transactions()
	monthStr, yearStr := c.Query("month"), c.Query("year")
	if monthStr != "" || yearStr != "" {
		month, year, err := parseMonthYear(monthStr, yearStr, s.now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		txs = ledger.FilterMonth(txs, month, year)
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

func (s *Server) createTransactionHandler(c *gin.Context) {
	var draft models.TransactionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if draft.WalletID == "" {
		draft.WalletID = s.reg.SelectedWalletID()
	}
	t, err := s.reg.AddFromDraft(draft)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) deleteTransactionHandler(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := s.reg.DeleteTransaction(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createTransferHandler(c *gin.Context) {
	var req struct {
		FromWalletID string `json:"fromWalletId" binding:"required"`
		ToWalletID   string `json:"toWalletId" binding:"required"`
		Amount       int64  `json:"amount" binding:"required"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.reg.AddTransfer(req.FromWalletID, req.ToWalletID, req.Amount, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// parseHandler runs the free-text pipeline without persisting anything, so
// the client can show a confirmation sheet first.
func (s *Server) parseHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cand, err := parse.Parse(req.Text, s.now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "amount not found"})
		return
	}
	c.JSON(http.StatusOK, candidateJSON(cand))
}

func (s *Server) voiceTransactionHandler(c *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		WalletID string `json:"walletId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cand, err := parse.Parse(req.Text, s.now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "amount not found"})
		return
	}
	walletID := req.WalletID
	if walletID == "" {
		walletID = s.reg.SelectedWalletID()
	}
	t, err := s.reg.AddFromCandidate(cand, walletID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) listCategoriesHandler(c *gin.Context) {
	st := s.reg.Snapshot()
	c.JSON(http.StatusOK, gin.H{"categories": st.Categories})
}

func (s *Server) createCategoryHandler(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Kind  string `json:"type" binding:"required"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := s.reg.AddCategory(req.Name, models.TransactionKind(req.Kind), req.Color, req.Icon)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *Server) deleteCategoryHandler(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := s.reg.DeleteCategory(c.Param("id")); err != nil {
		status := http.StatusNotFound
		if strings.Contains(err.Error(), "default categories") {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// listSubscriptionsHandler runs the renewal check before answering so stale
// due dates are settled by the time the client renders.
func (s *Server) listSubscriptionsHandler(c *gin.Context) {
	created := s.reg.RenewDue()
	st := s.reg.Snapshot()
	c.JSON(http.StatusOK, gin.H{"subscriptions": st.Subscriptions, "renewed": len(created)})
}

func (s *Server) createSubscriptionHandler(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Amount    int64  `json:"amount" binding:"required"`
		CycleDays int    `json:"cycleDays" binding:"required"`
		StartDate string `json:"startDate"`
		PayNow    bool   `json:"payNow"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start := s.now()
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	sub, first, err := s.reg.AddSubscription(req.Name, req.Amount, req.CycleDays, start, req.PayNow)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// a subscription created already stale is settled right away
	renewed := s.reg.RenewDue()
	resp := gin.H{"subscription": sub, "renewed": len(renewed)}
	if first != nil {
		resp["transaction"] = first
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) deleteSubscriptionHandler(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := s.reg.DeleteSubscription(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// listBudgetsHandler returns the month's budgets with derived consumption
// plus the overview totals.
func (s *Server) listBudgetsHandler(c *gin.Context) {
	month, year, err := parseMonthYear(c.Query("month"), c.Query("year"), s.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	statuses := s.reg.BudgetStatuses(month, year)
	var totalBudget, totalSpent int64
	for _, st := range statuses {
		totalBudget += st.Budget.Amount
		totalSpent += st.Spent
	}
	c.JSON(http.StatusOK, gin.H{
		"budgets":     statuses,
		"totalBudget": totalBudget,
		"totalSpent":  totalSpent,
		"remaining":   totalBudget - totalSpent,
	})
}

func (s *Server) createBudgetHandler(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
		Amount   int64  `json:"amount" binding:"required"`
		Month    int    `json:"month"`
		Year     int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now := s.now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	b, err := s.reg.AddBudget(req.Category, req.Amount, time.Month(req.Month), req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) deleteBudgetHandler(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := s.reg.DeleteBudget(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) backupHandler(c *gin.Context) {
	b := s.reg.Backup()
	name := "aureus-backup-" + s.now().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.JSON(http.StatusOK, b)
}

func (s *Server) restoreHandler(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required (confirm=true)"})
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 10<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	b, err := DecodeBackup(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.reg.Restore(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("backup restored",
		zap.Int("wallets", len(b.Wallets)),
		zap.Int("transactions", len(b.Transactions)))
	c.JSON(http.StatusOK, s.reg.Snapshot())
}

func (s *Server) monthlyReportHandler(c *gin.Context) {
	month, year, err := parseMonthYear(c.Query("month"), c.Query("year"), s.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txs := s.reg.Transactions()
	switch c.DefaultQuery("format", "json") {
	case "csv":
		out, err := MonthlyCSV(txs, month, year)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		name := fmt.Sprintf("laporan-%04d-%02d.csv", year, int(month))
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
	case "html":
		out, err := MonthlyHTML(txs, month, year, s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", out)
	case "json":
		summary := ledger.MonthlySummary(txs, month, year)
		c.JSON(http.StatusOK, gin.H{"month": int(month), "year": year, "summary": summary})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, csv, or html"})
	}
}

// receiptHandler OCRs an uploaded image through the same parse pipeline as
// voice input. Without confirm=true it only returns the candidate.
func (s *Server) receiptHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	tmp := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	defer os.Remove(tmp)

	cand, err := ocr.ParseReceipt(tmp, s.now())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusOK, candidateJSON(cand))
		return
	}
	walletID := c.PostForm("walletId")
	if walletID == "" {
		walletID = s.reg.SelectedWalletID()
	}
	t, err := s.reg.AddFromCandidate(cand, walletID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func candidateJSON(cand parse.Candidate) gin.H {
	return gin.H{
		"type":        cand.Kind,
		"amount":      cand.Amount,
		"category":    cand.Category,
		"description": cand.Description,
		"date":        cand.Date.Format("2006-01-02"),
	}
}

func parseMonthYear(monthStr, yearStr string, ref time.Time) (time.Month, int, error) {
	month, year := ref.Month(), ref.Year()
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("month must be 1-12")
		}
		month = time.Month(m)
	}
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 {
			return 0, 0, fmt.Errorf("invalid year")
		}
		year = y
	}
	return month, year, nil
}
