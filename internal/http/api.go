package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	transactions service.TransactionService
	dashboard    service.DashboardService
	budgets      service.BudgetService
	exports      service.ExportService
	jwtSecret    string
	tokenTTL     time.Duration
	recentLimit  int
}

func NewHandler(
	users service.UserService,
	transactions service.TransactionService,
	dashboard service.DashboardService,
	budgets service.BudgetService,
	exports service.ExportService,
	jwtSecret string,
	tokenTTL time.Duration,
	recentLimit int,
) *Handler {
	return &Handler{
		users:        users,
		transactions: transactions,
		dashboard:    dashboard,
		budgets:      budgets,
		exports:      exports,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		recentLimit:  recentLimit,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	secured := api.Group("", h.requireAuth())
	{
		secured.GET("/dashboard", h.getDashboard)

		for _, mount := range []struct {
			kind domain.Kind
			path string
		}{
			{domain.KindIncome, "/income"},
			{domain.KindExpense, "/expense"},
		} {
			group := secured.Group(mount.path)
			group.POST("", h.createTransaction(mount.kind))
			group.GET("", h.listTransactions(mount.kind))
			group.GET("/stats", h.getStats(mount.kind))
			group.GET("/export", h.exportTransactions(mount.kind))
			group.PUT("/:id", h.updateTransaction(mount.kind))
			group.DELETE("/:id", h.deleteTransaction(mount.kind))
		}

		secured.POST("/budget", h.createBudget)
		secured.GET("/budget", h.listBudgets)
		secured.GET("/budget/:category", h.getBudgetUtilization)
	}

	admin := secured.Group("/admin", h.requireAdmin())
	{
		admin.GET("/users", h.listUsers)
		admin.PUT("/users/:id/make-admin", h.promoteUser)
		admin.DELETE("/users/:id", h.deleteUser)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Store
// failures never degrade into zeroed 200 responses.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userToResponse(user)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userToResponse(user)})
}

func (h *Handler) getDashboard(c *gin.Context) {
	limit := h.recentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	dashboard, err := h.dashboard.BuildDashboard(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	recent := make([]TransactionResponse, len(dashboard.Recent))
	for i := range dashboard.Recent {
		recent[i] = transactionToResponse(dashboard.Recent[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIncome":        dashboard.TotalIncome,
		"totalExpense":       dashboard.TotalExpense,
		"totalBalance":       dashboard.TotalBalance,
		"recentTransactions": recent,
	})
}

type transactionRequest struct {
	Category    string   `json:"category"`
	Source      string   `json:"source"`
	Amount      *float64 `json:"amount"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

type transactionPatchRequest struct {
	Category    *string  `json:"category"`
	Source      *string  `json:"source"`
	Amount      *float64 `json:"amount"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
}

func (h *Handler) createTransaction(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category := req.Category
		if category == "" && kind == domain.KindIncome {
			// income clients label the category field "source"
			category = req.Source
		}
		if req.Amount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required", "field": "amount"})
			return
		}

		input := service.TransactionInput{
			Category:    category,
			Amount:      *req.Amount,
			Description: req.Description,
			Icon:        req.Icon,
		}
		if req.Date != "" {
			date, err := parseDate(req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "field": "date"})
				return
			}
			input.Date = date
		}

		tx, err := h.transactions.Create(c.Request.Context(), currentUserID(c), kind, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, transactionToResponse(*tx))
	}
}

func (h *Handler) listTransactions(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.transactions.List(c.Request.Context(), currentUserID(c), kind)
		if err != nil {
			writeError(c, err)
			return
		}

		resp := make([]TransactionResponse, len(records))
		for i := range records {
			resp[i] = transactionToResponse(records[i])
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) updateTransaction(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
			return
		}

		var req transactionPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := service.TransactionPatch{
			Amount:      req.Amount,
			Description: req.Description,
			Icon:        req.Icon,
		}
		patch.Category = req.Category
		if patch.Category == nil && kind == domain.KindIncome {
			patch.Category = req.Source
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "field": "date"})
				return
			}
			patch.Date = &date
		}

		tx, err := h.transactions.Update(c.Request.Context(), id, currentUserID(c), kind, patch)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, transactionToResponse(*tx))
	}
}

func (h *Handler) deleteTransaction(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
			return
		}

		if err := h.transactions.Delete(c.Request.Context(), id, currentUserID(c), kind); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

func (h *Handler) getStats(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.dashboard.Stats(c.Request.Context(), currentUserID(c), kind)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total":   stats.Total,
			"average": stats.Average,
			"largest": gin.H{
				"category": stats.Largest.Category,
				"amount":   stats.Largest.Amount,
			},
			"topCategory": gin.H{
				"category": stats.TopCategory.Category,
				"total":    stats.TopCategory.Total,
			},
			"recentActivity": gin.H{
				"count": stats.RecentActivity.Count,
				"total": stats.RecentActivity.Total,
			},
		})
	}
}

func (h *Handler) exportTransactions(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		export, err := h.exports.ExportCSV(c.Request.Context(), currentUserID(c), kind)
		if err != nil {
			writeError(c, err)
			return
		}

		if export.Location != "" {
			c.Header("X-Export-Location", export.Location)
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Data(http.StatusOK, "text/csv", export.Data)
	}
}

type budgetRequest struct {
	Category string   `json:"category" binding:"required"`
	Limit    *float64 `json:"limit" binding:"required"`
}

func (h *Handler) createBudget(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.SetLimit(c.Request.Context(), currentUserID(c), req.Category, *req.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budgetToResponse(*budget))
}

func (h *Handler) listBudgets(c *gin.Context) {
	budgets, err := h.budgets.ListLimits(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		resp[i] = budgetToResponse(budgets[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getBudgetUtilization(c *gin.Context) {
	utilization, err := h.budgets.Utilization(c.Request.Context(), currentUserID(c), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budget":    budgetToResponse(utilization.Budget),
		"spent":     utilization.Spent,
		"remaining": utilization.Remaining,
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) promoteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.PromoteAdmin(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user promoted to admin"})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// TransactionResponse mirrors the wire shape dashboard clients expect: the
// record id is served as _id, and income records expose their category under
// both "category" and "source".
type TransactionResponse struct {
	ID          string  `json:"_id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Source      string  `json:"source,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
}

type BudgetResponse struct {
	ID       string  `json:"_id"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Created  string  `json:"created"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"created_at"`
}

func transactionToResponse(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		Type:        kindToWire(tx.Kind),
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        tx.Date.UTC().Format(time.RFC3339),
		Description: tx.Description,
		Icon:        tx.Icon,
	}
	if tx.Kind == domain.KindIncome {
		resp.Source = tx.Category
	}
	return resp
}

func budgetToResponse(budget domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       budget.ID,
		Category: budget.Category,
		Limit:    budget.Limit,
		Created:  budget.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func kindToWire(kind domain.Kind) string {
	switch kind {
	case domain.KindIncome:
		return "income"
	case domain.KindExpense:
		return "expense"
	default:
		return ""
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
