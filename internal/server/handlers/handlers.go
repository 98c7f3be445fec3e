package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/domain/models"
	"github.com/stationaryhq/stationary/internal/service/auth"
	"github.com/stationaryhq/stationary/internal/service/importer"
	"github.com/stationaryhq/stationary/internal/service/inventory"
	"github.com/stationaryhq/stationary/internal/service/render"
	"github.com/stationaryhq/stationary/pkg/clients/gemini"
)

// Handler adapts the engine's public operations to HTTP. It is a thin
// wrapper: every rule lives in the services it delegates to.
type Handler struct {
	inventory *inventory.Service
	importer  *importer.Service
	auth      *auth.Store
	renderer  render.Renderer
	logger    *zap.Logger
}

// New constructs the HTTP handler adapter.
func New(inv *inventory.Service, imp *importer.Service, authStore *auth.Store, renderer render.Renderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{inventory: inv, importer: imp, auth: authStore, renderer: renderer, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "role": user.Role})
}

// Logout closes the current session.
func (h *Handler) Logout(c *gin.Context) {
	h.auth.Logout()
	c.Status(http.StatusNoContent)
}

// ListUsers returns all credential records without their hashes.
func (h *Handler) ListUsers(c *gin.Context) {
	users := h.auth.Users()
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "username": u.Username, "role": u.Role})
	}
	c.JSON(http.StatusOK, out)
}

type addUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// AddUser registers a new account.
func (h *Handler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	role := models.RoleUser
	if req.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	user, err := h.auth.AddUser(req.Username, req.Password, role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "role": user.Role})
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.auth.DeleteUser(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reportRequest struct {
	RequesterName string         `json:"requesterName"`
	Campus        string         `json:"campus"`
	ImportDate    string         `json:"importDate"`
	ExportDate    string         `json:"exportDate"`
	Items         map[string]int `json:"items"`
	Status        string         `json:"status"`
}

func (r reportRequest) draft() inventory.ReportDraft {
	return inventory.ReportDraft{
		RequesterName: r.RequesterName,
		Campus:        r.Campus,
		ImportDate:    r.ImportDate,
		ExportDate:    r.ExportDate,
		Items:         r.Items,
		Status:        models.Status(r.Status),
	}
}

// ListReports returns the report collection, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventory.Reports())
}

// CreateReport files a new requisition.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.inventory.CreateReport(req.draft())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// UpdateReport replaces a report's fields in place.
func (h *Handler) UpdateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.inventory.UpdateReport(c.Param("id"), req.draft())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteReport removes a report, returning its stock when it was Done.
func (h *Handler) DeleteReport(c *gin.Context) {
	if err := h.inventory.DeleteReport(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectedReport returns the remembered report id.
func (h *Handler) SelectedReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": h.inventory.SelectedReport()})
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

// SelectReport remembers the report the user is working on.
func (h *Handler) SelectReport(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.inventory.SelectReport(req.ID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearSelection forgets the remembered report.
func (h *Handler) ClearSelection(c *gin.Context) {
	h.inventory.ClearSelection()
	c.Status(http.StatusNoContent)
}

// GetStock returns the full ledger.
func (h *Handler) GetStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventory.Stock())
}

// EditStock applies a bulk absolute stock edit.
func (h *Handler) EditStock(c *gin.Context) {
	var quantities map[string]int
	if err := c.ShouldBindJSON(&quantities); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.inventory.EditStockBulk(quantities)
	c.JSON(http.StatusOK, h.inventory.Stock())
}

// ClearStock zeroes the whole ledger.
func (h *Handler) ClearStock(c *gin.Context) {
	h.inventory.ClearStock()
	c.JSON(http.StatusOK, h.inventory.Stock())
}

// Import runs the document import pipeline against an uploaded file.
func (h *Handler) Import(c *gin.Context) {
	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a document file is required"})
		return
	}

	opened, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer opened.Close()

	document, err := io.ReadAll(opened)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}

	result, err := h.importer.ImportFromDocument(c.Request.Context(), document)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportFullReport renders the combined report + stock document.
func (h *Handler) ExportFullReport(c *gin.Context) {
	path, err := h.renderer.RenderFullReport(h.inventory.Reports(), h.inventory.Stock())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// ExportStock renders the standalone stock document.
func (h *Handler) ExportStock(c *gin.Context) {
	path, err := h.renderer.RenderStock(h.inventory.Stock())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// writeError maps service errors onto HTTP statuses. Every error in the
// taxonomy is recoverable; nothing here ever tears the process down.
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *inventory.ValidationError
	var stockErr *inventory.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"title": validationErr.Title, "error": validationErr.Message})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error(), "deficiencies": stockErr.Deficiencies})
	case errors.Is(err, inventory.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, importer.ErrNoExtractableText), errors.Is(err, gemini.ErrMalformedResponse):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, render.ErrNoData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrProtectedUser):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
