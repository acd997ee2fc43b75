package handler

import (
	"github.com/agencyops/backend/internal/application/submission"
	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionHandler handles submission lifecycle HTTP requests
type SubmissionHandler struct {
	BaseHandler
	submissionService *submission.Service
	profiles          hierarchy.Repository
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *submission.Service, profiles hierarchy.Repository) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		profiles:          profiles,
	}
}

// RegisterRoutes registers all submission routes
func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	submissions := rg.Group("/submissions")
	{
		submissions.POST("", h.Submit)
		submissions.GET("", h.List)
		submissions.GET("/:id", h.Get)
		submissions.POST("/:id/issue", h.Issue)
		submissions.POST("/:id/decline", h.Decline)
		submissions.POST("/:id/payments", h.RecordPayment)
		submissions.GET("/:id/payments", h.PaymentHistory)
		submissions.POST("/:id/documents", h.UploadDocument)
		submissions.POST("/:id/finalize", h.Finalize)
	}
}

// Submit creates a new pending submission owned by the authenticated agent
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req submission.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	agentID, err := getProfileID(c)
	if err != nil {
		h.Unauthorized(c, "Missing authenticated profile")
		return
	}
	req.AgentID = agentID

	result, err := h.submissionService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns the submissions visible to the authenticated profile: an
// agent sees their own, leadership sees their reporting subtree.
func (h *SubmissionHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	profileID, err := getProfileID(c)
	if err != nil {
		h.Unauthorized(c, "Missing authenticated profile")
		return
	}

	profile, err := h.profiles.FindByID(c.Request.Context(), profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	scope, err := hierarchy.Subtree(c.Request.Context(), h.profiles, profile)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}

	result, err := h.submissionService.ListByAgents(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns one submission by id
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Issue transitions a submission to issued
func (h *SubmissionHandler) Issue(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.Issue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Decline transitions a submission to declined
func (h *SubmissionHandler) Decline(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.Decline(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPayment satisfies the current due date and advances the schedule
func (h *SubmissionHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.RecordPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PaymentHistory returns the append-only payment history, oldest first
func (h *SubmissionHandler) PaymentHistory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UploadDocument attaches one multipart file to the submission
func (h *SubmissionHandler) UploadDocument(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read file upload")
		return
	}
	defer file.Close()

	result, err := h.submissionService.UploadDocument(c.Request.Context(), id, submission.UploadDocumentRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Finalize marks the submission's documents as fully submitted and
// promotes a legacy serial if the submission was keyed through one
func (h *SubmissionHandler) Finalize(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.Finalize(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *SubmissionHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid submission id")
		return uuid.Nil, false
	}
	return id, true
}
