package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"

	"github.com/gin-gonic/gin"
)

var (
	gateOnce sync.Once
	gate     *services.ApprovalGate
)

// approvalGate returns the process-wide gate, built on first use so tests and
// tools can initialize config.DB first.
func approvalGate() *services.ApprovalGate {
	gateOnce.Do(func() {
		gate = services.NewApprovalGate(config.DB, services.NewVocabularyService(config.DB))
	})
	return gate
}

type decisionRequest struct {
	Verdict string `json:"verdict" binding:"required"`
	Remarks string `json:"remarks"`
}

// currentActor resolves the display name recorded against the decision.
func currentActor(c *gin.Context) (string, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := userIDValue.(int)
	if !ok {
		return "", false
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		return "", false
	}
	return user.DisplayName(), true
}

func decideRecord(c *gin.Context, module string) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil || recordID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User context missing"})
		return
	}

	decision, err := approvalGate().AttemptTransition(module, recordID, req.Verdict, actor, req.Remarks)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	services.NotifyDecision(config.DB, decision)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"decision": decision,
	})
}

func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidVerdict),
		errors.Is(err, services.ErrAmbiguousVerdict),
		errors.Is(err, services.ErrUnknownModule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Record store temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
	}
}

// POST /api/v1/bank-accounts/:id/decision
func DecideBankAccount(c *gin.Context) {
	decideRecord(c, services.ModuleBankAccount)
}

// POST /api/v1/disbursement-requests/:id/decision
func DecideDisbursementRequest(c *gin.Context) {
	decideRecord(c, services.ModuleROP)
}

// POST /api/v1/feasibility-plans/:id/decision
func DecideFeasibilityPlan(c *gin.Context) {
	decideRecord(c, services.ModuleFeasibilityPlan)
}

// POST /api/v1/interventions/:id/decision
func DecideIntervention(c *gin.Context) {
	decideRecord(c, services.ModuleIntervention)
}

// OverrideBankAccountDecision lets an admin re-issue a bank account decision,
// e.g. to approve a record a supervisor rejected. It goes through the same
// gate, so an approved record stays immutable here too.
// POST /api/v1/admin/bank-accounts/:id/override
func OverrideBankAccountDecision(c *gin.Context) {
	decideRecord(c, services.ModuleBankAccount)
}
