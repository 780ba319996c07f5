package controllers

import (
	"net/http"
	"strconv"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"

	"github.com/gin-gonic/gin"
)

// Approvable records are created pending: status and remarks stay NULL until
// the approval gate decides them.

func parseRecordID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return 0, false
	}
	return id, true
}

// loadFamily fetches the live family row the new record belongs to.
func loadFamily(c *gin.Context, familyID int) (*models.Family, bool) {
	var family models.Family
	if err := config.DB.Where("family_id = ? AND delete_at IS NULL", familyID).First(&family).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return nil, false
	}
	return &family, true
}

func respondWithHistory(c *gin.Context, module string, recordID int, record interface{}) {
	history, err := approvalGate().History(module, recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load approval history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"record":  record,
		"history": history,
	})
}

// POST /api/v1/bank-accounts
func CreateBankAccount(c *gin.Context) {
	var req struct {
		FamilyID      int     `json:"family_id" binding:"required"`
		BankName      string  `json:"bank_name" binding:"required"`
		BranchName    *string `json:"branch_name"`
		AccountNumber string  `json:"account_number" binding:"required"`
		AccountHolder string  `json:"account_holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, ok := loadFamily(c, req.FamilyID)
	if !ok {
		return
	}

	now := time.Now()
	account := models.BankAccount{
		FamilyID:      family.FamilyID,
		FormNumber:    family.FormNumber,
		BankName:      req.BankName,
		BranchName:    req.BranchName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := config.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "bank_account": account})
}

// GET /api/v1/bank-accounts/:id
func GetBankAccount(c *gin.Context) {
	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var account models.BankAccount
	if err := config.DB.Preload("Family").
		Where("bank_account_id = ? AND delete_at IS NULL", recordID).
		First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
		return
	}

	respondWithHistory(c, services.ModuleBankAccount, recordID, account)
}

// POST /api/v1/disbursement-requests
func CreateDisbursementRequest(c *gin.Context) {
	var req struct {
		FamilyID      int     `json:"family_id" binding:"required"`
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		Purpose       string  `json:"purpose" binding:"required"`
		InstallmentNo *int    `json:"installment_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, ok := loadFamily(c, req.FamilyID)
	if !ok {
		return
	}

	var requestedBy *int
	if userIDValue, exists := c.Get("userID"); exists {
		if userID, ok := userIDValue.(int); ok {
			requestedBy = &userID
		}
	}

	now := time.Now()
	request := models.DisbursementRequest{
		FamilyID:      family.FamilyID,
		FormNumber:    family.FormNumber,
		Amount:        req.Amount,
		Purpose:       req.Purpose,
		InstallmentNo: req.InstallmentNo,
		RequestedBy:   requestedBy,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create disbursement request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "disbursement_request": request})
}

// GET /api/v1/disbursement-requests/:id
func GetDisbursementRequest(c *gin.Context) {
	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var request models.DisbursementRequest
	if err := config.DB.Preload("Family").Preload("Requester").
		Where("request_id = ? AND delete_at IS NULL", recordID).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Disbursement request not found"})
		return
	}

	respondWithHistory(c, services.ModuleROP, recordID, request)
}

// POST /api/v1/feasibility-plans
func CreateFeasibilityPlan(c *gin.Context) {
	var req struct {
		FamilyID        int      `json:"family_id" binding:"required"`
		PlanTitle       string   `json:"plan_title" binding:"required"`
		Objective       *string  `json:"objective"`
		ProjectedIncome *float64 `json:"projected_income"`
		DurationMonths  *int     `json:"duration_months"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, ok := loadFamily(c, req.FamilyID)
	if !ok {
		return
	}

	now := time.Now()
	plan := models.FeasibilityPlan{
		FamilyID:        family.FamilyID,
		FormNumber:      family.FormNumber,
		PlanTitle:       req.PlanTitle,
		Objective:       req.Objective,
		ProjectedIncome: req.ProjectedIncome,
		DurationMonths:  req.DurationMonths,
		CreateAt:        &now,
		UpdateAt:        &now,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create feasibility plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "feasibility_plan": plan})
}

// GET /api/v1/feasibility-plans/:id
func GetFeasibilityPlan(c *gin.Context) {
	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var plan models.FeasibilityPlan
	if err := config.DB.Preload("Family").
		Where("plan_id = ? AND delete_at IS NULL", recordID).
		First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feasibility plan not found"})
		return
	}

	respondWithHistory(c, services.ModuleFeasibilityPlan, recordID, plan)
}

// POST /api/v1/interventions
func CreateIntervention(c *gin.Context) {
	var req struct {
		FamilyID         int      `json:"family_id" binding:"required"`
		InterventionType string   `json:"intervention_type" binding:"required"`
		Description      *string  `json:"description"`
		EstimatedCost    *float64 `json:"estimated_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, ok := loadFamily(c, req.FamilyID)
	if !ok {
		return
	}

	now := time.Now()
	intervention := models.Intervention{
		FamilyID:         family.FamilyID,
		FormNumber:       family.FormNumber,
		InterventionType: req.InterventionType,
		Description:      req.Description,
		EstimatedCost:    req.EstimatedCost,
		CreateAt:         &now,
		UpdateAt:         &now,
	}
	if err := config.DB.Create(&intervention).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create intervention"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "intervention": intervention})
}

// GET /api/v1/interventions/:id
func GetIntervention(c *gin.Context) {
	recordID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var intervention models.Intervention
	if err := config.DB.Preload("Family").
		Where("intervention_id = ? AND delete_at IS NULL", recordID).
		First(&intervention).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Intervention not found"})
		return
	}

	respondWithHistory(c, services.ModuleIntervention, recordID, intervention)
}
