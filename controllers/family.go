package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newFormNumber mints the correlation key every approvable record carries.
func newFormNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CM-" + strconv.Itoa(time.Now().Year()) + "-" + suffix
}

type familyRequest struct {
	HeadFirstName string   `json:"head_first_name" binding:"required"`
	HeadLastName  string   `json:"head_last_name" binding:"required"`
	NationalID    *string  `json:"national_id"`
	Address       *string  `json:"address"`
	District      *string  `json:"district"`
	ContactNumber *string  `json:"contact_number"`
	Email         *string  `json:"email"`
	MemberCount   int      `json:"member_count" binding:"required,gt=0"`
	MonthlyIncome *float64 `json:"monthly_income"`
	AssignedTo    *int     `json:"assigned_to"`
}

// normalizeFamilyRequest cleans the free-text fields and verifies the
// contact address. Decision notifications are mailed to this address, so a
// malformed one is refused at intake instead of failing silently later.
func normalizeFamilyRequest(c *gin.Context, req *familyRequest) bool {
	req.HeadFirstName = utils.SanitizeInput(req.HeadFirstName)
	req.HeadLastName = utils.SanitizeInput(req.HeadLastName)
	if req.Address != nil {
		cleaned := utils.SanitizeInput(*req.Address)
		req.Address = &cleaned
	}
	if req.Email != nil && *req.Email != "" && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return false
	}
	return true
}

// POST /api/v1/families
func CreateFamily(c *gin.Context) {
	var req familyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !normalizeFamilyRequest(c, &req) {
		return
	}

	now := time.Now()
	family := models.Family{
		FormNumber:    newFormNumber(),
		HeadFirstName: req.HeadFirstName,
		HeadLastName:  req.HeadLastName,
		NationalID:    req.NationalID,
		Address:       req.Address,
		District:      req.District,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		MemberCount:   req.MemberCount,
		MonthlyIncome: req.MonthlyIncome,
		AssignedTo:    req.AssignedTo,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&family).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "family": family})
}

// GET /api/v1/families/:id
func GetFamily(c *gin.Context) {
	familyID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var family models.Family
	if err := config.DB.Preload("CaseWorker").
		Where("family_id = ? AND delete_at IS NULL", familyID).
		First(&family).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "family": family})
}

// GET /api/v1/families?district=&assigned_to=&page=&page_size=
func GetFamilies(c *gin.Context) {
	page := parsePOS(c.Query("page"), 1)
	size := parsePOS(c.Query("page_size"), 20)
	offset := (page - 1) * size

	query := config.DB.Model(&models.Family{}).Where("delete_at IS NULL")
	if district := strings.TrimSpace(c.Query("district")); district != "" {
		query = query.Where("district = ?", district)
	}
	if assignedTo := parseUintPtr(c.Query("assigned_to")); assignedTo != nil {
		query = query.Where("assigned_to = ?", *assignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count families"})
		return
	}

	var families []models.Family
	if err := query.Order("create_at DESC").
		Limit(size).
		Offset(offset).
		Find(&families).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch families"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": families,
		"meta": gin.H{
			"page":      page,
			"page_size": size,
			"total":     total,
		},
	})
}

// PUT /api/v1/families/:id
func UpdateFamily(c *gin.Context) {
	familyID, ok := parseRecordID(c)
	if !ok {
		return
	}

	var req familyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !normalizeFamilyRequest(c, &req) {
		return
	}

	var family models.Family
	if err := config.DB.Where("family_id = ? AND delete_at IS NULL", familyID).First(&family).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"head_first_name": req.HeadFirstName,
		"head_last_name":  req.HeadLastName,
		"national_id":     req.NationalID,
		"address":         req.Address,
		"district":        req.District,
		"contact_number":  req.ContactNumber,
		"email":           req.Email,
		"member_count":    req.MemberCount,
		"monthly_income":  req.MonthlyIncome,
		"assigned_to":     req.AssignedTo,
		"update_at":       now,
	}
	if err := config.DB.Model(&family).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "family": family})
}

// DELETE /api/v1/families/:id (soft delete)
func DeleteFamily(c *gin.Context) {
	familyID, ok := parseRecordID(c)
	if !ok {
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Family{}).
		Where("family_id = ? AND delete_at IS NULL", familyID).
		Update("delete_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete family"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Family deleted"})
}
