// controllers/approval_records.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"case-management-api/config"
	"case-management-api/models"

	"github.com/gin-gonic/gin"
)

func parseUintPtr(q string) *uint {
	if q == "" {
		return nil
	}
	n, err := strconv.ParseUint(q, 10, 64)
	if err != nil {
		return nil
	}
	u := uint(n)
	return &u
}

func parsePOS(q string, def int) int {
	if q == "" {
		return def
	}
	n, err := strconv.Atoi(q)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func safeSortLogs(s string) string {
	whitelist := map[string]bool{
		"action_at": true, "module_name": true, "form_number": true, "action_by": true,
	}
	col := strings.ToLower(strings.TrimSpace(s))
	if whitelist[col] {
		return col
	}
	return "action_at"
}

// GET /api/v1/admin/approval-logs?module=&action_by=&form_number=&action_type=&from=&to=&page=&page_size=&sort=&dir=
func GetApprovalLogs(c *gin.Context) {
	db := config.DB

	module := strings.TrimSpace(c.Query("module"))
	actionBy := strings.TrimSpace(c.Query("action_by"))
	formNumber := strings.TrimSpace(c.Query("form_number"))
	actionType := strings.TrimSpace(c.Query("action_type"))
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	page := parsePOS(c.Query("page"), 1)
	size := parsePOS(c.Query("page_size"), 20)
	offset := (page - 1) * size

	q := db.Model(&models.ApprovalLog{})
	if module != "" {
		q = q.Where("module_name = ?", module)
	}
	if actionBy != "" {
		q = q.Where("action_by = ?", actionBy)
	}
	if formNumber != "" {
		q = q.Where("form_number = ?", formNumber)
	}
	if actionType != "" {
		q = q.Where("action_type = ?", actionType)
	}
	if from != "" {
		q = q.Where("action_at >= ?", from)
	}
	if to != "" {
		q = q.Where("action_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort := safeSortLogs(c.Query("sort"))
	dir := strings.ToUpper(c.Query("dir"))
	if dir != "ASC" {
		dir = "DESC"
	}

	var rows []models.ApprovalLog
	if err := q.Order(sort + " " + dir).
		Limit(size).
		Offset(offset).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{
			"page":      page,
			"page_size": size,
			"total":     total,
		},
	})
}
