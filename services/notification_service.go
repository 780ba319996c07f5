package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"case-management-api/config"
	"case-management-api/models"

	"gorm.io/gorm"
)

// NotifyDecision tells the family's case worker (and the family itself, when
// it has an e-mail on file) about a committed approval decision. Delivery is
// best effort: the decision is already durable, so failures are only logged.
func NotifyDecision(db *gorm.DB, decision *Decision) {
	var family models.Family
	err := db.Where("form_number = ? AND delete_at IS NULL", decision.FormNumber).
		First(&family).Error
	if err != nil {
		log.Printf("notification skipped: family %s not found: %v", decision.FormNumber, err)
		return
	}

	verb := "approved"
	notifType := "success"
	if decision.ActionType == ActionRejection {
		verb = "rejected"
		notifType = "warning"
	}
	title := fmt.Sprintf("%s %s", decision.Module, verb)
	message := fmt.Sprintf("%s record #%d for case %s was %s by %s.",
		decision.Module, decision.RecordID, decision.FormNumber, verb, decision.ActionBy)

	if family.AssignedTo != nil {
		familyID := uint(family.FamilyID)
		notification := models.Notification{
			UserID:          uint(*family.AssignedTo),
			Title:           title,
			Message:         message,
			Type:            notifType,
			RelatedFamilyID: &familyID,
			CreateAt:        time.Now(),
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("Failed to create decision notification: %v", err)
		}
	}

	if family.Email != nil && strings.TrimSpace(*family.Email) != "" {
		html := fmt.Sprintf(
			"<p>Dear %s %s,</p><p>%s</p><p>Remarks: %s</p>",
			family.HeadFirstName, family.HeadLastName, message, decision.Remarks)
		if err := config.SendMail([]string{*family.Email}, title, html); err != nil {
			log.Printf("Failed to send decision mail for %s: %v", decision.FormNumber, err)
		}
	}
}
