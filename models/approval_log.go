package models

import "time"

// ApprovalLog is the append-only audit trail of approval decisions. Rows are
// only ever inserted; there is no update or delete path anywhere in the code.
// ModuleName, RecordID and FormNumber are denormalized so the trail stays
// readable even if the parent record changes later.
type ApprovalLog struct {
	LogID       int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	ModuleName  string    `gorm:"column:module_name" json:"module_name"`
	RecordID    int       `gorm:"column:record_id" json:"record_id"`
	FormNumber  string    `gorm:"column:form_number" json:"form_number"`
	ActionBy    string    `gorm:"column:action_by" json:"action_by"`
	ActionAt    time.Time `gorm:"column:action_at;default:CURRENT_TIMESTAMP" json:"action_at"`
	ActionType  string    `gorm:"column:action_type" json:"action_type"` // Approval|Rejection
	ActionLevel string    `gorm:"column:action_level" json:"action_level"`
	Remarks     string    `gorm:"column:remarks" json:"remarks"`
}

func (ApprovalLog) TableName() string {
	return "approval_logs"
}
