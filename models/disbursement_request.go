package models

import "time"

// DisbursementRequest is a request for payout ("ROP") raised against a family's
// development plan. NULL status means pending.
type DisbursementRequest struct {
	RequestID     int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	FamilyID      int        `gorm:"column:family_id" json:"family_id"`
	FormNumber    string     `gorm:"column:form_number" json:"form_number"`
	Amount        float64    `gorm:"column:amount" json:"amount"`
	Purpose       string     `gorm:"column:purpose" json:"purpose"`
	InstallmentNo *int       `gorm:"column:installment_no" json:"installment_no,omitempty"`
	RequestedBy   *int       `gorm:"column:requested_by" json:"requested_by,omitempty"`
	Status        *string    `gorm:"column:status" json:"status,omitempty"`
	Remarks       *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Family    Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Requester *User  `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
}

func (DisbursementRequest) TableName() string {
	return "disbursement_requests"
}
