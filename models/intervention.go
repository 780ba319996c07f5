package models

import "time"

// Intervention is a proposed assistance measure (training, grant, referral)
// for a family. NULL status means pending.
type Intervention struct {
	InterventionID   int        `gorm:"primaryKey;column:intervention_id" json:"intervention_id"`
	FamilyID         int        `gorm:"column:family_id" json:"family_id"`
	FormNumber       string     `gorm:"column:form_number" json:"form_number"`
	InterventionType string     `gorm:"column:intervention_type" json:"intervention_type"`
	Description      *string    `gorm:"column:description" json:"description,omitempty"`
	EstimatedCost    *float64   `gorm:"column:estimated_cost" json:"estimated_cost,omitempty"`
	Status           *string    `gorm:"column:status" json:"status,omitempty"`
	Remarks          *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
}

func (Intervention) TableName() string {
	return "interventions"
}
