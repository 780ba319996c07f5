package models

import "time"

// FeasibilityPlan is the livelihood feasibility study attached to a family's
// development plan. NULL status means pending.
type FeasibilityPlan struct {
	PlanID          int        `gorm:"primaryKey;column:plan_id" json:"plan_id"`
	FamilyID        int        `gorm:"column:family_id" json:"family_id"`
	FormNumber      string     `gorm:"column:form_number" json:"form_number"`
	PlanTitle       string     `gorm:"column:plan_title" json:"plan_title"`
	Objective       *string    `gorm:"column:objective" json:"objective,omitempty"`
	ProjectedIncome *float64   `gorm:"column:projected_income" json:"projected_income,omitempty"`
	DurationMonths  *int       `gorm:"column:duration_months" json:"duration_months,omitempty"`
	Status          *string    `gorm:"column:status" json:"status,omitempty"`
	Remarks         *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
}

func (FeasibilityPlan) TableName() string {
	return "feasibility_plans"
}
