package models

import "time"

// Family is the intake case every approvable record hangs off. FormNumber is
// the correlation key copied into approval log entries.
type Family struct {
	FamilyID      int        `gorm:"primaryKey;column:family_id" json:"family_id"`
	FormNumber    string     `gorm:"column:form_number;unique" json:"form_number"`
	HeadFirstName string     `gorm:"column:head_first_name" json:"head_first_name"`
	HeadLastName  string     `gorm:"column:head_last_name" json:"head_last_name"`
	NationalID    *string    `gorm:"column:national_id" json:"national_id,omitempty"`
	Address       *string    `gorm:"column:address" json:"address,omitempty"`
	District      *string    `gorm:"column:district" json:"district,omitempty"`
	ContactNumber *string    `gorm:"column:contact_number" json:"contact_number,omitempty"`
	Email         *string    `gorm:"column:email" json:"email,omitempty"`
	MemberCount   int        `gorm:"column:member_count" json:"member_count"`
	MonthlyIncome *float64   `gorm:"column:monthly_income" json:"monthly_income,omitempty"`
	AssignedTo    *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	CaseWorker *User `gorm:"foreignKey:AssignedTo" json:"case_worker,omitempty"`
}

func (Family) TableName() string {
	return "families"
}
