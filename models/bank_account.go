package models

import "time"

// BankAccount is the approvable bank-account record for a family. Status is
// free text whose allowed values live in a CHECK constraint on the column;
// NULL means the record is still pending.
type BankAccount struct {
	BankAccountID int        `gorm:"primaryKey;column:bank_account_id" json:"bank_account_id"`
	FamilyID      int        `gorm:"column:family_id" json:"family_id"`
	FormNumber    string     `gorm:"column:form_number" json:"form_number"`
	BankName      string     `gorm:"column:bank_name" json:"bank_name"`
	BranchName    *string    `gorm:"column:branch_name" json:"branch_name,omitempty"`
	AccountNumber string     `gorm:"column:account_number" json:"account_number"`
	AccountHolder string     `gorm:"column:account_holder" json:"account_holder"`
	Status        *string    `gorm:"column:status" json:"status,omitempty"`
	Remarks       *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}
