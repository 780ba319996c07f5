package services

import (
	"time"

	"gorm.io/gorm"
)

// RecordRef is the slice of an approvable record the gate needs: the current
// status and the form number copied into the audit trail.
type RecordRef struct {
	Status     *string
	FormNumber string
}

// RecordAdapter is the per-module seam of the approval gate. New approvable
// record types implement these two primitives; the transition algorithm,
// locking rule and audit emission are never duplicated.
type RecordAdapter interface {
	Module() string

	// ReadCurrent loads the record's status and form number inside tx. A
	// missing or soft-deleted record surfaces gorm.ErrRecordNotFound.
	ReadCurrent(tx *gorm.DB, recordID int) (*RecordRef, error)

	// ConditionalWrite applies the status change as a single compare-and-swap
	// UPDATE that refuses to touch a row whose status already equals the
	// approved token. It reports how many rows were changed.
	ConditionalWrite(tx *gorm.DB, recordID int, approvedToken, newStatus, remarks string) (int64, error)
}

// tableAdapter covers every current module: the record tables share the
// status, remarks, form_number and delete_at columns and differ only in the
// table and id column names.
type tableAdapter struct {
	module   string
	table    string
	idColumn string
}

func (a tableAdapter) Module() string { return a.module }

func (a tableAdapter) ReadCurrent(tx *gorm.DB, recordID int) (*RecordRef, error) {
	var row struct {
		Status     *string `gorm:"column:status"`
		FormNumber string  `gorm:"column:form_number"`
	}
	err := tx.Table(a.table).
		Select("status, form_number").
		Where(a.idColumn+" = ? AND delete_at IS NULL", recordID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &RecordRef{Status: row.Status, FormNumber: row.FormNumber}, nil
}

func (a tableAdapter) ConditionalWrite(tx *gorm.DB, recordID int, approvedToken, newStatus, remarks string) (int64, error) {
	// The status predicate is the actual locking decision: the store
	// evaluates it and performs the write atomically, so two racing
	// approvals cannot both win.
	result := tx.Table(a.table).
		Where(a.idColumn+" = ? AND delete_at IS NULL", recordID).
		Where("(status IS NULL OR LOWER(TRIM(status)) <> LOWER(?))", approvedToken).
		Updates(map[string]interface{}{
			"status":    newStatus,
			"remarks":   remarks,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func newBankAccountAdapter() RecordAdapter {
	return tableAdapter{module: ModuleBankAccount, table: "bank_accounts", idColumn: "bank_account_id"}
}

func newDisbursementRequestAdapter() RecordAdapter {
	return tableAdapter{module: ModuleROP, table: "disbursement_requests", idColumn: "request_id"}
}

func newFeasibilityPlanAdapter() RecordAdapter {
	return tableAdapter{module: ModuleFeasibilityPlan, table: "feasibility_plans", idColumn: "plan_id"}
}

func newInterventionAdapter() RecordAdapter {
	return tableAdapter{module: ModuleIntervention, table: "interventions", idColumn: "intervention_id"}
}
