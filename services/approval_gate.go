package services

import (
	"errors"
	"fmt"
	"strings"

	"case-management-api/models"

	"gorm.io/gorm"
)

// NoRemarks is stored when a decision comes in with empty or whitespace-only
// remarks, so history views never render an empty cell.
const NoRemarks = "No Remarks"

// Decision describes one committed status transition.
type Decision struct {
	Module     string `json:"module"`
	RecordID   int    `json:"record_id"`
	FormNumber string `json:"form_number"`
	NewStatus  string `json:"new_status"`
	ActionType string `json:"action_type"`
	ActionBy   string `json:"action_by"`
	Remarks    string `json:"remarks"`
}

// ApprovalGate runs the shared transition algorithm for every approvable
// record type. One call is one transaction: read, compare-and-swap update,
// audit insert, commit. An approved record never changes again through the
// gate; a rejected record may still be re-decided either way.
type ApprovalGate struct {
	db       *gorm.DB
	vocab    *VocabularyService
	adapters map[string]RecordAdapter
}

func NewApprovalGate(db *gorm.DB, vocab *VocabularyService) *ApprovalGate {
	gate := &ApprovalGate{
		db:       db,
		vocab:    vocab,
		adapters: make(map[string]RecordAdapter),
	}
	gate.Register(newBankAccountAdapter())
	gate.Register(newDisbursementRequestAdapter())
	gate.Register(newFeasibilityPlanAdapter())
	gate.Register(newInterventionAdapter())
	return gate
}

// Register adds a record adapter; later registrations win on name collision.
func (g *ApprovalGate) Register(adapter RecordAdapter) {
	g.adapters[adapter.Module()] = adapter
}

// AttemptTransition tries to move one record to the verdict's canonical
// status. It returns the committed decision, or one of the sentinel errors in
// approval_errors.go. Verdict validation happens before any store access.
func (g *ApprovalGate) AttemptTransition(module string, recordID int, rawVerdict, actorName, remarks string) (*Decision, error) {
	adapter, ok := g.adapters[module]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}

	canonical, actionType, err := g.vocab.MapToCanonical(module, rawVerdict)
	if err != nil {
		return nil, err
	}

	// The locking predicate always compares against the approval token, even
	// when the verdict itself is a rejection.
	approvedToken := canonical
	if actionType == ActionRejection {
		approvedToken, err = g.vocab.ApprovedToken(module)
		if err != nil {
			return nil, err
		}
	}

	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		remarks = NoRemarks
	}

	tx := g.db.Begin()
	if tx.Error != nil {
		return nil, classifyStoreError(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Existence fast path. The conditional update below is the gating
	// decision under races, not this read.
	ref, err := adapter.ReadCurrent(tx, recordID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s record %d", ErrRecordNotFound, module, recordID)
		}
		return nil, classifyStoreError(err)
	}

	rows, err := adapter.ConditionalWrite(tx, recordID, approvedToken, canonical, remarks)
	if err != nil {
		tx.Rollback()
		return nil, classifyStoreError(err)
	}
	if rows == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s record %d", ErrAlreadyLocked, module, recordID)
	}

	entry := models.ApprovalLog{
		ModuleName:  module,
		RecordID:    recordID,
		FormNumber:  ref.FormNumber,
		ActionBy:    actorName,
		ActionType:  actionType,
		ActionLevel: canonical,
		Remarks:     remarks,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, classifyStoreError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, classifyStoreError(err)
	}

	return &Decision{
		Module:     module,
		RecordID:   recordID,
		FormNumber: ref.FormNumber,
		NewStatus:  canonical,
		ActionType: actionType,
		ActionBy:   actorName,
		Remarks:    remarks,
	}, nil
}

// History returns a record's approval trail, newest decision first.
func (g *ApprovalGate) History(module string, recordID int) ([]models.ApprovalLog, error) {
	if _, ok := g.adapters[module]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}

	var entries []models.ApprovalLog
	err := g.db.Where("module_name = ? AND record_id = ?", module, recordID).
		Order("action_at DESC, log_id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return entries, nil
}
