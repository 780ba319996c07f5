package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

var (
	selectRequestPattern = regexp.MustCompile(`SELECT status, form_number FROM .disbursement_requests. WHERE request_id = \? AND delete_at IS NULL LIMIT 1`)
	updateRequestPattern = regexp.MustCompile(`UPDATE .disbursement_requests. SET .remarks.=\?,.status.=\?,.update_at.=\? WHERE \(*request_id = \? AND delete_at IS NULL\)* AND \(+status IS NULL OR LOWER\(TRIM\(status\)\) <> LOWER\(\?\)\)+`)
	insertLogPattern     = regexp.MustCompile(`INSERT INTO .approval_logs.`)
)

func TestAttemptTransitionApprovesPendingRecord(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(1)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{{nil, "CM-2026-0001"}},
		},
		{
			kind:    kindExec,
			pattern: updateRequestPattern,
			args:    []driver.Value{"ok", "Accepted", anyArg, int64(1), "Accepted"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: insertLogPattern,
			args:    []driver.Value{ModuleROP, int64(1), "CM-2026-0001", "Alice Anders", ActionApproval, "Accepted", "ok"},
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	decision, err := gate.AttemptTransition(ModuleROP, 1, "approved", "Alice Anders", "ok")
	if err != nil {
		t.Fatalf("AttemptTransition returned error: %v", err)
	}
	if decision.NewStatus != "Accepted" {
		t.Fatalf("expected new status Accepted, got %q", decision.NewStatus)
	}
	if decision.ActionType != ActionApproval {
		t.Fatalf("expected action type Approval, got %q", decision.ActionType)
	}
	if decision.FormNumber != "CM-2026-0001" {
		t.Fatalf("expected form number CM-2026-0001, got %q", decision.FormNumber)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
	begins, commits, rollbacks := state.txCounts()
	if begins != 1 || commits != 1 || rollbacks != 0 {
		t.Fatalf("expected 1 begin / 1 commit / 0 rollbacks, got %d/%d/%d", begins, commits, rollbacks)
	}
}

func TestAttemptTransitionConflictWhenAlreadyApproved(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(1)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{{"Accepted", "CM-2026-0001"}},
		},
		{
			// The conditional update, not the read above, is the gating
			// decision: the predicate refuses the locked row.
			kind:    kindExec,
			pattern: updateRequestPattern,
			args:    []driver.Value{"no", "Rejected", anyArg, int64(1), "Accepted"},
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	_, err := gate.AttemptTransition(ModuleROP, 1, "rejected", "Ben Okoro", "no")
	if !errors.Is(err, ErrAlreadyLocked) {
		t.Fatalf("expected ErrAlreadyLocked, got %v", err)
	}

	// No audit insert was scripted; a leftover step or an unexpected insert
	// would have failed above.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
	_, commits, rollbacks := state.txCounts()
	if commits != 0 || rollbacks != 1 {
		t.Fatalf("expected 0 commits / 1 rollback, got %d/%d", commits, rollbacks)
	}
}

func TestAttemptTransitionRejectedRecordCanBeApproved(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{{"Rejected", "CM-2026-0042"}},
		},
		{
			kind:    kindExec,
			pattern: updateRequestPattern,
			args:    []driver.Value{"second review passed", "Accepted", anyArg, int64(2), "Accepted"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: insertLogPattern,
			args:    []driver.Value{ModuleROP, int64(2), "CM-2026-0042", "Alice Anders", ActionApproval, "Accepted", "second review passed"},
			result:  scriptedResult{lastInsertID: 8, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	decision, err := gate.AttemptTransition(ModuleROP, 2, "accepted", "Alice Anders", "second review passed")
	if err != nil {
		t.Fatalf("AttemptTransition returned error: %v", err)
	}
	if decision.NewStatus != "Accepted" {
		t.Fatalf("expected Accepted, got %q", decision.NewStatus)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAttemptTransitionRejectionMayBeResubmitted(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(3)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{{"Rejected", "CM-2026-0099"}},
		},
		{
			kind:    kindExec,
			pattern: updateRequestPattern,
			args:    []driver.Value{"missing bank letter", "Rejected", anyArg, int64(3), "Accepted"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: insertLogPattern,
			args:    []driver.Value{ModuleROP, int64(3), "CM-2026-0099", "Ben Okoro", ActionRejection, "Rejected", "missing bank letter"},
			result:  scriptedResult{lastInsertID: 9, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	decision, err := gate.AttemptTransition(ModuleROP, 3, "rejected", "Ben Okoro", "missing bank letter")
	if err != nil {
		t.Fatalf("AttemptTransition returned error: %v", err)
	}
	if decision.ActionType != ActionRejection {
		t.Fatalf("expected Rejection, got %q", decision.ActionType)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAttemptTransitionInvalidVerdictTouchesNothing(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	_, err := gate.AttemptTransition(ModuleFeasibilityPlan, 5, "maybe", "Alice Anders", "")
	if !errors.Is(err, ErrInvalidVerdict) {
		t.Fatalf("expected ErrInvalidVerdict, got %v", err)
	}

	begins, _, _ := state.txCounts()
	if begins != 0 {
		t.Fatalf("expected no transaction for invalid verdict, got %d begins", begins)
	}
}

func TestAttemptTransitionNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(404)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	_, err := gate.AttemptTransition(ModuleROP, 404, "approved", "Alice Anders", "")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
	_, commits, rollbacks := state.txCounts()
	if commits != 0 || rollbacks != 1 {
		t.Fatalf("expected 0 commits / 1 rollback, got %d/%d", commits, rollbacks)
	}
}

func TestAttemptTransitionStoresNoRemarksForBlankInput(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectRequestPattern,
			args:    []driver.Value{int64(6)},
			columns: []string{"status", "form_number"},
			rows:    [][]driver.Value{{nil, "CM-2026-0100"}},
		},
		{
			kind:    kindExec,
			pattern: updateRequestPattern,
			args:    []driver.Value{NoRemarks, "Accepted", anyArg, int64(6), "Accepted"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: insertLogPattern,
			args:    []driver.Value{ModuleROP, int64(6), "CM-2026-0100", "Alice Anders", ActionApproval, "Accepted", NoRemarks},
			result:  scriptedResult{lastInsertID: 10, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	decision, err := gate.AttemptTransition(ModuleROP, 6, "approved", "Alice Anders", "   ")
	if err != nil {
		t.Fatalf("AttemptTransition returned error: %v", err)
	}
	if decision.Remarks != NoRemarks {
		t.Fatalf("expected remarks %q, got %q", NoRemarks, decision.Remarks)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestAttemptTransitionUnknownModule(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	_, err := gate.AttemptTransition("Budget Line", 1, "approved", "Alice Anders", "")
	if !errors.Is(err, ErrUnknownModule) {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}

	begins, _, _ := state.txCounts()
	if begins != 0 {
		t.Fatalf("expected no transaction, got %d begins", begins)
	}
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	newer := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .approval_logs. WHERE module_name = \? AND record_id = \? ORDER BY action_at DESC, log_id DESC`),
			args:    []driver.Value{ModuleROP, int64(1)},
			columns: []string{"log_id", "module_name", "record_id", "form_number", "action_by", "action_at", "action_type", "action_level", "remarks"},
			rows: [][]driver.Value{
				{int64(2), ModuleROP, int64(1), "CM-2026-0001", "Alice Anders", newer, ActionApproval, "Accepted", "ok"},
				{int64(1), ModuleROP, int64(1), "CM-2026-0001", "Ben Okoro", older, ActionRejection, "Rejected", "incomplete"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	gate := NewApprovalGate(db, NewVocabularyService(db))

	entries, err := gate.History(ModuleROP, 1)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LogID != 2 || entries[0].ActionType != ActionApproval {
		t.Fatalf("expected newest entry first, got %+v", entries[0])
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
