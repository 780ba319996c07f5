package services

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// Approval modules. The module name doubles as the module_name value written
// to approval_logs.
const (
	ModuleBankAccount     = "Bank Account"
	ModuleROP             = "ROP"
	ModuleFeasibilityPlan = "Feasibility Plan"
	ModuleIntervention    = "Intervention"
)

// Action types recorded against approval log entries.
const (
	ActionApproval  = "Approval"
	ActionRejection = "Rejection"
)

// Fixed per-module status vocabularies. Bank Account is absent on purpose:
// its vocabulary comes from the CHECK constraint on bank_accounts.status.
var fixedVocabularies = map[string][]string{
	ModuleROP:             {"Accepted", "Rejected"},
	ModuleFeasibilityPlan: {"Approved", "Rejected"},
	ModuleIntervention:    {"Approved", "Rejected"},
}

// Used when the bank_accounts status constraint is missing or unreadable.
var defaultBankAccountVocabulary = []string{"Approved", "Rejected"}

var (
	approvalSynonyms  = []string{"approved", "approve", "accepted", "accept"}
	rejectionSynonyms = []string{"rejected", "reject"}

	// Matches every single-quoted literal in a CHECK clause such as
	// (`status` in (_utf8mb4'Approved',_utf8mb4'Rejected')).
	checkLiteralPattern = regexp.MustCompile(`'([^']+)'`)
)

// VocabularyService resolves the canonical status tokens each module's store
// accepts and maps free-form verdicts onto them. Resolved vocabularies are
// cached for the life of the process; a schema change to the bank_accounts
// constraint only takes effect after a restart.
type VocabularyService struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[string][]string
}

func NewVocabularyService(db *gorm.DB) *VocabularyService {
	return &VocabularyService{
		db:    db,
		cache: make(map[string][]string),
	}
}

// Resolve returns the ordered canonical token set for a module.
func (s *VocabularyService) Resolve(module string) ([]string, error) {
	s.mu.RLock()
	cached, ok := s.cache[module]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if vocab, ok := fixedVocabularies[module]; ok {
		s.store(module, vocab)
		return vocab, nil
	}

	if module == ModuleBankAccount {
		vocab, err := s.introspectBankAccountVocabulary()
		if err != nil {
			// Transient failure: fall back for this call but leave the cache
			// empty so a later call can try the schema again.
			return defaultBankAccountVocabulary, nil
		}
		s.store(module, vocab)
		return vocab, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownModule, module)
}

func (s *VocabularyService) store(module string, vocab []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Resolution is deterministic, so a concurrent overwrite is harmless.
	s.cache[module] = vocab
}

// introspectBankAccountVocabulary reads the CHECK constraint governing
// bank_accounts.status and extracts its quoted literals in order.
func (s *VocabularyService) introspectBankAccountVocabulary() ([]string, error) {
	var clause string
	err := s.db.Raw(`
		SELECT cc.CHECK_CLAUSE
		FROM information_schema.TABLE_CONSTRAINTS tc
		JOIN information_schema.CHECK_CONSTRAINTS cc
		  ON cc.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA
		 AND cc.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
		WHERE tc.CONSTRAINT_TYPE = 'CHECK'
		  AND tc.TABLE_SCHEMA = DATABASE()
		  AND tc.TABLE_NAME = 'bank_accounts'
		  AND cc.CHECK_CLAUSE LIKE '%status%'
		LIMIT 1`).Scan(&clause).Error
	if err != nil {
		return nil, classifyStoreError(err)
	}

	vocab := extractQuotedLiterals(clause)
	if len(vocab) == 0 {
		// No constraint, or one we cannot parse. The default pair is the
		// documented fallback; cache it so the answer stays stable.
		return defaultBankAccountVocabulary, nil
	}
	return vocab, nil
}

func extractQuotedLiterals(clause string) []string {
	// information_schema stores literals with escaped quotes, e.g.
	// (`status` in (_utf8mb4\'Approved\',_utf8mb4\'Rejected\')).
	clause = strings.ReplaceAll(clause, `\'`, `'`)
	matches := checkLiteralPattern.FindAllStringSubmatch(clause, -1)
	seen := make(map[string]struct{}, len(matches))
	literals := make([]string, 0, len(matches))
	for _, m := range matches {
		literal := strings.TrimSpace(m[1])
		if literal == "" {
			continue
		}
		key := strings.ToLower(literal)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		literals = append(literals, literal)
	}
	return literals
}

// MapToCanonical maps a free-form verdict onto the module's canonical token
// and the action type it represents. The mapping is pure for a fixed
// vocabulary snapshot: equal trimmed lowercased inputs give equal results.
func (s *VocabularyService) MapToCanonical(module, rawVerdict string) (string, string, error) {
	verdict := strings.ToLower(strings.TrimSpace(rawVerdict))

	var (
		family     []string
		actionType string
	)
	switch {
	case containsString(approvalSynonyms, verdict):
		family, actionType = approvalSynonyms, ActionApproval
	case containsString(rejectionSynonyms, verdict):
		family, actionType = rejectionSynonyms, ActionRejection
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidVerdict, rawVerdict)
	}

	vocab, err := s.Resolve(module)
	if err != nil {
		return "", "", err
	}

	if token, ok := findFamilyToken(vocab, family, actionType); ok {
		return token, actionType, nil
	}
	return "", "", fmt.Errorf("%w: %q in module %q", ErrAmbiguousVerdict, rawVerdict, module)
}

// ApprovedToken returns the vocabulary member that marks a record as locked.
func (s *VocabularyService) ApprovedToken(module string) (string, error) {
	vocab, err := s.Resolve(module)
	if err != nil {
		return "", err
	}
	if token, ok := findFamilyToken(vocab, approvalSynonyms, ActionApproval); ok {
		return token, nil
	}
	return "", fmt.Errorf("%w: module %q", ErrVocabularyMisconfigured, module)
}

// findFamilyToken picks the vocabulary member belonging to a decision family:
// an exact case-insensitive synonym match first, then a substring match on
// the family stem. Unmatched families are reported, never guessed.
func findFamilyToken(vocab, family []string, actionType string) (string, bool) {
	for _, token := range vocab {
		if containsString(family, strings.ToLower(strings.TrimSpace(token))) {
			return token, true
		}
	}

	stems := []string{"accept", "approv"}
	if actionType == ActionRejection {
		stems = []string{"reject"}
	}
	for _, token := range vocab {
		lowered := strings.ToLower(token)
		for _, stem := range stems {
			if strings.Contains(lowered, stem) {
				return token, true
			}
		}
	}
	return "", false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
