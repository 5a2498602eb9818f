package domain

import (
	"strconv"
	"strings"
)

// Account number constants
const (
	BranchIDLen  = 3
	MinAccountID = 1_000_000
	MaxAccountID = 10_000_000 // exclusive

	accountNumberSeparator = "-"
)

// RandSource is the subset of *math/rand/v2.Rand used to mint account numbers.
type RandSource interface {
	IntN(n int) int
}

// AccountNumber identifies an account. It has the form AAA-NNNNNNN where AAA
// is the branch id and NNNNNNN the numeric account id. Values are immutable
// and comparable, so == is structural equality and they can key a map.
type AccountNumber struct {
	branchID  string
	accountID int
}

// NewAccountNumber validates and builds an account number.
func NewAccountNumber(branchID string, accountID int) (AccountNumber, error) {
	if !isValidBranchID(branchID) {
		return AccountNumber{}, ErrInvalidBranchID
	}
	if !isValidAccountID(accountID) {
		return AccountNumber{}, ErrInvalidAccountID
	}

	return AccountNumber{branchID: branchID, accountID: accountID}, nil
}

// IsValidAccountNumber reports whether the pair would build an account number.
func IsValidAccountNumber(branchID string, accountID int) bool {
	return isValidBranchID(branchID) && isValidAccountID(accountID)
}

func isValidBranchID(branchID string) bool {
	if len(branchID) != BranchIDLen {
		return false
	}
	for i := 0; i < len(branchID); i++ {
		if branchID[i] < 'A' || branchID[i] > 'Z' {
			return false
		}
	}
	return true
}

func isValidAccountID(accountID int) bool {
	return accountID >= MinAccountID && accountID < MaxAccountID
}

// ParseAccountNumber converts text of the form AAA-NNNNNNN. It never fails
// loudly: malformed or out-of-range input yields ok == false.
func ParseAccountNumber(s string) (AccountNumber, bool) {
	if strings.TrimSpace(s) == "" {
		return AccountNumber{}, false
	}

	parts := strings.Split(s, accountNumberSeparator)
	if len(parts) != 2 {
		return AccountNumber{}, false
	}

	accountID, err := strconv.Atoi(parts[1])
	if err != nil {
		return AccountNumber{}, false
	}

	n, err := NewAccountNumber(parts[0], accountID)
	if err != nil {
		return AccountNumber{}, false
	}
	return n, true
}

// GenerateAccountNumber draws a random, valid account number. Uniqueness is
// the caller's concern.
func GenerateAccountNumber(rng RandSource) AccountNumber {
	branch := make([]byte, BranchIDLen)
	for i := range branch {
		branch[i] = byte('A' + rng.IntN(26))
	}

	return AccountNumber{
		branchID:  string(branch),
		accountID: MinAccountID + rng.IntN(MaxAccountID-MinAccountID),
	}
}

// BranchID returns the three-letter branch code.
func (n AccountNumber) BranchID() string { return n.branchID }

// AccountID returns the numeric account id.
func (n AccountNumber) AccountID() int { return n.accountID }

// IsZero reports whether n is the zero value rather than a constructed number.
func (n AccountNumber) IsZero() bool { return n == AccountNumber{} }

// Equal reports structural equality.
func (n AccountNumber) Equal(other AccountNumber) bool { return n == other }

func (n AccountNumber) String() string {
	return n.branchID + accountNumberSeparator + strconv.Itoa(n.accountID)
}
