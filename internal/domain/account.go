package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxBalance bounds every balance. It is the 32-bit signed maximum so that
// existing save files stay readable.
const MaxBalance int64 = math.MaxInt32

const accountSeparator = ":"

// Account holds a whole-unit balance keyed by an AccountNumber.
type Account struct {
	number  AccountNumber
	balance int64
}

// NewAccount creates an account with the given opening balance.
func NewAccount(number AccountNumber, balance int64) (*Account, error) {
	if number.IsZero() {
		return nil, ErrMissingAccountNumber
	}
	if balance < 0 || balance > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}

	return &Account{number: number, balance: balance}, nil
}

// ParseAccount converts the "{number}:{balance}" text form.
func ParseAccount(s string) (*Account, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}

	parts := strings.Split(s, accountSeparator)
	if len(parts) != 2 {
		return nil, false
	}

	number, ok := ParseAccountNumber(parts[0])
	if !ok {
		return nil, false
	}

	balance, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, false
	}

	acct, err := NewAccount(number, balance)
	if err != nil {
		return nil, false
	}
	return acct, true
}

// Number returns the account number.
func (a *Account) Number() AccountNumber { return a.number }

// Balance returns the current balance.
func (a *Account) Balance() int64 { return a.balance }

// CanDeposit reports whether any deposit is still possible.
func (a *Account) CanDeposit() bool { return a.balance < MaxBalance }

// CanWithdraw reports whether any withdrawal is possible.
func (a *Account) CanWithdraw() bool { return a.balance >= 1 }

// MaxDeposit is the largest deposit that keeps the balance in range.
func (a *Account) MaxDeposit() int64 { return MaxBalance - a.balance }

// Matches reports whether the account has the given number.
func (a *Account) Matches(number AccountNumber) bool { return a.number == number }

// ValidateDeposit checks if amount can be credited.
func (a *Account) ValidateDeposit(amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	if amount > a.MaxDeposit() {
		return ErrDepositTooLarge
	}
	return nil
}

// ValidateWithdraw checks if amount can be debited.
func (a *Account) ValidateWithdraw(amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit credits amount.
func (a *Account) Deposit(amount int64) error {
	if err := a.ValidateDeposit(amount); err != nil {
		return err
	}
	a.balance += amount
	return nil
}

// Withdraw debits amount.
func (a *Account) Withdraw(amount int64) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	a.balance -= amount
	return nil
}

// Transfer moves amount from a to to. Both legs are validated before either
// balance changes, so a failed transfer leaves both accounts untouched.
func (a *Account) Transfer(amount int64, to *Account) error {
	if to == nil {
		return ErrMissingDestination
	}
	if to == a || to.number == a.number {
		return ErrSameAccount
	}
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	if err := to.ValidateDeposit(amount); err != nil {
		return err
	}

	a.balance -= amount
	to.balance += amount
	return nil
}

func (a *Account) String() string {
	return a.number.String() + accountSeparator + strconv.FormatInt(a.balance, 10)
}
