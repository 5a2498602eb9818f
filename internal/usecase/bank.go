package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iho/onlinebank/internal/domain"
)

// Bank is the in-memory registry of accounts backed by an AccountStore.
// It is not safe for concurrent use.
type Bank struct {
	store    AccountStore
	rng      domain.RandSource
	accounts []*domain.Account
	index    map[domain.AccountNumber]*domain.Account
	logger   zerolog.Logger
	metrics  MetricsRecorder
}

// Option configures a Bank.
type Option func(*Bank)

// WithSeed seeds account-number generation.
func WithSeed(seed uint64) Option {
	return func(b *Bank) {
		b.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRandSource replaces the generator outright.
func WithRandSource(rng domain.RandSource) Option {
	return func(b *Bank) {
		b.rng = rng
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bank) {
		b.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(b *Bank) {
		if m != nil {
			b.metrics = m
		}
	}
}

// NewBank creates a Bank and eagerly loads every account from store.
func NewBank(ctx context.Context, store AccountStore, opts ...Option) (*Bank, error) {
	b := &Bank{
		store:   store,
		index:   make(map[domain.AccountNumber]*domain.Account),
		logger:  zerolog.Nop(),
		metrics: noopMetrics{},
	}
	WithSeed(DefaultSeed)(b)

	for _, opt := range opts {
		opt(b)
	}

	if err := b.load(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// CreateAccount registers a new zero-balance account under an unused number.
func (b *Bank) CreateAccount() *domain.Account {
	var number domain.AccountNumber
	for {
		number = domain.GenerateAccountNumber(b.rng)
		if !b.HasAccount(number) {
			break
		}
	}

	// A generated number is always valid and zero is in range.
	acct, _ := domain.NewAccount(number, 0)
	b.add(acct)
	b.metrics.AccountCreated()

	b.logger.Debug().Str("account", number.String()).Msg("account created")
	return acct
}

// HasAccount reports whether number is registered.
func (b *Bank) HasAccount(number domain.AccountNumber) bool {
	_, ok := b.index[number]
	return ok
}

// GetAccount returns the account registered under number.
func (b *Bank) GetAccount(number domain.AccountNumber) (*domain.Account, error) {
	acct, ok := b.index[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

// Accounts returns the registry in iteration order.
func (b *Bank) Accounts() []*domain.Account {
	out := make([]*domain.Account, len(b.accounts))
	copy(out, b.accounts)
	return out
}

// TotalBalance sums every registered balance.
func (b *Bank) TotalBalance() int64 {
	var total int64
	for _, acct := range b.accounts {
		total += acct.Balance()
	}
	return total
}

// Save overwrites the store with the current registry.
func (b *Bank) Save(ctx context.Context) error {
	if err := b.store.Save(ctx, b.Accounts()); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	b.logger.Info().Int("accounts", len(b.accounts)).Msg("accounts saved")
	return nil
}

func (b *Bank) add(acct *domain.Account) {
	b.accounts = append(b.accounts, acct)
	b.index[acct.Number()] = acct
}

func (b *Bank) load(ctx context.Context) error {
	result, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	for _, line := range result.Unrecognized {
		b.logger.Warn().Str("input", line).Msg("skipping unexpected input")
		b.metrics.LoadDiagnostic(DiagnosticUnrecognized)
	}

	for _, rec := range result.Records {
		acct, ok := b.parseRecord(rec)
		if !ok {
			b.logger.Warn().
				Str("number", rec.Number).
				Str("balance", rec.Balance).
				Msg("there seems to be something wrong with the saved account info")
			b.metrics.LoadDiagnostic(DiagnosticCorrupt)
			continue
		}
		b.add(acct)
	}

	b.metrics.AccountsLoaded(len(b.accounts))
	b.logger.Info().Int("accounts", len(b.accounts)).Msg("accounts loaded")
	return nil
}

func (b *Bank) parseRecord(rec AccountRecord) (*domain.Account, bool) {
	number, ok := domain.ParseAccountNumber(rec.Number)
	if !ok {
		return nil, false
	}

	balance, err := strconv.ParseInt(rec.Balance, 10, 64)
	if err != nil {
		return nil, false
	}

	acct, err := domain.NewAccount(number, balance)
	if err != nil {
		return nil, false
	}

	if b.HasAccount(number) {
		return nil, false
	}
	return acct, true
}
