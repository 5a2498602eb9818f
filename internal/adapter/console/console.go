package console

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/onlinebank/internal/domain"
)

const (
	farewellMessage = "Thank you for banking with THE online bank!"
	signOutMessage  = "You have successfully signed out."

	swipePrompt        = "Please enter the card number in the form AAA-DDDDDDD\n> "
	cardNotRegistered  = "Card not registered. Please check the card or open an account."
	depositPrompt      = "Please enter the deposit amount in whole dollars:\n> "
	accountFull        = "Account has reached maximum capacity."
	withdrawPrompt     = "Please enter the withdrawal amount in whole dollars:\n> "
	insufficientFunds  = "Insufficient funds!"
	transferDestPrompt = "Please enter a card number other than %s:\n> "
	transferAmtPrompt  = "Please enter the amount to transfer between %d and %d\n> "
	accountsSame       = "Destination account must not be the same as source account. Transaction cancelled."
	missingDestination = "Destination account does not exist. Transaction cancelled."
	destinationFull    = "Destination account has reached maximum capacity. Transaction cancelled."
)

// Operation names reported to the Recorder.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpTransfer = "transfer"
	OpBalance  = "check_balance"
)

// Registry is the part of the bank the console drives.
type Registry interface {
	CreateAccount() *domain.Account
	GetAccount(number domain.AccountNumber) (*domain.Account, error)
}

// Recorder receives console activity.
type Recorder interface {
	ObserveOperation(op string, amount int64)
	OperationFailed(op string)
	CardSwiped(found bool)
}

type noopRecorder struct{}

func (noopRecorder) ObserveOperation(string, int64) {}
func (noopRecorder) OperationFailed(string)         {}
func (noopRecorder) CardSwiped(bool)                {}

// Console runs the interactive menus against a Registry.
type Console struct {
	bank     Registry
	ui       *UI
	logger   zerolog.Logger
	recorder Recorder
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger. Each console session is tagged with its own id.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// WithRecorder sets the activity recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Console) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a Console.
func New(bank Registry, ui *UI, opts ...Option) *Console {
	c := &Console{
		bank:     bank,
		ui:       ui,
		logger:   zerolog.Nop(),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("session", ulid.Make().String()).Logger()
	return c
}

// Run shows the main menu until the user exits or input runs out.
func (c *Console) Run() {
	c.logger.Debug().Msg("console session started")
	c.runMenu(MainMenu, nil)
	c.logger.Debug().Msg("console session ended")
}

func (c *Console) runMenu(menu Menu, acct *domain.Account) {
	for {
		c.writeOptions(menu)

		idx, ok := c.ui.ReadIntInRange(menuPrompt, 1, int64(len(menu.Options)))
		if !ok {
			c.ui.Println(msgEOF)
			return
		}

		if c.display(menu.Options[idx-1], acct) == Terminate {
			return
		}
	}
}

func (c *Console) writeOptions(menu Menu) {
	c.ui.Println()
	c.ui.Println(menu.Title)
	c.ui.Println()
	c.ui.Println(menuHeading)
	for i, s := range menu.Options {
		c.ui.Printf("%d -> %s\n", i+1, s.Title())
	}
}

func (c *Console) display(s Screen, acct *domain.Account) Outcome {
	switch s {
	case ScreenOpenAccount:
		c.openAccount()
	case ScreenSwipeCard:
		c.swipeCard()
	case ScreenExit:
		c.farewell(farewellMessage)
		return Terminate
	case ScreenCheckBalance:
		c.checkBalance(acct)
	case ScreenDeposit:
		c.deposit(acct)
	case ScreenWithdraw:
		c.withdraw(acct)
	case ScreenTransfer:
		c.transfer(acct)
	case ScreenSignOut:
		c.farewell(signOutMessage)
		return Terminate
	}
	return Continue
}

func (c *Console) farewell(msg string) {
	c.ui.Println()
	c.ui.Println(msg)
	c.ui.Println()
}

func (c *Console) openAccount() {
	acct := c.bank.CreateAccount()

	c.ui.Println()
	c.ui.Println(fmt.Sprintf("Your account with card number %s is now ready for use!", acct.Number()))
	c.ui.Println("Here's your card, don't lose it...")
	c.ui.Println("(User downloads card from internet and stashes it safely.)")
	c.ui.Println()

	c.logger.Info().Str("account", acct.Number().String()).Msg("account opened")
}

func (c *Console) swipeCard() {
	c.ui.Println()
	number, ok := c.ui.ReadAccountNumber(swipePrompt)
	if !ok {
		return
	}

	acct, err := c.bank.GetAccount(number)
	c.recorder.CardSwiped(err == nil)
	if err != nil {
		c.ui.Println()
		c.ui.Println(cardNotRegistered)
		c.ui.Println()
		c.logger.Debug().Str("account", number.String()).Err(err).Msg("card rejected")
		return
	}

	c.runMenu(TransactionMenu, acct)
}

func (c *Console) checkBalance(acct *domain.Account) {
	c.ui.Println()
	c.ui.Println("Your account balance is " + formatCurrency(acct.Balance()))
	c.ui.Println()
	c.recorder.ObserveOperation(OpBalance, 0)
}

func (c *Console) deposit(acct *domain.Account) {
	c.ui.Println()
	if !acct.CanDeposit() {
		c.ui.Println(accountFull)
		c.recorder.OperationFailed(OpDeposit)
		return
	}

	amount, ok := c.ui.ReadIntInRange(depositPrompt, 1, acct.MaxDeposit())
	if !ok {
		return
	}

	if err := acct.Deposit(amount); err != nil {
		c.fail(OpDeposit, acct, err)
		return
	}
	c.ui.Println("Successfully deposited " + formatCurrency(amount) + " to your account")
	c.succeed(OpDeposit, acct, amount)
}

func (c *Console) withdraw(acct *domain.Account) {
	c.ui.Println()
	if !acct.CanWithdraw() {
		c.ui.Println()
		c.ui.Println(insufficientFunds)
		c.ui.Println()
		c.recorder.OperationFailed(OpWithdraw)
		return
	}

	amount, ok := c.ui.ReadIntInRange(withdrawPrompt, 1, acct.Balance())
	if !ok {
		c.ui.Errorln(msgEOF)
		return
	}

	if err := acct.Withdraw(amount); err != nil {
		c.fail(OpWithdraw, acct, err)
		return
	}
	c.ui.Println("Successfully withdrew " + formatCurrency(amount) + " from your account")
	c.ui.Println()
	c.succeed(OpWithdraw, acct, amount)
}

func (c *Console) transfer(acct *domain.Account) {
	number, ok := c.ui.ReadAccountNumber(fmt.Sprintf(transferDestPrompt, acct.Number()))
	if !ok {
		c.ui.Errorln(msgEOF)
		return
	}

	to, err := c.bank.GetAccount(number)
	switch {
	case err != nil:
		c.ui.Println(missingDestination)
		c.recorder.OperationFailed(OpTransfer)
		return
	case to == acct:
		c.ui.Println(accountsSame)
		c.recorder.OperationFailed(OpTransfer)
		return
	case !acct.CanWithdraw():
		c.ui.Println(insufficientFunds)
		c.recorder.OperationFailed(OpTransfer)
		return
	case !to.CanDeposit():
		c.ui.Println(destinationFull)
		c.recorder.OperationFailed(OpTransfer)
		return
	}

	limit := min(acct.Balance(), to.MaxDeposit())
	amount, ok := c.ui.ReadIntInRange(fmt.Sprintf(transferAmtPrompt, 1, limit), 1, limit)
	if !ok {
		c.ui.Errorln(msgEOF)
		return
	}

	if err := acct.Transfer(amount, to); err != nil {
		c.fail(OpTransfer, acct, err)
		return
	}
	c.ui.Println(fmt.Sprintf("Successfully transferred %s from %s to %s.", formatCurrency(amount), acct.Number(), to.Number()))
	c.ui.Println()
	c.succeed(OpTransfer, acct, amount)
}

func (c *Console) succeed(op string, acct *domain.Account, amount int64) {
	c.recorder.ObserveOperation(op, amount)
	c.logger.Info().
		Str("op", op).
		Str("account", acct.Number().String()).
		Int64("amount", amount).
		Int64("balance", acct.Balance()).
		Msg("operation completed")
}

func (c *Console) fail(op string, acct *domain.Account, err error) {
	c.ui.Println(err.Error())
	c.recorder.OperationFailed(op)
	c.logger.Warn().
		Str("op", op).
		Str("account", acct.Number().String()).
		Err(err).
		Msg("operation rejected")
}
