package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/onlinebank/internal/adapter/console"
	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
	"github.com/iho/onlinebank/internal/usecase/mocks"
)

type recordedOp struct {
	op     string
	amount int64
}

type fakeRecorder struct {
	ops    []recordedOp
	failed []string
	swipes []bool
}

func (r *fakeRecorder) ObserveOperation(op string, amount int64) {
	r.ops = append(r.ops, recordedOp{op, amount})
}
func (r *fakeRecorder) OperationFailed(op string) { r.failed = append(r.failed, op) }
func (r *fakeRecorder) CardSwiped(found bool)     { r.swipes = append(r.swipes, found) }

type session struct {
	bank     *usecase.Bank
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	recorder *fakeRecorder
}

func newBank(t *testing.T) *usecase.Bank {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAccountStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(usecase.LoadResult{
		Records: []usecase.AccountRecord{
			{Number: "ABC-1234567", Balance: "150"},
			{Number: "XYZ-7654321", Balance: "20"},
			{Number: "DEF-2222222", Balance: "0"},
			{Number: "TOP-9999999", Balance: "2147483647"},
		},
	}, nil)

	bank, err := usecase.NewBank(context.Background(), store)
	require.NoError(t, err)
	return bank
}

func run(t *testing.T, input string) *session {
	t.Helper()
	s := &session{
		bank:     newBank(t),
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		recorder: &fakeRecorder{},
	}
	ui := console.NewUI(strings.NewReader(input), s.out, s.errOut)
	console.New(s.bank, ui, console.WithRecorder(s.recorder)).Run()
	return s
}

func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

func (s *session) balance(t *testing.T, number string) int64 {
	t.Helper()
	n, ok := domain.ParseAccountNumber(number)
	require.True(t, ok)
	acct, err := s.bank.GetAccount(n)
	require.NoError(t, err)
	return acct.Balance()
}

func TestConsole_ExitImmediately(t *testing.T) {
	s := run(t, lines("3"))

	out := s.out.String()
	assert.Contains(t, out, "Welcome to THE online bank!")
	assert.Contains(t, out, "1 -> Open account\n2 -> Swipe card to do business\n3 -> Exit\n")
	assert.Contains(t, out, "Thank you for banking with THE online bank!")
	assert.NotContains(t, out, "Attempt to read past end of input.")
}

func TestConsole_OpenAccount(t *testing.T) {
	s := run(t, lines("1", "3"))

	assert.Len(t, s.bank.Accounts(), 5)
	opened := s.bank.Accounts()[4]
	assert.Contains(t, s.out.String(), "Your account with card number "+opened.Number().String()+" is now ready for use!")
	assert.Equal(t, int64(0), opened.Balance())
}

func TestConsole_DepositAndCheckBalance(t *testing.T) {
	s := run(t, lines("2", "ABC-1234567", "2", "50", "1", "5", "3"))

	out := s.out.String()
	assert.Contains(t, out, "Transaction menu")
	assert.Contains(t, out, "Successfully deposited $50.00 to your account")
	assert.Contains(t, out, "Your account balance is $200.00")
	assert.Contains(t, out, "You have successfully signed out.")
	assert.Equal(t, int64(200), s.balance(t, "ABC-1234567"))

	assert.Equal(t, []bool{true}, s.recorder.swipes)
	assert.Equal(t, []recordedOp{{console.OpDeposit, 50}, {console.OpBalance, 0}}, s.recorder.ops)
}

func TestConsole_WithdrawRepromptsOutOfRange(t *testing.T) {
	s := run(t, lines("2", "ABC-1234567", "3", "500", "0", "100", "5", "3"))

	out := s.out.String()
	assert.Equal(t, 2, strings.Count(out, "Please supply a whole number between 1 and 150"))
	assert.Contains(t, out, "Successfully withdrew $100.00 from your account")
	assert.Equal(t, int64(50), s.balance(t, "ABC-1234567"))
}

func TestConsole_WithdrawFromEmptyAccount(t *testing.T) {
	s := run(t, lines("2", "DEF-2222222", "3", "5", "3"))

	assert.Contains(t, s.out.String(), "Insufficient funds!")
	assert.Equal(t, []string{console.OpWithdraw}, s.recorder.failed)
}

func TestConsole_DepositIntoFullAccount(t *testing.T) {
	s := run(t, lines("2", "TOP-9999999", "2", "5", "3"))

	assert.Contains(t, s.out.String(), "Account has reached maximum capacity.")
	assert.Equal(t, domain.MaxBalance, s.balance(t, "TOP-9999999"))
}

func TestConsole_Transfer(t *testing.T) {
	s := run(t, lines("2", "ABC-1234567", "4", "XYZ-7654321", "100", "5", "3"))

	out := s.out.String()
	assert.Contains(t, out, "Please enter a card number other than ABC-1234567:")
	assert.Contains(t, out, "Please enter the amount to transfer between 1 and 150")
	assert.Contains(t, out, "Successfully transferred $100.00 from ABC-1234567 to XYZ-7654321.")
	assert.Equal(t, int64(50), s.balance(t, "ABC-1234567"))
	assert.Equal(t, int64(120), s.balance(t, "XYZ-7654321"))
}

func TestConsole_TransferRejections(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "same account",
			input:  lines("2", "ABC-1234567", "4", "ABC-1234567", "5", "3"),
			output: "Destination account must not be the same as source account. Transaction cancelled.",
		},
		{
			name:   "unknown destination",
			input:  lines("2", "ABC-1234567", "4", "QQQ-3333333", "5", "3"),
			output: "Destination account does not exist. Transaction cancelled.",
		},
		{
			name:   "destination full",
			input:  lines("2", "ABC-1234567", "4", "TOP-9999999", "5", "3"),
			output: "Destination account has reached maximum capacity. Transaction cancelled.",
		},
		{
			name:   "empty source",
			input:  lines("2", "DEF-2222222", "4", "ABC-1234567", "5", "3"),
			output: "Insufficient funds!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, tt.input)

			assert.Contains(t, s.out.String(), tt.output)
			assert.Equal(t, []string{console.OpTransfer}, s.recorder.failed)
			assert.Equal(t, int64(150), s.balance(t, "ABC-1234567"))
			assert.Empty(t, s.recorder.ops)
		})
	}
}

func TestConsole_UnknownCard(t *testing.T) {
	s := run(t, lines("2", "QQQ-1111111", "3"))

	assert.Contains(t, s.out.String(), "Card not registered.")
	assert.NotContains(t, s.out.String(), "Transaction menu")
	assert.Equal(t, []bool{false}, s.recorder.swipes)
}

func TestConsole_InvalidInputIsRejected(t *testing.T) {
	s := run(t, lines("", "abc", "7", "2", "not-a-card", "ABC-1234567", "5", "3"))

	out := s.out.String()
	assert.Equal(t, 3, strings.Count(out, "Please supply a whole number between 1 and 3"))
	assert.Contains(t, out, "not-a-card is not a valid card number.")
	assert.Contains(t, out, "Transaction menu")
}

func TestConsole_EndOfInput(t *testing.T) {
	s := run(t, "")
	assert.True(t, strings.HasSuffix(s.out.String(), "Attempt to read past end of input.\n"))

	// Running out mid-withdrawal unwinds both menus.
	s = run(t, lines("2", "ABC-1234567", "3"))
	assert.Contains(t, s.errOut.String(), "Attempt to read past end of input.")
	assert.Equal(t, 2, strings.Count(s.out.String(), "Attempt to read past end of input."))
	assert.Equal(t, int64(150), s.balance(t, "ABC-1234567"))
}
