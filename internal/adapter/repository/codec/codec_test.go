package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
)

func account(t *testing.T, branchID string, accountID int, balance int64) *domain.Account {
	t.Helper()
	n, err := domain.NewAccountNumber(branchID, accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acct, err := domain.NewAccount(n, balance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return acct
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []*domain.Account{
		account(t, "ABC", 1234567, 150),
		account(t, "XYZ", 7654321, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Account\nABC-1234567\n150\nAccount\nXYZ-7654321\n0\n"
	if buf.String() != expected {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		wantRecords      []usecase.AccountRecord
		wantUnrecognized []string
	}{
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "single record",
			input: "Account\nABC-1234567\n150\n",
			wantRecords: []usecase.AccountRecord{
				{Number: "ABC-1234567", Balance: "150"},
			},
		},
		{
			name:  "no trailing newline",
			input: "Account\nABC-1234567\n150",
			wantRecords: []usecase.AccountRecord{
				{Number: "ABC-1234567", Balance: "150"},
			},
		},
		{
			name:  "crlf line endings",
			input: "Account\r\nABC-1234567\r\n150\r\n",
			wantRecords: []usecase.AccountRecord{
				{Number: "ABC-1234567", Balance: "150"},
			},
		},
		{
			name:  "bogus tag between records",
			input: "Account\nABC-1234567\n150\nBogus\nAccount\nXYZ-7654321\n20\n",
			wantRecords: []usecase.AccountRecord{
				{Number: "ABC-1234567", Balance: "150"},
				{Number: "XYZ-7654321", Balance: "20"},
			},
			wantUnrecognized: []string{"Bogus"},
		},
		{
			name:  "record truncated by eof",
			input: "Account\nABC-1234567\n",
			wantRecords: []usecase.AccountRecord{
				{Number: "ABC-1234567", Balance: ""},
			},
		},
		{
			name:  "fields are returned raw",
			input: "Account\nnot a number\nnot a balance\n",
			wantRecords: []usecase.AccountRecord{
				{Number: "not a number", Balance: "not a balance"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got.Records) != len(tt.wantRecords) {
				t.Fatalf("expected %d records, got %d: %+v", len(tt.wantRecords), len(got.Records), got.Records)
			}
			for i := range tt.wantRecords {
				if got.Records[i] != tt.wantRecords[i] {
					t.Errorf("record %d: expected %+v, got %+v", i, tt.wantRecords[i], got.Records[i])
				}
			}

			if strings.Join(got.Unrecognized, "|") != strings.Join(tt.wantUnrecognized, "|") {
				t.Errorf("expected unrecognized %q, got %q", tt.wantUnrecognized, got.Unrecognized)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	accounts := []*domain.Account{
		account(t, "ABC", 1234567, 150),
		account(t, "DEF", 2345678, domain.MaxBalance),
		account(t, "GHI", 3456789, 0),
	}

	var buf bytes.Buffer
	if err := Encode(&buf, accounts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Records) != len(accounts) {
		t.Fatalf("expected %d records, got %d", len(accounts), len(got.Records))
	}
	for i, acct := range accounts {
		parsed, ok := domain.ParseAccount(got.Records[i].Number + ":" + got.Records[i].Balance)
		if !ok || parsed.String() != acct.String() {
			t.Errorf("record %d: expected %s, got %+v", i, acct, got.Records[i])
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestDecode_ReadError(t *testing.T) {
	if _, err := Decode(failingReader{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestDecode_OversizedLineIsSkipped(t *testing.T) {
	garbage := strings.Repeat("x", 2*maxLineSize)
	input := "Account\nABC-1234567\n150\n" + garbage + "\nAccount\nXYZ-7654321\n20"

	got, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []usecase.AccountRecord{
		{Number: "ABC-1234567", Balance: "150"},
		{Number: "XYZ-7654321", Balance: "20"},
	}
	if len(got.Records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got.Records))
	}
	for i := range want {
		if got.Records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got.Records[i], want[i])
		}
	}

	if len(got.Unrecognized) != 1 {
		t.Fatalf("expected 1 unrecognized line, got %d", len(got.Unrecognized))
	}
	if n := len(got.Unrecognized[0]); n != maxLineSize {
		t.Errorf("expected unrecognized line truncated to %d bytes, got %d", maxLineSize, n)
	}
}

func TestDecode_OversizedFieldKeepsFollowingRecords(t *testing.T) {
	input := "Account\nABC-1234567\n" + strings.Repeat("9", maxLineSize+10) + "\r\nAccount\nXYZ-7654321\n20\r\n"

	got, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got.Records))
	}
	if got.Records[1] != (usecase.AccountRecord{Number: "XYZ-7654321", Balance: "20"}) {
		t.Errorf("unexpected trailing record %+v", got.Records[1])
	}
	if len(got.Unrecognized) != 0 {
		t.Errorf("expected no unrecognized lines, got %d", len(got.Unrecognized))
	}
}
