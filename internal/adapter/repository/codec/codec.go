// Package codec reads and writes the line-oriented account record format:
//
//	Account
//	<branchId>-<accountId>
//	<balance>
//
// repeated once per account, with no header or footer. A line where a tag is
// expected but which is not "Account" is reported and skipped on its own, so
// only single-line anomalies resynchronise cleanly.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
)

const maxLineSize = 1 << 20

// Encode writes one record per account in the given order.
func Encode(w io.Writer, accounts []*domain.Account) error {
	bw := bufio.NewWriter(w)
	for _, acct := range accounts {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n%s\n",
			usecase.RecordTag,
			acct.Number().String(),
			strconv.FormatInt(acct.Balance(), 10),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads every record from r. Record contents are returned raw; a
// record cut short by EOF carries empty fields. Lines longer than
// maxLineSize are truncated rather than treated as a read failure.
func Decode(r io.Reader) (usecase.LoadResult, error) {
	var result usecase.LoadResult

	lr := &lineReader{br: bufio.NewReader(r)}
	next := func() string {
		line, _ := lr.next()
		return line
	}

	for {
		tag, ok := lr.next()
		if !ok {
			break
		}
		if tag != usecase.RecordTag {
			result.Unrecognized = append(result.Unrecognized, tag)
			continue
		}

		rec := usecase.AccountRecord{Number: next()}
		rec.Balance = next()
		result.Records = append(result.Records, rec)
	}

	if lr.err != nil {
		return usecase.LoadResult{}, fmt.Errorf("failed to read records: %w", lr.err)
	}

	return result, nil
}

type lineReader struct {
	br  *bufio.Reader
	err error
}

// next returns the following line without its terminator, keeping at most
// maxLineSize bytes and discarding the rest of the line. ok is false at end
// of input or after a read error, which is kept in err.
func (lr *lineReader) next() (string, bool) {
	if lr.err != nil {
		return "", false
	}

	var (
		buf  []byte
		read bool
	)
	for {
		chunk, err := lr.br.ReadSlice('\n')
		read = read || len(chunk) > 0
		if room := maxLineSize - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}

		switch {
		case err == nil:
			return trimLine(string(buf)), true
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return trimLine(string(buf)), read
		default:
			lr.err = err
			return "", false
		}
	}
}

func trimLine(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
