package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"trafficdash/database"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseViolationsCSV parses a violation export in delimited form. Legacy
// TCS terminals emit EUC-KR without a BOM, newer ones UTF-8 with a BOM;
// both are accepted. Schema requirements match the Excel path.
func ParseViolationsCSV(r io.Reader, filename string) ([]database.ViolationRecord, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	var source io.Reader = br
	if bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	} else if !looksLikeUTF8(br) {
		source = transform.NewReader(br, korean.EUCKR.NewDecoder())
	}

	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1 // trailing columns vary between terminals

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return parseViolationRows(rows, filename)
}

// looksLikeUTF8 peeks ahead and reports whether the buffered bytes decode
// as valid UTF-8. Korean EUC-KR text reliably fails this check.
func looksLikeUTF8(br *bufio.Reader) bool {
	peek, _ := br.Peek(4096)
	if len(peek) == 0 {
		return true
	}
	// Trim a possibly incomplete trailing rune before validating.
	for i := 0; i < utf8.UTFMax && len(peek) > 0; i++ {
		if utf8.Valid(peek) {
			return true
		}
		peek = peek[:len(peek)-1]
	}
	return false
}
