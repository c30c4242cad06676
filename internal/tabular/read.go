package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/anstrom/portmerge/internal/errors"
)

const encodingUTF8 = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a header row plus data rows.
type Table struct {
	Headers  []string
	Rows     [][]string
	Encoding string
}

// ReadTable loads a workbook or delimited text file. Workbooks are chosen by
// extension; everything else is read as CSV (TSV for .tsv/.tab).
func ReadTable(path string, fallbackEncodings []string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readWorkbook(path)
	case ".tsv", ".tab":
		return readDelimited(path, '\t', fallbackEncodings)
	default:
		return readDelimited(path, ',', fallbackEncodings)
	}
}

func readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ErrTableRead(path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ErrTableRead(path, fmt.Errorf("sheet %q: %w", sheets[0], err))
	}
	return splitHeader(rows), nil
}

func readDelimited(path string, comma rune, fallbackEncodings []string) (*Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured inventory table
	if err != nil {
		return nil, errors.ErrTableRead(path, err)
	}

	text, encoding, err := DecodeText(data, fallbackEncodings)
	if err != nil {
		return nil, errors.ErrEncoding(path, err).WithContext("fallbacks", fallbackEncodings)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ErrTableRead(path, err)
	}

	table := splitHeader(rows)
	table.Encoding = encoding
	return table, nil
}

func splitHeader(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	return &Table{Headers: rows[0], Rows: rows[1:]}
}

// DecodeText returns data as a UTF-8 string. Valid UTF-8 (with or without a
// BOM) is used as is; otherwise each fallback encoding is tried in order.
// It returns the name of the encoding that was applied.
func DecodeText(data []byte, fallbackEncodings []string) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), encodingUTF8, nil
	}

	var attempts []string
	for _, name := range fallbackEncodings {
		enc, err := htmlindex.Get(name)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil || !utf8.Valid(decoded) {
			attempts = append(attempts, fmt.Sprintf("%s: undecodable", name))
			continue
		}
		canonical, err := htmlindex.Name(enc)
		if err != nil {
			canonical = name
		}
		return string(bytes.TrimPrefix(decoded, utf8BOM)), canonical, nil
	}

	if len(attempts) == 0 {
		return "", "", fmt.Errorf("content is not valid UTF-8 and no fallback encoding is configured")
	}
	return "", "", fmt.Errorf("content is not valid UTF-8 (%s)", strings.Join(attempts, "; "))
}
