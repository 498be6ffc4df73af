package contacts

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

	// Column aliases probed in priority order, compared case-insensitively.
	phoneAliases = []string{"number", "phone", "mobile"}
	nameAliases  = []string{"name", "firstname", "first_name"}
)

// IContactExtractor parses an uploaded tabular file into contacts.
type IContactExtractor interface {
	Extract(fileName string, data io.Reader) ([]campaign.Contact, error)
}

type ContactExtractor struct {
	Logger *logger.Logger
}

func NewContactExtractor(loggerInstance *logger.Logger) IContactExtractor {
	return &ContactExtractor{Logger: loggerInstance}
}

// Extract reads the file and returns the contacts found in it, in row
// order. Rows without a phone value under any alias are skipped.
func (e *ContactExtractor) Extract(fileName string, data io.Reader) ([]campaign.Contact, error) {
	payload, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: file is empty", campaign.ErrUnsupportedFormat)
	}

	rows, err := e.parseRows(fileName, payload)
	if err != nil {
		return nil, err
	}

	contacts := extractContacts(rows)
	e.Logger.Info("Extracted contacts from upload",
		zap.String("fileName", fileName),
		zap.Int("rows", len(rows)),
		zap.Int("contacts", len(contacts)))
	return contacts, nil
}

func (e *ContactExtractor) parseRows(fileName string, payload []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx", ".xls":
		return parseExcel(payload)
	}

	// No usable extension: sniff the content. xlsx files are zip
	// containers, which filetype identifies reliably.
	if kind, err := filetype.Match(payload); err == nil {
		if kind == matchers.TypeXlsx || kind == matchers.TypeZip {
			return parseExcel(payload)
		}
	}

	return nil, fmt.Errorf("%w: %s", campaign.ErrUnsupportedFormat, fileName)
}

func parseCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", campaign.ErrUnsupportedFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", campaign.ErrUnsupportedFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

func extractContacts(rows [][]string) []campaign.Contact {
	contacts := []campaign.Contact{}
	if len(rows) == 0 {
		return contacts
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		number := probe(headers, row, phoneAliases)
		if number == "" {
			continue
		}

		name := probe(headers, row, nameAliases)
		if name == "" {
			name = campaign.DefaultContactName
		}

		contacts = append(contacts, campaign.Contact{Name: name, Number: number})
	}
	return contacts
}

// probe returns the first non-empty cell whose header matches one of
// the aliases, honoring alias priority over column order.
func probe(headers []string, row []string, aliases []string) string {
	for _, alias := range aliases {
		for col, header := range headers {
			if header != alias || col >= len(row) {
				continue
			}
			if value := strings.TrimSpace(row[col]); value != "" {
				return value
			}
		}
	}
	return ""
}
