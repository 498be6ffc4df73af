package contacts

import (
	"bytes"
	"strings"
	"testing"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestExtractFromCSV(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	csvData := "name,number\nAsha,9876543210\nRavi,9876543211\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Equal(t, []campaign.Contact{
		{Name: "Asha", Number: "9876543210"},
		{Name: "Ravi", Number: "9876543211"},
	}, extracted)
}

func TestExtractHonorsAliasPriority(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	// "number" wins over "mobile" regardless of column order.
	csvData := "mobile,number\n1111111111,2222222222\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Len(t, extracted, 1)
	assert.Equal(t, "2222222222", extracted[0].Number)
}

func TestExtractCapitalizedPhoneHeaderDefaultName(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	csvData := "Phone,City\n9876543210,Chennai\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Len(t, extracted, 1)
	assert.Equal(t, campaign.DefaultContactName, extracted[0].Name)
	assert.Equal(t, "9876543210", extracted[0].Number)
}

func TestExtractDropsRowsWithoutPhone(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	csvData := "name,number\nAsha,9876543210\nNoPhone,\nRavi,9876543211\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Len(t, extracted, 2)
	assert.Equal(t, "Asha", extracted[0].Name)
	assert.Equal(t, "Ravi", extracted[1].Name)
}

func TestExtractFirstNameAlias(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	csvData := "first_name,mobile\nAsha,9876543210\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Equal(t, "Asha", extracted[0].Name)
}

func TestExtractStripsByteOrderMark(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	csvData := "\xEF\xBB\xBFname,number\nAsha,9876543210\n"
	extracted, err := extractor.Extract("contacts.csv", strings.NewReader(csvData))

	assert.NoError(t, err)
	assert.Len(t, extracted, 1)
	assert.Equal(t, "Asha", extracted[0].Name)
}

func TestExtractFromXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetCellValue(sheet, "A1", "Name"))
	assert.NoError(t, f.SetCellValue(sheet, "B1", "Number"))
	assert.NoError(t, f.SetCellValue(sheet, "A2", "Asha"))
	assert.NoError(t, f.SetCellValue(sheet, "B2", "9876543210"))

	buffer, err := f.WriteToBuffer()
	assert.NoError(t, err)

	extractor := NewContactExtractor(setupLogger(t))
	extracted, err := extractor.Extract("contacts.xlsx", bytes.NewReader(buffer.Bytes()))

	assert.NoError(t, err)
	assert.Equal(t, []campaign.Contact{{Name: "Asha", Number: "9876543210"}}, extracted)
}

func TestExtractXLSXWithoutExtensionIsSniffed(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetCellValue(sheet, "A1", "number"))
	assert.NoError(t, f.SetCellValue(sheet, "A2", "9876543210"))

	buffer, err := f.WriteToBuffer()
	assert.NoError(t, err)

	extractor := NewContactExtractor(setupLogger(t))
	extracted, err := extractor.Extract("upload", bytes.NewReader(buffer.Bytes()))

	assert.NoError(t, err)
	assert.Len(t, extracted, 1)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	_, err := extractor.Extract("contacts.pdf", strings.NewReader("%PDF-1.4 not a table"))
	assert.ErrorIs(t, err, campaign.ErrUnsupportedFormat)
}

func TestExtractEmptyFile(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	_, err := extractor.Extract("contacts.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, campaign.ErrUnsupportedFormat)
}

func TestExtractHeaderOnlyFile(t *testing.T) {
	extractor := NewContactExtractor(setupLogger(t))

	extracted, err := extractor.Extract("contacts.csv", strings.NewReader("name,number\n"))
	assert.NoError(t, err)
	assert.Empty(t, extracted)
}
