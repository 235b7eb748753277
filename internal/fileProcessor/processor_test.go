package fileProcessor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func process(t *testing.T, name string, data []byte) (commonModels.UploadedFile, error) {
	t.Helper()
	return Process(t.Context(), name, bytes.NewReader(data))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name    string
		want    commonModels.FileType
		wantErr bool
	}{
		{"report.PDF", commonModels.PDF, false},
		{"notes.txt", commonModels.TXT, false},
		{"data.xlsx", commonModels.XLSX, false},
		{"legacy.xls", commonModels.XLS, false},
		{"letter.docx", commonModels.DOCX, false},
		{"virus.exe", "", true},
		{"noextension", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeOf(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, commonModels.ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcess_Text(t *testing.T) {
	f, err := process(t, "notes.txt", []byte("  hello there \n"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, commonModels.TXT, f.Type)
	assert.Equal(t, "hello there", f.Content)
	assert.Equal(t, int64(15), f.SizeBytes)
	assert.False(t, f.UploadedAt.IsZero())
}

func TestProcess_TextLatin1Fallback(t *testing.T) {
	f, err := process(t, "notes.txt", []byte{'c', 'a', 'f', 0xe9})
	require.NoError(t, err)
	assert.Equal(t, "café", f.Content)
}

func TestProcess_Rejections(t *testing.T) {
	_, err := process(t, "virus.exe", []byte("MZ"))
	var failure *commonModels.FileProcessingFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "virus.exe", failure.Name)
	assert.ErrorIs(t, err, commonModels.ErrUnsupportedFileType)

	_, err = process(t, "big.txt", make([]byte, config.MaxUploadBytes+1))
	assert.ErrorIs(t, err, commonModels.ErrFileTooLarge)

	_, err = process(t, "empty.txt", []byte("   "))
	assert.ErrorIs(t, err, errNoContent)

	_, err = process(t, "broken.json", []byte(`{"a":`))
	require.True(t, errors.As(err, &failure))

	_, err = process(t, "broken.pdf", []byte("not a pdf"))
	require.True(t, errors.As(err, &failure))

	_, err = process(t, "broken.xls", []byte("not a workbook"))
	require.True(t, errors.As(err, &failure))
}

func TestProcess_CSV(t *testing.T) {
	var b strings.Builder
	b.WriteString("game,score,label\n")
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&b, "g%d,%d,AVERAGE\n", i, i)
	}

	f, err := process(t, "scores.csv", []byte(b.String()))
	require.NoError(t, err)

	lines := strings.Split(f.Content, "\n")
	assert.Equal(t, "CSV Data:", lines[0])
	assert.Equal(t, "game | score | label", lines[2])
	assert.Equal(t, "g0 | 0 | AVERAGE", lines[4])
	assert.Contains(t, f.Content, "g99 | 99 | AVERAGE")
	assert.NotContains(t, f.Content, "g100 |")
	assert.True(t, strings.HasSuffix(f.Content, "... and 50 more rows"))
}

func TestProcess_JSON(t *testing.T) {
	f, err := process(t, "data.json", []byte(`{"zeta":1,"alpha":[true,null]}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zeta\": 1,\n  \"alpha\": [\n    true,\n    null\n  ]\n}", f.Content)

	big := `{"k":"` + strings.Repeat("x", 6000) + `"}`
	f, err = process(t, "big.json", []byte(big))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Content, jsonTruncationMarker))
	assert.Len(t, f.Content, config.MaxJSONContentChars+len(jsonTruncationMarker))
}

func TestProcess_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	require.NoError(t, wb.SetCellValue("Sheet1", "A1", "Game"))
	require.NoError(t, wb.SetCellValue("Sheet1", "B1", "Score"))
	for i := 2; i <= 120; i++ {
		require.NoError(t, wb.SetCellValue("Sheet1", fmt.Sprintf("A%d", i), fmt.Sprintf("g%d", i)))
		require.NoError(t, wb.SetCellValue("Sheet1", fmt.Sprintf("B%d", i), i))
	}
	for i := 2; i <= 7; i++ {
		_, err := wb.NewSheet(fmt.Sprintf("Extra%d", i))
		require.NoError(t, err)
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	f, err := process(t, "scores.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.Content, "Excel Data:\n"))
	assert.Contains(t, f.Content, "--- Sheet: Sheet1 ---\nGame | Score\ng2 | 2\n")
	assert.Contains(t, f.Content, "g100 | 100")
	assert.NotContains(t, f.Content, "g101 |")
	assert.Contains(t, f.Content, "... and 20 more rows")
	assert.Contains(t, f.Content, "--- Sheet: Extra5 ---")
	assert.NotContains(t, f.Content, "Extra6")
	assert.True(t, strings.HasSuffix(f.Content, "... and 2 more sheets"))
}

func TestJoinPages(t *testing.T) {
	got := joinPages([]rawPage{{Number: 1, Content: "Speed 22/30"}, {Number: 3, Content: "Memory"}})
	assert.Equal(t, "--- Page 1 ---\nSpeed 22/30\n--- Page 3 ---\nMemory", got)
	assert.Equal(t, "", joinPages(nil))
}

func TestFormatForPrompt(t *testing.T) {
	rule := strings.Repeat("=", 60)
	f := commonModels.UploadedFile{Name: "report.pdf", Type: commonModels.PDF, Content: "summary"}
	assert.Equal(t, "File: report.pdf (.pdf)\n"+rule+"\nsummary\n"+rule+"\n", FormatForPrompt(f))

	f.Content = strings.Repeat("a", 5000)
	out := FormatForPrompt(f)
	assert.Contains(t, out, strings.Repeat("a", config.MaxFileContentChars)+TruncationMarker)
	assert.NotContains(t, out, strings.Repeat("a", config.MaxFileContentChars+1))
}

func TestCapContent_Idempotent(t *testing.T) {
	once := CapContent(strings.Repeat("a", 9000))
	assert.Equal(t, once, CapContent(once))
}

func TestContextBlock(t *testing.T) {
	assert.Equal(t, "", ContextBlock(nil))

	block := ContextBlock([]commonModels.UploadedFile{
		{Name: "a.txt", Type: commonModels.TXT, Content: "first"},
		{Name: "b.csv", Type: commonModels.CSV, Content: "second"},
	})
	begin := strings.Index(block, ContextBegin)
	a := strings.Index(block, "File: a.txt (.txt)")
	b := strings.Index(block, "File: b.csv (.csv)")
	end := strings.Index(block, ContextEnd)
	assert.True(t, begin >= 0 && begin < a && a < b && b < end)
	assert.True(t, strings.HasSuffix(block, ContextEnd+"\n"+strings.Repeat("=", 60)))
}
