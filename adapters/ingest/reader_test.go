package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadData_CSV(t *testing.T) {
	path := writeTempCSV(t, "ActivityHour,Steps,Notes\n4/12/2016 7:21:00 AM,120,ok\n4/12/2016 8:21:00 AM,80,\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"ActivityHour", "Steps", "Notes"}, table.Headers)
	assert.Len(t, table.Rows, 2)
}

func TestReadData_CSVTooShort(t *testing.T) {
	path := writeTempCSV(t, "OnlyHeader,Row\n")

	_, err := NewDataReader(path).ReadData()
	assert.Error(t, err)
}

func TestReadData_MissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/data.csv").ReadData()
	assert.Error(t, err)
}

func TestReadData_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Participant", "Calories"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"p1", 1800}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"p2", 2200}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Participant", "Calories"}, table.Headers)
	sample, err := table.NumericColumn("Calories")
	require.NoError(t, err)
	assert.Equal(t, []float64{1800, 2200}, []float64(sample))
}

func TestNumericColumn_SkipsUnparseable(t *testing.T) {
	path := writeTempCSV(t, "Steps\n120\nnot-a-number\n\n\"1,250\"\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	sample, err := table.NumericColumn("Steps")
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 1250}, []float64(sample))
}

func TestNumericColumn_UnknownColumn(t *testing.T) {
	path := writeTempCSV(t, "Steps\n120\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	_, err = table.NumericColumn("Missing")
	assert.Error(t, err)
}

func TestNumericColumnNames(t *testing.T) {
	path := writeTempCSV(t, "ActivityHour,Steps,Calories,Notes\n4/12/2016 7:21:00 AM,120,95,warmup\n4/12/2016 8:21:00 AM,80,70,rest\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Steps", "Calories"}, table.NumericColumnNames())
}
