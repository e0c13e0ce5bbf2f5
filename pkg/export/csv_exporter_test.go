package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Reg No", "Name", "Pending"},
		Rows: []map[string]string{
			{"Reg No": "STU-001", "Name": "Meera Shah", "Pending": "1500.00"},
			{"Reg No": "STU-002", "Name": "Ravi, Jr", "Pending": "0.00"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Reg No,Name,Pending", lines[0])
	assert.Equal(t, "STU-001,Meera Shah,1500.00", lines[1])
	// Values containing commas are quoted.
	assert.Equal(t, `STU-002,"Ravi, Jr",0.00`, lines[2])
}

func TestCSVExporterRenderMissingColumn(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Reg No", "Name"},
		Rows:    []map[string]string{{"Reg No": "STU-001"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "STU-001,")
}

func TestCSVExporterRenderNoHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
