package tabular

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"transport-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifestHeaderRow(t *testing.T) {
	in := "Title,,\n" +
		"\n" +
		"Country,Date,Flight\n" +
		"Japan,2026-01-20,JL 31\n" +
		"Korea,2026-01-20,KE 651,extra\n"

	tbl, err := ReadManifest(strings.NewReader(in), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "Date", "Flight"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "KE 651", tbl.Cell(1, 2))
	assert.Equal(t, 3, tbl.Width())

	raw, err := ReadManifest(strings.NewReader(in), -1)
	require.NoError(t, err)
	assert.Empty(t, raw.Header)
	assert.Len(t, raw.Rows, 4)

	_, err = ReadManifest(strings.NewReader(in), 9)
	assert.Error(t, err)

	empty, err := ReadManifest(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
}

func TestReadDrivers(t *testing.T) {
	in := "Car License,Driver,Phone,Station\n" +
		"1AB-101,Somchai,081,bkk\n" +
		"1AB-102,Anong,082,\n" +
		",,,\n" +
		"2CD-201,Malee,083,DMK\n"

	drivers, err := ReadDrivers(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []domain.Driver{
		{LicensePlate: "1AB-101", Name: "Somchai", Phone: "081", Station: "BKK"},
		{LicensePlate: "1AB-102", Name: "Anong", Phone: "082", Station: domain.AnyStation},
		{LicensePlate: "2CD-201", Name: "Malee", Phone: "083", Station: "DMK"},
	}, drivers)

	_, err = ReadDrivers(strings.NewReader("phone,station\n081,BKK\n"))
	assert.Error(t, err)
}

func TestReadBags(t *testing.T) {
	in := "Bag_ID,Seal_ID,Owner\nT-001, S1 ,Alice\nT-002,S2,Bob\n"

	bags, err := ReadBags(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bags, 2)
	assert.Equal(t, "S1", bags[0].SealID)
	assert.Equal(t, map[string]string{"owner": "Alice"}, bags[0].Attributes)

	_, err = ReadBags(strings.NewReader("Owner\nAlice\n"))
	assert.Error(t, err)
}

func TestFileSources(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.csv")
	roster := filepath.Join(dir, "drivers.csv")
	require.NoError(t, os.WriteFile(manifest, []byte("a,b\n1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(roster, []byte("license_plate,driver_name\nX,Y\n"), 0o644))

	tbl, err := NewCSVManifestSource(manifest, 0).LoadManifest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)

	drivers, err := NewCSVDriverRoster(roster).ListDrivers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AnyStation, drivers[0].Station)

	_, err = NewCSVBagLedger(filepath.Join(dir, "missing.csv")).ListBags(context.Background())
	assert.Error(t, err)
}
