package csvutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const export = `"Name","PFS","Level"
"<a href=""Spells.aspx?ID=1"">Acid Splash</a>","<img alt=""PFS Standard"">","1"
"<a href=""Spells.aspx?ID=2"">Shield</a>",,"1","extra"
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, `<a href="Spells.aspx?ID=1">Acid Splash</a>`, records[1][0])
	require.Equal(t, `<img alt="PFS Standard">`, records[1][1])
	require.Len(t, records[2], 4)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.csv")
	require.NoError(t, os.WriteFile(path, []byte(export), 0600))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "1", rows[0][2])

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
