package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return &Table{
		Header: []string{"성명", " 출장시작 ", "", "총출장시간"},
		Rows: [][]string{
			{"Kim", "2025-03-04", "09:15", "1시간", "", "일자"},
			{"Lee"},
		},
		FirstRow: 3,
	}
}

func TestResolve_ByHeader(t *testing.T) {
	tbl := testTable()

	idx, err := tbl.Resolve(ColumnRef{Header: "성명"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = tbl.Resolve(ColumnRef{Header: "출장시작"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "header text is trimmed")
}

func TestResolve_ByLetter(t *testing.T) {
	tbl := testTable()

	idx, err := tbl.Resolve(ColumnRef{Letter: "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	// Column F is past the header but present in a data row.
	idx, err = tbl.Resolve(ColumnRef{Letter: "F"})
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}

func TestResolve_LetterWins(t *testing.T) {
	idx, err := testTable().Resolve(ColumnRef{Header: "성명", Letter: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestResolve_Missing(t *testing.T) {
	tbl := testTable()

	_, err := tbl.Resolve(ColumnRef{Header: "공용차량"})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = tbl.Resolve(ColumnRef{Letter: "Z"})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = tbl.Resolve(ColumnRef{})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = tbl.Resolve(ColumnRef{Letter: "1A"})
	assert.Error(t, err)
}

func TestCellAndColumn(t *testing.T) {
	tbl := testTable()
	assert.Equal(t, "Kim", Cell(tbl.Rows[0], 0))
	assert.Equal(t, "", Cell(tbl.Rows[1], 3))
	assert.Equal(t, "", Cell(tbl.Rows[1], -1))
	assert.Equal(t, []string{"일자", ""}, tbl.Column(5))
	assert.Equal(t, 6, tbl.Width())
}

func TestRawCell(t *testing.T) {
	tbl := testTable()
	assert.Equal(t, "Kim", tbl.RawCell(0, 0), "no raw values falls back to display text")

	tbl.Raw = [][]string{{"Kim", "45720.385416666664"}}
	assert.Equal(t, "45720.385416666664", tbl.RawCell(0, 1))
	assert.Equal(t, Cell(tbl.Rows[0], 2), tbl.RawCell(0, 2), "empty raw cell falls back")
	assert.Equal(t, Cell(tbl.Rows[1], 0), tbl.RawCell(1, 0), "row beyond raw falls back")
	assert.Equal(t, "", tbl.RawCell(5, 0))
}

func TestColumnRefString(t *testing.T) {
	assert.Equal(t, "column J", ColumnRef{Letter: "j"}.String())
	assert.Equal(t, `"성명"`, ColumnRef{Header: "성명"}.String())
	assert.True(t, ColumnRef{}.IsZero())
	assert.False(t, ColumnRef{Letter: "A"}.IsZero())
}
