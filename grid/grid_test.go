package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
 * The engine has to publish the character sets and code length limits
 * its codes are built from.
 */
func TestPublishedConstants(t *testing.T) {
	engine := CreateEngine()
	alphabet := engine.Alphabet()
	assert.Len(t, alphabet, 20)
	assert.True(t, strings.HasPrefix(alphabet, "23456789C"))
	assert.Equal(t, "0", engine.PaddingCharacter())
	assert.Equal(t, "+", engine.Separator())
	assert.Equal(t, 10, engine.DefaultCodeLength())
	assert.Equal(t, 2, engine.MinimumCodeLength())
	assert.Equal(t, 15, engine.MaximumCodeLength())
}

/*
 * Below the pair code length only even lengths exist.
 */
func TestIsValidCodeLength(t *testing.T) {
	engine := CreateEngine()

	tests := []struct {
		codeLength int
		want       bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, false},
		{4, true},
		{5, false},
		{6, true},
		{7, false},
		{8, true},
		{9, false},
		{10, true},
		{11, true},
		{12, true},
		{13, true},
		{14, true},
		{15, true},
		{16, false},
	}

	for _, tt := range tests {
		got := engine.IsValidCodeLength(tt.codeLength)
		assert.Equal(t, tt.want, got, "code length %d", tt.codeLength)
	}

}

func TestEncodeDecode(t *testing.T) {
	engine := CreateEngine()
	code, err := engine.Encode(41.7075, -87.6665, 10)
	require.NoError(t, err)
	assert.True(t, engine.IsValidCode(code))
	assert.Contains(t, code, "+")
	cell, err := engine.Decode(code)
	require.NoError(t, err)
	assert.Equal(t, 10, cell.CodeLength)
	assert.True(t, engine.IsValidCell(cell))

	/*
	 * The cell has to contain the encoded point, up to floating-point
	 * error in the decode arithmetic.
	 */
	epsilon := 1e-9
	assert.LessOrEqual(t, cell.LatitudeLo, 41.7075+epsilon)
	assert.GreaterOrEqual(t, cell.LatitudeHi, 41.7075-epsilon)
	assert.LessOrEqual(t, cell.LongitudeLo, -87.6665+epsilon)
	assert.GreaterOrEqual(t, cell.LongitudeHi, -87.6665-epsilon)

	/*
	 * At the pair code length, cells are 1/8000 of a degree on each
	 * axis.
	 */
	assert.InDelta(t, 0.000125, cell.Height(), 1e-12)
	assert.InDelta(t, 0.000125, cell.Width(), 1e-12)
	assert.InDelta(t, 0.5*(cell.LatitudeLo+cell.LatitudeHi), cell.LatitudeCenter(), 1e-12)
	assert.InDelta(t, 0.5*(cell.LongitudeLo+cell.LongitudeHi), cell.LongitudeCenter(), 1e-12)
}

func TestEncodeInvalidCodeLength(t *testing.T) {
	engine := CreateEngine()
	_, err := engine.Encode(41.7075, -87.6665, 3)
	assert.Error(t, err)
	_, err = engine.Encode(41.7075, -87.6665, 16)
	assert.Error(t, err)
}

func TestDecodeInvalidCode(t *testing.T) {
	engine := CreateEngine()
	_, err := engine.Decode("not a code")
	assert.Error(t, err)
}

func TestIsValidCode(t *testing.T) {
	engine := CreateEngine()
	assert.True(t, engine.IsValidCode("849VQJH6+95J"))
	assert.False(t, engine.IsValidCode("invalid"))
}

func TestIsValidCell(t *testing.T) {
	engine := CreateEngine()

	/*
	 * A sane cell.
	 */
	valid := Cell{
		LatitudeLo:  41.707,
		LongitudeLo: -87.667,
		LatitudeHi:  41.708,
		LongitudeHi: -87.666,
		CodeLength:  10,
	}

	assert.True(t, engine.IsValidCell(valid))

	/*
	 * A cell with inverted latitude bounds.
	 */
	inverted := Cell{
		LatitudeLo:  41.708,
		LongitudeLo: -87.667,
		LatitudeHi:  41.707,
		LongitudeHi: -87.666,
		CodeLength:  10,
	}

	assert.False(t, engine.IsValidCell(inverted))

	/*
	 * A cell outside the global coordinate ranges.
	 */
	outside := Cell{
		LatitudeLo:  89.0,
		LongitudeLo: -87.667,
		LatitudeHi:  91.0,
		LongitudeHi: -87.666,
		CodeLength:  10,
	}

	assert.False(t, engine.IsValidCell(outside))

	/*
	 * A cell with a disallowed code length.
	 */
	badLength := valid
	badLength.CodeLength = 3
	assert.False(t, engine.IsValidCell(badLength))
}

func TestCenterPredicates(t *testing.T) {
	engine := CreateEngine()
	assert.True(t, engine.IsValidLatitudeCenter(41.707, 41.708, 41.7075))
	assert.True(t, engine.IsValidLatitudeCenter(41.707, 41.708, 41.707))
	assert.False(t, engine.IsValidLatitudeCenter(41.707, 41.708, 41.709))
	assert.False(t, engine.IsValidLatitudeCenter(41.708, 41.707, 41.7075))
	assert.False(t, engine.IsValidLatitudeCenter(-91.0, 41.708, 0.0))
	assert.True(t, engine.IsValidLongitudeCenter(-87.667, -87.666, -87.6665))
	assert.False(t, engine.IsValidLongitudeCenter(-87.667, -87.666, -87.665))
	assert.False(t, engine.IsValidLongitudeCenter(-87.667, 181.0, 0.0))
}
