package code

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msweeney-pnnl/ubid-bedford/grid"
)

/*
 * Creates an area with handcrafted bounds for geometry tests.
 */
func createTestArea(codec Codec, bounds Rectangle) Area {
	c := codec.(*codecStruct)

	/*
	 * A centroid cell in the middle of the bounding box.
	 */
	centroid := grid.Cell{
		LatitudeLo:  0.5 * (bounds.LatitudeLo + bounds.LatitudeHi),
		LongitudeLo: 0.5 * (bounds.LongitudeLo + bounds.LongitudeHi),
		LatitudeHi:  0.5 * (bounds.LatitudeLo + bounds.LatitudeHi),
		LongitudeHi: 0.5 * (bounds.LongitudeLo + bounds.LongitudeHi),
		CodeLength:  10,
	}

	/*
	 * Create area under test.
	 */
	area := areaStruct{
		bounds:   bounds,
		centroid: centroid,
		codec:    c,
	}

	return &area
}

func TestEncodeScenario(t *testing.T) {
	codec := CreateCodec()
	codeLength := codec.DefaultCodeLength()
	result, err := codec.Encode(41.707, -87.667, 41.708, -87.666, 41.7075, -87.6665, codeLength)
	require.NoError(t, err)
	assert.True(t, codec.IsValid(result))

	/*
	 * The code has to consist of a grid code followed by four
	 * dash-separated integer groups.
	 */
	parts := strings.Split(result, "-")
	require.Len(t, parts, 5)
	assert.Contains(t, parts[0], "+")

	/*
	 * Check that every extent group is an integer.
	 */
	for _, part := range parts[1:] {
		assert.Regexp(t, "^(0|[1-9][0-9]*)$", part)
	}

}

func TestDecodeScenario(t *testing.T) {
	codec := CreateCodec()
	area, err := codec.Decode("849VQJH6+95J-51-58-42-50")
	require.NoError(t, err)
	bounds := area.Bounds()
	assert.Less(t, bounds.LatitudeLo, bounds.LatitudeHi)
	assert.Less(t, bounds.LongitudeLo, bounds.LongitudeHi)
	assert.Equal(t, 11, area.CodeLength())
	assert.Greater(t, area.SquareDegrees(), 0.0)

	/*
	 * The centroid cell has to sit between the bounding box bounds.
	 */
	centroid := area.Centroid()
	assert.GreaterOrEqual(t, centroid.LatitudeLo, bounds.LatitudeLo)
	assert.LessOrEqual(t, centroid.LatitudeHi, bounds.LatitudeHi)
	assert.GreaterOrEqual(t, centroid.LongitudeLo, bounds.LongitudeLo)
	assert.LessOrEqual(t, centroid.LongitudeHi, bounds.LongitudeHi)
}

/*
 * Decoding an encoded bounding box has to reproduce it to within one
 * grid cell at the code length used for encoding.
 */
func TestRoundTrip(t *testing.T) {
	codec := CreateCodec()
	result, err := codec.Encode(41.707, -87.667, 41.708, -87.666, 41.7075, -87.6665, 10)
	require.NoError(t, err)
	area, err := codec.Decode(result)
	require.NoError(t, err)
	bounds := area.Bounds()
	cellSize := 0.000125
	assert.InDelta(t, 41.707, bounds.LatitudeLo, cellSize)
	assert.InDelta(t, 41.708, bounds.LatitudeHi, cellSize)
	assert.InDelta(t, -87.667, bounds.LongitudeLo, cellSize)
	assert.InDelta(t, -87.666, bounds.LongitudeHi, cellSize)
}

func TestEncodeErrors(t *testing.T) {
	codec := CreateCodec()

	/*
	 * A disallowed code length.
	 */
	_, err := codec.Encode(41.707, -87.667, 41.708, -87.666, 41.7075, -87.6665, 3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	/*
	 * A center point outside the bounding box.
	 */
	_, err = codec.Encode(41.707, -87.667, 41.708, -87.666, 41.710, -87.6665, 10)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	/*
	 * Swapped corners.
	 */
	_, err = codec.Encode(41.708, -87.666, 41.707, -87.667, 41.7075, -87.6665, 10)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDecodeErrors(t *testing.T) {
	codec := CreateCodec()

	/*
	 * A string failing the grammar.
	 */
	_, err := codec.Decode("invalid-code")
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	/*
	 * A non-numeric extent.
	 */
	_, err = codec.Decode("849VQJH6+95J-5a-58-42-50")
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	/*
	 * An extent pushing the bounding box beyond the global latitude
	 * range.
	 */
	_, err = codec.Decode("849VQJH6+95J-99999999-0-0-0")
	assert.True(t, errors.Is(err, ErrInvalidCoordinates))
}

func TestIsValid(t *testing.T) {
	codec := CreateCodec()
	assert.True(t, codec.IsValid("849VQJH6+95J-51-58-42-50"))
	assert.False(t, codec.IsValid("invalid-code"))
	assert.False(t, codec.IsValid("849VQJH6+95J-5a-58-42-50"))
}

func TestIntersection(t *testing.T) {
	codec := CreateCodec()

	a := createTestArea(codec, Rectangle{
		LatitudeLo:  0.0,
		LongitudeLo: 0.0,
		LatitudeHi:  2.0,
		LongitudeHi: 2.0,
	})

	b := createTestArea(codec, Rectangle{
		LatitudeLo:  1.0,
		LongitudeLo: 1.0,
		LatitudeHi:  3.0,
		LongitudeHi: 3.0,
	})

	/*
	 * Partial overlap.
	 */
	overlap, ok := a.Intersection(b)
	require.True(t, ok)
	assert.InDelta(t, 1.0, overlap.LatitudeLo, 1e-12)
	assert.InDelta(t, 1.0, overlap.LongitudeLo, 1e-12)
	assert.InDelta(t, 2.0, overlap.LatitudeHi, 1e-12)
	assert.InDelta(t, 2.0, overlap.LongitudeHi, 1e-12)
	assert.InDelta(t, 1.0, overlap.SquareDegrees(), 1e-12)

	/*
	 * Intersection is symmetric in the resulting area.
	 */
	overlapReverse, ok := b.Intersection(a)
	require.True(t, ok)
	assert.InDelta(t, overlap.SquareDegrees(), overlapReverse.SquareDegrees(), 1e-12)

	/*
	 * Exactly touching boxes yield a valid zero-area rectangle.
	 */
	touching := createTestArea(codec, Rectangle{
		LatitudeLo:  0.0,
		LongitudeLo: 2.0,
		LatitudeHi:  2.0,
		LongitudeHi: 4.0,
	})

	edge, ok := a.Intersection(touching)
	require.True(t, ok)
	assert.InDelta(t, 0.0, edge.SquareDegrees(), 1e-12)

	/*
	 * Strictly disjoint boxes yield no intersection.
	 */
	disjoint := createTestArea(codec, Rectangle{
		LatitudeLo:  5.0,
		LongitudeLo: 5.0,
		LatitudeHi:  6.0,
		LongitudeHi: 6.0,
	})

	_, ok = a.Intersection(disjoint)
	assert.False(t, ok)

	/*
	 * A nil area yields no intersection.
	 */
	_, ok = a.Intersection(nil)
	assert.False(t, ok)
}

func TestJaccard(t *testing.T) {
	codec := CreateCodec()

	a := createTestArea(codec, Rectangle{
		LatitudeLo:  0.0,
		LongitudeLo: 0.0,
		LatitudeHi:  2.0,
		LongitudeHi: 2.0,
	})

	b := createTestArea(codec, Rectangle{
		LatitudeLo:  1.0,
		LongitudeLo: 1.0,
		LatitudeHi:  3.0,
		LongitudeHi: 3.0,
	})

	/*
	 * Overlap of one square degree against a union of seven.
	 */
	coefficient, ok := a.Jaccard(b)
	require.True(t, ok)
	assert.InDelta(t, 1.0/7.0, coefficient, 1e-12)
	assert.GreaterOrEqual(t, coefficient, 0.0)
	assert.LessOrEqual(t, coefficient, 1.0)

	/*
	 * The coefficient is symmetric.
	 */
	coefficientReverse, ok := b.Jaccard(a)
	require.True(t, ok)
	assert.InDelta(t, coefficient, coefficientReverse, 1e-12)

	/*
	 * An area compared with itself has coefficient one.
	 */
	identity, ok := a.Jaccard(a)
	require.True(t, ok)
	assert.InDelta(t, 1.0, identity, 1e-12)

	/*
	 * Disjoint areas have no coefficient.
	 */
	disjoint := createTestArea(codec, Rectangle{
		LatitudeLo:  5.0,
		LongitudeLo: 5.0,
		LatitudeHi:  6.0,
		LongitudeHi: 6.0,
	})

	_, ok = a.Jaccard(disjoint)
	assert.False(t, ok)
}

func TestJaccardOnDecodedArea(t *testing.T) {
	codec := CreateCodec()
	area, err := codec.Decode("849VQJH6+95J-51-58-42-50")
	require.NoError(t, err)
	coefficient, ok := area.Jaccard(area)
	require.True(t, ok)
	assert.InDelta(t, 1.0, coefficient, 1e-12)
}

func TestResize(t *testing.T) {
	codec := CreateCodec()
	area, err := codec.Decode("849VQJH6+95J-51-58-42-50")
	require.NoError(t, err)
	bounds := area.Bounds()
	centroid := area.Centroid()
	halfHeight := 0.5 * centroid.Height()
	halfWidth := 0.5 * centroid.Width()
	resized := area.Resize()
	resizedBounds := resized.Bounds()
	assert.InDelta(t, bounds.LatitudeLo+halfHeight, resizedBounds.LatitudeLo, 1e-12)
	assert.InDelta(t, bounds.LongitudeLo+halfWidth, resizedBounds.LongitudeLo, 1e-12)
	assert.InDelta(t, bounds.LatitudeHi-halfHeight, resizedBounds.LatitudeHi, 1e-12)
	assert.InDelta(t, bounds.LongitudeHi-halfWidth, resizedBounds.LongitudeHi, 1e-12)

	/*
	 * The resized bounding box is strictly contained in the original
	 * one.
	 */
	assert.Greater(t, resizedBounds.LatitudeLo, bounds.LatitudeLo)
	assert.Less(t, resizedBounds.LatitudeHi, bounds.LatitudeHi)
	assert.Greater(t, resizedBounds.LongitudeLo, bounds.LongitudeLo)
	assert.Less(t, resizedBounds.LongitudeHi, bounds.LongitudeHi)

	/*
	 * The centroid cell carries over and the original area remains
	 * untouched.
	 */
	assert.Equal(t, centroid, resized.Centroid())
	assert.Equal(t, bounds, area.Bounds())
}

func TestAreaEncode(t *testing.T) {
	codec := CreateCodec()
	area, err := codec.Decode("849VQJH6+95J-51-58-42-50")
	require.NoError(t, err)
	reencoded, err := area.Encode()
	require.NoError(t, err)
	assert.True(t, codec.IsValid(reencoded))
	assert.True(t, strings.HasPrefix(reencoded, "849VQJH6+95J-"))
}
