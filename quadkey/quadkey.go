package quadkey

import (
	"fmt"
	"math"
	"strings"
)

/*
 * Constants for tile and quadkey calculations.
 */
const (
	DEGREES_TO_RADIANS = math.Pi / 180.0
	MAX_ZOOM_LEVEL     = 23
)

/*
 * A utility for slippy-map tile numbers and quadkeys.
 */
type Util interface {
	ForBoundingBox(north float64, south float64, east float64, west float64, zoom uint8) ([]string, error)
	FromTileNumbers(x uint32, y uint32, zoom uint8) string
	TileNumbers(latitude float64, longitude float64, zoom uint8) (uint32, uint32)
}

/*
 * Data structure representing the utility.
 */
type utilStruct struct {
}

/*
 * Clamps a tile number into the valid range for a zoom level.
 */
func clampTileNumber(value int64, zoom uint8) uint32 {
	maxId := (int64(1) << zoom) - 1

	/*
	 * Limit tile number to valid range.
	 */
	if value < 0 {
		value = 0
	} else if value > maxId {
		value = maxId
	}

	result := uint32(value)
	return result
}

/*
 * Returns the quadkeys of all tiles intersecting a bounding box at a
 * certain zoom level.
 */
func (this *utilStruct) ForBoundingBox(north float64, south float64, east float64, west float64, zoom uint8) ([]string, error) {

	/*
	 * Check if zoom level and bounding box are valid.
	 */
	if zoom > MAX_ZOOM_LEVEL {
		return nil, fmt.Errorf("Zoom level %d not allowed. (Maximum: %d)", zoom, MAX_ZOOM_LEVEL)
	} else if (north < south) || (east < west) {
		return nil, fmt.Errorf("%s", "Bounding box is inverted.")
	} else {
		minX, maxY := this.TileNumbers(south, west, zoom)
		maxX, minY := this.TileNumbers(north, east, zoom)
		numTilesX := uint64(maxX-minX) + 1
		numTilesY := uint64(maxY-minY) + 1
		numTiles := numTilesX * numTilesY
		result := make([]string, 0, numTiles)

		/*
		 * Enumerate every column of tiles.
		 */
		for x := minX; x <= maxX; x++ {

			/*
			 * Enumerate every tile in the column.
			 */
			for y := minY; y <= maxY; y++ {
				quadkey := this.FromTileNumbers(x, y, zoom)
				result = append(result, quadkey)
			}

		}

		return result, nil
	}

}

/*
 * Converts tile numbers into a quadkey.
 *
 * The quadkey has one digit per zoom level, interleaving one bit of
 * the x and one bit of the y tile number each.
 */
func (this *utilStruct) FromTileNumbers(x uint32, y uint32, zoom uint8) string {
	builder := strings.Builder{}

	/*
	 * Derive one digit per zoom level, most significant bit first.
	 */
	for i := zoom; i > 0; i-- {
		digit := byte('0')
		mask := uint32(1) << (i - 1)

		/*
		 * Check the bit from the x tile number.
		 */
		if (x & mask) != 0 {
			digit += 1
		}

		/*
		 * Check the bit from the y tile number.
		 */
		if (y & mask) != 0 {
			digit += 2
		}

		builder.WriteByte(digit)
	}

	result := builder.String()
	return result
}

/*
 * Converts geographic coordinates in decimal degrees into tile numbers
 * at a certain zoom level.
 */
func (this *utilStruct) TileNumbers(latitude float64, longitude float64, zoom uint8) (uint32, uint32) {
	latitudeRadians := DEGREES_TO_RADIANS * latitude
	tilesPerAxis := float64(uint64(1) << zoom)
	x := ((longitude + 180.0) / 360.0) * tilesPerAxis
	yProjected := math.Asinh(math.Tan(latitudeRadians)) / math.Pi
	y := (1.0 - yProjected) * 0.5 * tilesPerAxis
	xFloor := int64(math.Floor(x))
	yFloor := int64(math.Floor(y))
	xTile := clampTileNumber(xFloor, zoom)
	yTile := clampTileNumber(yFloor, zoom)
	return xTile, yTile
}

/*
 * Creates a utility for tile and quadkey calculations.
 */
func Create() Util {
	util := utilStruct{}
	return &util
}
