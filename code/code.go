package code

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/msweeney-pnnl/ubid-bedford/code/grammar"
	"github.com/msweeney-pnnl/ubid-bedford/grid"
)

/*
 * Constants for the UBID codec.
 */
const (
	SEPARATOR = "-"
)

/*
 * Error kinds reported by the codec.
 *
 * Errors returned from the codec wrap exactly one of these, so that
 * callers can distinguish them via errors.Is.
 */
var (
	ErrInvalidArgument    = errors.New("Invalid argument")
	ErrInvalidCodeArea    = errors.New("Invalid code area")
	ErrInvalidCoordinates = errors.New("Invalid coordinates")
	ErrInvalidFormat      = errors.New("Invalid format")
)

/*
 * An axis-aligned rectangle in decimal degrees.
 */
type Rectangle struct {
	LatitudeLo  float64
	LongitudeLo float64
	LatitudeHi  float64
	LongitudeHi float64
}

/*
 * The geographic area a UBID code decodes to.
 *
 * An area consists of a bounding box and the grid cell of the center
 * point it was derived from. Areas are immutable. Operations deriving
 * new areas return new, independently owned values.
 */
type Area interface {
	Bounds() Rectangle
	Centroid() grid.Cell
	CodeLength() int
	Encode() (string, error)
	Intersection(other Area) (Rectangle, bool)
	Jaccard(other Area) (float64, bool)
	Resize() Area
	SquareDegrees() float64
}

/*
 * A codec for UBID codes.
 *
 * All operations are pure and safe for concurrent use.
 */
type Codec interface {
	Decode(code string) (Area, error)
	DefaultCodeLength() int
	Encode(latitudeLo float64, longitudeLo float64, latitudeHi float64, longitudeHi float64, latitudeCenter float64, longitudeCenter float64, codeLength int) (string, error)
	IsValid(code string) bool
}

/*
 * Data structure representing a decoded area.
 */
type areaStruct struct {
	bounds   Rectangle
	centroid grid.Cell
	codec    *codecStruct
}

/*
 * Data structure representing a codec.
 */
type codecStruct struct {
	engine    grid.Engine
	validator grammar.Validator
}

/*
 * Returns the height of this rectangle in degrees of latitude.
 */
func (this Rectangle) Height() float64 {
	latitudeLo := this.LatitudeLo
	latitudeHi := this.LatitudeHi
	height := latitudeHi - latitudeLo
	return height
}

/*
 * Returns the area of this rectangle in squared degrees.
 *
 * This is a plain degree product, not a geodesic area.
 */
func (this Rectangle) SquareDegrees() float64 {
	height := this.Height()
	width := this.Width()
	result := height * width
	return result
}

/*
 * Returns the width of this rectangle in degrees of longitude.
 */
func (this Rectangle) Width() float64 {
	longitudeLo := this.LongitudeLo
	longitudeHi := this.LongitudeHi
	width := longitudeHi - longitudeLo
	return width
}

/*
 * Converts an extent into a floating-point cell count.
 */
func extentToFloat(extent *big.Int) float64 {
	extentFloat := big.Float{}
	extentFloat.SetInt(extent)
	result, _ := extentFloat.Float64()
	return result
}

/*
 * Rounds a real-valued cell count to the nearest integer and formats
 * it in decimal.
 *
 * Ties round half away from zero.
 */
func formatExtent(count float64) string {
	rounded := math.Round(count)
	result := strconv.FormatFloat(rounded, 'f', 0, 64)
	return result
}

/*
 * Returns the bounding box of this area.
 */
func (this *areaStruct) Bounds() Rectangle {
	bounds := this.bounds
	return bounds
}

/*
 * Returns the grid cell of the center point this area was derived
 * from.
 */
func (this *areaStruct) Centroid() grid.Cell {
	centroid := this.centroid
	return centroid
}

/*
 * Returns the code length this area was decoded at.
 */
func (this *areaStruct) CodeLength() int {
	centroid := this.centroid
	codeLength := centroid.CodeLength
	return codeLength
}

/*
 * Encodes this area back into a UBID code.
 */
func (this *areaStruct) Encode() (string, error) {
	bounds := this.bounds
	centroid := this.centroid
	latitudeCenter := centroid.LatitudeCenter()
	longitudeCenter := centroid.LongitudeCenter()
	codeLength := centroid.CodeLength
	codec := this.codec
	result, err := codec.Encode(bounds.LatitudeLo, bounds.LongitudeLo, bounds.LatitudeHi, bounds.LongitudeHi, latitudeCenter, longitudeCenter, codeLength)
	return result, err
}

/*
 * Intersects the bounding box of this area with that of another area.
 *
 * An exactly touching pair of boxes yields a valid rectangle of zero
 * area. Only a strictly inverted latitude or longitude range yields no
 * intersection.
 */
func (this *areaStruct) Intersection(other Area) (Rectangle, bool) {

	/*
	 * Check if there is another area.
	 */
	if other == nil {
		return Rectangle{}, false
	} else {
		a := this.bounds
		b := other.Bounds()
		latitudeLo := math.Max(a.LatitudeLo, b.LatitudeLo)
		latitudeHi := math.Min(a.LatitudeHi, b.LatitudeHi)
		longitudeLo := math.Max(a.LongitudeLo, b.LongitudeLo)
		longitudeHi := math.Min(a.LongitudeHi, b.LongitudeHi)
		latitudeInverted := latitudeLo > latitudeHi
		longitudeInverted := longitudeLo > longitudeHi

		/*
		 * Check if the resulting ranges are inverted.
		 */
		if latitudeInverted || longitudeInverted {
			return Rectangle{}, false
		} else {

			/*
			 * Create intersection rectangle.
			 */
			overlap := Rectangle{
				LatitudeLo:  latitudeLo,
				LongitudeLo: longitudeLo,
				LatitudeHi:  latitudeHi,
				LongitudeHi: longitudeHi,
			}

			return overlap, true
		}

	}

}

/*
 * Calculates the Jaccard similarity coefficient between this area and
 * another area.
 *
 * The coefficient is the area of the intersection divided by the area
 * of the union of the two bounding boxes.
 */
func (this *areaStruct) Jaccard(other Area) (float64, bool) {
	overlap, ok := this.Intersection(other)

	/*
	 * Check if the bounding boxes intersect.
	 */
	if !ok {
		return 0.0, false
	} else {
		overlapSquareDegrees := overlap.SquareDegrees()
		union := this.SquareDegrees() + other.SquareDegrees() - overlapSquareDegrees
		result := overlapSquareDegrees / union
		return result, true
	}

}

/*
 * Creates a new area with the bounding box shrunk by half the centroid
 * cell height and width on every side.
 *
 * The centroid cell and code length carry over unchanged. This area
 * remains untouched.
 */
func (this *areaStruct) Resize() Area {
	centroid := this.centroid
	halfHeight := 0.5 * centroid.Height()
	halfWidth := 0.5 * centroid.Width()
	bounds := this.bounds

	/*
	 * Create the shrunk bounding box.
	 */
	resized := Rectangle{
		LatitudeLo:  bounds.LatitudeLo + halfHeight,
		LongitudeLo: bounds.LongitudeLo + halfWidth,
		LatitudeHi:  bounds.LatitudeHi - halfHeight,
		LongitudeHi: bounds.LongitudeHi - halfWidth,
	}

	/*
	 * Create the derived area.
	 */
	area := areaStruct{
		bounds:   resized,
		centroid: centroid,
		codec:    this.codec,
	}

	return &area
}

/*
 * Returns the area of the bounding box in squared degrees.
 */
func (this *areaStruct) SquareDegrees() float64 {
	bounds := this.bounds
	result := bounds.SquareDegrees()
	return result
}

/*
 * Encodes a point through the grid engine at a certain code length and
 * decodes the resulting grid code back into a cell.
 */
func (this *codecStruct) encodePoint(latitude float64, longitude float64, codeLength int) (string, grid.Cell, error) {
	engine := this.engine
	code, err := engine.Encode(latitude, longitude, codeLength)

	/*
	 * Check if point could be encoded.
	 */
	if err != nil {
		msg := err.Error()
		return "", grid.Cell{}, fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
	} else {
		cell, err := engine.Decode(code)

		/*
		 * Check if code could be decoded.
		 */
		if err != nil {
			msg := err.Error()
			return "", grid.Cell{}, fmt.Errorf("%w: %s", ErrInvalidCodeArea, msg)
		} else {
			valid := engine.IsValidCell(cell)

			/*
			 * Check if the engine returned a sane cell.
			 */
			if !valid {
				return "", grid.Cell{}, fmt.Errorf("%w: Grid engine returned an invalid cell for code '%s'.", ErrInvalidCodeArea, code)
			} else {
				return code, cell, nil
			}

		}

	}

}

/*
 * Decodes a UBID code into the geographic area it represents.
 */
func (this *codecStruct) Decode(code string) (Area, error) {
	validator := this.validator
	components, ok := validator.Parse(code)

	/*
	 * Check if the code matches the identifier grammar.
	 */
	if !ok {
		return nil, fmt.Errorf("%w: Code '%s' does not match the UBID grammar.", ErrInvalidFormat, code)
	} else {
		engine := this.engine
		gridCode := components.Code()
		cellCenter, err := engine.Decode(gridCode)

		/*
		 * Check if the center cell could be decoded.
		 */
		if err != nil {
			msg := err.Error()
			return nil, fmt.Errorf("%w: %s", ErrInvalidCodeArea, msg)
		} else {
			valid := engine.IsValidCell(cellCenter)

			/*
			 * Check if the engine returned a sane cell.
			 */
			if !valid {
				return nil, fmt.Errorf("%w: Grid engine returned an invalid cell for code '%s'.", ErrInvalidCodeArea, gridCode)
			} else {
				cellHeight := cellCenter.Height()
				cellWidth := cellCenter.Width()

				/*
				 * Check if the center cell has non-negative size.
				 */
				if (cellHeight < 0.0) || (cellWidth < 0.0) {
					return nil, fmt.Errorf("%w: Grid engine returned a cell of negative size.", ErrInvalidArgument)
				} else {
					north := extentToFloat(components.North())
					east := extentToFloat(components.East())
					south := extentToFloat(components.South())
					west := extentToFloat(components.West())
					latitudeLo := cellCenter.LatitudeLo - (south * cellHeight)
					latitudeHi := cellCenter.LatitudeHi + (north * cellHeight)
					longitudeLo := cellCenter.LongitudeLo - (west * cellWidth)
					longitudeHi := cellCenter.LongitudeHi + (east * cellWidth)
					latitudeValid := engine.IsValidLatitude(latitudeLo, latitudeHi)
					longitudeValid := engine.IsValidLongitude(longitudeLo, longitudeHi)

					/*
					 * Check if the bounding box is within the global
					 * coordinate ranges.
					 */
					if !latitudeValid {
						return nil, fmt.Errorf("%w: Invalid latitude coordinates.", ErrInvalidCoordinates)
					} else if !longitudeValid {
						return nil, fmt.Errorf("%w: Invalid longitude coordinates.", ErrInvalidCoordinates)
					} else {

						/*
						 * Create the bounding box.
						 */
						bounds := Rectangle{
							LatitudeLo:  latitudeLo,
							LongitudeLo: longitudeLo,
							LatitudeHi:  latitudeHi,
							LongitudeHi: longitudeHi,
						}

						/*
						 * Create the decoded area.
						 */
						area := areaStruct{
							bounds:   bounds,
							centroid: cellCenter,
							codec:    this,
						}

						return &area, nil
					}

				}

			}

		}

	}

}

/*
 * Returns the default code length for encoding.
 */
func (this *codecStruct) DefaultCodeLength() int {
	engine := this.engine
	codeLength := engine.DefaultCodeLength()
	return codeLength
}

/*
 * Encodes a bounding box and a center point into a UBID code at a
 * certain code length.
 *
 * The northeast corner, the southwest corner and the center point are
 * each passed through the grid engine. The four extents count how many
 * center-cell heights and widths the corner cells reach beyond the
 * center cell in each cardinal direction.
 */
func (this *codecStruct) Encode(latitudeLo float64, longitudeLo float64, latitudeHi float64, longitudeHi float64, latitudeCenter float64, longitudeCenter float64, codeLength int) (string, error) {
	engine := this.engine
	codeLengthValid := engine.IsValidCodeLength(codeLength)
	latitudeCenterValid := engine.IsValidLatitudeCenter(latitudeLo, latitudeHi, latitudeCenter)
	longitudeCenterValid := engine.IsValidLongitudeCenter(longitudeLo, longitudeHi, longitudeCenter)

	/*
	 * Check preconditions before calling into the grid engine.
	 */
	if !codeLengthValid {
		return "", fmt.Errorf("%w: Invalid code length: %d", ErrInvalidArgument, codeLength)
	} else if !latitudeCenterValid {
		return "", fmt.Errorf("%w: Invalid latitude coordinates.", ErrInvalidArgument)
	} else if !longitudeCenterValid {
		return "", fmt.Errorf("%w: Invalid longitude coordinates.", ErrInvalidArgument)
	} else {
		_, cellNortheast, errNortheast := this.encodePoint(latitudeHi, longitudeHi, codeLength)

		/*
		 * Check if the northeast corner could be encoded.
		 */
		if errNortheast != nil {
			return "", errNortheast
		}

		_, cellSouthwest, errSouthwest := this.encodePoint(latitudeLo, longitudeLo, codeLength)

		/*
		 * Check if the southwest corner could be encoded.
		 */
		if errSouthwest != nil {
			return "", errSouthwest
		}

		codeCenter, cellCenter, errCenter := this.encodePoint(latitudeCenter, longitudeCenter, codeLength)

		/*
		 * Check if the center point could be encoded.
		 */
		if errCenter != nil {
			return "", errCenter
		}

		cellHeight := cellCenter.Height()
		cellWidth := cellCenter.Width()

		/*
		 * Check if the center cell has non-negative size.
		 */
		if (cellHeight < 0.0) || (cellWidth < 0.0) {
			return "", fmt.Errorf("%w: Grid engine returned a cell of negative size.", ErrInvalidArgument)
		} else {
			countNorth := (cellNortheast.LatitudeHi - cellCenter.LatitudeHi) / cellHeight
			countSouth := (cellCenter.LatitudeLo - cellSouthwest.LatitudeLo) / cellHeight
			countEast := (cellNortheast.LongitudeHi - cellCenter.LongitudeHi) / cellWidth
			countWest := (cellCenter.LongitudeLo - cellSouthwest.LongitudeLo) / cellWidth

			/*
			 * A negative extent signals an internally inconsistent
			 * bounding box, e. g. swapped corners.
			 */
			if countNorth < 0.0 {
				return "", fmt.Errorf("%w: Negative extent (north).", ErrInvalidArgument)
			} else if countSouth < 0.0 {
				return "", fmt.Errorf("%w: Negative extent (south).", ErrInvalidArgument)
			} else if countEast < 0.0 {
				return "", fmt.Errorf("%w: Negative extent (east).", ErrInvalidArgument)
			} else if countWest < 0.0 {
				return "", fmt.Errorf("%w: Negative extent (west).", ErrInvalidArgument)
			} else {
				north := formatExtent(countNorth)
				east := formatExtent(countEast)
				south := formatExtent(countSouth)
				west := formatExtent(countWest)
				result := codeCenter + SEPARATOR + north + SEPARATOR + east + SEPARATOR + south + SEPARATOR + west
				return result, nil
			}

		}

	}

}

/*
 * Checks whether a string is a valid UBID code.
 */
func (this *codecStruct) IsValid(code string) bool {
	validator := this.validator
	result := validator.IsValid(code)
	return result
}

/*
 * Creates a UBID codec.
 */
func CreateCodec() Codec {
	engine := grid.CreateEngine()
	validator := grammar.CreateValidator(engine)

	/*
	 * Create codec.
	 */
	codec := codecStruct{
		engine:    engine,
		validator: validator,
	}

	return &codec
}
