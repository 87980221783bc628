package grid

import (
	"fmt"

	olc "github.com/google/open-location-code/go"
)

/*
 * Constants published by the grid engine.
 */
const (
	DEFAULT_CODE_LENGTH = 10
	LATITUDE_MAX        = 90.0
	LONGITUDE_MAX       = 180.0
	MAXIMUM_CODE_LENGTH = 15
	MINIMUM_CODE_LENGTH = 2
)

/*
 * The rectangular cell a grid code decodes to at its code length.
 *
 * Latitude and longitude bounds are in decimal degrees.
 */
type Cell struct {
	LatitudeLo  float64
	LongitudeLo float64
	LatitudeHi  float64
	LongitudeHi float64
	CodeLength  int
}

/*
 * A hierarchical grid geocode engine.
 *
 * Encodes points into grid codes, decodes grid codes into cells and
 * publishes the character sets and code length limits its codes are
 * built from. All operations are pure and safe for concurrent use.
 */
type Engine interface {
	Alphabet() string
	Decode(code string) (Cell, error)
	DefaultCodeLength() int
	Encode(latitude float64, longitude float64, codeLength int) (string, error)
	IsValidCell(cell Cell) bool
	IsValidCode(code string) bool
	IsValidCodeLength(codeLength int) bool
	IsValidLatitude(latitudeLo float64, latitudeHi float64) bool
	IsValidLatitudeCenter(latitudeLo float64, latitudeHi float64, latitudeCenter float64) bool
	IsValidLongitude(longitudeLo float64, longitudeHi float64) bool
	IsValidLongitudeCenter(longitudeLo float64, longitudeHi float64, longitudeCenter float64) bool
	MaximumCodeLength() int
	MinimumCodeLength() int
	PaddingCharacter() string
	Separator() string
}

/*
 * Data structure representing a grid engine backed by the Open
 * Location Code library.
 */
type engineStruct struct {
}

/*
 * Returns the height of this cell in degrees of latitude.
 */
func (this Cell) Height() float64 {
	latitudeLo := this.LatitudeLo
	latitudeHi := this.LatitudeHi
	height := latitudeHi - latitudeLo
	return height
}

/*
 * Returns the latitude of the center point of this cell.
 */
func (this Cell) LatitudeCenter() float64 {
	latitudeLo := this.LatitudeLo
	latitudeHi := this.LatitudeHi
	center := 0.5 * (latitudeLo + latitudeHi)
	return center
}

/*
 * Returns the longitude of the center point of this cell.
 */
func (this Cell) LongitudeCenter() float64 {
	longitudeLo := this.LongitudeLo
	longitudeHi := this.LongitudeHi
	center := 0.5 * (longitudeLo + longitudeHi)
	return center
}

/*
 * Returns the width of this cell in degrees of longitude.
 */
func (this Cell) Width() float64 {
	longitudeLo := this.LongitudeLo
	longitudeHi := this.LongitudeHi
	width := longitudeHi - longitudeLo
	return width
}

/*
 * Returns the alphabet the engine builds grid codes from.
 */
func (this *engineStruct) Alphabet() string {
	return olc.Alphabet
}

/*
 * Decodes a grid code into the cell it represents.
 */
func (this *engineStruct) Decode(code string) (Cell, error) {
	area, err := olc.Decode(code)

	/*
	 * Check if code could be decoded.
	 */
	if err != nil {
		msg := err.Error()
		return Cell{}, fmt.Errorf("Failed to decode grid code '%s': %s", code, msg)
	} else {

		/*
		 * Create cell from decoded area.
		 */
		cell := Cell{
			LatitudeLo:  area.LatLo,
			LongitudeLo: area.LngLo,
			LatitudeHi:  area.LatHi,
			LongitudeHi: area.LngHi,
			CodeLength:  area.Len,
		}

		return cell, nil
	}

}

/*
 * Returns the default ("pair") code length.
 */
func (this *engineStruct) DefaultCodeLength() int {
	return DEFAULT_CODE_LENGTH
}

/*
 * Encodes a point into a grid code at a certain code length.
 */
func (this *engineStruct) Encode(latitude float64, longitude float64, codeLength int) (string, error) {
	valid := this.IsValidCodeLength(codeLength)

	/*
	 * Check if code length is allowed.
	 */
	if !valid {
		return "", fmt.Errorf("Invalid code length: %d", codeLength)
	} else {
		code := olc.Encode(latitude, longitude, codeLength)
		return code, nil
	}

}

/*
 * Checks whether a cell returned by the engine is sane, i. e. has
 * ordered, in-range bounds and an allowed code length.
 */
func (this *engineStruct) IsValidCell(cell Cell) bool {
	latitudeLo := cell.LatitudeLo
	latitudeHi := cell.LatitudeHi
	longitudeLo := cell.LongitudeLo
	longitudeHi := cell.LongitudeHi
	codeLength := cell.CodeLength
	latitudeValid := this.IsValidLatitude(latitudeLo, latitudeHi)
	longitudeValid := this.IsValidLongitude(longitudeLo, longitudeHi)
	codeLengthValid := this.IsValidCodeLength(codeLength)
	result := latitudeValid && longitudeValid && codeLengthValid
	return result
}

/*
 * Checks whether a string is a semantically valid full grid code.
 */
func (this *engineStruct) IsValidCode(code string) bool {
	err := olc.CheckFull(code)
	result := err == nil
	return result
}

/*
 * Checks whether a code length is allowed.
 *
 * Below the default ("pair") code length, only even lengths exist.
 */
func (this *engineStruct) IsValidCodeLength(codeLength int) bool {
	inRange := (codeLength >= MINIMUM_CODE_LENGTH) && (codeLength <= MAXIMUM_CODE_LENGTH)
	parity := (codeLength > DEFAULT_CODE_LENGTH) || ((codeLength % 2) == 0)
	result := inRange && parity
	return result
}

/*
 * Checks whether a latitude range is ordered and within the global
 * latitude bounds.
 */
func (this *engineStruct) IsValidLatitude(latitudeLo float64, latitudeHi float64) bool {
	result := (latitudeLo >= -LATITUDE_MAX) && (latitudeLo <= latitudeHi) && (latitudeHi <= LATITUDE_MAX)
	return result
}

/*
 * Checks whether a center latitude is consistent with a latitude range.
 */
func (this *engineStruct) IsValidLatitudeCenter(latitudeLo float64, latitudeHi float64, latitudeCenter float64) bool {
	rangeValid := this.IsValidLatitude(latitudeLo, latitudeHi)
	centerValid := (latitudeLo <= latitudeCenter) && (latitudeCenter <= latitudeHi)
	result := rangeValid && centerValid
	return result
}

/*
 * Checks whether a longitude range is ordered and within the global
 * longitude bounds.
 */
func (this *engineStruct) IsValidLongitude(longitudeLo float64, longitudeHi float64) bool {
	result := (longitudeLo >= -LONGITUDE_MAX) && (longitudeLo <= longitudeHi) && (longitudeHi <= LONGITUDE_MAX)
	return result
}

/*
 * Checks whether a center longitude is consistent with a longitude
 * range.
 */
func (this *engineStruct) IsValidLongitudeCenter(longitudeLo float64, longitudeHi float64, longitudeCenter float64) bool {
	rangeValid := this.IsValidLongitude(longitudeLo, longitudeHi)
	centerValid := (longitudeLo <= longitudeCenter) && (longitudeCenter <= longitudeHi)
	result := rangeValid && centerValid
	return result
}

/*
 * Returns the largest allowed code length.
 */
func (this *engineStruct) MaximumCodeLength() int {
	return MAXIMUM_CODE_LENGTH
}

/*
 * Returns the smallest allowed code length.
 */
func (this *engineStruct) MinimumCodeLength() int {
	return MINIMUM_CODE_LENGTH
}

/*
 * Returns the character grid codes are padded with.
 */
func (this *engineStruct) PaddingCharacter() string {
	padding := string(olc.Padding)
	return padding
}

/*
 * Returns the character separating the two parts of a grid code.
 */
func (this *engineStruct) Separator() string {
	separator := string(olc.Separator)
	return separator
}

/*
 * Creates a grid engine backed by the Open Location Code library.
 */
func CreateEngine() Engine {
	engine := engineStruct{}
	return &engine
}
