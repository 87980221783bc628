package grammar

import (
	"math/big"
	"regexp"
	"sync"

	"github.com/msweeney-pnnl/ubid-bedford/grid"
)

/*
 * Constants for the identifier grammar.
 */
const (
	BASE_DECIMAL = 10
	NUM_GROUPS   = 6
	SEPARATOR    = "-"
)

/*
 * The components a UBID code is parsed into: the grid code substring
 * and the four cell extents.
 *
 * Extents are arbitrary-precision integers. The grammar guarantees
 * that they are non-negative and carry no leading zeros.
 */
type Components interface {
	Code() string
	East() *big.Int
	North() *big.Int
	South() *big.Int
	West() *big.Int
}

/*
 * Validates candidate strings against the UBID identifier grammar and
 * parses them into their components.
 */
type Validator interface {
	IsValid(candidate string) bool
	Parse(candidate string) (Components, bool)
}

/*
 * Data structure representing parsed components.
 */
type componentsStruct struct {
	code  string
	east  *big.Int
	north *big.Int
	south *big.Int
	west  *big.Int
}

/*
 * Data structure representing a validator.
 */
type validatorStruct struct {
	engine  grid.Engine
	pattern *regexp.Regexp
}

/*
 * The compiled grammar is process-wide state. It is assembled exactly
 * once from the constants published by the grid engine and is
 * read-only thereafter.
 */
var patternOnce sync.Once
var pattern *regexp.Regexp

/*
 * Assembles the identifier grammar from the character sets published
 * by the grid engine.
 *
 * The grid code part replicates the engine's own padding and length
 * rules: two, four, six or eight significant leading characters,
 * padded up to the separator position, optionally followed by padding
 * or further significant characters after the separator. The four
 * extents are unbounded decimal integers without leading zeros.
 */
func buildPattern(engine grid.Engine) *regexp.Regexp {
	alphabet := engine.Alphabet()
	alphabetFirst := alphabet[0:9]
	alphabetSecond := alphabet[0:18]
	padding := regexp.QuoteMeta(engine.PaddingCharacter())
	separator := regexp.QuoteMeta(engine.Separator())
	ubidSeparator := regexp.QuoteMeta(SEPARATOR)
	extent := "(0|[1-9][0-9]*)"
	trailingPadding := "(?:" + padding + "{2,})?"
	formEight := "[" + alphabet + "]{2}" + separator + "(?:" + padding + "{2,}|[" + alphabet + "]{2,}" + padding + "*)?"
	formSix := "[" + alphabet + "]{2}" + "(?:" + padding + "{2}" + separator + trailingPadding + "|" + formEight + ")"
	formFour := "[" + alphabet + "]{2}" + "(?:" + padding + "{4}" + separator + trailingPadding + "|" + formSix + ")"
	formTwo := padding + "{6}" + separator + trailingPadding
	codePart := "[" + alphabetFirst + "][" + alphabetSecond + "]" + "(?:" + formTwo + "|" + formFour + ")"
	expr := "(?i)^(" + codePart + ")" + ubidSeparator + extent + ubidSeparator + extent + ubidSeparator + extent + ubidSeparator + extent + "$"
	rex := regexp.MustCompile(expr)
	return rex
}

/*
 * Parses a matched extent group into an arbitrary-precision integer.
 */
func parseExtent(digits string) (*big.Int, bool) {
	value := big.NewInt(0)
	result, ok := value.SetString(digits, BASE_DECIMAL)
	return result, ok
}

/*
 * Returns the grid code substring of these components.
 */
func (this *componentsStruct) Code() string {
	code := this.code
	return code
}

/*
 * Returns the number of cells the bounding box extends beyond the
 * center cell towards the east.
 */
func (this *componentsStruct) East() *big.Int {
	east := this.east
	return east
}

/*
 * Returns the number of cells the bounding box extends beyond the
 * center cell towards the north.
 */
func (this *componentsStruct) North() *big.Int {
	north := this.north
	return north
}

/*
 * Returns the number of cells the bounding box extends beyond the
 * center cell towards the south.
 */
func (this *componentsStruct) South() *big.Int {
	south := this.south
	return south
}

/*
 * Returns the number of cells the bounding box extends beyond the
 * center cell towards the west.
 */
func (this *componentsStruct) West() *big.Int {
	west := this.west
	return west
}

/*
 * Checks whether a candidate string is a valid UBID code.
 */
func (this *validatorStruct) IsValid(candidate string) bool {
	_, ok := this.Parse(candidate)
	return ok
}

/*
 * Parses a candidate string into its components.
 *
 * A structural match alone is insufficient: the grid code substring
 * must also pass the engine's own validity predicate.
 */
func (this *validatorStruct) Parse(candidate string) (Components, bool) {
	rex := this.pattern
	groups := rex.FindStringSubmatch(candidate)
	numGroups := len(groups)

	/*
	 * Check if the grammar matched and produced all components.
	 */
	if numGroups != NUM_GROUPS {
		return nil, false
	} else {
		codePart := groups[1]
		engine := this.engine
		codeValid := engine.IsValidCode(codePart)

		/*
		 * Check if the grid code substring is semantically valid.
		 */
		if !codeValid {
			return nil, false
		} else {
			north, okNorth := parseExtent(groups[2])
			east, okEast := parseExtent(groups[3])
			south, okSouth := parseExtent(groups[4])
			west, okWest := parseExtent(groups[5])
			extentsValid := okNorth && okEast && okSouth && okWest

			/*
			 * Check if all extents could be parsed.
			 */
			if !extentsValid {
				return nil, false
			} else {

				/*
				 * Create parsed components.
				 */
				components := componentsStruct{
					code:  codePart,
					east:  east,
					north: north,
					south: south,
					west:  west,
				}

				return &components, true
			}

		}

	}

}

/*
 * Creates a validator for UBID codes.
 *
 * The underlying grammar is built on first use and shared afterwards.
 */
func CreateValidator(engine grid.Engine) Validator {

	/*
	 * Build the grammar from the engine's published constants.
	 */
	patternOnce.Do(func() {
		pattern = buildPattern(engine)
	})

	/*
	 * Create validator.
	 */
	validator := validatorStruct{
		engine:  engine,
		pattern: pattern,
	}

	return &validator
}
