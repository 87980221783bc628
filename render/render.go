package render

import (
	"fmt"
	"image"
	"math"

	"github.com/andrepxx/sydney/color"
	"github.com/andrepxx/sydney/coordinates"
	"github.com/andrepxx/sydney/projection"
	"github.com/andrepxx/sydney/scene"
	"github.com/msweeney-pnnl/ubid-bedford/code"
)

/*
 * Constants for the renderer.
 */
const (
	DEGREES_TO_RADIANS = math.Pi / 180.0
	MARGIN_FACTOR      = 0.125
	POINTS_PER_EDGE    = 256
)

/*
 * Renders decoded UBID areas into images.
 */
type Renderer interface {
	RenderArea(area code.Area, xres uint32, yres uint32, spread uint8) (image.Image, error)
}

/*
 * Data structure representing a renderer.
 */
type rendererStruct struct {
}

/*
 * Appends geographic points tracing the outline of a rectangle.
 *
 * Coordinates of the generated points are in radians.
 */
func outlinePoints(bounds code.Rectangle, target []coordinates.Geographic) []coordinates.Geographic {
	latitudeLo := DEGREES_TO_RADIANS * bounds.LatitudeLo
	latitudeHi := DEGREES_TO_RADIANS * bounds.LatitudeHi
	longitudeLo := DEGREES_TO_RADIANS * bounds.LongitudeLo
	longitudeHi := DEGREES_TO_RADIANS * bounds.LongitudeHi
	latitudeRange := latitudeHi - latitudeLo
	longitudeRange := longitudeHi - longitudeLo

	/*
	 * Sample each of the four edges.
	 */
	for i := 0; i < POINTS_PER_EDGE; i++ {
		fraction := float64(i) / POINTS_PER_EDGE
		latitude := latitudeLo + (fraction * latitudeRange)
		longitude := longitudeLo + (fraction * longitudeRange)
		pointSouth := coordinates.CreateGeographic(longitude, latitudeLo)
		pointNorth := coordinates.CreateGeographic(longitude, latitudeHi)
		pointWest := coordinates.CreateGeographic(longitudeLo, latitude)
		pointEast := coordinates.CreateGeographic(longitudeHi, latitude)
		target = append(target, pointSouth, pointNorth, pointWest, pointEast)
	}

	return target
}

/*
 * Renders the bounding box and the centroid cell of an area into an
 * image.
 */
func (this *rendererStruct) RenderArea(area code.Area, xres uint32, yres uint32, spread uint8) (image.Image, error) {

	/*
	 * Check if we got an area.
	 */
	if area == nil {
		return nil, fmt.Errorf("%s", "Area must not be nil!")
	} else {
		bounds := area.Bounds()
		centroid := area.Centroid()

		/*
		 * The outline of the centroid cell.
		 */
		centroidBounds := code.Rectangle{
			LatitudeLo:  centroid.LatitudeLo,
			LongitudeLo: centroid.LongitudeLo,
			LatitudeHi:  centroid.LatitudeHi,
			LongitudeHi: centroid.LongitudeHi,
		}

		pointsGeographic := make([]coordinates.Geographic, 0, 8*POINTS_PER_EDGE)
		pointsGeographic = outlinePoints(bounds, pointsGeographic)
		pointsGeographic = outlinePoints(centroidBounds, pointsGeographic)
		numPoints := len(pointsGeographic)
		pointsProjected := make([]coordinates.Cartesian, numPoints)
		mercator := projection.Mercator()
		err := mercator.Forward(pointsProjected, pointsGeographic)

		/*
		 * Check if outline points could be projected.
		 */
		if err != nil {
			msg := err.Error()
			return nil, fmt.Errorf("Error projecting outline points: %s", msg)
		} else {
			minX := math.Inf(1)
			maxX := math.Inf(-1)
			minY := math.Inf(1)
			maxY := math.Inf(-1)

			/*
			 * Determine the extent of the projected outline.
			 */
			for _, point := range pointsProjected {
				x := point.X()
				y := point.Y()
				minX = math.Min(minX, x)
				maxX = math.Max(maxX, x)
				minY = math.Min(minY, y)
				maxY = math.Max(maxY, y)
			}

			marginX := MARGIN_FACTOR * (maxX - minX)
			marginY := MARGIN_FACTOR * (maxY - minY)
			scn := scene.Create(xres, yres, minX-marginX, maxX+marginX, minY-marginY, maxY+marginY)
			scn.Aggregate(pointsProjected)
			scn.Spread(spread)
			mapping := color.DefaultMapping()
			target, err := scn.Render(mapping)

			/*
			 * Check if image could be rendered.
			 */
			if err != nil {
				msg := err.Error()
				return nil, fmt.Errorf("Failed to render image: %s", msg)
			} else {
				return target, nil
			}

		}

	}

}

/*
 * Creates a renderer for decoded UBID areas.
 */
func Create() Renderer {
	renderer := rendererStruct{}
	return &renderer
}
