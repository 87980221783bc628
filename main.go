package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/msweeney-pnnl/ubid-bedford/blob"
	"github.com/msweeney-pnnl/ubid-bedford/code"
	"github.com/msweeney-pnnl/ubid-bedford/quadkey"
	"github.com/msweeney-pnnl/ubid-bedford/render"
)

/*
 * Constants for the command line interface.
 */
const (
	DEFAULT_SPREAD             = 2
	DEFAULT_XRES               = 1280
	DEFAULT_YRES               = 720
	DEFAULT_ZOOM               = 16
	MODE_FILE      os.FileMode = 0644
)

/*
 * Serializable representation of a decoded area.
 */
type storedAreaStruct struct {
	Code        string
	LatitudeLo  float64
	LongitudeLo float64
	LatitudeHi  float64
	LongitudeHi float64
	CodeLength  int
}

/*
 * Decode a UBID code and print its bounding box.
 *
 * If a store path is set, additionally serialize the decoded area.
 */
func decodeCommand(codec code.Codec, codeIn string, storePath string) {
	area, err := codec.Decode(codeIn)

	/*
	 * Check if code could be decoded.
	 */
	if err != nil {
		msg := err.Error()
		fmt.Printf("Failed to decode '%s': %s\n", codeIn, msg)
	} else {
		bounds := area.Bounds()
		codeLength := area.CodeLength()
		fmt.Printf("Code: %s\n", codeIn)
		fmt.Printf("Code length: %d\n", codeLength)
		fmt.Printf("Latitude: [%.8f, %.8f]\n", bounds.LatitudeLo, bounds.LatitudeHi)
		fmt.Printf("Longitude: [%.8f, %.8f]\n", bounds.LongitudeLo, bounds.LongitudeHi)
		fmt.Printf("Area: %.12f square degrees\n", area.SquareDegrees())

		/*
		 * Check if we shall serialize the decoded area.
		 */
		if storePath != "" {

			/*
			 * Create serializable representation.
			 */
			stored := storedAreaStruct{
				Code:        codeIn,
				LatitudeLo:  bounds.LatitudeLo,
				LongitudeLo: bounds.LongitudeLo,
				LatitudeHi:  bounds.LatitudeHi,
				LongitudeHi: bounds.LongitudeHi,
				CodeLength:  codeLength,
			}

			store := blob.CreateStore()
			err := store.Serialize(storePath, &stored)

			/*
			 * Check if area could be serialized.
			 */
			if err != nil {
				msg := err.Error()
				fmt.Printf("Failed to store decoded area: %s\n", msg)
			} else {
				fmt.Printf("Stored decoded area in '%s'.\n", storePath)
			}

		}

	}

}

/*
 * Encode a bounding box and center point into a UBID code.
 */
func encodeCommand(codec code.Codec, latitudeLo float64, longitudeLo float64, latitudeHi float64, longitudeHi float64, latitudeCenter float64, longitudeCenter float64, codeLength int) {

	/*
	 * Fall back to the default code length.
	 */
	if codeLength <= 0 {
		codeLength = codec.DefaultCodeLength()
	}

	result, err := codec.Encode(latitudeLo, longitudeLo, latitudeHi, longitudeHi, latitudeCenter, longitudeCenter, codeLength)

	/*
	 * Check if bounding box could be encoded.
	 */
	if err != nil {
		msg := err.Error()
		fmt.Printf("Failed to encode: %s\n", msg)
	} else {
		fmt.Printf("%s\n", result)
	}

}

/*
 * Deserialize a previously stored area and print it.
 */
func loadCommand(loadPath string) {
	store := blob.CreateStore()
	stored := storedAreaStruct{}
	err := store.Deserialize(loadPath, &stored)

	/*
	 * Check if area could be deserialized.
	 */
	if err != nil {
		msg := err.Error()
		fmt.Printf("Failed to load stored area: %s\n", msg)
	} else {
		fmt.Printf("Code: %s\n", stored.Code)
		fmt.Printf("Code length: %d\n", stored.CodeLength)
		fmt.Printf("Latitude: [%.8f, %.8f]\n", stored.LatitudeLo, stored.LatitudeHi)
		fmt.Printf("Longitude: [%.8f, %.8f]\n", stored.LongitudeLo, stored.LongitudeHi)
	}

}

/*
 * Print the quadkeys of all tiles intersecting the bounding box of a
 * UBID code.
 */
func quadkeysCommand(codec code.Codec, codeIn string, zoom uint8) {
	area, err := codec.Decode(codeIn)

	/*
	 * Check if code could be decoded.
	 */
	if err != nil {
		msg := err.Error()
		fmt.Printf("Failed to decode '%s': %s\n", codeIn, msg)
	} else {
		bounds := area.Bounds()
		util := quadkey.Create()
		quadkeys, err := util.ForBoundingBox(bounds.LatitudeHi, bounds.LatitudeLo, bounds.LongitudeHi, bounds.LongitudeLo, zoom)

		/*
		 * Check if quadkeys could be determined.
		 */
		if err != nil {
			msg := err.Error()
			fmt.Printf("Failed to determine quadkeys: %s\n", msg)
		} else {

			/*
			 * Print each quadkey on its own line.
			 */
			for _, qk := range quadkeys {
				fmt.Printf("%s\n", qk)
			}

		}

	}

}

/*
 * Render the area of a UBID code into a PNG file.
 */
func renderCommand(codec code.Codec, codeIn string, outPath string, xres uint32, yres uint32, spread uint8) {
	area, err := codec.Decode(codeIn)

	/*
	 * Check if code could be decoded.
	 */
	if err != nil {
		msg := err.Error()
		fmt.Printf("Failed to decode '%s': %s\n", codeIn, msg)
	} else {
		renderer := render.Create()
		target, err := renderer.RenderArea(area, xres, yres, spread)

		/*
		 * Check if area could be rendered.
		 */
		if err != nil {
			msg := err.Error()
			fmt.Printf("Failed to render area: %s\n", msg)
		} else {

			/*
			 * Create a PNG encoder.
			 */
			encoder := png.Encoder{
				CompressionLevel: png.BestCompression,
			}

			buf := &bytes.Buffer{}
			err := encoder.Encode(buf, target)

			/*
			 * Check if image could be encoded.
			 */
			if err != nil {
				msg := err.Error()
				fmt.Printf("Failed to encode image: %s\n", msg)
			} else {
				content := buf.Bytes()
				err := os.WriteFile(outPath, content, MODE_FILE)

				/*
				 * Check if image could be written.
				 */
				if err != nil {
					msg := err.Error()
					fmt.Printf("Failed to write image to '%s': %s\n", outPath, msg)
				} else {
					fmt.Printf("Rendered area of '%s' to '%s'.\n", codeIn, outPath)
				}

			}

		}

	}

}

/*
 * Check whether a string is a valid UBID code.
 */
func validateCommand(codec code.Codec, codeIn string) {
	valid := codec.IsValid(codeIn)

	/*
	 * Report the validation result.
	 */
	if valid {
		fmt.Printf("'%s' is a valid UBID code.\n", codeIn)
	} else {
		fmt.Printf("'%s' is NOT a valid UBID code.\n", codeIn)
	}

}

/*
 * The entry point of our program.
 */
func main() {
	decode := flag.String("decode", "", "Decode a UBID code and print its bounding box")
	encode := flag.Bool("encode", false, "Encode a bounding box and center point into a UBID code")
	latLo := flag.Float64("latlo", 0.0, "Southern boundary latitude in decimal degrees")
	lonLo := flag.Float64("lonlo", 0.0, "Western boundary longitude in decimal degrees")
	latHi := flag.Float64("lathi", 0.0, "Northern boundary latitude in decimal degrees")
	lonHi := flag.Float64("lonhi", 0.0, "Eastern boundary longitude in decimal degrees")
	latCenter := flag.Float64("latcenter", 0.0, "Center point latitude in decimal degrees")
	lonCenter := flag.Float64("loncenter", 0.0, "Center point longitude in decimal degrees")
	length := flag.Int("length", 0, "Code length for encoding (0 uses the default)")
	load := flag.String("load", "", "Load a previously stored area from this file")
	out := flag.String("out", "area.png", "Path of the rendered PNG file")
	quadkeys := flag.String("quadkeys", "", "Print quadkeys of tiles intersecting the area of a UBID code")
	renderIn := flag.String("render", "", "Render the area of a UBID code into a PNG file")
	spread := flag.Uint("spread", DEFAULT_SPREAD, "Spread applied to rendered outline points")
	store := flag.String("store", "", "Serialize the decoded area into this file (used with -decode)")
	validate := flag.String("validate", "", "Check whether a string is a valid UBID code")
	xres := flag.Uint("xres", DEFAULT_XRES, "Horizontal resolution of the rendered image")
	yres := flag.Uint("yres", DEFAULT_YRES, "Vertical resolution of the rendered image")
	zoom := flag.Uint("zoom", DEFAULT_ZOOM, "Zoom level for quadkey enumeration")
	flag.Parse()
	codec := code.CreateCodec()

	/*
	 * Dispatch on the requested operation.
	 */
	if *encode {
		encodeCommand(codec, *latLo, *lonLo, *latHi, *lonHi, *latCenter, *lonCenter, *length)
	} else if *decode != "" {
		decodeCommand(codec, *decode, *store)
	} else if *validate != "" {
		validateCommand(codec, *validate)
	} else if *renderIn != "" {
		renderCommand(codec, *renderIn, *out, uint32(*xres), uint32(*yres), uint8(*spread))
	} else if *quadkeys != "" {
		quadkeysCommand(codec, *quadkeys, uint8(*zoom))
	} else if *load != "" {
		loadCommand(*load)
	} else {
		flag.Usage()
	}

}
