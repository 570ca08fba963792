/*
Package pixl is a direct pixel buffer image processing library. It stores images
as flat RGBA pixel slices and exposes drawing primitives, convolution kernels,
color matrix filters, artistic effects and procedural texture synthesis on top
of that representation.

The package provides a command line interface, supporting various flags for the
different effects and textures. To check the supported commands type:

	$ pixl --help

In case you wish to integrate the API in a self constructed environment here is
a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/pixlkit/pixl"
	)

	func main() {
		src, err := pixl.DecodeFile("sample.jpg")
		if err != nil {
			fmt.Printf("Error decoding image: %s", err.Error())
			return
		}
		defer src.Dispose()

		dst, err := pixl.PencilSketch(src)
		if err != nil {
			fmt.Printf("Error processing image: %s", err.Error())
			return
		}
		defer dst.Dispose()

		out, _ := os.Create("sketch.png")
		defer out.Close()

		if err := pixl.Encode(out, dst); err != nil {
			fmt.Printf("Error encoding image: %s", err.Error())
		}
	}
*/
package pixl
