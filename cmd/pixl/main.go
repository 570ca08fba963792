package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pixlkit/pixl"
	"github.com/pixlkit/pixl/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬─┐ ┬┬
├─┘│┌┴┬┘│
┴  ┴┴ └─┴─┘

Pixel buffer image processing library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// result holds the relevant information about the processed image.
type result struct {
	path string
	err  error
}

var (
	// imgurl holds the file being accessed be it normal file or pipe name.
	imgurl *os.File
	// spinner used to instantiate and call the progress indicator.
	spinner *utils.Spinner
)

// Version indicates the current build version.
var Version string

// options groups the filter parameters collected from the command line.
type options struct {
	effect    string
	size      int
	amount    float64
	threshold float64
	radius    int
	scale     int
	seed      int64
	width     int
	height    int
	turbSize  float64
	turbPower float64
	period    float64
}

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	effect      = flag.String("effect", "", "Effect to apply (grayscale, sepia, gaussian, contour, sketch, clouds, marble, wood, ...)")
	size        = flag.Int("size", 3, "Kernel size")
	amount      = flag.Float64("amount", 1.0, "Effect amount")
	threshold   = flag.Float64("threshold", 10, "Threshold value")
	radius      = flag.Int("radius", 2, "Region radius")
	sscale      = flag.Int("scale", 2, "Supersampling scale")
	seed        = flag.Int64("seed", 1, "Noise seed")
	newWidth    = flag.Int("width", 256, "Generated texture width")
	newHeight   = flag.Int("height", 256, "Generated texture height")
	turbSize    = flag.Float64("turb", 64.0, "Turbulence size")
	turbPower   = flag.Float64("power", 5.0, "Turbulence power")
	period      = flag.Float64("period", 5.0, "Pattern period")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")

	// File related variables
	fs  os.FileInfo
	err error
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*effect) == 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide an effect to apply!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	opts := &options{
		effect:    strings.ToLower(*effect),
		size:      *size,
		amount:    *amount,
		threshold: *threshold,
		radius:    *radius,
		scale:     *sscale,
		seed:      *seed,
		width:     *newWidth,
		height:    *newHeight,
		turbSize:  *turbSize,
		turbPower: *turbPower,
		period:    *period,
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIXL", utils.StatusMessage),
		utils.DecorateText("is processing the image...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	now := time.Now()

	if isTexture(opts.effect) {
		// Textures are generated, not decoded, so no source is needed.
		err := processor(*source, *destination, opts)
		printStatus(*destination, err)
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
		return
	}

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(*source) {
		src, err := utils.DownloadImage(*source)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to download the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		defer src.Close()
		defer os.Remove(src.Name())

		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		img, err := os.Open(src.Name())
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to open the temporary image file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		imgurl = img
	} else {
		// Check if the source is a pipe name or a regular file.
		if *source == pipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(*source)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		if _, err := os.Stat(*destination); err != nil {
			if err = os.Mkdir(*destination, 0755); err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if *workers <= 0 || *workers > maxWorkers {
			*workers = runtime.NumCPU()
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, *source, validExtensions)

		wg.Add(*workers)
		for i := 0; i < *workers; i++ {
			go func() {
				defer wg.Done()
				consumer(done, paths, *destination, opts, ch)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			printStatus(res.path, res.err)
		}

		if err := <-errc; err != nil {
			fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(*destination)
		if !isValidExtension(ext, validExtensions) && *destination != pipeName {
			log.Fatal(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		err := processor(*source, *destination, opts)
		printStatus(*destination, err)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// walkDir starts a goroutine to walk the specified directory tree in recursive manner
// and send the path of each regular file on the string channel.
// It sends the result of the walk on the error channel.
// It terminates in case done channel is closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(filepath.Ext(info.Name()), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// consumer reads the path names from the paths channel and applies the
// requested effect against the source image then sends the results on a
// new channel.
func consumer(
	done <-chan interface{},
	paths <-chan string,
	dest string,
	opts *options,
	res chan<- result,
) {
	for src := range paths {
		dest := filepath.Join(dest, filepath.Base(src))
		err := processor(src, dest, opts)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// processor decodes the source image, dispatches the requested effect and
// encodes the result into the destination. Textures are generated, not
// decoded, so their source argument is never resolved; running them from
// an interactive terminal without a stdin pipe must work.
func processor(in, out string, opts *options) error {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	if isTexture(opts.effect) {
		dst, err = destToFile(out)
	} else {
		src, dst, err = pathToFile(in, out)
	}
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok && src != os.Stdin {
		defer c.Close()
	}
	if c, ok := dst.(io.Closer); ok && dst != os.Stdout {
		defer c.Close()
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	// Start the progress indicator.
	spinner.Start()
	err = apply(src, dst, opts)

	stopMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIXL", utils.StatusMessage),
		utils.DecorateText("is processing the image... ✔", utils.DefaultMessage))
	spinner.StopMsg = stopMsg

	// Stop the progress indicator.
	spinner.Stop()

	return err
}

// apply runs the requested effect over the decoded source and writes the
// resulting image.
func apply(src io.Reader, dst io.Writer, opts *options) error {
	var (
		buf *pixl.PixelBuffer
		err error
	)

	if isTexture(opts.effect) {
		noise := pixl.NewNoise(pixl.DefaultNoiseSize, opts.seed)
		buf, err = synthesizeTexture(opts, noise)
	} else {
		buf, err = pixl.Decode(src)
		if err != nil {
			return err
		}
		buf, err = applyEffect(buf, opts)
	}
	if err != nil {
		return err
	}

	return pixl.Encode(dst, buf)
}

// applyEffect maps the effect name to its implementation.
func applyEffect(src *pixl.PixelBuffer, opts *options) (*pixl.PixelBuffer, error) {
	switch opts.effect {
	case "grayscale":
		return pixl.Grayscale(src)
	case "invert":
		return pixl.Invert(src)
	case "sepia":
		return pixl.Sepia(src)
	case "brightness":
		return pixl.Brightness(src, opts.amount)
	case "contrast":
		return pixl.Contrast(src, opts.amount)
	case "saturation":
		return pixl.Saturation(src, opts.amount)
	case "huerotate":
		return pixl.HueRotate(src, opts.amount)
	case "vintage":
		return pixl.Vintage(src)
	case "polaroid":
		return pixl.Polaroid(src)
	case "blackwhite":
		return pixl.BlackWhite(src, uint8(utils.Clamp(opts.threshold, 0, 255)))
	case "sharpen":
		return pixl.Sharpen(src)
	case "boxblur":
		return pixl.BoxBlur(src, opts.size)
	case "gaussian":
		return pixl.GaussianBlur(src, opts.size)
	case "emboss":
		return pixl.Emboss(src)
	case "laplacian":
		return pixl.Laplacian(src)
	case "edge":
		return pixl.EdgeEnhance(src)
	case "motionblur":
		return pixl.MotionBlur(src, opts.size)
	case "contour":
		return pixl.Contour(src, opts.threshold)
	case "unsharp":
		return pixl.UnsharpMask(src, opts.size, opts.amount)
	case "dog":
		return pixl.DifferenceOfGaussians(src)
	case "crosshatch":
		return pixl.Crosshatch(src)
	case "sketch":
		return pixl.PencilSketch(src)
	case "kuwahara":
		return pixl.Kuwahara(src, opts.radius)
	case "antialias":
		return pixl.Antialias(src, opts.scale)
	case "dither":
		return pixl.FloydSteinberg(src, nil)
	case "resize":
		return pixl.Resize(src, opts.width, opts.height)
	case "rotate90":
		return pixl.Rotate90(src)
	case "rotate270":
		return pixl.Rotate270(src)
	default:
		return nil, fmt.Errorf("unsupported effect: %s", opts.effect)
	}
}

// synthesizeTexture generates one of the procedural textures.
func synthesizeTexture(opts *options, noise *pixl.Noise) (*pixl.PixelBuffer, error) {
	switch opts.effect {
	case "clouds":
		return pixl.Clouds(opts.width, opts.height, noise, opts.turbSize)
	case "marble":
		return pixl.Marble(opts.width, opts.height, noise, opts.period, opts.period, opts.turbPower, opts.turbSize)
	case "wood":
		return pixl.Wood(opts.width, opts.height, noise, opts.period, opts.turbPower, opts.turbSize)
	case "waves":
		return pixl.Waves(opts.width, opts.height, noise, opts.period, opts.period, opts.turbPower, opts.turbSize)
	case "noise":
		return pixl.NoiseImage(opts.width, opts.height, noise, opts.turbSize)
	default:
		return nil, fmt.Errorf("unsupported texture: %s", opts.effect)
	}
}

// isTexture reports whether the effect name is a generated texture.
func isTexture(name string) bool {
	switch name {
	case "clouds", "marble", "wood", "waves", "noise":
		return true
	}
	return false
}

// pathToFile converts the source and destination paths to readable and writable files.
func pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		src = imgurl
	} else {
		// Check if the source is a pipe name or a regular file.
		if in == pipeName {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, nil, errors.New("`-` should be used with a pipe for stdin")
			}
			src = os.Stdin
		} else {
			src, err = os.Open(in)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
			}
		}
	}

	dst, err = destToFile(out)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

// destToFile converts the destination path to a writable file.
func destToFile(out string) (io.Writer, error) {
	// Check if the destination is a pipe name or a regular file.
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, nil
	}
	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY, 0755)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %v", err)
	}
	return dst, nil
}

// printStatus displays the relevant information about the image processing.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError processing the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(0)
	} else {
		if fname != pipeName {
			fmt.Fprintf(os.Stderr, "\nThe processed image has been saved as: %s %s\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
