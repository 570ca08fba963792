package pixl

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"github.com/disintegration/imaging"
	"github.com/pixlkit/pixl/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImage copies a decoded image into a new buffer, channel by channel,
// exactly once. The buffer owns its pixels afterwards; the source image
// can be discarded.
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dst, err := NewPixelBuffer(w, h, Transparent)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			di := y * w
			for x := 0; x < w; x++ {
				dst.store[di+x] = Pixel{
					R: src.Pix[si+0],
					G: src.Pix[si+1],
					B: src.Pix[si+2],
					A: src.Pix[si+3],
				}
				si += 4
			}
		}
	case *image.YCbCr:
		for y := 0; y < h; y++ {
			di := y * w
			for x := 0; x < w; x++ {
				srcX, srcY := bounds.Min.X+x, bounds.Min.Y+y
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.store[di+x] = Pixel{R: r, G: g, B: b, A: 0xff}
			}
		}
	default:
		for y := 0; y < h; y++ {
			di := y * w
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				dst.store[di+x] = Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
			}
		}
	}
	return dst, nil
}

// ToNRGBA exports a snapshot of the buffer as *image.NRGBA, the exchange
// type of the codec layer. The copy is consistent: it is taken in one
// pass under the buffer lock.
func (b *PixelBuffer) ToNRGBA() (*image.NRGBA, error) {
	pix := b.Bytes()
	if pix == nil {
		return nil, ErrDisposed
	}

	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, pix)
	return img, nil
}

// Decode reads and decodes an image from r into a new buffer. PNG, JPEG,
// GIF, BMP, TIFF and WEBP sources are recognized.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return FromImage(img)
}

// DecodeFile decodes an image file into a new buffer, rejecting sources
// whose sniffed content type is not an image.
func DecodeFile(path string) (*PixelBuffer, error) {
	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%s is not an image file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the source file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes the buffer to w. When w is a file the encoder follows its
// extension (png, jpg, bmp, tiff); any other writer receives JPEG.
func Encode(w io.Writer, b *PixelBuffer) error {
	img, err := b.ToNRGBA()
	if err != nil {
		return err
	}

	if f, ok := w.(*os.File); ok {
		switch ext := filepath.Ext(f.Name()); ext {
		case "", ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		case ".png":
			return png.Encode(w, img)
		case ".bmp":
			return bmp.Encode(w, img)
		case ".tif", ".tiff":
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		default:
			return errors.New("unsupported image format")
		}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
}

// Resize rescales the buffer to the new dimensions with Lanczos
// resampling.
func Resize(b *PixelBuffer, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	img, err := b.ToNRGBA()
	if err != nil {
		return nil, err
	}
	return FromImage(imaging.Resize(img, width, height, imaging.Lanczos))
}

// Rotate90 returns the buffer rotated by 90 degrees counter clockwise.
func Rotate90(b *PixelBuffer) (*PixelBuffer, error) {
	return rotate(b, func(w, h, x, y int) (int, int) {
		return w - y - 1, x
	})
}

// Rotate270 returns the buffer rotated by 270 degrees counter clockwise.
func Rotate270(b *PixelBuffer) (*PixelBuffer, error) {
	return rotate(b, func(w, h, x, y int) (int, int) {
		return y, h - x - 1
	})
}

// rotate builds the transposed buffer, asking srcAt for the source
// coordinate feeding each destination pixel.
func rotate(b *PixelBuffer, srcAt func(w, h, dstX, dstY int) (int, int)) (*PixelBuffer, error) {
	w, h := b.Width(), b.Height()
	dst, err := NewPixelBuffer(h, w, Transparent)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return nil, ErrDisposed
	}

	for dstY := 0; dstY < w; dstY++ {
		for dstX := 0; dstX < h; dstX++ {
			srcX, srcY := srcAt(w, h, dstX, dstY)
			dst.store[dstX+dstY*h] = b.store[srcX+srcY*w]
		}
	}
	return dst, nil
}
