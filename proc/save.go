package proc

import (
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"pixgrid/img"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func save(m *img.Img, imgType, outType, destDir, srcName string) (err error) {
	if outType == "same" {
		outType = imgType
	}

	name := destName(srcName, outType)
	outFile, err := os.CreateTemp(destDir, name)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", name, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", name, defErr)
		}
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", name, defErr)
		}

		if canRename {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, name)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", name, defErr)
			}
		} else {
			os.Remove(outFile.Name())
		}
	}()

	switch outType {
	case "gif":
		if err = gif.Encode(outFile, m, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", name, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, m, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", name, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, m); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", name, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, m); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", name, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, m, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
