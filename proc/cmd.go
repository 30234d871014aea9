// Package proc implements the CLI command that runs pixel operations over
// every picture in a folder.
package proc

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pixgrid/colorspace"
	"pixgrid/img"
	"pixgrid/palette"
	"pixgrid/parallel"

	"github.com/alecthomas/kong"
)

type Cmd struct {
	Scan    string  `help:"Source folder to scan" default:"."`
	Dest    string  `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"processed"`
	Gray    bool    `help:"Drop chroma, keeping Oklab lightness" group:"ops"`
	Chroma  float64 `help:"Scale chroma by this factor" default:"1" group:"ops"`
	Palette string  `help:"Palette name (bw, gray4, gray16, vga16) or PAL file in RIFF format to remap to" group:"ops"`
	Workers int     `help:"Worker pool size, 0 selects GOMAXPROCS" default:"0"`
	Split   int     `help:"Minimum pixels per parallel traversal leaf" default:"1024"`
	Format  string  `help:"Output format of processed images" enum:"same,gif,jpeg,png,bmp,tiff" default:"png"`

	pal palette.Palette
}

func (c *Cmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Chroma < 0 {
		return fmt.Errorf("invalid chroma factor: %v", c.Chroma)
	}
	if c.Split < 1 {
		return fmt.Errorf("invalid minimum split size: %d", c.Split)
	}

	if c.Palette != "" {
		if c.pal, err = palette.Load(c.Palette); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cmd) Run() error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.Start(c.Workers)
	defer pool.Close()

	var processed, errCount int
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filePath := filepath.Join(c.Scan, file.Name())
		logger := slog.Default().With("file", filePath)

		if err := c.processFile(logger, pool, filePath, file.Name()); err != nil {
			errCount++
			logger.Error("could not process image", "error", err)
			continue
		}
		processed++
	}

	slog.Info("stats", "processed", processed, "errors", errCount, "total", processed+errCount)

	if errCount > 0 {
		return fmt.Errorf("error processing %d files", errCount)
	}
	return nil
}

func (c *Cmd) processFile(logger *slog.Logger, pool *parallel.Pool, filePath, fileName string) error {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer imgFile.Close()

	decoded, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	m := img.FromImage(decoded)
	if err := m.SetSplitMin(c.Split); err != nil {
		return err
	}

	if c.Gray || c.Chroma != 1 {
		factor := c.Chroma
		if c.Gray {
			factor = 0
		}
		logger.Info("scaling chroma", "factor", factor)
		err = img.ConvertParallel(pool, m, colorspace.LabConverter{}, func(e *colorspace.Lab) error {
			e.A *= factor
			e.B *= factor
			return nil
		})
		if err != nil {
			return fmt.Errorf("could not adjust chroma: %w", err)
		}
	}

	if len(c.pal) > 0 {
		logger.Info("applying palette", "palette", c.Palette, "colors", len(c.pal))
		if err := c.pal.Remap(pool, m); err != nil {
			return fmt.Errorf("could not apply palette: %w", err)
		}
	}

	if err := save(m, imgType, c.Format, c.Dest, fileName); err != nil {
		return fmt.Errorf("could not save image to %q: %w", c.Dest, err)
	}
	return nil
}

func destName(srcName, outType string) string {
	oldExt := filepath.Ext(srcName)
	return fmt.Sprintf("%s.%s", strings.TrimSuffix(srcName, oldExt), outType)
}
