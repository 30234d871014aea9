package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"pixgrid/proc"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var cli struct {
	Proc proc.Cmd `cmd:"" help:"Run pixel operations over every picture in a folder."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pixgrid"),
		kong.Description("Pixel-array toolkit with parallel per-pixel processing."),
	)
	if err := kctx.Run(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
