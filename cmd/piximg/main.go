package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/pix"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

var formatNames = map[string]pix.Format{
	"uint1":   pix.FormatUint1,
	"uint2":   pix.FormatUint2,
	"uint4":   pix.FormatUint4,
	"uint8":   pix.FormatUint8,
	"uint16":  pix.FormatUint16,
	"uint32":  pix.FormatUint32,
	"int8":    pix.FormatInt8,
	"int16":   pix.FormatInt16,
	"int32":   pix.FormatInt32,
	"float16": pix.FormatFloat16,
	"float32": pix.FormatFloat32,
	"float64": pix.FormatFloat64,
}

func parseFormat(name string) (pix.Format, error) {
	f, ok := formatNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown pixel format %q", name)
	}
	return f, nil
}

func encodingFor(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "png"
	}
	return ext
}

func loadImage(path string) (*pix.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pix.Decode(f)
}

func saveImage(path string, img *pix.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pix.Encode(f, img, encodingFor(path))
}

func main() {
	app := cli.NewApp()

	app.Name = "piximg"
	app.Usage = "Image inspection and pixel format conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			pix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print image dimensions, pixel format and frame layout",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				img, err := loadImage(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("size:     %dx%d\n", img.Width(), img.Height())
				fmt.Printf("format:   %s\n", img.Format())
				fmt.Printf("channels: %d\n", img.Channels())
				fmt.Printf("frames:   %d\n", img.NumFrames())
				if img.HasPalette() {
					fmt.Printf("palette:  %d colors\n", img.Palette().NumColors())
				}
				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert an image to a different pixel format or channel count",
			ArgsUsage: "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format, f",
					Usage: "target pixel format (uint1..uint32, int8..int32, float16..float64)",
				},
				&cli.IntFlag{
					Name:  "channels, c",
					Usage: "target channel count (1-4)",
				},
				&cli.BoolFlag{
					Name:  "palette, p",
					Usage: "produce a paletted image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				img, err := loadImage(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var opts []pix.ConvertOption
				if name := c.String("format"); name != "" {
					f, err := parseFormat(name)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					opts = append(opts, pix.ConvertFormat(f))
				}
				if n := c.Int("channels"); n != 0 {
					opts = append(opts, pix.ConvertChannels(n))
				}
				if c.Bool("palette") {
					opts = append(opts, pix.ConvertWithPalette())
				}

				out, err := img.Convert(opts...)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := saveImage(c.Args().Get(1), out); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
