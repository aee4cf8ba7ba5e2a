package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/httputil"
	"github.com/matzehuels/memestyle/pkg/preview"
	"github.com/matzehuels/memestyle/pkg/storage"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// previewOpts holds the flags of the preview command.
type previewOpts struct {
	output     string // PNG path; defaults to KEY.png
	background string // background image path
	bgColor    string // background color when no image is given
	width      int    // canvas width without a background image
	height     int    // canvas height without a background image
	maxSize    int    // longest side of a scaled-down background image
}

// previewCommand creates the "preview" command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{width: 600, height: 600, maxSize: 1600}

	cmd := &cobra.Command{
		Use:   "preview KEY",
		Short: "Render a style to a PNG file",
		Example: `  memestyle preview topAttr -o top.png
  memestyle preview bottomAttr --background cat.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]
			if opts.output == "" {
				opts.output = key + ".png"
			}
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, key)
				if err != nil {
					return err
				}
				if err := renderPreview(ctx, key, s, &opts); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Rendered %s", key)
				printFile(cmd.OutOrStdout(), opts.output)
				return nil
			})
		},
		ValidArgsFunction: c.completeKey,
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG file (default KEY.png)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background image file or http(s) URL (png, jpeg or webp)")
	cmd.Flags().StringVar(&opts.bgColor, "bg", "", "background color (hex) when no image is given")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "canvas width without a background image")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "canvas height without a background image")
	cmd.Flags().IntVar(&opts.maxSize, "max-size", opts.maxSize, "scale background images down to this longest side (0 keeps the size)")

	return cmd
}

func renderPreview(ctx context.Context, key string, s *textstyle.TextStyle, opts *previewOpts) error {
	logger := loggerFromContext(ctx)
	timer := startTiming(ctx, key)

	renderOpts := []preview.Option{preview.WithSize(opts.width, opts.height)}
	if opts.bgColor != "" {
		c, err := textstyle.ParseHex(opts.bgColor)
		if err != nil {
			return err
		}
		renderOpts = append(renderOpts, preview.WithBackgroundColor(c.NRGBA(1)))
	}
	if opts.background != "" {
		img, err := loadBackground(ctx, opts.background, opts.maxSize)
		if err != nil {
			return err
		}
		logger.Debug("background", "path", opts.background, "size", img.Bounds().Size())
		renderOpts = append(renderOpts, preview.WithBackground(img))
	}

	png, err := preview.Render(s, renderOpts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, png, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	timer.done("wrote preview", "file", opts.output, "bytes", len(png))
	return nil
}

// loadBackground decodes the image at source, a file path or an http(s)
// URL, and scales it down so that its longest side is at most maxSize,
// preserving the aspect ratio.
func loadBackground(ctx context.Context, source string, maxSize int) (image.Image, error) {
	var r io.Reader
	if isURL(source) {
		spinner := newSpinnerWithContext(ctx, "Downloading background...")
		spinner.Start()
		data, err := fetchBackground(ctx, source)
		spinner.Stop()
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	} else {
		f, err := os.Open(source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "background %s", source)
			}
			return nil, err
		}
		defer f.Close()
		r = f
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode background %s", source)
	}
	return fitImage(img, maxSize), nil
}

func fetchBackground(ctx context.Context, url string) ([]byte, error) {
	data, err := httputil.NewFetcher().Fetch(ctx, url)
	if stderrors.Is(err, httputil.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "background %s", url)
	}
	return data, err
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// fitImage scales img down to fit a maxSize square using Catmull-Rom.
// Images that already fit, and maxSize <= 0, are returned unchanged.
func fitImage(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return img
	}

	if width >= height {
		height = max(1, height*maxSize/width)
		width = maxSize
	} else {
		width = max(1, width*maxSize/height)
		height = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
