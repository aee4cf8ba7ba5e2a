package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/storage"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// loadStyle reads key from store. A stored document that fails to parse
// is logged and replaced by the defaults, so the command can continue.
func loadStyle(ctx context.Context, store textstyle.Store, key string) (*textstyle.TextStyle, error) {
	s, err := textstyle.Load(ctx, store, key)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeParse) {
			return nil, err
		}
		styleLogger(ctx, key).Warn("attribute reading failed, using defaults", "err", err)
	}
	return s, nil
}

// saveStyle writes s under key, logging failures.
func saveStyle(ctx context.Context, store textstyle.Store, key string, s *textstyle.TextStyle) error {
	logger := styleLogger(ctx, key)
	if err := s.Save(ctx, store, key); err != nil {
		logger.Error("attribute writing failed", "err", err)
		return err
	}
	logger.Debug("saved style")
	return nil
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show KEY",
		Short: "Show a stored style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					data, err := s.MarshalDocument()
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}
				printStyle(cmd.OutOrStdout(), args[0], s)
				return nil
			})
		},
		ValidArgsFunction: c.completeKey,
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored document")
	return cmd
}

// setOpts holds the flags of the set command; only flags that were given
// are applied.
type setOpts struct {
	text      string
	uppercase bool
	font      string
	size      float64
	color     string
	outline   string
	align     string
	stroke    float64
	opacity   float64
	shadow    bool
	shadow3D  bool
	offset    string
	rect      string
}

// setCommand creates the "set" command.
func (c *CLI) setCommand() *cobra.Command {
	var opts setOpts

	cmd := &cobra.Command{
		Use:   "set KEY",
		Short: "Change fields of a stored style",
		Long: `Change fields of a stored style. Fields not given on the command line keep their stored value.

Alignment accepts left, center, right, justify or the numeric codes 0-3 (left, center, right, justify).`,
		Example: `  memestyle set topAttr --text "one does not simply" --color "#ffcc00" --align center
  memestyle set bottomAttr --size 60 --shadow-3d --offset 0,12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, key)
				if err != nil {
					return err
				}
				if err := opts.apply(cmd, s); err != nil {
					return err
				}
				if err := saveStyle(ctx, store, key, s); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Updated %s", key)
				return nil
			})
		},
		ValidArgsFunction: c.completeKey,
	}

	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "caption text")
	f.BoolVar(&opts.uppercase, "uppercase", true, "display the text in upper case")
	f.StringVar(&opts.font, "font", "", "font family")
	f.Float64Var(&opts.size, "size", 0, "font size in points")
	f.StringVar(&opts.color, "color", "", "text color (hex, e.g. #ffffff)")
	f.StringVar(&opts.outline, "outline", "", "outline and shadow color (hex)")
	f.StringVar(&opts.align, "align", "", "alignment: left, center, right, justify or 0-3")
	f.Float64Var(&opts.stroke, "stroke", 0, "outline width in percent of the font size")
	f.Float64Var(&opts.opacity, "opacity", 1, "opacity 0-1")
	f.BoolVar(&opts.shadow, "shadow", true, "draw a shadow")
	f.BoolVar(&opts.shadow3D, "shadow-3d", false, "use the 3D shadow style")
	f.StringVar(&opts.offset, "offset", "", "text offset as x,y")
	f.StringVar(&opts.rect, "rect", "", "text box as x,y,w,h")

	return cmd
}

// apply copies every changed flag into s.
func (o *setOpts) apply(cmd *cobra.Command, s *textstyle.TextStyle) error {
	changed := cmd.Flags().Changed

	if changed("text") {
		s.Text = o.text
	}
	if changed("uppercase") {
		s.Uppercase = o.uppercase
	}
	if changed("font") {
		if o.font == "" {
			return errors.New(errors.ErrCodeInvalidInput, "font must not be empty")
		}
		s.FontName = o.font
	}
	if changed("size") {
		if err := s.SetFontSize(o.size); err != nil {
			return err
		}
	}
	if changed("color") {
		rgb, err := textstyle.ParseHex(o.color)
		if err != nil {
			return err
		}
		s.SetTextColor(rgb)
	}
	if changed("outline") {
		rgb, err := textstyle.ParseHex(o.outline)
		if err != nil {
			return err
		}
		s.SetOutlineColor(rgb)
	}
	if changed("align") {
		if err := setAlignment(s, o.align); err != nil {
			return err
		}
	}
	if changed("stroke") {
		s.StrokeWidth = o.stroke
	}
	if changed("opacity") {
		s.SetOpacity(o.opacity)
	}
	if changed("shadow") {
		s.ShadowEnabled = o.shadow
	}
	if changed("shadow-3d") {
		s.Shadow3D = o.shadow3D
		if o.shadow3D {
			s.ShadowEnabled = true
		}
	}
	if changed("offset") {
		p, err := textstyle.ParsePoint(o.offset)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--offset")
		}
		s.Offset = p
	}
	if changed("rect") {
		r, err := textstyle.ParseRect(o.rect)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--rect")
		}
		s.Rect = r
	}
	return nil
}

// setAlignment accepts a name or a user-scale code (0 left, 1 center,
// 2 right, 3 justify).
func setAlignment(s *textstyle.TextStyle, v string) error {
	if code, err := strconv.Atoi(v); err == nil {
		if code < 0 || code > 3 {
			return errors.New(errors.ErrCodeInvalidAlignment, "alignment code %d out of range 0-3", code)
		}
		s.SetAbsAlignment(code)
		return nil
	}
	a, err := textstyle.ParseAlignment(v)
	if err != nil {
		return err
	}
	s.SetAlignment(a)
	return nil
}

// resetCommand creates the "reset" command.
func (c *CLI) resetCommand() *cobra.Command {
	var offsetOnly bool

	cmd := &cobra.Command{
		Use:   "reset KEY",
		Short: "Restore default formatting of a style (text is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, key)
				if err != nil {
					return err
				}
				if offsetOnly {
					s.ResetOffset()
				} else {
					s.SetDefault()
				}
				if err := saveStyle(ctx, store, key, s); err != nil {
					return err
				}
				if offsetOnly {
					printSuccess(cmd.OutOrStdout(), "Reset offset and size of %s", key)
				} else {
					printSuccess(cmd.OutOrStdout(), "Reset %s to defaults", key)
				}
				return nil
			})
		},
		ValidArgsFunction: c.completeKey,
	}

	cmd.Flags().BoolVar(&offsetOnly, "offset-only", false, "only reset offset and font size")
	return cmd
}

// clearCommand creates the "clear" command.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [KEYS...]",
		Short: "Clear texts and restore default formatting",
		Long:  fmt.Sprintf("Clear the text of each key and restore its default formatting. Without arguments %s and %s are cleared.", textstyle.TopKey, textstyle.BottomKey),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store storage.Store) error {
				logger := loggerFromContext(ctx)
				var err error
				if len(args) == 0 {
					args = []string{textstyle.TopKey, textstyle.BottomKey}
					err = textstyle.ClearTopAndBottom(ctx, store, logger)
				} else {
					err = textstyle.ClearTexts(ctx, store, logger, args...)
				}
				if err != nil {
					printError(cmd.ErrOrStderr(), "Some styles could not be cleared")
					return err
				}
				for _, key := range args {
					printSuccess(cmd.OutOrStdout(), "Cleared %s", key)
				}
				return nil
			})
		},
	}
}

// attrsCommand creates the "attrs" command.
func (c *CLI) attrsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attrs KEY",
		Short: "Print the render attributes of a style as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s.BuildRenderAttributes())
			})
		},
		ValidArgsFunction: c.completeKey,
	}
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored style keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store storage.Store) error {
				lister, ok := store.(storage.Lister)
				if !ok {
					return errors.New(errors.ErrCodeUnsupported, "this store cannot list keys")
				}
				keys, err := lister.Keys(ctx)
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					printInfo(cmd.OutOrStdout(), "No styles stored")
					return nil
				}
				for _, key := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			})
		},
	}
}
