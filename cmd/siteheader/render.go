package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/siteheader/internal/config"
	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/render"
)

type renderOptions struct {
	path     string
	layout   string
	locale   string
	loggedIn bool
	user     string
	pretty   bool
}

func renderCmd(load loader) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a header fragment",
		Long: `Render the desktop or mobile header for a location and print the HTML.

Examples:
  siteheader render --path=/programs
  siteheader render --layout=mobile --pretty
  siteheader render --logged-in --user=alice --locale=fr-FR`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runRender(cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "/", "Current location")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", string(header.LayoutDesktop), "Layout: desktop or mobile")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale (default from config)")
	cmd.Flags().BoolVar(&opts.loggedIn, "logged-in", false, "Render for a signed-in visitor")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "user", "Username when --logged-in")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")

	return cmd
}

func runRender(w io.Writer, cfg *config.Config, opts renderOptions) error {
	layout, err := header.ParseLayout(opts.layout)
	if err != nil {
		return errors.New("E170").WithField("--layout").Wrap(err)
	}
	loc, err := location.Parse(opts.path)
	if err != nil {
		return errors.New("E170").WithField("--path").Wrap(err)
	}

	locale := opts.locale
	if locale == "" {
		locale = cfg.Locale
	}
	catalog := i18n.DefaultCatalog()
	tag, err := catalog.Lookup(locale)
	if err != nil {
		return err
	}

	props := cfg.Props()
	if opts.loggedIn {
		props.Session = header.Session{LoggedIn: true, Username: opts.user, Avatar: cfg.AvatarFor(opts.user)}
	}

	p, err := header.New(layout, props, header.Env{
		Messages: catalog.Localizer(tag),
		Settings: cfg.Settings(),
		Location: loc,
	})
	if err != nil {
		return err
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: opts.pretty})
	if err := r.RenderToWriter(w, p.Render()); err != nil {
		return errors.New("E150").Wrap(err)
	}
	if !opts.pretty {
		fmt.Fprintln(w)
	}
	return nil
}
