// Package publish renders header fragments ahead of time and uploads them
// to S3, so static pages and edge caches can include the header without
// calling the preview server.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/middleware"
	"github.com/vango-dev/siteheader/pkg/render"
)

// ContentType is set on every uploaded fragment.
const ContentType = "text/html; charset=utf-8"

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures a Publisher.
type Options struct {
	Bucket string
	Prefix string

	// Paths are the locations to render; each must be a site-relative path.
	Paths []string

	// Locales are the catalog locales to render.
	Locales []string

	// Layouts defaults to every layout.
	Layouts []header.Layout

	Settings header.Settings

	// Catalog defaults to the embedded catalog.
	Catalog *i18n.Catalog

	// CacheControl is set on each object when non-empty.
	CacheControl string

	Logger *slog.Logger
}

// Fragment is one rendered header ready to upload.
type Fragment struct {
	Key    string
	Layout header.Layout
	Path   string
	Locale string
	HTML   string
}

// Publisher renders and uploads fragments.
type Publisher struct {
	client   PutObjectAPI
	opts     Options
	renderer *render.Renderer
	logger   *slog.Logger
}

// New returns a Publisher uploading through client.
func New(client PutObjectAPI, opts Options) *Publisher {
	if opts.Catalog == nil {
		opts.Catalog = i18n.DefaultCatalog()
	}
	if len(opts.Layouts) == 0 {
		opts.Layouts = header.Layouts()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client:   client,
		opts:     opts,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   logger,
	}
}

// Key returns the object key for a fragment:
// <prefix>/<locale>/<layout>/<slug>.html.
func Key(prefix, locale string, layout header.Layout, p string) string {
	return path.Join(prefix, locale, string(layout), Slug(p)+".html")
}

// slugEscaper maps "/" to "_" after escaping the two characters that would
// make the mapping ambiguous.
var slugEscaper = strings.NewReplacer("~", "~7E", "_", "~5F", "/", "_")

// Slug turns a location into a file name. "/" is "index"; any other path
// keeps its leading slash as "_", so "/index" is "_index", "/a/" is "_a_"
// and "/x_y" is "_x~5Fy". Distinct locations always get distinct slugs.
func Slug(p string) string {
	if p == "" || p == "/" {
		return "index"
	}
	return slugEscaper.Replace(p)
}

// Render builds every fragment for props, in locale, layout and path order.
// Published fragments are rendered for signed-out visitors; the session in
// props is ignored.
func (p *Publisher) Render(props header.Props) ([]Fragment, error) {
	props.Session = header.Session{}

	var out []Fragment
	seen := make(map[string]source)
	for _, locale := range p.opts.Locales {
		tag, err := p.opts.Catalog.Lookup(locale)
		if err != nil {
			return nil, err
		}
		messages := p.opts.Catalog.Localizer(tag)

		for _, layout := range p.opts.Layouts {
			for _, raw := range p.opts.Paths {
				loc, err := location.Parse(raw)
				if err != nil {
					return nil, errors.New("E132").WithField("publish.paths").
						WithDetail("Invalid publish path " + raw).Wrap(err)
				}

				presenter, err := header.New(layout, props, header.Env{
					Messages: messages,
					Settings: p.opts.Settings,
					Location: loc,
				})
				if err != nil {
					return nil, err
				}
				key := Key(p.opts.Prefix, tag.String(), layout, loc.Path())
				if prev, ok := seen[key]; ok {
					return nil, duplicateKey(key, prev, source{locale, raw})
				}
				seen[key] = source{locale, raw}

				html, err := p.renderer.RenderToString(presenter.Render())
				if err != nil {
					return nil, errors.New("E150").Wrap(err)
				}

				out = append(out, Fragment{
					Key:    key,
					Layout: layout,
					Path:   loc.Path(),
					Locale: tag.String(),
					HTML:   html,
				})
			}
		}
	}
	return out, nil
}

// source is the configured locale and path a fragment came from.
type source struct {
	locale, path string
}

// duplicateKey reports two configured entries that publish the same object.
func duplicateKey(key string, prev, cur source) error {
	field := "publish.paths"
	if prev.locale != cur.locale {
		field = "publish.locales"
	}
	return errors.New("E132").
		WithField(field).
		WithDetail(fmt.Sprintf("%s %s and %s %s both publish to %s", prev.locale, prev.path, cur.locale, cur.path, key)).
		WithSuggestion("Remove the repeated path or locale")
}

// Publish renders and uploads every fragment. It stops at the first failed
// upload and returns the fragments uploaded so far.
func (p *Publisher) Publish(ctx context.Context, props header.Props) ([]Fragment, error) {
	fragments, err := p.Render(props)
	if err != nil {
		return nil, err
	}

	done := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		err := p.upload(ctx, f)
		middleware.RecordPublish(string(f.Layout), err)
		if err != nil {
			uerr := errors.New("E160").
				WithField(f.Key).
				WithSuggestion("Check the bucket name, region and credentials").
				Wrap(err)
			p.logger.Error("fragment upload failed", "path", f.Path, "variant", f.Layout, errors.Attr(uerr))
			return done, uerr
		}
		p.logger.Info("fragment uploaded", "key", f.Key, "path", f.Path, "variant", f.Layout, "locale", f.Locale)
		done = append(done, f)
	}
	return done, nil
}

func (p *Publisher) upload(ctx context.Context, f Fragment) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.opts.Bucket),
		Key:         aws.String(f.Key),
		Body:        bytes.NewReader([]byte(f.HTML)),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"layout": string(f.Layout),
			"path":   f.Path,
			"locale": f.Locale,
		},
	}
	if p.opts.CacheControl != "" {
		input.CacheControl = aws.String(p.opts.CacheControl)
	}
	_, err := p.client.PutObject(ctx, input)
	return err
}
