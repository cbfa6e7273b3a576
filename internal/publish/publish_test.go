package publish

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	herrors "github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/pkg/header"
)

type putCall struct {
	bucket, key, contentType, cacheControl, body string
	metadata                                     map[string]string
}

type fakeS3 struct {
	calls  []putCall
	failOn string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	call := putCall{
		bucket:       aws.ToString(in.Bucket),
		key:          aws.ToString(in.Key),
		contentType:  aws.ToString(in.ContentType),
		cacheControl: aws.ToString(in.CacheControl),
		body:         string(body),
		metadata:     in.Metadata,
	}
	if f.failOn != "" && call.key == f.failOn {
		return nil, errors.New("access denied")
	}
	f.calls = append(f.calls, call)
	return &s3.PutObjectOutput{}, nil
}

func testProps() header.Props {
	return header.NewProps(header.WithMainMenu(
		header.Item{Href: "/", Label: "Home"},
		header.Item{Href: "/programs/data", Label: "Data"},
	))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "index"},
		{"", "index"},
		{"/programs", "_programs"},
		{"/programs/data", "_programs_data"},
		{"/programs/data/", "_programs_data_"},
		{"/index", "_index"},
		{"/x_y", "_x~5Fy"},
		{"/a~b", "_a~7Eb"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugDistinct(t *testing.T) {
	paths := []string{"/", "/index", "/a", "/a/", "/x/y", "/x_y", "/x~5Fy", "/x__y", "/x_/y", "/x/_y"}
	seen := make(map[string]string)
	for _, p := range paths {
		slug := Slug(p)
		if prev, ok := seen[slug]; ok {
			t.Errorf("Slug(%q) = Slug(%q) = %q", p, prev, slug)
		}
		seen[slug] = p
	}
}

func TestKey(t *testing.T) {
	if got := Key("header", "fr-FR", header.LayoutMobile, "/programs/data"); got != "header/fr-FR/mobile/_programs_data.html" {
		t.Errorf("Key() = %q", got)
	}
	if got := Key("", "en-US", header.LayoutDesktop, "/"); got != "en-US/desktop/index.html" {
		t.Errorf("Key() without prefix = %q", got)
	}
}

func TestPublish(t *testing.T) {
	client := &fakeS3{}
	p := New(client, Options{
		Bucket:       "fragments",
		Prefix:       "header",
		Paths:        []string{"/", "/programs/data"},
		Locales:      []string{"en-US", "fr-FR"},
		CacheControl: "max-age=300",
	})

	props := testProps()
	props.Session = header.Session{LoggedIn: true, Username: "alice"}

	done, err := p.Publish(context.Background(), props)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(done) != 8 || len(client.calls) != 8 {
		t.Fatalf("uploaded %d (%d calls), want 8", len(done), len(client.calls))
	}

	wantKeys := []string{
		"header/en-US/desktop/index.html",
		"header/en-US/desktop/_programs_data.html",
		"header/en-US/mobile/index.html",
		"header/en-US/mobile/_programs_data.html",
		"header/fr-FR/desktop/index.html",
		"header/fr-FR/desktop/_programs_data.html",
		"header/fr-FR/mobile/index.html",
		"header/fr-FR/mobile/_programs_data.html",
	}
	for i, want := range wantKeys {
		c := client.calls[i]
		if c.key != want {
			t.Errorf("calls[%d].key = %q, want %q", i, c.key, want)
		}
		if c.bucket != "fragments" || c.contentType != ContentType || c.cacheControl != "max-age=300" {
			t.Errorf("calls[%d] = %+v", i, c)
		}
	}

	c := client.calls[1]
	if c.metadata["layout"] != "desktop" || c.metadata["path"] != "/programs/data" || c.metadata["locale"] != "en-US" {
		t.Errorf("metadata = %v", c.metadata)
	}
	if !strings.Contains(c.body, `aria-current="page" class="nav-link nav-link__active" href="/programs/data"`) {
		t.Errorf("fragment should mark its own path active:\n%s", c.body)
	}
	if strings.Contains(c.body, "alice") {
		t.Error("published fragments must be signed out")
	}
	if !strings.Contains(client.calls[4].body, "Aller au contenu principal") {
		t.Error("fr-FR fragments should be localized")
	}
}

func TestPublishUploadFailure(t *testing.T) {
	client := &fakeS3{failOn: "header/en-US/mobile/index.html"}
	p := New(client, Options{Bucket: "b", Prefix: "header", Paths: []string{"/"}, Locales: []string{"en-US"}})

	done, err := p.Publish(context.Background(), testProps())
	if !herrors.HasCode(err, "E160") {
		t.Fatalf("Publish() error = %v, want E160", err)
	}
	if len(done) != 1 || done[0].Layout != header.LayoutDesktop {
		t.Errorf("done = %+v, want only the desktop fragment", done)
	}
	if he := herrors.FromError(err, "E160"); he.Field != "header/en-US/mobile/index.html" {
		t.Errorf("Field = %q", he.Field)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		props header.Props
		code  string
	}{
		{"unsupported locale", Options{Paths: []string{"/"}, Locales: []string{"xx"}}, testProps(), "E141"},
		{"bad path", Options{Paths: []string{"programs"}, Locales: []string{"en-US"}}, testProps(), "E132"},
		{"invalid props", Options{Paths: []string{"/"}, Locales: []string{"en-US"}},
			header.NewProps(header.WithMainMenu(header.Item{Label: "No href"})), "E200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeS3{}
			_, err := New(client, tt.opts).Publish(context.Background(), tt.props)
			if !herrors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if len(client.calls) != 0 {
				t.Error("nothing should be uploaded when rendering fails")
			}
		})
	}
}

func TestPublishTrailingSlash(t *testing.T) {
	client := &fakeS3{}
	p := New(client, Options{
		Prefix:  "header",
		Paths:   []string{"/a", "/a/"},
		Locales: []string{"en-US"},
		Layouts: []header.Layout{header.LayoutDesktop},
	})
	props := header.NewProps(header.WithMainMenu(header.Item{Href: "/a", Label: "A"}))

	if _, err := p.Publish(context.Background(), props); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(client.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(client.calls))
	}
	if client.calls[0].key != "header/en-US/desktop/_a.html" || client.calls[1].key != "header/en-US/desktop/_a_.html" {
		t.Errorf("keys = %q, %q", client.calls[0].key, client.calls[1].key)
	}
	if !strings.Contains(client.calls[0].body, "nav-link__active") {
		t.Error("/a should mark the /a item active")
	}
	if strings.Contains(client.calls[1].body, "nav-link__active") {
		t.Error("/a/ should not mark the /a item active")
	}
}

func TestRenderDuplicateKeys(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		locales []string
		field   string
	}{
		{"repeated path", []string{"/a", "/b", "/a"}, []string{"en-US"}, "publish.paths"},
		{"repeated locale", []string{"/"}, []string{"en-US", "fr-FR", "en-US"}, "publish.locales"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeS3{}
			_, err := New(client, Options{Paths: tt.paths, Locales: tt.locales}).Publish(context.Background(), testProps())
			if !herrors.HasCode(err, "E132") {
				t.Fatalf("error = %v, want E132", err)
			}
			if he := herrors.FromError(err, "E132"); he.Field != tt.field {
				t.Errorf("Field = %q, want %q", he.Field, tt.field)
			}
			if len(client.calls) != 0 {
				t.Error("nothing should be uploaded when keys collide")
			}
		})
	}
}

func TestPublishCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeS3{}
	_, err := New(client, Options{Paths: []string{"/"}, Locales: []string{"en-US"}}).Publish(ctx, testProps())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(client.calls))
	}
}

func TestLayoutsOption(t *testing.T) {
	client := &fakeS3{}
	p := New(client, Options{Paths: []string{"/"}, Locales: []string{"en-US"}, Layouts: []header.Layout{header.LayoutMobile}})

	fragments, err := p.Render(testProps())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(fragments) != 1 || fragments[0].Layout != header.LayoutMobile {
		t.Errorf("fragments = %+v", fragments)
	}
}
