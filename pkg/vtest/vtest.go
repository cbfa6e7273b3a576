package vtest

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/vango-dev/siteheader/pkg/disclosure"
	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/i18n"
	"github.com/vango-dev/siteheader/pkg/location"
	"github.com/vango-dev/siteheader/pkg/render"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

// EnvBuilder allows fluent construction of header environments.
type EnvBuilder struct {
	env header.Env
}

// NewEnv creates a builder for an environment with the base locale, no
// location and the default disclosure.
func NewEnv() *EnvBuilder {
	return &EnvBuilder{}
}

// WithLocation sets the current location.
func (b *EnvBuilder) WithLocation(path string) *EnvBuilder {
	b.env.Location = location.Static(path)
	return b
}

// WithLocale selects messages from the embedded catalog.
//
// Example:
//
//	env := vtest.NewEnv().WithLocale("fr-FR").Build()
func (b *EnvBuilder) WithLocale(tag string) *EnvBuilder {
	b.env.Messages = i18n.DefaultCatalog().Localizer(language.MustParse(tag))
	return b
}

// WithMessages sets a custom localizer.
func (b *EnvBuilder) WithMessages(l i18n.Localizer) *EnvBuilder {
	b.env.Messages = l
	return b
}

// WithDisclosure sets the disclosure primitive.
func (b *EnvBuilder) WithDisclosure(p disclosure.Primitive) *EnvBuilder {
	b.env.Disclosure = p
	return b
}

// Minimal turns on the minimal header setting.
func (b *EnvBuilder) Minimal() *EnvBuilder {
	b.env.Settings.MinimalHeader = true
	return b
}

// Build returns the environment.
func (b *EnvBuilder) Build() header.Env {
	return b.env
}

// RenderToString renders a VNode and returns the HTML string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, d.Render(), "Sign in")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 800))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 800))
	}
}

// ExpectElement asserts that the tree contains an element with tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	if vdom.Find(node, vdom.ByTag(tag)) == nil {
		t.Errorf("expected a <%s> element, got:\n%s", tag, truncate(RenderToString(node), 800))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, d.Render(), "class", "btn mr-2 btn-outline-primary")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 800))
	}
}

// FindAll returns the nodes in the tree matching pred, in document order.
func FindAll(node *vdom.VNode, pred func(*vdom.VNode) bool) []*vdom.VNode {
	return vdom.FindAll(node, pred)
}

// ExpectCount asserts how many nodes match pred.
func ExpectCount(t *testing.T, node *vdom.VNode, pred func(*vdom.VNode) bool, want int) {
	t.Helper()
	if got := len(vdom.FindAll(node, pred)); got != want {
		t.Errorf("matching nodes = %d, want %d, got:\n%s", got, want, truncate(RenderToString(node), 800))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
