package disclosure

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/siteheader/pkg/render"
	"github.com/vango-dev/siteheader/pkg/vdom"
)

func testSpec() Spec {
	return Spec{
		ID:    "acct",
		Tag:   "nav",
		Attrs: []vdom.Attr{vdom.Class("position-static")},
		Trigger: Part{
			Attrs:    []vdom.Attr{vdom.Class("icon-button")},
			Children: []*vdom.VNode{vdom.Text("Account")},
		},
		Content: Part{
			Tag:      "ul",
			Attrs:    []vdom.Attr{vdom.Class("nav")},
			Children: []*vdom.VNode{vdom.Li(vdom.A(vdom.Href("/profile"), vdom.Text("Profile")))},
		},
	}
}

func TestHookedMenuStructure(t *testing.T) {
	node := Hooked{}.Menu(testSpec())

	if node.Tag != "nav" {
		t.Fatalf("container tag = %q, want nav", node.Tag)
	}
	if got := node.Attr("id"); got != "acct" {
		t.Errorf("container id = %q, want acct", got)
	}
	if got := node.Attr("data-state"); got != "closed" {
		t.Errorf("container data-state = %q, want closed", got)
	}
	if len(node.Children) != 2 {
		t.Fatalf("container children = %d, want 2", len(node.Children))
	}

	trigger, content := node.Children[0], node.Children[1]
	if trigger.Tag != "button" {
		t.Errorf("trigger tag = %q, want button", trigger.Tag)
	}
	if got := trigger.Attr("type"); got != "button" {
		t.Errorf("trigger type = %q, want button", got)
	}
	if got := trigger.Attr("aria-expanded"); got != "false" {
		t.Errorf("aria-expanded = %q, want false", got)
	}
	if got := trigger.Attr("aria-controls"); got != content.Attr("id") {
		t.Errorf("aria-controls = %q, content id = %q", got, content.Attr("id"))
	}
	if got := trigger.Attr("aria-haspopup"); got != "true" {
		t.Errorf("aria-haspopup = %q, want true", got)
	}
	if content.Tag != "ul" || !content.HasClass("nav") {
		t.Errorf("content = <%s class=%q>", content.Tag, content.Attr("class"))
	}
	if hidden, _ := content.Props["hidden"].(bool); !hidden {
		t.Error("closed content should be hidden")
	}
}

func TestHookedMenuOpen(t *testing.T) {
	spec := testSpec()
	spec.Initial = Open
	node := Hooked{}.Menu(spec)

	trigger, content := node.Children[0], node.Children[1]
	if got := trigger.Attr("aria-expanded"); got != "true" {
		t.Errorf("aria-expanded = %q, want true", got)
	}
	if _, ok := content.Props["hidden"]; ok {
		t.Error("open content should not be hidden")
	}
	if got := content.Attr("data-state"); got != "open" {
		t.Errorf("content data-state = %q, want open", got)
	}
}

func TestHookedMenuHookAttribute(t *testing.T) {
	spec := testSpec()
	spec.PointerEvents = true
	spec.Transition = Transition{Class: "menu-dropdown", Timeout: 250 * time.Millisecond}

	got := Hooked{}.Menu(spec).Attr("v-hook")
	want := `Menu:{"trigger":"acct-trigger","content":"acct-content","closeOnEscape":true,"closeOnOutside":true,"pointer":true,"transition":"menu-dropdown","timeout":250}`
	if got != want {
		t.Errorf("v-hook =\n%s\nwant\n%s", got, want)
	}

	plain := Hooked{}.Menu(testSpec()).Attr("v-hook")
	if strings.Contains(plain, "pointer") || strings.Contains(plain, "transition") {
		t.Errorf("unexpected optional hook fields: %s", plain)
	}
}

func TestHookedMenuLinkTrigger(t *testing.T) {
	spec := testSpec()
	spec.Trigger.Tag = "a"
	spec.Trigger.Attrs = append(spec.Trigger.Attrs, vdom.Href("/products"))

	trigger := Hooked{}.Menu(spec).Children[0]
	if trigger.Tag != "a" {
		t.Fatalf("trigger tag = %q, want a", trigger.Tag)
	}
	if _, ok := trigger.Props["type"]; ok {
		t.Error("link trigger should not carry a button type")
	}
	if got := trigger.Attr("href"); got != "/products" {
		t.Errorf("href = %q, want /products", got)
	}
}

func TestHookedMenuIdempotent(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})
	first, err := r.RenderToString(Hooked{}.Menu(testSpec()))
	if err != nil {
		t.Fatal(err)
	}
	second, _ := r.RenderToString(Hooked{}.Menu(testSpec()))
	if first != second {
		t.Errorf("renders differ:\n%s\n%s", first, second)
	}
	if !vdom.Equal(Hooked{}.Menu(testSpec()), Hooked{}.Menu(testSpec())) {
		t.Error("trees differ")
	}
}

func TestID(t *testing.T) {
	a := ID("hdr-main", "submenu:/products#0")
	b := ID("hdr-main", "submenu:/products#1")
	c := ID("hdr-main", "submenu:/products#0")

	if a == b {
		t.Errorf("distinct keys share id %q", a)
	}
	if a != c {
		t.Errorf("ID not stable: %q vs %q", a, c)
	}
	if !strings.HasPrefix(a, "hdr-main-submenu-products-0-") {
		t.Errorf("ID = %q, want readable prefix", a)
	}
	for _, r := range a {
		if !(r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			t.Errorf("ID %q contains %q", a, r)
		}
	}
}
