package header_test

import (
	"strings"
	"testing"

	"github.com/vango-dev/siteheader/pkg/header"
	"github.com/vango-dev/siteheader/pkg/vdom"
	"github.com/vango-dev/siteheader/pkg/vtest"
)

func renderDesktop(t *testing.T, props header.Props, env header.Env) *vdom.VNode {
	t.Helper()
	d, err := header.NewDesktop(props, env)
	if err != nil {
		t.Fatalf("NewDesktop() error = %v", err)
	}
	return d.Render()
}

func navLinks(node *vdom.VNode) []*vdom.VNode {
	return vdom.FindAll(node, vdom.ByClass("nav-link"))
}

// Only the item whose href equals the location is active.
func TestDesktopActiveLink(t *testing.T) {
	props := header.NewProps(header.WithMainMenu(
		header.Item{Href: "/a", Label: "A"},
		header.Item{Href: "/b", Label: "B"},
	))
	node := renderDesktop(t, props, vtest.NewEnv().WithLocation("/b").Build())

	links := navLinks(node)
	if len(links) != 2 {
		t.Fatalf("nav links = %d, want 2", len(links))
	}
	a, b := links[0], links[1]
	if a.HasClass("nav-link__active") || a.Attr("aria-current") != "" {
		t.Error("A should not be active")
	}
	if !b.HasClass("nav-link__active") || b.Attr("aria-current") != "page" {
		t.Error("B should be active")
	}
	if a.Key != "item:/a#0" || b.Key != "item:/b#0" {
		t.Errorf("keys = %q, %q", a.Key, b.Key)
	}
}

func TestDesktopNoLocationNothingActive(t *testing.T) {
	props := header.NewProps(header.WithMainMenu(header.Item{Href: "/", Label: "Home"}))
	node := renderDesktop(t, props, header.Env{})

	vtest.ExpectNotContains(t, node, "nav-link__active")
}

// The last logged-out action is the primary button.
func TestDesktopLoggedOutButtons(t *testing.T) {
	props := header.NewProps(header.WithLoggedOutItems(
		header.AnonymousAction{Href: "/signin", Label: "Sign in"},
		header.AnonymousAction{Href: "/register", Label: "Register"},
	))
	node := renderDesktop(t, props, header.Env{})

	buttons := vdom.FindAll(node, vdom.ByClass("btn"))
	if len(buttons) != 2 {
		t.Fatalf("buttons = %d, want 2", len(buttons))
	}
	if got := buttons[0].Attr("class"); got != "btn mr-2 btn-link" {
		t.Errorf("Sign in class = %q", got)
	}
	if got := buttons[1].Attr("class"); got != "btn mr-2 btn-outline-primary" {
		t.Errorf("Register class = %q", got)
	}
	if buttons[0].TextContent() != "Sign in" || buttons[1].TextContent() != "Register" {
		t.Errorf("labels = %q, %q", buttons[0].TextContent(), buttons[1].TextContent())
	}
}

func TestDesktopUserMenu(t *testing.T) {
	props := header.NewProps(
		header.WithUser("alice", "/alice.png"),
		header.WithUserMenu(header.AccountMenuEntry{Kind: header.KindItem, Href: "/profile", Label: "Profile"}),
		header.WithLoggedOutItems(header.AnonymousAction{Href: "/signin", Label: "Sign in"}),
	)
	node := renderDesktop(t, props, header.Env{})

	triggers := vdom.FindAll(node, func(n *vdom.VNode) bool { return n.Attr("aria-haspopup") == "true" })
	if len(triggers) != 1 {
		t.Fatalf("disclosure triggers = %d, want 1", len(triggers))
	}
	trigger := triggers[0]
	if trigger.Tag != "button" {
		t.Errorf("trigger tag = %q, want button", trigger.Tag)
	}
	if got := trigger.Attr("aria-label"); got != "Account menu for alice" {
		t.Errorf("trigger aria-label = %q", got)
	}
	if !strings.Contains(trigger.TextContent(), "alice") {
		t.Errorf("trigger text = %q, want username", trigger.TextContent())
	}
	img := vdom.Find(trigger, vdom.ByTag("img"))
	if img == nil || img.Attr("src") != "/alice.png" || img.Attr("alt") != "" {
		t.Errorf("avatar = %+v", img)
	}

	links := vdom.FindAll(node, vdom.ByClass("dropdown-item"))
	if len(links) != 1 || links[0].TextContent() != "Profile" || links[0].Attr("href") != "/profile" {
		t.Errorf("account links = %d", len(links))
	}

	vtest.ExpectNotContains(t, node, "Sign in")

	menu := vdom.Find(node, func(n *vdom.VNode) bool { return n.Attr("id") == "hdr-desktop-account" })
	if menu == nil {
		t.Fatal("account disclosure not rendered")
	}
	if hook := menu.Attr("v-hook"); !strings.Contains(hook, `"transition":"menu-dropdown","timeout":250`) {
		t.Errorf("account hook = %s", hook)
	}
}

// Without a destination the logo is a plain image.
func TestDesktopStaticLogo(t *testing.T) {
	props := header.NewProps(header.WithLogo("/logo.svg", "Acme"))
	node := renderDesktop(t, props, header.Env{})

	logo := vdom.Find(node, vdom.ByClass("logo"))
	if logo == nil {
		t.Fatal("logo not rendered")
	}
	if logo.Tag != "img" {
		t.Errorf("logo tag = %q, want img", logo.Tag)
	}
	var linked bool
	vdom.Walk(node, func(n *vdom.VNode) bool {
		if n.Tag == "a" && vdom.Find(n, vdom.ByTag("img")) != nil {
			linked = true
		}
		return true
	})
	if linked {
		t.Error("static logo must not be wrapped in a link")
	}
}

func TestDesktopLinkedLogo(t *testing.T) {
	props := header.NewProps(header.WithLogo("/logo.svg", "Acme"), header.WithLogoDestination("/"))
	node := renderDesktop(t, props, header.Env{})

	logo := vdom.Find(node, vdom.ByClass("logo"))
	if logo == nil || logo.Tag != "a" || logo.Attr("href") != "/" {
		t.Fatalf("logo = %+v, want link to /", logo)
	}
	if logo.Attr("itemtype") != "" {
		t.Error("desktop logo should carry no microdata")
	}
	vtest.ExpectContains(t, logo, `alt="Acme"`)
}

func TestDesktopStructure(t *testing.T) {
	node := renderDesktop(t, header.DefaultProps(), header.Env{})

	if node.Tag != "header" || node.Attr("class") != "site-header-desktop" {
		t.Fatalf("root = <%s class=%q>", node.Tag, node.Attr("class"))
	}

	skip := node.Children[0]
	if skip.Tag != "a" || skip.Attr("href") != "#main" || skip.TextContent() != "Skip to main content" {
		t.Errorf("first child should be the skip link, got <%s href=%q>", skip.Tag, skip.Attr("href"))
	}
	if first := vdom.Find(node, func(n *vdom.VNode) bool { return n.Tag == "a" || n.Tag == "button" }); first != skip {
		t.Error("skip link must be the first focusable element")
	}

	navs := vdom.FindAll(node, vdom.ByTag("nav"))
	if len(navs) != 2 {
		t.Fatalf("navs = %d, want 2", len(navs))
	}
	if navs[0].Attr("aria-label") != "Main" || navs[1].Attr("aria-label") != "Secondary" {
		t.Errorf("nav labels = %q, %q", navs[0].Attr("aria-label"), navs[1].Attr("aria-label"))
	}
	vtest.ExpectAttribute(t, node, "class", "container-fluid")
}

func TestDesktopMinimalHeader(t *testing.T) {
	node := renderDesktop(t, header.DefaultProps(), vtest.NewEnv().Minimal().Build())
	vtest.ExpectAttribute(t, node, "class", "container-fluid mw-100")
}

func TestDesktopSubmenu(t *testing.T) {
	props := header.NewProps(header.WithMainMenu(
		header.Submenu{Href: "/programs", Label: "Programs", Content: header.LinkList(
			header.Link{Href: "/programs/data", Label: "Data"},
		)},
	))
	node := renderDesktop(t, props, vtest.NewEnv().WithLocation("/programs").Build())

	item := vdom.Find(node, vdom.ByClass("nav-item"))
	if item == nil {
		t.Fatal("submenu not rendered")
	}
	if item.Key != "submenu:/programs#0" {
		t.Errorf("submenu key = %q", item.Key)
	}
	if !strings.Contains(item.Attr("v-hook"), `"pointer":true`) {
		t.Errorf("desktop submenu should respond to pointer events: %s", item.Attr("v-hook"))
	}

	trigger := item.Children[0]
	if trigger.Tag != "a" || trigger.Attr("href") != "/programs" {
		t.Errorf("trigger = <%s href=%q>", trigger.Tag, trigger.Attr("href"))
	}
	if trigger.HasClass("nav-link__active") {
		t.Error("submenu triggers are never active")
	}
	if vdom.Find(trigger, vdom.ByTag("svg")) == nil {
		t.Error("trigger should carry a caret icon")
	}

	content := item.Children[1]
	if !content.HasClass("shadow") {
		t.Errorf("content class = %q", content.Attr("class"))
	}
	vtest.ExpectContains(t, content, `href="/programs/data"`)
}

func TestDesktopPrerenderedMenu(t *testing.T) {
	custom := vdom.Div(vdom.Class("custom-nav"), vdom.Text("custom"))
	node := renderDesktop(t, header.NewProps(header.WithPrerenderedMainMenu(custom)), header.Env{})

	nav := vdom.FindAll(node, vdom.ByTag("nav"))[0]
	if len(nav.Children) != 1 || nav.Children[0] != custom {
		t.Error("prerendered menu should be placed in the main nav unchanged")
	}
}

func TestDesktopLocalized(t *testing.T) {
	props := header.NewProps(
		header.WithUser("alice", ""),
		header.WithUserMenu(header.AccountMenuEntry{Href: "/p", Label: "Profil"}),
	)
	node := renderDesktop(t, props, vtest.NewEnv().WithLocale("fr-FR").Build())

	vtest.ExpectContains(t, node, "Aller au contenu principal")
	vtest.ExpectAttribute(t, node, "aria-label", "Menu du compte de alice")
}
