// Package vtest provides testing helpers for header presenters.
//
// It offers a fluent builder for header.Env and assertions on rendered
// output, so tests can focus on what a header shows.
//
// # Quick Start
//
//	func TestHeader_ActiveLink(t *testing.T) {
//	    env := vtest.NewEnv().WithLocation("/b").Build()
//	    d, err := header.NewDesktop(props, env)
//	    if err != nil {
//	        t.Fatalf("unexpected error: %v", err)
//	    }
//	    vtest.ExpectAttribute(t, d.Render(), "aria-current", "page")
//	}
//
// # Fluent Env Builder
//
//	env := vtest.NewEnv().
//	    WithLocation("/courses").
//	    WithLocale("fr-FR").
//	    Minimal().
//	    Build()
//
// # Render Assertions
//
//	vtest.ExpectContains(t, node, "Sign in")
//	vtest.ExpectNotContains(t, node, "nav-link__active")
//	vtest.ExpectCount(t, node, vdom.ByClass("nav-link"), 2)
package vtest
