// Package disclosure provides the trigger/content primitive used for every
// dropdown and collapsible panel in the site header.
//
// The header never tracks whether a menu is open. It describes each
// disclosure as a Spec and hands it to a Primitive, which owns the open and
// closed state. The default primitive, Hooked, renders plain markup with a
// client hook attribute; the browser-side Menu hook drives the State machine
// defined here.
//
//	node := disclosure.Hooked{}.Menu(disclosure.Spec{
//	    ID:      disclosure.ID("account", "menu"),
//	    Trigger: disclosure.Part{Tag: "button", Children: []*vdom.VNode{vdom.Text("Account")}},
//	    Content: disclosure.Part{Tag: "ul", Children: links},
//	})
package disclosure
