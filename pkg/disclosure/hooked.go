package disclosure

import (
	"encoding/json"

	"github.com/vango-dev/siteheader/pkg/vdom"
)

// HookName is the client hook that drives hooked disclosures.
const HookName = "Menu"

// Hooked is the default Primitive. It renders server-side markup and leaves
// state changes to the client Menu hook, configured through a v-hook
// attribute on the container.
type Hooked struct{}

// hookConfig is serialized into the v-hook attribute.
type hookConfig struct {
	Trigger        string `json:"trigger"`
	Content        string `json:"content"`
	CloseOnEscape  bool   `json:"closeOnEscape"`
	CloseOnOutside bool   `json:"closeOnOutside"`
	Pointer        bool   `json:"pointer,omitempty"`
	Transition     string `json:"transition,omitempty"`
	TimeoutMS      int64  `json:"timeout,omitempty"`
}

// Hook creates a v-hook attribute in the "Name:{json}" form read by the
// client runtime.
func Hook(name string, config any) vdom.Attr {
	b, _ := json.Marshal(config)
	return vdom.Attribute("v-hook", name+":"+string(b))
}

// Menu renders spec.
func (Hooked) Menu(spec Spec) *vdom.VNode {
	state := spec.Initial
	open := state == Open

	container := spec.Tag
	if container == "" {
		container = "div"
	}
	triggerTag := spec.Trigger.Tag
	if triggerTag == "" {
		triggerTag = "button"
	}
	contentTag := spec.Content.Tag
	if contentTag == "" {
		contentTag = "div"
	}

	trigger := vdom.CustomElement(triggerTag,
		spec.Trigger.Attrs,
		vdom.ID(spec.TriggerID()),
		vdom.AriaHasPopup("true"),
		vdom.AriaExpanded(open),
		vdom.AriaControls(spec.ContentID()),
		buttonType(triggerTag),
		spec.Trigger.Children,
	)

	content := vdom.CustomElement(contentTag,
		spec.Content.Attrs,
		vdom.ID(spec.ContentID()),
		vdom.Data("state", state.String()),
		hiddenUnless(open),
		spec.Content.Children,
	)

	return vdom.CustomElement(container,
		spec.Attrs,
		vdom.ID(spec.ID),
		vdom.Data("state", state.String()),
		Hook(HookName, hookConfig{
			Trigger:        spec.TriggerID(),
			Content:        spec.ContentID(),
			CloseOnEscape:  true,
			CloseOnOutside: true,
			Pointer:        spec.PointerEvents,
			Transition:     spec.Transition.Class,
			TimeoutMS:      spec.Transition.Timeout.Milliseconds(),
		}),
		trigger,
		content,
	)
}

func buttonType(tag string) vdom.Attr {
	if tag != "button" {
		return vdom.Attr{}
	}
	return vdom.Type("button")
}

func hiddenUnless(open bool) vdom.Attr {
	if open {
		return vdom.Attr{}
	}
	return vdom.Hidden()
}
