package header

import (
	"fmt"

	"github.com/vango-dev/siteheader/pkg/vdom"
)

// Layout names a presentation.
type Layout string

const (
	LayoutDesktop Layout = "desktop"
	LayoutMobile  Layout = "mobile"
)

// Layouts lists every layout in a stable order.
func Layouts() []Layout {
	return []Layout{LayoutDesktop, LayoutMobile}
}

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutDesktop, LayoutMobile:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown layout %q (want desktop or mobile)", s)
}

// Presenter is implemented by Desktop and Mobile.
type Presenter interface {
	Render() *vdom.VNode
}

// New returns the presenter for layout.
func New(layout Layout, props Props, env Env) (Presenter, error) {
	var (
		p   Presenter
		err error
	)
	switch layout {
	case LayoutDesktop:
		p, err = NewDesktop(props, env)
	case LayoutMobile:
		p, err = NewMobile(props, env)
	default:
		_, err = ParseLayout(string(layout))
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
