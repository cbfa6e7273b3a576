// Package header renders the site-wide navigation header.
//
// One set of Props fans out into two presentations. Desktop shows the main
// menu inline with hover dropdowns for submenus. Mobile folds the main menu
// behind a hamburger disclosure and the account actions behind an avatar
// disclosure. Both presenters build on the same projectors (ProjectMainMenu,
// ProjectAccountMenu and ProjectAnonymousActions), so labels, destinations,
// active state and identity keys are identical across layouts.
//
// Props are validated when a presenter is constructed; Render never fails.
//
//	props := header.NewProps(
//	    header.WithLogo("/logo.svg", "Acme"),
//	    header.WithMainMenu(
//	        header.Item{Href: "/courses", Label: "Courses"},
//	        header.Submenu{Href: "/programs", Label: "Programs", Content: header.LinkList(
//	            header.Link{Href: "/programs/data", Label: "Data Science"},
//	        )},
//	    ),
//	    header.WithLoggedOutItems(
//	        header.AnonymousAction{Href: "/login", Label: "Sign in"},
//	        header.AnonymousAction{Href: "/register", Label: "Register"},
//	    ),
//	)
//	d, err := header.NewDesktop(props, header.Env{Location: location.Static("/courses")})
//	if err != nil {
//	    return err
//	}
//	node := d.Render()
package header
