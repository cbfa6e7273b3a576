// Package errors provides the coded, structured errors used across siteheader.
//
// Every error carries a stable code (e.g. "E200") registered with a category,
// a short message and a longer explanation. Contract errors also name the
// offending input field, so a caller can find the broken menu entry without
// reading the renderer.
//
// # Error Categories
//
//   - contract: header props that violate the input contract
//   - config: siteheader.yaml loading and validation
//   - locale: message catalogs and locale negotiation
//   - render: HTML rendering failures
//   - publish: fragment upload failures
//   - cli: invalid command-line flags
//
// # Usage
//
//	err := errors.New("E200").
//	    WithField("mainMenu[2].href").
//	    WithSuggestion(`Give the entry an href such as "/pricing"`)
//
//	fmt.Print(err.Format())
//	// Output:
//	// ✗ E200 contract: Main menu entry is missing an href
//	//     field  mainMenu[2].href
//	//            Every item and submenu in the main menu links somewhere; an
//	//            empty href would render a broken link.
//	//      hint  Give the entry an href such as "/pricing"
//
// Servers log errors with Attr, which expands a HeaderError into a group of
// code, field and cause. The CLI prints them with Fprint, as text or as one
// JSON object per error.
package errors
