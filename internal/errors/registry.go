package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No siteheader.yaml was found in the given directory or any of its parents.",
	},
	"E131": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		Detail:   "siteheader.yaml is not valid YAML or contains fields the header does not know about.",
	},
	"E132": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is outside the accepted set.",
	},

	// ============================================
	// Locale Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryLocale,
		Message:  "Invalid message catalog",
		Detail:   "A locale catalog is malformed, names an unknown message, or the base locale is missing a message.",
	},
	"E141": {
		Category: CategoryLocale,
		Message:  "Locale not supported",
		Detail:   "No message catalog exists for the requested locale.",
	},

	// ============================================
	// Render and Publish Errors (E150-E169)
	// ============================================

	"E150": {
		Category: CategoryRender,
		Message:  "Header render failed",
		Detail:   "The header tree could not be written as HTML.",
	},
	"E160": {
		Category: CategoryPublish,
		Message:  "Fragment upload failed",
		Detail:   "The object store rejected a rendered header fragment.",
	},

	// ============================================
	// CLI Errors (E170-E179)
	// ============================================

	"E170": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command-line flag is missing or has a value outside its accepted set.",
	},

	// ============================================
	// Main Menu Errors (E200-E209)
	// ============================================

	"E200": {
		Category: CategoryContract,
		Message:  "Main menu entry is missing an href",
		Detail:   "Every item and submenu in the main menu links somewhere; an empty href would render a broken link.",
	},
	"E201": {
		Category: CategoryContract,
		Message:  "Main menu entry is missing a label",
		Detail:   "Every item and submenu in the main menu needs visible text.",
	},
	"E202": {
		Category: CategoryContract,
		Message:  "Submenu has no content",
		Detail:   "A submenu opens a disclosure; without content there is nothing to disclose.",
	},
	"E203": {
		Category: CategoryContract,
		Message:  "Prerendered main menu has no node",
		Detail:   "A prerendered main menu replaces the whole navigation and must carry a node. Use a nil MainMenu for an empty menu.",
	},
	"E204": {
		Category: CategoryContract,
		Message:  "Unknown main menu entry",
		Detail:   "Main menu entries must be header.Item or header.Submenu.",
	},

	// ============================================
	// Account Menu Errors (E210-E219)
	// ============================================

	"E210": {
		Category: CategoryContract,
		Message:  "Account menu entry is missing an href or label",
		Detail:   "Account links render as plain links; both the destination and the text are required.",
	},
	"E211": {
		Category: CategoryContract,
		Message:  "Unknown account menu entry kind",
		Detail:   `Account menu entries are of kind "item" or "menu".`,
	},

	// ============================================
	// Anonymous Action Errors (E220-E229)
	// ============================================

	"E220": {
		Category: CategoryContract,
		Message:  "Logged-out action is missing an href or label",
		Detail:   "Logged-out actions render as button links; both the destination and the text are required.",
	},
	"E221": {
		Category: CategoryContract,
		Message:  "Unknown logged-out action kind",
		Detail:   `Logged-out actions are of kind "item".`,
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
