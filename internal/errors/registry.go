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
	// Validation Errors (H001-H009)
	// ============================================

	"H001": {
		Category: CategoryValidation,
		Message:  "Attribute name must contain word characters only",
		Detail:   "An attribute expression must name an attribute made of letters, digits, underscores, dots or plus signs, optionally surrounded by [index] segments.",
	},
	"H002": {
		Category: CategoryValidation,
		Message:  "Form name cannot be empty for tabular inputs",
		Detail:   "Attribute expressions with a leading [index] segment need a form name to prefix the input name.",
	},

	// ============================================
	// Config Errors (H010-H019)
	// ============================================

	"H010": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed as JSON.",
	},
	"H011": {
		Category: CategoryConfig,
		Message:  "Unknown charset",
		Detail:   "The charset is not a WHATWG encoding label.",
	},
	"H012": {
		Category: CategoryConfig,
		Message:  "Invalid preview port",
		Detail:   "The preview port must be between 1 and 65535.",
	},
	"H013": {
		Category: CategoryConfig,
		Message:  "Invalid element name",
		Detail:   "Void element and attribute names must be non-empty, unique within their list and contain no whitespace, quotes, = or >. Void elements must be known HTML elements.",
	},
	"H014": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No htmlkit.json was found in the directory or any parent directory.",
	},

	// ============================================
	// Document Errors (H020-H029)
	// ============================================

	"H020": {
		Category: CategoryDocument,
		Message:  "Invalid document",
		Detail:   "The document could not be parsed as YAML or JSON.",
	},
	"H021": {
		Category: CategoryDocument,
		Message:  "Unexpected node shape",
		Detail:   "A document node must be a mapping with a tag, or a plain string for text content.",
	},
	"H022": {
		Category: CategoryDocument,
		Message:  "Invalid select items",
		Detail:   "Select items must be a mapping from option value to label, or to a nested mapping for an option group.",
	},
	"H023": {
		Category: CategoryDocument,
		Message:  "Minification failed",
		Detail:   "The rendered markup could not be minified.",
	},

	// ============================================
	// Publish Errors (H030-H039)
	// ============================================

	"H030": {
		Category: CategoryPublish,
		Message:  "No publish bucket configured",
		Detail:   "Set publish.bucket in htmlkit.json or pass --bucket.",
	},
	"H031": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		Detail:   "The object store rejected the rendered document.",
	},
	"H032": {
		Category: CategoryPublish,
		Message:  "Invalid object name",
		Detail:   "Object names must be non-empty relative paths without .. segments.",
	},
}

// GetAllCodes returns all registered error codes in order.
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
