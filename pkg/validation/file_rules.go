package validation

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/recordkit/pkg/file"
	"github.com/ginjaninja78/recordkit/pkg/messages"
)

// FileRules holds the optional constraints of ValidateFile.
type FileRules struct {
	// Description names the file in messages. When empty the base file name
	// is used, then "File".
	Description string

	// Extensions is the allow-list, e.g. {".csv", ".txt"}. A nil list
	// disables the extension check.
	Extensions []string
}

// ParseExtensions splits a comma-separated allow-list such as ".csv,.txt".
// Blank entries are dropped.
func ParseExtensions(list string) []string {
	parts := strings.Split(list, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}

// HasValidExtension reports whether the extension of name is in
// extensions, ignoring case. Entries may omit the leading dot.
// It panics when extensions is nil.
func HasValidExtension(name string, extensions []string) bool {
	RequireNotNil(extensions, "extensions")

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		allowed = strings.TrimSpace(allowed)
		if !strings.HasPrefix(allowed, ".") {
			allowed = "." + allowed
		}
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// ValidateFile fails for a nil or empty file when required, and for a
// non-empty file whose extension is not in rules.Extensions.
func ValidateFile(f *file.File, required bool, rules FileRules) Outcome {
	description := fileDescription(f, rules.Description)

	if f.IsEmpty() {
		if required {
			return fail(messages.Format(messages.Required, description))
		}
		return pass()
	}

	if rules.Extensions != nil && !HasValidExtension(f.Name, rules.Extensions) {
		return fail(messages.Format(messages.FileExtension, description, strings.Join(rules.Extensions, ", ")))
	}
	return pass()
}

// CheckFile is ValidateFile appending to errs.
func CheckFile(errs *ErrorList, f *file.File, required bool, rules FileRules) bool {
	return AddTo(errs, ValidateFile(f, required, rules))
}

func fileDescription(f *file.File, description string) string {
	if description != "" {
		return description
	}
	if name := f.BaseName(); name != "" {
		return name
	}
	return "File"
}
