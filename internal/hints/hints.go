// Package hints turns common failures into actionable advice.
// Every hint renders as "\n  hint: <text>" so callers can append it to an
// error message as is.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// maxListed caps how many identifiers a hint enumerates.
const maxListed = 10

// Sandboxed environments reported by Sandboxed.
const (
	Container = "container"
	CI        = "CI"
)

// ciVars are set by the CI systems we know about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether Docker created /.dockerenv.
// A variable so tests can pin it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Sandboxed names the environment where Chrome's sandbox usually cannot
// start: Container, CI, or "" when neither is detected.
func Sandboxed() string {
	if IsInContainer() || os.Getenv("container") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return Container
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return CI
		}
	}
	return ""
}

// ForBrowserConnect suggests the rod environment variables that fix most
// launch failures.
func ForBrowserConnect() string {
	var advice []string
	if Sandboxed() != "" && os.Getenv("ROD_NO_SANDBOX") != "1" {
		advice = append(advice, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		advice = append(advice, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return hint(strings.Join(advice, "; "))
}

// ForTimeout suggests raising the settle timeout.
func ForTimeout() string {
	return hint("templates loading remote fonts or images may need a longer --timeout")
}

// ForConfigNotFound suggests --config, plus the user config location when
// it is among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	text := "use --config /path/to/invoice.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "go-invoice2pdf/") {
			text += " or create " + p
			break
		}
	}
	return hint(text)
}

// ForOutputDirectory is shown when an invoice cannot be written.
func ForOutputDirectory() string {
	return hint("check the output directory exists and is writable")
}

// ForUnknownService lists the catalog identifiers that are available,
// truncated after maxListed.
func ForUnknownService(available []string) string {
	if len(available) == 0 {
		return hint("the catalog is empty; add entries under catalog: or set catalogFile")
	}
	if len(available) > maxListed {
		return hint("known services: " + strings.Join(available[:maxListed], ", ") + ", ...")
	}
	return hint("known services: " + strings.Join(available, ", "))
}

// ForSignatureImage is shown when the signature cannot be embedded.
func ForSignatureImage() string {
	return hint("supported formats: PNG, JPG, GIF, WEBP, SVG; relative paths resolve from the invoice file")
}

// ForTemplateData lists the fields available to invoice templates.
func ForTemplateData(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return hint("template fields: " + strings.Join(fields, ", "))
}

func hint(text string) string {
	if text == "" {
		return ""
	}
	return "\n  hint: " + text
}
