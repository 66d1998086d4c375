package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/hints"
)

// Doctor statuses, worst last.
const (
	statusOK    = "ok"
	statusWarn  = "warn"
	statusError = "error"
)

// doctorCheck is one diagnostic line.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status string        `json:"status"` // "ready", "warnings", "errors"
	OS     string        `json:"os"`
	Arch   string        `json:"arch"`
	Checks []doctorCheck `json:"checks"`
}

func (r *doctorResult) add(name, status, detail string) {
	r.Checks = append(r.Checks, doctorCheck{Name: name, Status: status, Detail: detail})
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{OS: runtime.GOOS, Arch: runtime.GOARCH}

	checkChrome(result)
	checkSandbox(result)
	checkWritable(result, "temp directory", os.TempDir())
	checkWritable(result, "working directory", ".")
	checkTemplate(result, env)

	result.Status = "ready"
	for _, c := range result.Checks {
		switch c.Status {
		case statusError:
			result.Status = "errors"
			return result
		case statusWarn:
			result.Status = "warnings"
		}
	}
	return result
}

// checkChrome detects the Chrome/Chromium binary rod would launch.
func checkChrome(result *doctorResult) {
	chromePath := os.Getenv("ROD_BROWSER_BIN")
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.add("chrome", statusError, "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.add("chrome", statusError, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or launcher
	if err != nil {
		result.add("chrome", statusWarn, fmt.Sprintf("found at %s, version unknown: %v", chromePath, err))
		return
	}
	result.add("chrome", statusOK, fmt.Sprintf("%s (%s)", chromePath, strings.TrimSpace(string(out))))
}

// checkSandbox warns when Chrome's sandbox will likely fail to start.
func checkSandbox(result *doctorResult) {
	noSandbox := os.Getenv("ROD_NO_SANDBOX") == "1"
	where := hints.Sandboxed()

	switch {
	case where != "" && !noSandbox:
		result.add("sandbox", statusWarn, where+" detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	case noSandbox:
		result.add("sandbox", statusOK, "disabled (ROD_NO_SANDBOX=1)")
	default:
		result.add("sandbox", statusOK, "enabled")
	}
}

// checkWritable verifies files can be created in dir.
func checkWritable(result *doctorResult, name, dir string) {
	f, err := os.CreateTemp(dir, ".invoice2pdf-doctor-*")
	if err != nil {
		result.add(name, statusError, fmt.Sprintf("not writable: %s", dir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	result.add(name, statusOK, "writable: "+abs)
}

// checkTemplate renders the demonstration invoice without a browser.
func checkTemplate(result *doctorResult, env *Environment) {
	doc := demoDocument()
	settings, err := settingsFor(doc, "")
	if err == nil {
		var data *invoice2pdf.InvoiceData
		data, err = buildInvoice(doc, "", env.Now)
		if err == nil {
			err = renderOnce(settings, data)
		}
	}
	if err != nil {
		result.add("template", statusError, err.Error())
		return
	}
	result.add("template", statusOK, "built-in invoice renders")
}

func renderOnce(settings renderSettings, data *invoice2pdf.InvoiceData) error {
	opts, err := settings.options()
	if err != nil {
		return err
	}
	gen, err := invoice2pdf.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	_, err = gen.RenderHTML(context.Background(), data)
	return err
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "invoice2pdf doctor")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.OS, r.Arch)
	for _, c := range r.Checks {
		fmt.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(c.Status), c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
