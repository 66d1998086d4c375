package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf [command] [flags] [invoice.yaml...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate PDF invoices (default)")
	fmt.Fprintln(w, "  example    Print a sample invoice document")
	fmt.Fprintln(w, "  doctor     Check the system for PDF generation")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without arguments, a demonstration invoice is generated.")
	fmt.Fprintln(w, "Run 'invoice2pdf help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf generate [flags] [invoice.yaml...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one PDF per invoice document, concurrently.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  invoice    Document name or path (name searches ./ and the user config dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Invoice document (repeatable)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: document output.dir or .)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Write rendered HTML instead of PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Invoice:")
	fmt.Fprintln(w, "      --prefix <s>          Prefix for generated invoice numbers (default: INV)")
	fmt.Fprintln(w, "      --template <s>        Template name or file path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page settle timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "example":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf example > invoice.yaml")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print a complete invoice document to start from.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings, and writable directories.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
