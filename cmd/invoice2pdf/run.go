package main

import "fmt"

// commands lists the subcommand names recognized as the first argument.
var commands = []string{"generate", "example", "doctor", "version", "help"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// runMain dispatches to a command and returns the process exit code.
// Anything that is not a command is handed to generate, so
// "invoice2pdf acme.yaml" and "invoice2pdf -o out/" both work.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		return runGenerateCmd(nil, env)
	}

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "--version":
		printVersion(env)
		return ExitSuccess
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case !isCommand(cmd):
		return runGenerateCmd(args[1:], env)
	}

	switch cmd {
	case "generate":
		return runGenerateCmd(rest, env)
	case "example":
		return runExampleCmd(env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		printVersion(env)
		return ExitSuccess
	default:
		runHelp(rest, env)
		if len(rest) > 0 && !isCommand(rest[0]) {
			return ExitUsage
		}
		return ExitSuccess
	}
}

// printVersion writes the version line.
func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "invoice2pdf %s\n", Version)
}
