package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch [merge] [flags] <path>...")
	fmt.Fprintln(w, "       stitch <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  merge       Merge PDFs, images and office documents into one PDF")
	fmt.Fprintln(w, "  tree        Show the files a merge would use")
	fmt.Fprintln(w, "  config      Write the default configuration file")
	fmt.Fprintln(w, "  doctor      Check the LibreOffice install and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A path as first argument runs merge.")
	fmt.Fprintln(w, "Run 'stitch help <command>' for details on a specific command.")
}

// printMergeUsage prints usage for the merge command.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch merge <path>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge PDFs, images and office documents into one PDF, in argument order.")
	fmt.Fprintln(w, "Directories contribute their files first, then their subdirectories,")
	fmt.Fprintln(w, "both in natural order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    File or directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output-file <path>         Output PDF file (.pdf is added if missing)")
	fmt.Fprintln(w, "  -d, --output-directory <dir>     Directory for a generated file name")
	fmt.Fprintln(w, "      --whatif, --dry-run          Report without writing")
	fmt.Fprintln(w, "      --tree                       Print the discovered file tree")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -m, --margin <dim>               Margin around images: \"1cm\", \"0.5in x 1in\"")
	fmt.Fprintln(w, "  -s, --image-page-fallback-size <dim>")
	fmt.Fprintln(w, "                                   Page size when no PDF sets it: A4, letter-l,")
	fmt.Fprintln(w, "                                   \"21cm x 29.7cm\"")
	fmt.Fprintln(w, "      --fp, --force-fallback       Always use the fallback page size")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Discovery:")
	fmt.Fprintln(w, "  -r, --recursion-limit <n>        Directory depth explored below each path")
	fmt.Fprintln(w, "      --afs, --alphabetic          Sort the given paths alphabetically")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Office documents:")
	fmt.Fprintln(w, "      --libreoffice-path <path>    LibreOffice executable (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config and output control:")
	fmt.Fprintln(w, "  -c, --config <name>              Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                      Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                    Show per-file timing and the page size")
	fmt.Fprintln(w, "      --no-progress                Disable the progress bar")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dimensions: paper names (A0-A10, B0-B10, C0-C10, letter, legal, ...; add -l")
	fmt.Fprintln(w, "for landscape) or \"<n><unit> [x <n><unit>]\" with pt, mm, cm or inch.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  STITCH_CONFIG, STITCH_OUTPUT_DIR, STITCH_LIBREOFFICE_PATH,")
	fmt.Fprintln(w, "  STITCH_MARGIN, STITCH_FALLBACK_SIZE")
}

// printTreeUsage prints usage for the tree command.
func printTreeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch tree <path>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the files a merge would use. Subdirectories beyond the recursion")
	fmt.Fprintln(w, "limit are marked with \"…\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -r, --recursion-limit <n>        Directory depth explored below each path")
	fmt.Fprintln(w, "      --afs, --alphabetic          Sort the given paths alphabetically")
	fmt.Fprintln(w, "  -c, --config <name>              Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                      Only show errors")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the default configuration, with comments, to the user config")
	fmt.Fprintln(w, "directory or to --output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>    Destination file (\"-\" for stdout)")
	fmt.Fprintln(w, "  -f, --format <s>       Syntax: toml, yaml (default from extension, else toml)")
	fmt.Fprintln(w, "      --force            Overwrite an existing file")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the LibreOffice install, the environment and the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "      --json             Print the result as JSON")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stitch completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(stitch completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(stitch completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    stitch completion fish > ~/.config/fish/completions/stitch.fish")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "merge":
		printMergeUsage(env.Stdout)
	case "tree":
		printTreeUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: stitch version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: stitch help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n", ErrUnknownCommand, args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
