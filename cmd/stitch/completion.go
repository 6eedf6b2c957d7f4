package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	stitch "github.com/alnah/go-stitch"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output-file
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesPaths bool // accepts file or directory arguments
	Args       []string
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsFile   bool     // any file
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"image-page-fallback-size": {Values: stitch.PaperSizes()},
	"format":                   {Values: []string{"toml", "yaml"}},

	"config":           {FileGlob: "*.toml,*.yaml,*.yml"},
	"output-file":      {FileGlob: "*.pdf"},
	"output":           {IsFile: true},
	"libreoffice-path": {IsFile: true},

	"output-directory": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "" || meta.IsFile:
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	discard := io.Discard

	return []commandDef{
		{
			Name:       "merge",
			Desc:       "Merge PDFs, images and office documents into one PDF",
			Flags:      extractFlagsFromFlagSet(buildMergeFlagSet(&mergeFlags{}, discard)),
			TakesPaths: true,
		},
		{
			Name:       "tree",
			Desc:       "Show the files a merge would use",
			Flags:      extractFlagsFromFlagSet(buildTreeFlagSet(&treeFlags{}, discard)),
			TakesPaths: true,
		},
		{
			Name:  "config",
			Desc:  "Write the default configuration file",
			Flags: extractFlagsFromFlagSet(buildConfigFlagSet(&configFlags{}, discard)),
		},
		{
			Name:  "doctor",
			Desc:  "Check the LibreOffice install and environment",
			Flags: extractFlagsFromFlagSet(buildDoctorFlagSet(&doctorFlags{}, discard)),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"merge", "tree", "config", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// generateBash builds a bash completion function.
func generateBash(cmds []commandDef) string {
	var b strings.Builder

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for stitch\n")
	b.WriteString("_stitch_completions() {\n")
	b.WriteString("    local cur prev cmd opts\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\") )\n", strings.Join(names, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	// Flag values, shared by every command.
	b.WriteString("    case \"${prev}\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] || f.Type == flagBool {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(f))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
			case flagDir:
				b.WriteString("            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
			default:
				b.WriteString("            COMPREPLY=()\n")
			}
			b.WriteString("            return 0\n")
			b.WriteString("            ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
			b.WriteString("            return 0\n")
			b.WriteString("            ;;\n")
			continue
		}
		fmt.Fprintf(&b, "            opts=\"%s\"\n", strings.Join(flagWords(c.Flags), " "))
		b.WriteString("            ;;\n")
	}
	b.WriteString("        *)\n")
	fmt.Fprintf(&b, "            opts=\"%s\"\n", strings.Join(flagWords(cmds[0].Flags), " "))
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n\n")

	b.WriteString("    if [[ ${cur} == -* ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )\n")
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _stitch_completions stitch\n")

	return b.String()
}

// bashFlagPattern returns the case pattern matching a flag.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

// flagWords lists every spelling of the flags.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// generateZsh builds a zsh completion function.
func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef stitch\n\n")
	b.WriteString("_stitch() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("            ;;\n")
			continue
		}
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
		}
		if c.TakesPaths {
			b.WriteString("                '*:path:_files'\n")
		} else {
			b.WriteString("                && return 0\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_stitch \"$@\"\n")

	return b.String()
}

// zshFlagSpec returns an _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		if f.FileGlob != "" {
			globs := strings.ReplaceAll(f.FileGlob, ",", "|")
			action = `:file:_files -g "(` + globs + `)"`
		} else {
			action = ":file:_files"
		}
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value: "
	}

	desc := "[" + zshEscape(f.Desc) + "]"
	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// zshEscape escapes text for a single-quoted _arguments description.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// generateFish builds fish completions.
func generateFish(cmds []commandDef) string {
	var b strings.Builder

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# fish completion for stitch\n\n")
	b.WriteString("function __fish_stitch_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_stitch_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c stitch -f -n __fish_stitch_needs_command -a %s -d \"%s\"\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("\"__fish_stitch_using_command %s\"", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c stitch -f -n %s -a \"%s\"\n", cond, strings.Join(c.Args, " "))
			continue
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c stitch -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a \"%s\"", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a \"(__fish_complete_directories)\""
			default:
				line += " -r"
			}
			line += fmt.Sprintf(" -d \"%s\"", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		if !c.TakesPaths {
			fmt.Fprintf(&b, "complete -c stitch -f -n %s\n", cond)
		}
	}

	return b.String()
}

// fishEscape escapes text for a double-quoted fish string.
func fishEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`)
	return r.Replace(s)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}
