package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one command-line flag for the completion
// generators.
type completionFlag struct {
	short, long string
	desc        string
	// values lists suggested arguments; "@algo" expands to the algorithm
	// names and "@file" requests file completion. Empty means a switch.
	values []string
}

func completionFlags() []completionFlag {
	return []completionFlag{
		{"h", "help", "Show help message", nil},
		{"V", "version", "Show version information", nil},
		{"i", "input", "Input document", []string{"@file"}},
		{"", "format", "Input format", []string{"auto", "json", "jsonc", "yaml"}},
		{"", "k", "Number of roots to use", []string{"-1", "1", "2", "3", "5", "7", "10"}},
		{"", "algo", "Assembly strategy", []string{"@algo"}},
		{"", "timeout", "Maximum execution time", []string{"10s", "1m", "5m"}},
		{"v", "", "Display full coefficients", nil},
		{"d", "details", "Show degree, sizes and timings", nil},
		{"", "json", "Output in JSON format", nil},
		{"", "cbor", "Output in CBOR format", nil},
		{"o", "output", "Output file path", []string{"@file"}},
		{"q", "quiet", "Print only the polynomial", nil},
		{"", "server", "Start HTTP server mode", nil},
		{"", "port", "Server port", []string{"8080", "3000", "9000"}},
		{"", "max-roots", "Maximum number of roots", []string{"0", "100", "10000"}},
		{"", "interactive", "Start interactive REPL mode", nil},
		{"", "no-color", "Disable colored output", nil},
		{"", "completion", "Generate completion script", []string{"bash", "zsh", "fish", "powershell"}},
	}
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: "bash", "zsh", "fish" or "powershell" ("ps").
//   - algorithms: The registered assembly strategy names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := append(append([]string{}, algorithms...), "all")
	flags := completionFlags()
	switch shell {
	case "bash":
		return generateBashCompletion(out, flags, algos)
	case "zsh":
		return generateZshCompletion(out, flags, algos)
	case "fish":
		return generateFishCompletion(out, flags, algos)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, flags, algos)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func (f completionFlag) names() []string {
	var names []string
	if f.short != "" {
		names = append(names, "-"+f.short)
	}
	if f.long != "" {
		names = append(names, "--"+f.long)
	}
	return names
}

func (f completionFlag) expand(algos []string) []string {
	if len(f.values) == 1 && f.values[0] == "@algo" {
		return algos
	}
	return f.values
}

func (f completionFlag) wantsFile() bool {
	return len(f.values) == 1 && f.values[0] == "@file"
}

func generateBashCompletion(out io.Writer, flags []completionFlag, algos []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flags {
		opts = append(opts, f.names()...)
		if len(f.values) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n", strings.Join(f.names(), "|"))
		if f.wantsFile() {
			cases.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		} else {
			fmt.Fprintf(&cases, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.expand(algos), " "))
		}
		cases.WriteString("            return 0\n            ;;\n")
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for polyroots
# Add this to your ~/.bashrc or ~/.bash_completion

_polyroots_completions() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -f -- "${cur}") )
}

complete -F _polyroots_completions polyroots
`, cases.String(), strings.Join(opts, " "))
	return err
}

func generateZshCompletion(out io.Writer, flags []completionFlag, algos []string) error {
	var specs []string
	for _, f := range flags {
		action := ""
		switch {
		case f.wantsFile():
			action = ":file:_files"
		case len(f.values) > 0:
			action = fmt.Sprintf(":value:(%s)", strings.Join(f.expand(algos), " "))
		}
		names := f.names()
		if len(names) == 2 {
			specs = append(specs, fmt.Sprintf("'(%s)'{%s}'[%s]%s'", strings.Join(names, " "), strings.Join(names, ","), f.desc, action))
		} else {
			specs = append(specs, fmt.Sprintf("'%s[%s]%s'", names[0], f.desc, action))
		}
	}
	_, err := fmt.Fprintf(out, `#compdef polyroots

# Zsh completion script for polyroots
# Place this file in your $fpath as _polyroots

_polyroots() {
    _arguments -s \
        %s
}

_polyroots "$@"
`, strings.Join(specs, " \\\n        "))
	return err
}

func generateFishCompletion(out io.Writer, flags []completionFlag, algos []string) error {
	var b strings.Builder
	b.WriteString("# Fish completion script for polyroots\n")
	b.WriteString("# Add this to ~/.config/fish/completions/polyroots.fish\n\n")
	b.WriteString("complete -c polyroots -f\n")
	for _, f := range flags {
		b.WriteString("complete -c polyroots")
		if f.short != "" {
			fmt.Fprintf(&b, " -s %s", f.short)
		}
		if f.long != "" {
			fmt.Fprintf(&b, " -l %s", f.long)
		}
		fmt.Fprintf(&b, " -d '%s'", f.desc)
		switch {
		case f.wantsFile():
			b.WriteString(" -rF")
		case len(f.values) > 0:
			fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.expand(algos), " "))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func generatePowerShellCompletion(out io.Writer, flags []completionFlag, algos []string) error {
	var options, cases strings.Builder
	for _, f := range flags {
		for _, name := range f.names() {
			fmt.Fprintf(&options, "        @{Name = '%s'; Description = '%s' }\n", name, f.desc)
		}
		if len(f.values) == 0 || f.wantsFile() {
			continue
		}
		quoted := make([]string, 0, len(f.values))
		for _, v := range f.expand(algos) {
			quoted = append(quoted, "'"+v+"'")
		}
		for _, name := range f.names() {
			fmt.Fprintf(&cases, "        '%s' { $values = @(%s) }\n", name, strings.Join(quoted, ", "))
		}
	}
	_, err := fmt.Fprintf(out, `# PowerShell completion script for polyroots
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'polyroots' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    $values = $null
    switch ($prevElement) {
%s    }
    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, options.String(), cases.String())
	return err
}
