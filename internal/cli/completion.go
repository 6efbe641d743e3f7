package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsBackend bool     // true if values come from the backend list (dynamic)
	BashGroup string   // flags with same non-empty BashGroup share a bash case entry
}

// flagRegistry is the central list of all CLI flags for completion generation.
// The order matches the flag definitions in the config package.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "op", Help: "Operation to run", Values: []string{"factorial", "power", "convolve"}, ValueName: "operation"},
	{Short: "n", Help: "Factorial operand", ValueName: "number"},
	{Long: "base", Help: "Power base", ValueName: "number"},
	{Long: "exp", Help: "Power exponent", ValueName: "number"},
	{Long: "log2n", Help: "Convolution length exponent", Values: []string{"10", "12", "16", "20"}, ValueName: "exponent"},
	{Long: "backends", Help: "Backends to run and cross-check", IsBackend: true, ValueName: "backend"},
	{Short: "v", Help: "Display full result value"},
	{Long: "details", Short: "d", Help: "Show performance details"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "5m", "10m", "30m", "1h"}, ValueName: "duration"},
	{Long: "threshold", Help: "Parallelism threshold in words", Values: []string{"64", "256", "1024", "4096"}, ValueName: "words", BashGroup: "threshold"},
	{Long: "fft-threshold", Help: "FFT threshold in bits", Values: []string{"100000", "250000", "500000", "1000000"}, ValueName: "bits", BashGroup: "threshold"},
	{Long: "memory-limit", Help: "Maximum estimated result size", Values: []string{"512MB", "1GB", "2GB", "4GB"}, ValueName: "size"},
	{Long: "calibrate", Help: "Run calibration mode"},
	{Long: "auto-calibrate", Help: "Enable auto-calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "tui", Help: "Run the interactive dashboard"},
	{Long: "interactive", Short: "i", Help: "Start an interactive arithmetic session"},
	{Long: "server", Help: "Run the HTTP API server"},
	{Long: "addr", Help: "HTTP server listen address", ValueName: "address"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// bashGroupValues defines the completion values used in bash for grouped flags.
// Flags sharing the same BashGroup use these values in the bash case statement.
var bashGroupValues = map[string][]string{
	"threshold": {"64", "256", "1024", "4096", "100000", "500000"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
// Some flags have slightly different descriptions in zsh's _arguments format.
var zshHelpOverrides = map[string]string{
	"n":     "Factorial operand n",
	"log2n": "Convolution length exponent (length = 2^log2n)",
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - backends: List of available backend names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, backends []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, backends)
	case "zsh":
		return generateZshCompletion(out, backends)
	case "fish":
		return generateFishCompletion(out, backends)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, backends)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatBackendList joins backend names with space separators.
func formatBackendList(backends []string) string {
	return strings.Join(backends, " ")
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, backends []string) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry.
	// Order: backends, completion, file, remaining value flags, grouped flags.
	type caseEntry struct {
		patterns []string
		body     string
	}
	bashCaseEntry := func(f FlagCompletion) caseEntry {
		return caseEntry{
			patterns: []string{"--" + f.Long},
			body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
		}
	}
	var orderedCases []caseEntry

	// 1. Backend flags
	for _, f := range flagRegistry {
		if f.IsBackend {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${backends}" -- "${cur}") )`,
			})
		}
	}

	// 2. Completion flag (static values, comes before file/timeout)
	for _, f := range flagRegistry {
		if f.Long == "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 3. File completion flags
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// 4. Remaining flags with static values (non-backend, non-file, non-grouped, non-completion)
	for _, f := range flagRegistry {
		if !f.IsBackend && !f.IsFile && f.BashGroup == "" && f.Long != "completion" && len(f.Values) > 0 {
			orderedCases = append(orderedCases, bashCaseEntry(f))
		}
	}

	// 5. Grouped flags (threshold group)
	seenGroups := map[string]bool{}
	for _, f := range flagRegistry {
		if f.BashGroup != "" && !seenGroups[f.BashGroup] {
			seenGroups[f.BashGroup] = true
			var patterns []string
			for _, gf := range flagRegistry {
				if gf.BashGroup == f.BashGroup {
					patterns = append(patterns, "--"+gf.Long)
				}
			}
			vals := bashGroupValues[f.BashGroup]
			orderedCases = append(orderedCases, caseEntry{
				patterns: patterns,
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(vals, " ")),
			})
		}
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	backendList := formatBackendList(backends)

	script := fmt.Sprintf(`# Bash completion script for numcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_numcalc_completions() {
    local cur prev opts backends
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available backends
    backends="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _numcalc_completions numcalc
`, strings.Join(opts, " "), backendList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, backends []string) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	backendList := formatBackendList(backends)

	script := fmt.Sprintf(`#compdef numcalc

# Zsh completion script for numcalc
# Add this to your ~/.zshrc or place in $fpath

_numcalc() {
    local -a backends
    backends=(%s all)

    _arguments -s \
%s
}

_numcalc "$@"
`, backendList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	key := flagKey(f)
	if override, ok := zshHelpOverrides[key]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := zshHelp(f)

	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsBackend {
		valueSuffix = fmt.Sprintf(":%s:($backends)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., -n)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, backends []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for numcalc")
	lines = append(lines, "# Add this to ~/.config/fish/completions/numcalc.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c numcalc -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Operation selection", flags: filterFlags("op", "n_short", "base", "exp", "log2n", "backends")},
		{comment: "# Tuning", flags: filterFlags("timeout", "threshold", "fft-threshold", "memory-limit")},
		{comment: "# Calibration", flags: filterFlags("calibrate", "auto-calibrate", "calibration-profile")},
		{comment: "# Output options", flags: filterFlags("v_short", "details", "output", "quiet")},
		{comment: "# Modes", flags: filterFlags("tui", "interactive", "server", "addr")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	backendList := formatBackendList(backends)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, backendList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given identifiers.
// An identifier is a Long name, or "X_short" to match a flag by Short name only.
func filterFlags(ids ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, id := range ids {
		if strings.HasSuffix(id, "_short") {
			short := strings.TrimSuffix(id, "_short")
			for _, f := range flagRegistry {
				if f.Short == short && f.Long == "" {
					result = append(result, f)
					break
				}
			}
		} else {
			for _, f := range flagRegistry {
				if f.Long == id {
					result = append(result, f)
					break
				}
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, backendList string) string {
	var parts []string
	parts = append(parts, "complete -c numcalc")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsBackend {
		parts = append(parts, fmt.Sprintf("-xa '%s all'", backendList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions (e.g., -n)
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, backends []string) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries.
	// Only backend and non-grouped flags with static values get context-aware
	// completion. Grouped flags (threshold variants) are omitted.
	var switchEntries []string

	psSwitchEntry := func(f FlagCompletion) string {
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", "))
	}

	// Backend flags first
	for _, f := range flagRegistry {
		if f.IsBackend {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $numcalcBackends | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	// Non-backend value flags in reverse registry order (completion before timeout)
	var psValueFlags []FlagCompletion
	for _, f := range flagRegistry {
		if !f.IsBackend && !f.IsFile && f.BashGroup == "" && len(f.Values) > 0 {
			psValueFlags = append(psValueFlags, f)
		}
	}
	for i := len(psValueFlags) - 1; i >= 0; i-- {
		switchEntries = append(switchEntries, psSwitchEntry(psValueFlags[i]))
	}

	// Format backend list for PowerShell
	psBackendList := ""
	for i, bk := range backends {
		if i > 0 {
			psBackendList += ", "
		}
		psBackendList += fmt.Sprintf("'%s'", bk)
	}

	script := fmt.Sprintf(`# PowerShell completion script for numcalc
# Add this to your $PROFILE

$numcalcBackends = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'numcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psBackendList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
