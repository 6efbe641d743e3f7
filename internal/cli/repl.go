// Interactive REPL (Read-Eval-Print Loop) for exploratory computations.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/orchestration"
	"github.com/agbru/numcore/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultBackend is the default backend to use for computations.
	DefaultBackend string
	// Timeout is the maximum duration for each computation.
	Timeout time.Duration
	// ParallelThreshold is the parallelism threshold in words.
	ParallelThreshold int
	// FFTThreshold is the FFT multiplication threshold in bits.
	FFTThreshold int
	// HexOutput displays results in hexadecimal format.
	HexOutput bool
}

// REPL represents an interactive arithmetic session.
type REPL struct {
	config         REPLConfig
	registry       map[string]backend.Backend
	currentBackend string
	in             io.Reader
	out            io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: Map of available backends.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry map[string]backend.Backend, config REPLConfig) *REPL {
	currentBackend := config.DefaultBackend
	if _, ok := registry[currentBackend]; !ok {
		// Pick the first available backend as default
		for _, name := range sortedNames(registry) {
			currentBackend = name
			break
		}
	}

	return &REPL{
		config:         config,
		registry:       registry,
		currentBackend: currentBackend,
		in:             os.Stdin,
		out:            os.Stdout,
	}
}

// sortedNames returns registry keys in deterministic order.
func sortedNames(registry map[string]backend.Backend) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"num> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 numcalc - Interactive Mode%s                          %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfact <n>%s          - Compute n! with the current backend\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spow <base> <exp>%s  - Compute base^exp with the current backend\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbackend <name>%s    - Change backend (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getBackendList())
	fmt.Fprintf(r.out, "  %scompare <n>%s       - Compare all backends on n!\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s              - List available backends\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s               - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getBackendList returns a comma-separated list of available backends.
func (r *REPL) getBackendList() string {
	return strings.Join(sortedNames(r.registry), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "fact", "f":
		r.cmdFact(args)
	case "pow", "p":
		r.cmdPow(args)
	case "backend", "b":
		r.cmdBackend(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a number for a quick factorial
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.factorial(n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdFact handles the "fact" command.
func (r *REPL) cmdFact(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: fact <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.factorial(n)
}

// cmdPow handles the "pow" command.
func (r *REPL) cmdPow(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: pow <base> <exp>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	base, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid base: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	exp, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid exponent: %s%s\n", ui.ColorRed(), args[1], ui.ColorReset())
		return
	}

	label := fmt.Sprintf("%d^%d", base, exp)
	r.compute(label, func(ctx context.Context, bk backend.Backend, report backend.ProgressFunc, opts backend.Options) (*big.Int, error) {
		return bk.Power(ctx, report, base, exp, opts)
	})
}

// factorial performs a factorial computation with the current backend.
func (r *REPL) factorial(n uint64) {
	label := fmt.Sprintf("%d!", n)
	r.compute(label, func(ctx context.Context, bk backend.Backend, report backend.ProgressFunc, opts backend.Options) (*big.Int, error) {
		return bk.Factorial(ctx, report, n, opts)
	})
}

// compute runs one operation on the current backend with a progress display.
func (r *REPL) compute(label string, op func(context.Context, backend.Backend, backend.ProgressFunc, backend.Options) (*big.Int, error)) {
	bk, ok := r.registry[r.currentBackend]
	if !ok {
		fmt.Fprintf(r.out, "%sBackend not found: %s%s\n", ui.ColorRed(), r.currentBackend, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Computing %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), label, ui.ColorReset(),
		ui.ColorCyan(), bk.Name(), ui.ColorReset())

	opts := backend.Options{
		ParallelThreshold: r.config.ParallelThreshold,
		FFTThreshold:      r.config.FFTThreshold,
	}

	// Bridge backend progress into the shared display loop
	progressChan := make(chan orchestration.ProgressUpdate, 10)
	report := func(v float64) {
		select {
		case progressChan <- orchestration.ProgressUpdate{BackendIndex: 0, Value: v}:
		default:
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := op(ctx, bk, report, opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	// Format duration
	durationStr := FormatExecutionDuration(duration)

	// Display result
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time: %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:  %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())

	resultStr := result.String()
	numDigits := len(resultStr)
	fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), numDigits, ui.ColorReset())

	if r.config.HexOutput {
		fmt.Fprintf(r.out, "  %s = %s0x%s%s\n", label, ui.ColorGreen(), result.Text(16), ui.ColorReset())
	} else if numDigits > TruncationLimit {
		fmt.Fprintf(r.out, "  %s = %s%s...%s%s (truncated)\n",
			label, ui.ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:], ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  %s = %s%s%s\n", label, ui.ColorGreen(), resultStr, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdBackend handles the "backend" command.
func (r *REPL) cmdBackend(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: backend <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.getBackendList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown backend: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.getBackendList())
		return
	}

	r.currentBackend = name
	fmt.Fprintf(r.out, "Backend changed to: %s%s%s\n", ui.ColorGreen(), r.registry[name].Name(), ui.ColorReset())
}

// cmdCompare handles the "compare" command.
func (r *REPL) cmdCompare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: compare <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for %d!:%s\n", ui.ColorBold(), n, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	opts := backend.Options{
		ParallelThreshold: r.config.ParallelThreshold,
		FFTThreshold:      r.config.FFTThreshold,
	}

	var reference *big.Int

	for _, name := range sortedNames(r.registry) {
		bk := r.registry[name]
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)

		start := time.Now()
		result, err := bk.Factorial(ctx, backend.NopProgress, n, opts)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-20s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		durationStr := FormatExecutionDuration(duration)
		if reference == nil {
			reference = result
		}

		// Check consistency
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if result.Cmp(reference) != 0 {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-20s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), durationStr, ui.ColorReset(),
			status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable backends:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range sortedNames(r.registry) {
		marker := "  "
		if name == r.currentBackend {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdHex toggles hexadecimal output mode.
func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Backend:        %s%s%s\n", ui.ColorCyan(), r.currentBackend, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Threshold:      %s%d%s words\n", ui.ColorCyan(), r.config.ParallelThreshold, ui.ColorReset())
	fmt.Fprintf(r.out, "  FFT Threshold:  %s%d%s bits\n", ui.ColorCyan(), r.config.FFTThreshold, ui.ColorReset())
	hexStatus := "no"
	if r.config.HexOutput {
		hexStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Hexadecimal:    %s%s%s\n", ui.ColorCyan(), hexStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
