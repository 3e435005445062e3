package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/AnyUserName/bmpfx-cli/internal/session"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu: open, filter, inspect and save one image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShell(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// valuePrompts holds the prompt for filters that take a number, keyed by
// filter ID.
var valuePrompts = map[string]string{
	"brightness": "Enter brightness value (-255 to 255): ",
	"threshold":  "Enter threshold value (0 to 255): ",
	"bw":         "Enter threshold value (0 to 255): ",
}

type shell struct {
	s   *session.Session
	in  *bufio.Scanner
	out io.Writer
}

// runShell drives a Session from line-oriented input until the user quits
// or the input ends.
func runShell(in io.Reader, out io.Writer) error {
	sh := &shell{s: session.New(nil), in: bufio.NewScanner(in), out: out}
	defer sh.s.Close()

	for {
		sh.mainMenu()
		line, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(out)
			return sh.in.Err()
		}
		switch line {
		case "1":
			sh.open()
		case "2":
			sh.save()
		case "3":
			sh.filter()
		case "4":
			sh.info()
		case "5":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice, please try again.")
		}
	}
}

func (sh *shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) prompt(msg string) (string, bool) {
	fmt.Fprint(sh.out, msg)
	return sh.readLine()
}

func (sh *shell) mainMenu() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "Please choose an option:")
	fmt.Fprintln(sh.out, "1. Open an image")
	fmt.Fprintln(sh.out, "2. Save an image")
	fmt.Fprintln(sh.out, "3. Apply a filter")
	fmt.Fprintln(sh.out, "4. Display image information")
	fmt.Fprintln(sh.out, "5. Quit")
	fmt.Fprint(sh.out, ">>> Your choice: ")
}

func (sh *shell) open() {
	path, ok := sh.prompt("File path: ")
	if !ok || path == "" {
		return
	}
	if err := sh.s.Load(path); err != nil {
		fmt.Fprintf(sh.out, "Error: Could not load image (%v)\n", err)
		return
	}
	logVerbose("shell: loaded %s", path)
	fmt.Fprintf(sh.out, "%s loaded successfully!\n", kindLabel(sh.s.Kind()))
}

func (sh *shell) save() {
	if sh.s.Image() == nil {
		fmt.Fprintln(sh.out, "Error: No image loaded")
		return
	}
	path, ok := sh.prompt("File path: ")
	if !ok || path == "" {
		return
	}
	if err := sh.s.Save(path); err != nil {
		fmt.Fprintf(sh.out, "Error: Could not save image (%v)\n", err)
		return
	}
	fmt.Fprintf(sh.out, "%s saved successfully!\n", kindLabel(sh.s.Kind()))
}

func (sh *shell) filter() {
	if sh.s.Image() == nil {
		fmt.Fprintln(sh.out, "Error: No image loaded")
		return
	}
	kind := sh.s.Kind()
	filters := sh.s.Registry().For(kind)

	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "Please choose a filter:")
	for i, f := range filters {
		fmt.Fprintf(sh.out, "%d. %s (%s)\n", i+1, f.ID, f.Description)
	}
	fmt.Fprintf(sh.out, "%d. Return to the previous menu\n", len(filters)+1)

	line, ok := sh.prompt(">>> Your choice: ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(filters)+1 {
		fmt.Fprintln(sh.out, "Invalid choice")
		return
	}
	if n == len(filters)+1 {
		return
	}

	f := filters[n-1]
	var p session.Params
	if f.NeedsValue(kind) {
		msg, found := valuePrompts[f.ID]
		if !found {
			msg = "Enter value: "
		}
		line, ok := sh.prompt(msg)
		if !ok {
			return
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(sh.out, "Error: value must be an integer")
			return
		}
		p = session.WithValue(v)
	}

	if err := sh.s.Apply(f.ID, p); err != nil {
		if errors.Is(err, session.ErrUnsupportedFilter) {
			fmt.Fprintf(sh.out, "Error: %s is not available for %s images\n", f.ID, kind)
			return
		}
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "Filter applied successfully!")
}

func (sh *shell) info() {
	info, err := sh.s.Describe()
	if err != nil {
		fmt.Fprintln(sh.out, "Error: No image loaded")
		return
	}
	sum, err := hasher.ImageHash(sh.s.Image(), 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[bmpfx] hash: %v\n", err)
	}
	fmt.Fprintf(sh.out, "File: %s\n", sh.s.Path())
	printInfo(sh.out, info, sh.s.Kind(), sum)
}

func kindLabel(k bmp.Kind) string {
	switch k {
	case bmp.KindGray:
		return "8-bit grayscale image"
	case bmp.KindColor:
		return "24-bit color image"
	default:
		return "image"
	}
}
