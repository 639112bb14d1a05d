package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/a11ylab/a11ydemo/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
   ┌─┐ ┬ ┬ ┬ ┬  ┌┬┐┌─┐┌┬┐┌─┐
   ├─┤ │ │ └┬┘   ││├┤ ││││ │
   ┴ ┴ ┴ ┴  ┴   ─┴┘└─┘┴ ┴└─┘
`

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "a11ydemo",
		Short: "Accessibility demonstration site",
		Long: `a11ydemo serves a small site that demonstrates accessible web
patterns for keyboard and screen reader users.

Pages are rendered on the server and kept live over a WebSocket:

  • Semantic and non-semantic markup side by side
  • Color independent forms and maps
  • ARIA live region announcements
  • Focus trapped modal dialogs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
