// cmd/storefront/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"pizza-storefront/internal/common/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, appOptions{})
	stop()
	os.Exit(code)
}

// run parses global flags, builds the App and dispatches one command. It
// returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts appOptions) int {
	global := flag.NewFlagSet("storefront", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Path to a config file (default: configs/config.yaml)")
	output := global.String("o", OutputText, "Output format: text, json or yaml")
	global.Usage = func() { newRegistry().PrintHelp(stderr) }

	if err := global.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if err := validOutput(*output); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		newRegistry().PrintHelp(stderr)
		return 2
	}
	if rest[0] == "help" || rest[0] == "-h" || rest[0] == "--help" {
		newRegistry().PrintHelp(stdout)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	opts.in, opts.out, opts.errOut, opts.format = stdin, stdout, stderr, *output
	app, err := newApp(ctx, cfg, opts)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer app.Close()

	if err := app.commands.Execute(ctx, app, rest); err != nil {
		app.report(ctx, rest[0], err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
