package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsiuhsiu/cipherlab-go/internal/config"
	"github.com/hsiuhsiu/cipherlab-go/internal/httpapi"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/logging"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/registry"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/sdes"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, dispatches to the selected subcommand and returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()
	parser := config.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "cipherlab"

	app := &app{cfg: &cfg, stdout: stdout, stderr: stderr}
	mustAddCommand(parser, "serve", "Serve the HTTP API",
		"Serve the JSON cipher API until interrupted.", &serveCommand{app: app})
	mustAddCommand(parser, "encrypt", "Encrypt one block",
		"Encrypt one block and print the ciphertext and subkeys.", &cryptCommand{app: app, op: "encrypt"})
	mustAddCommand(parser, "decrypt", "Decrypt one block",
		"Decrypt one block and print the plaintext and subkeys.", &cryptCommand{app: app, op: "decrypt"})
	mustAddCommand(parser, "version", "Print the version", "Print the version.", &versionCommand{app: app})

	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return 0
		}
		fmt.Fprintf(stderr, "cipherlab: %v\n", err)
		return 1
	}
	return 0
}

func mustAddCommand(p *flags.Parser, name, short, long string, data any) {
	if _, err := p.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}

type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func (a *app) logger() (logging.Logger, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := logging.NewHandler(a.stderr, a.cfg.LogFormat, a.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(slog.New(h)), nil
}

type serveCommand struct {
	app *app
}

func (c *serveCommand) Execute(_ []string) error {
	logger, err := c.app.logger()
	if err != nil {
		return err
	}
	cfg := c.app.cfg

	srv, err := httpapi.New(httpapi.Options{
		Listen:          cfg.Listen,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
		Registry:        prometheus.NewRegistry(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "starting cipherlab", "version", cipherlab.BuildVersion(), "config", cfg.String())
	return srv.ListenAndServe(ctx)
}

type cryptCommand struct {
	app *app
	op  string

	Cipher string `long:"cipher" default:"sdes" description:"Cipher to use"`
	Key    string `short:"k" long:"key" required:"true" description:"Key as a bit string"`
	Block  string `short:"b" long:"block" required:"true" description:"Input block as a bit string"`
	Tables string `long:"tables" description:"JSON file with S-DES tables; missing tables use the defaults"`
}

func (c *cryptCommand) Execute(_ []string) error {
	logger, err := c.app.logger()
	if err != nil {
		return err
	}

	id, err := registry.ParseID(c.Cipher)
	if err != nil {
		return err
	}
	cipher, err := registry.Lookup(id)
	if err != nil {
		return err
	}

	params := registry.Params{Input: c.Block, Key: c.Key}
	if c.Tables != "" {
		if params.SDES, err = config.LoadTables(c.Tables); err != nil {
			return err
		}
	} else {
		params.SDES = sdes.DefaultTables()
	}

	ctx := context.Background()
	var out *registry.Output
	if c.op == "decrypt" {
		out, err = cipher.Decrypt(ctx, params)
	} else {
		out, err = cipher.Encrypt(ctx, params)
	}
	if err != nil {
		logger.Debug(ctx, "cipher operation failed", "cipher", id, "op", c.op, "kind", cipherlab.Kind(err))
		return err
	}

	fmt.Fprintf(c.app.stdout, "%s: %s\n", c.op+"ed", out.Text)
	if out.SDES != nil {
		fmt.Fprintf(c.app.stdout, "K1: %s\nK2: %s\nIP_INV: %v\n", out.SDES.K1, out.SDES.K2, out.SDES.IPInverse)
	}
	return nil
}

type versionCommand struct {
	app *app
}

func (c *versionCommand) Execute(_ []string) error {
	fmt.Fprintf(c.app.stdout, "cipherlab %s\n", cipherlab.BuildVersion())
	return nil
}
