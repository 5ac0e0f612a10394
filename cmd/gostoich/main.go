/*
 * main.go, part of goStoich.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/stoichjson"
	"github.com/rmera/gostoich/web"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const usage = `usage: gostoich [-version] <command> [<args>]

Commands
   serve       Run the web calculator
                 -config     path to gostoich.yaml (optional, else configs/gostoich.yaml or ./gostoich.yaml)
                 -addr       listen address, overrides the config file
                 -log-level  debug, info, warn or error, overrides the config file
   pipe        Read one JSON request per line from stdin, answer one JSON line per request on stdout
   batch       Answer every request of a JSON-lines file: gostoich batch <in> <out>
               Files ending in .zst, .gz or .flate are (de)compressed on the fly
   elements    Print the element table
   help        Display this message
`

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	log.SetFlags(0)
	if *showVersion {
		fmt.Printf("gostoich version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return
	}
	if flag.NArg() == 0 {
		log.Printf("missing command\n\n")
		fmt.Print(usage)
		os.Exit(2)
	}
	args := flag.Args()[1:]
	var err error
	switch cmd := flag.Arg(0); cmd {
	case "serve":
		err = serve(args)
	case "pipe":
		err = pipe(os.Stdin, os.Stdout)
	case "batch":
		err = batch(args)
	case "elements":
		err = elements(os.Stdout)
	case "help":
		fmt.Print(usage)
	default:
		log.Printf("unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("gostoich %s: %v", flag.Arg(0), err)
	}
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to gostoich.yaml (optional)")
	addr := fs.String("addr", "", "listen address")
	level := fs.String("log-level", "", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := web.LoadFromPath(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	srv, err := web.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}
	logger.Info("gostoich starting", "version", version, "addr", cfg.Addr, "rate_rps", cfg.RateRPS)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("gostoich stopped")
	return nil
}

func pipe(in io.Reader, out io.Writer) error {
	n, err := stoichjson.Serve(in, out)
	if err != nil {
		return fmt.Errorf("after %d requests: %w", n, err)
	}
	return nil
}

func batch(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("batch needs an input and an output file, got %d arguments", len(args))
	}
	n, err := stoichjson.ServeFiles(args[0], args[1])
	if err != nil {
		return fmt.Errorf("after %d requests: %w", n, err)
	}
	log.Printf("%d requests answered in %s", n, args[1])
	return nil
}

func elements(out io.Writer) error {
	w := bufio.NewWriter(out)
	for _, e := range stoich.Elements() {
		fmt.Fprintf(w, "%3d  %-3s %10.3f\n", e.Number, e.Symbol, e.Mass)
	}
	return w.Flush()
}
