package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/suparena/bulkstore"
	"github.com/suparena/bulkstore/bulk"
	"github.com/suparena/bulkstore/config"
)

var (
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	tableFlag   = flag.String("table", "", "Table name (overrides the config)")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: bulkctl [flags] <command>

Commands:
  get     read JSON-lines keys from stdin, write found items to stdout
  put     read JSON-lines items from stdin and write them
  delete  read JSON-lines keys from stdin and delete them
  scan    write every item of the table to stdout

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag || *vFlag {
		info := bulkstore.GetVersionInfo()
		fmt.Printf("bulkctl version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bulkctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *tableFlag != "" {
		cfg.Table = *tableFlag
	}

	store, err := bulkstore.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Executor().Logger().Sync() }()

	return execute(ctx, store, command, in, out)
}

func execute(ctx context.Context, store *bulkstore.Store, command string, in io.Reader, out io.Writer) error {
	switch command {
	case "get":
		keys, err := readRecords(in)
		if err != nil {
			return err
		}
		records, err := store.Get(ctx, keys)
		if err != nil {
			return err
		}
		w := newRecordWriter(out)
		for _, r := range records {
			if err := w.write(r); err != nil {
				return err
			}
		}
		return nil

	case "put":
		items, err := readRecords(in)
		if err != nil {
			return err
		}
		return store.Put(ctx, items, bulk.WithProgress(bulk.LogProgress(store.Executor().Logger())))

	case "delete":
		keys, err := readRecords(in)
		if err != nil {
			return err
		}
		return store.Delete(ctx, keys, bulk.WithProgress(bulk.LogProgress(store.Executor().Logger())))

	case "scan":
		w := newRecordWriter(out)
		return store.ScanEach(ctx, nil, w.write)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
