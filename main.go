package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"sqlar/archive"
)

func main() {
	verbose := flag.Bool("V", false, "verbose output")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(log, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, command string, args []string) error {
	switch command {
	case "list", "l":
		if len(args) != 1 {
			return usageError("list <archive>")
		}
		return list(args[0])

	case "create", "c":
		if len(args) < 2 {
			return usageError("create <archive> <path> [paths...]")
		}
		log.Info("creating archive", "archive", args[0], "paths", args[1:])
		return archive.Create(log, args[0], args[1:])

	case "extract", "x":
		if len(args) < 1 || len(args) > 2 {
			return usageError("extract <archive> [destination]")
		}
		dest := archive.DefaultDestination(args[0])
		if len(args) == 2 {
			dest = args[1]
		}
		log.Info("extracting archive", "archive", args[0], "destination", dest)
		return archive.Extract(log, args[0], dest)

	default:
		return fmt.Errorf("%s is not a recognized command", command)
	}
}

// list prints a table of archive contents to stdout
func list(archivePath string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tType\tMode\tModified\tSize (Compressed)")
	fmt.Fprintln(tw, "====\t====\t====\t========\t=================")

	err := archive.List(archivePath, func(r archive.Row) error {
		ts := time.Unix(r.Mtime, 0).UTC().Format("2006-01-02 15:04:05")
		_, err := fmt.Fprintf(tw, "%s\t%s\t%o\t%s UTC\t%d (%.1f%%)\n",
			r.Name, r.Type, r.Mode, ts, r.Size, r.Ratio)
		return err
	})
	if err != nil {
		return err
	}

	return tw.Flush()
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  sqlar [-V] list <archive>")
	fmt.Fprintln(os.Stderr, "  sqlar [-V] create <archive> <path> [paths...]")
	fmt.Fprintln(os.Stderr, "  sqlar [-V] extract <archive> [destination]")
}

func usageError(form string) error {
	return fmt.Errorf("usage: sqlar %s", form)
}
