package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/terrarium-earth/odysseus/converter"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	questfs "github.com/terrarium-earth/odysseus/quest-fs"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
)

const (
	TypeFtb = "ftb"
	TypeHqm = "hqm"
)

var (
	ErrNoInput         = errors.New("no input specified, use -i")
	ErrUnknownType     = errors.New("unknown input type")
	ErrHqmNotSupported = errors.New("HQM quests are not supported")
)

type options struct {
	Input   string
	Output  string
	Type    string
	Workers int
}

func main() {
	var opts options
	var debug bool

	flag.StringVar(&opts.Input, "i", "", "Quest directory or .zip archive to convert")
	flag.StringVar(&opts.Output, "o", "output", "Output directory or .zip archive")
	flag.StringVar(&opts.Type, "t", "", "Input type (ftb or hqm), inferred from the input when empty")
	flag.IntVar(&opts.Workers, "workers", 8, "Number of concurrent quest writes")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := newLogger(debug)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	warnings, err := run(ctx, logger, opts)
	if err != nil {
		logger.Fatal("Conversion failed", zap.Error(err))
	}
	for _, w := range warnings {
		logger.Warn(w)
	}
	logger.Info("Done", zap.String("output", opts.Output), zap.Int("warnings", len(warnings)))
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func run(ctx context.Context, logger *zap.Logger, opts options) ([]string, error) {
	if opts.Input == "" {
		return nil, ErrNoInput
	}
	inputType, err := resolveType(opts.Type, opts.Input)
	if err != nil {
		return nil, err
	}
	if inputType == TypeHqm {
		return nil, ErrHqmNotSupported
	}

	in, closeIn, err := openInput(opts.Input)
	if err != nil {
		return nil, err
	}
	defer closeIn()

	c := &converter.Converter{Log: logger, Workers: opts.Workers}
	if !isZip(opts.Output) {
		return c.Convert(ctx, in, questfs.NewDirOutput(opts.Output))
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return nil, err
	}
	out := questfs.NewZipOutput(f)
	warnings, err := c.Convert(ctx, in, out)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(opts.Output)
		return nil, err
	}
	if err := out.Close(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return warnings, f.Close()
}

func resolveType(t, input string) (string, error) {
	switch strings.ToLower(t) {
	case TypeFtb:
		return TypeFtb, nil
	case TypeHqm:
		return TypeHqm, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	if strings.EqualFold(filepath.Ext(input), ".json") {
		return TypeHqm, nil
	}
	return TypeFtb, nil
}

func openInput(p string) (ftbquests.InputFS, func(), error) {
	if !isZip(p) {
		return questfs.NewDirInput(p), func() {}, nil
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	in, err := questfs.OpenZipInput(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return in, func() { _ = f.Close() }, nil
}

func isZip(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".zip")
}
