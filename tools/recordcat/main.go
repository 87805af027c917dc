// recordcat converts newline delimited JSON events into binary records,
// dropping events that do not decode or do not match a schema. With
// --decode it reads such a file back and prints the records as JSON lines.
package main

import (
	"fmt"
	"io"
	"os"

	"bullet/lib/codec"
	"bullet/lib/record"
	"bullet/lib/schema"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type args struct {
	Schema   string `arg:"--schema,env:RECORDCAT_SCHEMA" help:"JSON schema file"`
	Input    string `arg:"--input,env:RECORDCAT_INPUT" default:"-" help:"newline delimited JSON, - for stdin"`
	Output   string `arg:"--output,env:RECORDCAT_OUTPUT" help:"output file; when empty convert only counts and --decode prints to stdout"`
	Compress bool   `arg:"--compress,env:RECORDCAT_COMPRESS" help:"snappy compress records"`
	Decode   bool   `arg:"--decode" help:"read length prefixed records and print them as JSON lines"`
	Dev      bool   `arg:"--dev" default:"false"`
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Parse(data)
}

func run(flags args) error {
	s, err := loadSchema(flags.Schema)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	var in io.Reader = os.Stdin
	if flags.Input != "-" {
		f, err := os.Open(flags.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var out io.Writer
	if flags.Output != "" {
		f, err := os.Create(flags.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	var c record.Codec = codec.Binary{}
	if flags.Compress {
		c = codec.Snappy{}
	}
	var stats summary
	if flags.Decode {
		if out == nil {
			out = os.Stdout
		}
		stats, err = dump(in, out, c)
	} else {
		stats, err = convert(in, out, s, c)
	}
	if err != nil {
		return err
	}
	zap.L().Info("done",
		zap.Int("read", stats.Read),
		zap.Int("written", stats.Written),
		zap.Int("corrupt", stats.Corrupt),
		zap.Int("rejected", stats.Rejected),
	)
	fmt.Fprintln(os.Stderr, stats)
	return nil
}

func main() {
	var flags args
	arg.MustParse(&flags)

	logger, err := newLogger(flags.Dev)
	if err != nil {
		panic(fmt.Errorf("failed to construct logger: %v", err))
	}
	_ = zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(flags); err != nil {
		zap.L().Error("recordcat failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
