// Command aztecdecode decodes a single Aztec Code symbol from a plain-text
// module matrix file: one line per row, one character per cell, "X" for a
// dark module and " " for a light one (bitutil.ParseStringMatrix's
// one-char-per-cell convention; note bitutil.BitMatrix.String itself emits
// two characters per cell and is not directly compatible with this format).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/azteccode/aztecgo/aztec"
	"github.com/azteccode/aztecgo/bitutil"
)

func main() {
	autoOrient := pflag.Bool("auto-orient", true, "rotate the matrix into canonical orientation before reading it")
	autoCorrect := pflag.Bool("auto-correct", true, "Reed-Solomon correct the data codewords")
	modeAutoCorrect := pflag.Bool("mode-auto-correct", true, "Reed-Solomon correct the mode message")
	logLevel := pflag.String("log-level", "info", "log level: debug, info, warn, error")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aztecdecode [flags] <matrix-file>\n\n")
		fmt.Fprintf(os.Stderr, "Decode a single Aztec Code symbol from a plain-text module matrix.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	}
	requestID := uuid.New().String()
	logger = logger.With("request_id", requestID)

	path := pflag.Arg(0)
	message, err := decodeFile(logger, path, aztec.Options{
		AutoOrient:      *autoOrient,
		AutoCorrect:     *autoCorrect,
		ModeAutoCorrect: *modeAutoCorrect,
	})
	if err != nil {
		logger.Error("decode failed", "path", path, "err", err)
		os.Exit(1)
	}
	fmt.Println(message)
}

func decodeFile(logger *log.Logger, path string, opts aztec.Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open matrix file: %w", err)
	}
	defer f.Close()

	repr, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read matrix file: %w", err)
	}

	matrix := bitutil.ParseStringMatrix(string(repr), "X", " ")
	logger.Debug("matrix loaded", "width", matrix.Width(), "height", matrix.Height())

	d := aztec.NewDecoder(matrix, opts)

	bounds, err := d.BullseyeBounds()
	if err != nil {
		return "", err
	}
	aztecType, err := d.AztecType()
	if err != nil {
		return "", err
	}
	logger.Debug("bullseye located", "bounds", bounds, "type", aztecType)

	fields, err := d.ModeInfo()
	if err != nil {
		return "", err
	}
	logger.Debug("mode message decoded", "layers", fields.Layers, "data_words", fields.DataWords)

	return d.Message()
}
