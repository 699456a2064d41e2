// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/afrlfff/textcodec/internal/ioutil"
	"github.com/afrlfff/textcodec/report"
)

// batchFlags mirrors the shape of the teacher's flag structs (CommonFlags,
// unzipFlags): a plain struct of subcommand options, here bound directly
// to cobra's pflag.FlagSet instead of cloudeng.io/cmdutil/subcmd.
type batchFlags struct {
	outputDir string
	progress  bool
	reportCSV string
}

// newBatchCmd builds the "batch <codec> <encode|decode> <dir>" command,
// the CLI-layer home for what the original's EncodeAll/DecodeAll did in
// main.cpp; spec.md §1 scopes batch orchestration out of the codec core,
// not out of this binary.
func newBatchCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "batch <codec> <encode|decode> <input-dir>",
		Short: "Encode or decode every file in a directory with one codec",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], args[1], args[2], flags)
		},
	}
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "directory to write results into (required)")
	cmd.Flags().BoolVar(&flags.progress, "progress", true, "display a progress bar on stderr")
	cmd.Flags().StringVar(&flags.reportCSV, "report", "", "path for a CSV entropy/ratio report (encode only)")
	return cmd
}

func runBatch(codecName, direction, inputDir string, flags batchFlags) error {
	funcs, ok := registry[codecName]
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}
	if flags.outputDir == "" {
		return fmt.Errorf("--output-dir is required")
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputDir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	if err := os.MkdirAll(flags.outputDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", flags.outputDir, err)
	}

	var bar *progressbar.ProgressBar
	if flags.progress && terminal.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(true))
		bar.RenderBlank()
	}

	var rows []report.Row
	wantReport := flags.reportCSV != "" && direction == "encode"

	for _, name := range files {
		in := filepath.Join(inputDir, name)
		out := filepath.Join(flags.outputDir, name+"."+codecName)

		var runErr error
		switch direction {
		case "encode":
			runErr = funcs.Encode(in, out)
		case "decode":
			runErr = funcs.Decode(in, out)
		default:
			return fmt.Errorf("unknown direction %q, want \"encode\" or \"decode\"", direction)
		}
		if runErr != nil {
			return fmt.Errorf("%s %s: %w", direction, in, runErr)
		}

		if wantReport {
			row, err := reportRow(name, in, out)
			if err != nil {
				return fmt.Errorf("report %s: %w", in, err)
			}
			rows = append(rows, row)
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	if wantReport {
		f, err := os.Create(flags.reportCSV)
		if err != nil {
			return fmt.Errorf("create %s: %w", flags.reportCSV, err)
		}
		defer f.Close()
		if err := report.WriteResults(f, rows); err != nil {
			return err
		}
	}
	return nil
}

// reportRow computes one results row for the file encoded at in -> out,
// matching the columns the original's MakeResultsFile tabulated:
// entropy of the source text, its size and the encoded size in KiB, the
// encoding ratio between them, and a decoding ratio obtained by decoding
// the just-produced container back and comparing its code points with
// the source's.
func reportRow(name, in, out string) (report.Row, error) {
	originalBytes, err := os.ReadFile(in)
	if err != nil {
		return report.Row{}, err
	}
	encodedInfo, err := os.Stat(out)
	if err != nil {
		return report.Row{}, err
	}

	seq, err := ioutil.ReadAllCodePoints(bytes.NewReader(originalBytes))
	if err != nil {
		return report.Row{}, err
	}

	decodedPath := out + ".roundtrip"
	defer os.Remove(decodedPath)

	row := report.Row{
		FileName:       name,
		Entropy:        report.Entropy(seq),
		OriginalSizeKB: float64(len(originalBytes)) / 1024,
		EncodedSizeKB:  float64(encodedInfo.Size()) / 1024,
		EncodingRatio:  report.CompressionRatio(int64(len(originalBytes)), encodedInfo.Size()),
	}

	codecName := codecNameFromExt(out)
	if funcs, ok := registry[codecName]; ok {
		if err := funcs.Decode(out, decodedPath); err == nil {
			if decodedBytes, err := os.ReadFile(decodedPath); err == nil {
				row.DecodingRatio = report.DecodingRatio([]rune(string(originalBytes)), []rune(string(decodedBytes)))
			}
		}
	}
	return row, nil
}

func codecNameFromExt(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 {
		return ext[1:]
	}
	return ""
}
