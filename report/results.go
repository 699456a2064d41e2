// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row is one line of a batch run's results file: per-input statistics
// comparable across codecs, the Go equivalent of the source tool's
// space-separated results.txt (MakeResultsFile in main.cpp).
type Row struct {
	FileName       string
	Entropy        float64
	OriginalSizeKB float64
	EncodedSizeKB  float64
	EncodingRatio  float64
	DecodingRatio  float64
}

var resultsHeader = []string{"fileName", "entropy", "startSizeKB", "encodedSizeKB", "encodingRatio", "decodingRatio"}

// WriteResults writes rows as CSV to w, header first.
func WriteResults(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultsHeader); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.FileName,
			fmt.Sprintf("%g", r.Entropy),
			fmt.Sprintf("%g", r.OriginalSizeKB),
			fmt.Sprintf("%g", r.EncodedSizeKB),
			fmt.Sprintf("%g", r.EncodingRatio),
			fmt.Sprintf("%g", r.DecodingRatio),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write results row for %s: %w", r.FileName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
