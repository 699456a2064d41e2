// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootCmdHasOneSubcommandPerCodecPlusBatch(t *testing.T) {
	root := newRootCmd()
	want := len(codecOrder) + 1 // one per codec, plus "batch"
	if got := len(root.Commands()); got != want {
		t.Fatalf("root command has %d subcommands, want %d", got, want)
	}
}

func TestRunBatchRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aaaabbbc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello, 世界"), 0o644); err != nil {
		t.Fatal(err)
	}

	encodedDir := filepath.Join(dir, "encoded")
	if err := runBatch("rle", "encode", dir, batchFlags{outputDir: encodedDir, progress: false}); err != nil {
		t.Fatalf("batch encode: %v", err)
	}
	if _, err := os.Stat(filepath.Join(encodedDir, "a.txt.rle")); err != nil {
		t.Fatalf("missing encoded output: %v", err)
	}

	decodedDir := filepath.Join(dir, "decoded")
	if err := runBatch("rle", "decode", encodedDir, batchFlags{outputDir: decodedDir, progress: false}); err != nil {
		t.Fatalf("batch decode: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(decodedDir, "a.txt.rle.rle"))
	if err != nil {
		t.Fatalf("missing decoded output: %v", err)
	}
	if string(got) != "aaaabbbc" {
		t.Errorf("round trip = %q, want %q", got, "aaaabbbc")
	}
}

func TestRunBatchUnknownCodec(t *testing.T) {
	dir := t.TempDir()
	if err := runBatch("zzz", "encode", dir, batchFlags{outputDir: filepath.Join(dir, "out")}); err == nil {
		t.Fatal("expected an error for an unknown codec")
	}
}

func TestRunBatchRequiresOutputDir(t *testing.T) {
	dir := t.TempDir()
	if err := runBatch("rle", "encode", dir, batchFlags{}); err == nil {
		t.Fatal("expected an error when --output-dir is omitted")
	}
}
