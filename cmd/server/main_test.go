package main

import (
	"bytes"
	"go/format"
	"os"
	"testing"
)

func TestMainIsGofmtClean(t *testing.T) {
	src, err := os.ReadFile("main.go")
	if err != nil {
		t.Fatalf("read main.go: %v", err)
	}
	formatted, err := format.Source(src)
	if err != nil {
		t.Fatalf("format main.go: %v", err)
	}
	if !bytes.Equal(src, formatted) {
		t.Fatal("main.go is not gofmt-clean")
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "roomrelay" || !cmd.SilenceUsage {
		t.Fatalf("unexpected root command: use=%q silenceUsage=%v", cmd.Use, cmd.SilenceUsage)
	}
	for _, name := range []string{"config", "addr", "log-level", "shutdown-timeout", "read-header-timeout"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
}
