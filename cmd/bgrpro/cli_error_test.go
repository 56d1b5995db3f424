package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/yahya0347/BGR-Pro/internal/config"
)

func testRoot(program string) *root {
	return &root{program: program, config: config.New(), saveDir: "."}
}

func TestParseEditRequiresFile(t *testing.T) {
	_, err := parseEditCmd(nil, testRoot("bgrpro edit"))
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "bgrpro edit") {
		t.Fatalf("expected help to mention the program name, got %q", uerr.Error())
	}
}

func TestEditRejectsUnknownFormat(t *testing.T) {
	cmd, err := parseEditCmd([]string{"-file", "in.png", "-format", "bmp"}, testRoot("bgrpro edit"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "unknown export format"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestRemoveRequiresEndpoint(t *testing.T) {
	cmd, err := parseRemoveCmd([]string{"-file", "in.png"}, testRoot("bgrpro remove"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "no removal endpoint"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestConfigRejectsUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"frobnicate"}, testRoot("bgrpro config"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "unknown config command"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestRootRequiresSubcommand(t *testing.T) {
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
