package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn", "")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if l.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("level=%v", l.GetLevel())
	}
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), `"service":"gatrackd"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
	if _, err := newLogger(&buf, "loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

const checkConfig = `
layouts:
  - name: main
    tracking_id: G-TEST
    send_mode: never
  - name: plain
  - name: broken
    page_view_prefix: /x
routes:
  - path: /
    layouts: [main]
  - path: /plain
    layouts: [plain]
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, logFormat = "", "", ""
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestCheckCommand(t *testing.T) {
	p := writeConfig(t, "gatrack.yaml", checkConfig)
	out, err := runCLI(t, "check", "--config", p, "--production")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "/\t[\"config\",\"G-TEST\",{\"sendHitTask\":null}]") {
		t.Fatalf("missing config line: %s", out)
	}
	if !strings.Contains(out, "/plain\tnot tracked") {
		t.Fatalf("missing skipped route: %s", out)
	}
}

func TestCheckCommand_MissingTrackingID(t *testing.T) {
	p := writeConfig(t, "gatrack.yaml", checkConfig+"  - path: /broken\n    layouts: [broken]\n")
	out, err := runCLI(t, "check", "--config", p)
	if err == nil {
		t.Fatalf("expected failure, output: %s", out)
	}
	if !strings.Contains(out, "/broken\terror:") {
		t.Fatalf("missing error line: %s", out)
	}
}

func TestCheckCommand_NoConfig(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)
	t.Setenv("HOME", t.TempDir())
	if _, err := runCLI(t, "check"); err == nil {
		t.Fatalf("expected error without config file")
	}
}

func TestServeOptionsMerge(t *testing.T) {
	p := writeConfig(t, "gatrack.toml", "addr = \":9999\"\nproduction = true\nmax_body_bytes = 2048\n")
	cfg, _, err := loadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Setenv("GATRACK_ADDR", "")
	cmd := newServeCmd()
	if err := cmd.ParseFlags([]string{"--max-body-bytes", "4096"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts := &serveOptions{addr: ":8080", maxBodyBytes: 4096}
	opts.merge(cmd, cfg)
	if opts.addr != ":9999" || !opts.production || opts.maxBodyBytes != 4096 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "check"} {
		if !names[want] {
			t.Fatalf("missing %s subcommand", want)
		}
	}
}
