package analyze

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"imghist/common"
	"imghist/session"
)

func TestWatch_LastInputWins(t *testing.T) {
	ctx, env := testContext(t)
	in := t.TempDir()
	dst := t.TempDir()
	first := writeFile(t, filepath.Join(in, "first.png"), grayPNG(t))
	second := writeFile(t, filepath.Join(in, "second.png"), colorPNG(t))

	input := strings.Join([]string{
		"# comment",
		"",
		first,
		filepath.Join(in, "absent.png"),
		second,
	}, "\n")

	out := &sink{dst: dst, format: common.OutputFmtJson, replace: true}
	if err := watch(ctx, strings.NewReader(input), out, env.Log); err != nil {
		t.Fatalf("watch() error = %v", err)
	}

	res := readResult(t, filepath.Join(dst, currentName+".json"))
	if res.Source != "second.png" || res.BlackAndWhite {
		t.Errorf("current result is not the last input: %+v", res)
	}
	if res.PixelGray != nil {
		t.Error("watch does not do pixel check")
	}
}

func TestWatch_DataURI(t *testing.T) {
	ctx, env := testContext(t)
	dst := t.TempDir()
	input := "data:image/png;base64," + base64.StdEncoding.EncodeToString(grayPNG(t)) + "\n"

	out := &sink{dst: dst, format: common.OutputFmtYaml, replace: true}
	if err := watch(ctx, strings.NewReader(input), out, env.Log); err != nil {
		t.Fatalf("watch() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, currentName+".yaml"))
	if err != nil {
		t.Fatalf("current result was not written: %v", err)
	}
	if !strings.Contains(string(data), "source: "+dataURISource) || !strings.Contains(string(data), "black_and_white: true") {
		t.Errorf("unexpected current result:\n%s", data)
	}
}

func TestWatch_NothingLoaded(t *testing.T) {
	ctx, env := testContext(t)
	dst := t.TempDir()
	input := "bw on\n" + filepath.Join(dst, "absent.png") + "\nnot-an-image\n"

	out := &sink{dst: dst, format: common.OutputFmtJson, replace: true}
	if err := watch(ctx, strings.NewReader(input), out, env.Log); err != nil {
		t.Fatalf("watch() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, currentName+".json")); err == nil {
		t.Error("nothing should be written without successful load")
	}
}

func TestWatch_Canceled(t *testing.T) {
	ctx, env := testContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	out := &sink{dst: t.TempDir(), format: common.OutputFmtJson, replace: true}
	if err := watch(ctx, strings.NewReader("x.png\n"), out, env.Log); err == nil {
		t.Error("expected context error")
	}
}

func TestWatch_Command(t *testing.T) {
	ctx, env := testContext(t)
	env.Cfg.Chart.Format = common.ChartFmtSvg
	dst := t.TempDir()
	src := writeFile(t, filepath.Join(t.TempDir(), "scan.png"), colorPNG(t))

	cmd := &cli.Command{
		Name:   "watch",
		Reader: strings.NewReader(src + "\n"),
		Writer: new(bytes.Buffer),
		Action: Watch,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Value: common.OutputFmtJson.String()},
			&cli.BoolFlag{Name: "chart"},
		},
	}
	if err := cmd.Run(ctx, []string{"watch", "--chart", dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res := readResult(t, filepath.Join(dst, currentName+".json")); res.Source != "scan.png" {
		t.Errorf("unexpected current result: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(dst, currentName+".svg")); err != nil {
		t.Errorf("chart was not written: %v", err)
	}
}

func TestOverride(t *testing.T) {
	log := zaptest.NewLogger(t)
	s := session.New(log)

	// nothing published yet
	override(s, "on", log)
	if s.Current() != nil {
		t.Fatal("override created snapshot out of nothing")
	}

	r := s.Load(context.Background(), "color.png", colorPNG(t))
	if res, err := r.Wait(context.Background()); err != nil || res.Err != nil {
		t.Fatalf("load failed: %v %v", err, res.Err)
	}

	tests := []struct {
		arg        string
		bw         bool
		overridden bool
	}{
		{"on", true, true},
		{"auto", false, false},
		{"TRUE", true, true},
		{"bogus", true, true},
		{"0", false, false},
		{"1", true, true},
		{"off", false, false},
	}
	for _, tt := range tests {
		override(s, tt.arg, log)
		cur := s.Current()
		if cur.BlackAndWhite != tt.bw || cur.Overridden() != tt.overridden {
			t.Errorf("after %q: bw=%v overridden=%v, want %v %v", tt.arg, cur.BlackAndWhite, cur.Overridden(), tt.bw, tt.overridden)
		}
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "a.png"), []byte("payload"))

	name, data, err := readInput(path)
	if err != nil || name != "a.png" || string(data) != "payload" {
		t.Errorf("readInput(path) = %q, %q, %v", name, data, err)
	}

	name, data, err = readInput("data:,hello%20world")
	if err != nil || name != dataURISource || string(data) != "hello world" {
		t.Errorf("readInput(uri) = %q, %q, %v", name, data, err)
	}

	if _, _, err := readInput(filepath.Join(dir, "absent")); err == nil {
		t.Error("expected error for missing file")
	}
}
