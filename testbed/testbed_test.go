package testbed

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"

	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/internal/cli"
	"github.com/wippyai/endiangen/scan"
)

func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// scratchDir creates a scratch package inside this module so generated code can
// import the runtime without a published version.
func scratchDir(t *testing.T, source string) string {
	t.Helper()
	dir, err := os.MkdirTemp(".", "scratch")
	if err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	if err := os.WriteFile(filepath.Join(dir, "types.go"), []byte(source), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func typeCheck(t *testing.T, dir string) {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
	}, ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			t.Errorf("%s: %v", pkg.PkgPath, e)
		}
	}
}

func TestWireExampleUpToDate(t *testing.T) {
	requireGo(t)
	ctx := context.Background()

	res, err := scan.Load(ctx, scan.Config{Dir: filepath.Join("..", "examples", "wire")}, ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := res.Errors.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	g := gen.New(gen.Options{})
	impls, err := g.GenerateAll(res.Decls)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out, err := g.Emit(gen.FileSpec{
		Package:  res.Name,
		Filename: "wire_endian.go",
		Source:   res.Path,
		Impls:    impls,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	want, err := os.ReadFile(filepath.Join("..", "examples", "wire", "wire_endian.go"))
	if err != nil {
		t.Fatalf("read checked-in output: %v", err)
	}
	if !strings.HasPrefix(string(out), gen.Header+"\n") {
		t.Errorf("output does not start with the generator header")
	}
	if squash(string(out)) != squash(string(want)) {
		t.Errorf("examples/wire/wire_endian.go is stale, regenerate it\n--- got ---\n%s", out)
	}
}

var scratchPackages = []struct {
	name   string
	source string
	args   []string
}{
	{
		name: "records and arrays",
		source: `package scratch

type Celsius int16

//endian:big
type Reading struct {
	On      bool
	Temp    Celsius
	Samples [4]uint16 ` + "`endian:\"little\"`" + `
	Grid    [2]Row
	Raw     [8]byte
	Ratio   float32 ` + "`endian:\"le\"`" + `
	Seq     int64
}

//endian:little
type Row [3]float64

//endian:native
type Pair [2]Reading

//endian:little
type Nothing struct{}
`,
	},
	{
		name: "unions with signed repr",
		source: `package scratch

//endian:big repr=int8
type Op interface{ isOp() }

//endian:variant Op -1
type Halt struct{}

//endian:variant Op 0x10
type Jump struct {
	Target uint32 ` + "`endian:\"little\"`" + `
}

//endian:variant Op 2
type Load struct {
	Slot [2]uint8
	Wide bool
}

func (Halt) isOp()  {}
func (Jump) isOp()  {}
func (*Load) isOp() {}

//endian:be
type Program struct {
	Len uint16
	Ops [3]Op
}
`,
	},
	{
		name: "enums and markers",
		source: `package scratch

//endian:little repr=uint8
type Color uint8

const (
	Red Color = iota
	Green
	Blue
	_
	Alias = Blue
)

//endian:big
type Level int32

const (
	Low  Level = -1
	High Level = 1
)

//endian:payload cafebabe
type Magic struct{}

//endian:big
type Header struct {
	Magic Magic
	Color Color
	Level Level
}
`,
	},
	{
		name: "cross package fields",
		source: `package scratch

import "github.com/wippyai/endiangen/examples/wire"

//endian:little
type Envelope struct {
	Frame  wire.Frame
	At     wire.Vec3
	Status [2]wire.Status
	Kind   wire.Kind
}
`,
	},
	{
		name: "unchecked bool",
		source: `package scratch

//endian:ne
type Flags struct {
	A, B bool
	C    [3]bool
}
`,
		args: []string{"--unchecked-bool"},
	},
}

func TestGeneratedCodeTypeChecks(t *testing.T) {
	requireGo(t)

	for _, p := range scratchPackages {
		t.Run(p.name, func(t *testing.T) {
			dir := scratchDir(t, p.source)
			args := append([]string{"generate", "-C", dir}, p.args...)
			if out, err := run(t, args...); err != nil {
				t.Fatalf("generate: %v\n%s", err, out)
			}

			file := filepath.Join(dir, "scratch_endian.go")
			generated, err := scan.IsGenerated(file)
			if err != nil {
				t.Fatalf("stat output: %v", err)
			}
			if !generated {
				t.Fatalf("%s lacks the generator header", file)
			}
			typeCheck(t, dir)

			check := append([]string{"check", "-C", dir}, p.args...)
			if out, err := run(t, check...); err != nil {
				t.Errorf("check after generate: %v\n%s", err, out)
			}
		})
	}
}

func TestUncheckedBoolFromConfig(t *testing.T) {
	requireGo(t)

	dir := scratchDir(t, `package scratch

//endian:little
type Flags struct {
	On bool
}
`)
	if err := os.WriteFile(filepath.Join(dir, ".endiangen.yaml"), []byte("unchecked_bool: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := run(t, "generate", "-C", dir); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "scratch_endian.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ReadBoolUnchecked(r)") {
		t.Errorf("config should select unchecked bool decoding:\n%s", data)
	}
	typeCheck(t, dir)

	if out, err := run(t, "check", "-C", dir); err != nil {
		t.Errorf("check with the same config: %v\n%s", err, out)
	}

	out, err := run(t, "check", "-C", dir, "--unchecked-bool=false")
	if cli.GetExitCode(err) != cli.ExitFailure || !strings.Contains(out, "stale") {
		t.Errorf("overriding the config should make the output stale, exit %d:\n%s", cli.GetExitCode(err), out)
	}
}

func TestGenerateForPackageUsingItsOutput(t *testing.T) {
	requireGo(t)

	dir := scratchDir(t, `package scratch

import (
	"io"

	"github.com/wippyai/endiangen/endian"
)

//endian:big
type Point struct {
	X, Y int32
}

var _ endian.Codec = (*Point)(nil)

func Encode(p Point) ([]byte, error) { return endian.Marshal(p) }

func Send(w io.Writer, p Point) error { return p.WriteEndian(w) }
`)

	if out, err := run(t, "generate", "-C", dir); err != nil {
		t.Fatalf("generate before any output exists: %v\n%s", err, out)
	}
	typeCheck(t, dir)

	if out, err := run(t, "check", "-C", dir); err != nil {
		t.Errorf("check: %v\n%s", err, out)
	}
	if out, err := run(t, "generate", "-C", dir); err != nil || !strings.Contains(out, "unchanged") {
		t.Errorf("regenerate over existing output: %v\n%s", err, out)
	}
}

func TestCheckReportsStaleOutput(t *testing.T) {
	requireGo(t)

	dir := scratchDir(t, `package scratch

//endian:big
type Point struct {
	X, Y int32
}
`)
	if out, err := run(t, "generate", "-C", dir); err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}

	src := filepath.Join(dir, "types.go")
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	data = []byte(strings.Replace(string(data), "X, Y int32", "X, Y, Z int32", 1))
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "check", "--diff", "-C", dir)
	if err == nil {
		t.Fatalf("check should fail on stale output\n%s", out)
	}
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
		t.Errorf("exit = %v, want code %d", err, cli.ExitFailure)
	}
	if !strings.Contains(out, "stale") || !strings.Contains(out, "x.Z") {
		t.Errorf("output should mark the file stale and show the new field:\n%s", out)
	}

	if out, err := run(t, "generate", "-C", dir); err != nil {
		t.Fatalf("regenerate: %v\n%s", err, out)
	}
	typeCheck(t, dir)
}

func TestGenerateRejectsBrokenTypes(t *testing.T) {
	requireGo(t)

	dir := scratchDir(t, `package scratch

//endian:big
type Named struct {
	Name string
}

//endian:big
type Flagged struct {
	Flag uint16 `+"`endian:\"big\"`"+`
}

//endian:little
type Good struct {
	N uint8
}
`)
	out, err := run(t, "generate", "-C", dir)
	if cli.GetExitCode(err) != cli.ExitFailure {
		t.Fatalf("exit = %d (%v), want %d\n%s", cli.GetExitCode(err), err, cli.ExitFailure, out)
	}
	for _, want := range []string{"unsupported_type", "redundant_override"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostics should mention %s:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "scratch_endian.go")); !os.IsNotExist(err) {
		t.Errorf("no output should be written while a type fails, stat err = %v", err)
	}
}
