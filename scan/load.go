package scan

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
)

// Config controls package loading.
type Config struct {
	// Dir is the directory the pattern is resolved in.
	Dir string
	// Tags are build tags applied while loading.
	Tags []string
	// Env overrides the environment of the underlying go command, nil inherits it.
	Env []string
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Load type-checks the single package matched by pattern and scans it.
// Files previously written by the generator are replaced by an empty package
// clause, so stale or missing generated methods never affect the result.
// Only list and parse errors fail the load; see loadErrors.
func Load(ctx context.Context, cfg Config, pattern string) (*Result, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	overlay, err := generatedOverlay(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Env:     cfg.Env,
		Overlay: overlay,
		Logf: func(format string, args ...any) {
			Logger().Debug(fmt.Sprintf(format, args...))
		},
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(pcfg, pattern)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("load %s", pattern), err)
	}
	if len(pkgs) != 1 {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Value(pattern).
			Detail("pattern %q matched %d packages, want exactly one", pattern, len(pkgs)).
			Build()
	}
	pkg := pkgs[0]
	if err := loadErrors(pkg); err != nil {
		return nil, err
	}

	res := Scan(pkg.Fset, pkg.Syntax, pkg.Types)
	if len(pkg.GoFiles) > 0 {
		res.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	Logger().Debug("loaded package",
		zap.String("package", pkg.PkgPath),
		zap.String("dir", res.Dir),
		zap.Int("files", len(pkg.Syntax)),
		zap.Int("overlaid", len(overlay)),
	)
	return res, nil
}

// loadErrors fails on list and parse errors only. Type errors are expected
// while the generated methods are missing or stubbed out: code in the package
// that calls WriteEndian or asserts endian.Codec cannot type-check until the
// output exists, and the partial type information is enough to scan.
func loadErrors(pkg *packages.Package) error {
	var fatal []string
	typeErrs := 0
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError && pkg.Types != nil {
			typeErrs++
			Logger().Debug("ignoring type error", zap.String("package", pkg.PkgPath), zap.String("error", e.Error()))
			continue
		}
		fatal = append(fatal, e.Error())
	}
	if len(fatal) > 0 {
		return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Value(pkg.PkgPath).
			Detail("package %s does not load:\n  %s", pkg.PkgPath, strings.Join(fatal, "\n  ")).
			Build()
	}
	if typeErrs > 0 {
		Logger().Debug("scanning package with type errors", zap.String("package", pkg.PkgPath), zap.Int("errors", typeErrs))
	}
	return nil
}

// generatedOverlay stubs every generated file in dir. Patterns that are not
// plain directories get no overlay.
func generatedOverlay(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Load("resolve directory", err)
	}

	overlay := make(map[string][]byte)
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file := filepath.Join(abs, name)
		generated, err := IsGenerated(file)
		if err != nil {
			return nil, err
		}
		if !generated {
			continue
		}
		f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.PackageClauseOnly)
		if err != nil {
			return nil, errors.Load("parse "+name, err)
		}
		overlay[file] = []byte("package " + f.Name.Name + "\n")
	}
	return overlay, nil
}

// IsGenerated reports whether the file at path starts with the generator header.
func IsGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Load("open "+filepath.Base(path), err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return false, nil
	}
	return bytes.Equal(bytes.TrimSpace(line), []byte(gen.Header)), nil
}
