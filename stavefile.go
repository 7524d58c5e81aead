//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/gopylint"
	mainPkg = "./cmd/gopylint"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"i":     Install,
	"fmt":   Lint.Fmt,
	"bench": Bench.Corpus,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles gopylint into bin/ when any source changed.
// tree-sitter is linked through cgo, so a C compiler must be available.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gopylint...")
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"},
		"go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	fmt.Println("Installing gopylint...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Default runs every package's tests with the race detector and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "./...", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs every test with per-test output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "./...", "-race")
}

// Rules runs only the engine and rule tests.
func (Test) Rules() error {
	fmt.Println("Running rule tests...")
	return gotestsum("testname", "./pkg/lint/...", "./pkg/parser/...", "./pkg/pyast/...")
}

// Cover renders coverage.out as HTML.
func (Test) Cover() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs golangci-lint with fixes applied.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint read-only.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites Go files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any Go file is not gofmt-clean.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check CI enforces, in order.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}

	before := make(map[string][]byte, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return fmt.Errorf("%s changed after go mod tidy; commit the result", name)
		}
	}
	return nil
}

// Cross builds the release targets reachable from this host. The
// tree-sitter grammar is C code, so each target needs a cgo toolchain;
// CC_<GOOS>_<GOARCH> selects one, and targets without one are skipped.
func (CI) Cross() error {
	platforms := []struct{ goos, goarch string }{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
	}
	for _, p := range platforms {
		ccVar := strings.ToUpper("CC_" + p.goos + "_" + p.goarch)
		cc := os.Getenv(ccVar)
		native := p.goos == runtime.GOOS && p.goarch == runtime.GOARCH
		if cc == "" && !native {
			fmt.Printf("  skip %s/%s (%s not set)\n", p.goos, p.goarch, ccVar)
			continue
		}

		env := map[string]string{"GOOS": p.goos, "GOARCH": p.goarch, "CGO_ENABLED": "1"}
		if cc != "" {
			env["CC"] = cc
		}
		fmt.Printf("  build %s/%s\n", p.goos, p.goarch)
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	return nil
}

// Default runs Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "./...", "-run=^$", "-bench=.", "-benchmem")
}

// Corpus times the built binary over the Python tree in GOPYLINT_BENCH_DIR.
func (Bench) Corpus() error {
	dir := os.Getenv("GOPYLINT_BENCH_DIR")
	if dir == "" {
		return errors.New("set GOPYLINT_BENCH_DIR to a directory of Python sources")
	}
	st.Deps(Build)

	cmd := exec.Command(binary, "lint", "--format", "json", "--compact", dir) //nolint:gosec // fixed binary
	cmd.Stderr = os.Stderr

	start := time.Now()
	err := cmd.Run()
	fmt.Printf("linted %s in %s\n", dir, time.Since(start).Round(time.Millisecond))

	// Exit status 1 or 2 only means diagnostics were found.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() <= 2 {
		return nil
	}
	return err
}

// gotestsum runs go test through the gotestsum tool with the given output format.
func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")

	cmdArgs := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	cmdArgs = append(cmdArgs, args...)
	return sh.RunV("go", cmdArgs...)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
