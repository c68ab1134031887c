package ingest

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the input name used for standard input.
const Stdin = "-"

// Input is a named source of log lines.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Resolve maps command-line arguments to inputs, in argument order. No
// arguments, or "-", means stdin. An argument naming an existing file is read
// as is, even if it contains glob metacharacters; any other argument with
// metacharacters is expanded (including "**") and its matches read in sorted
// order.
func Resolve(args []string, stdin io.Reader) ([]Input, error) {
	if len(args) == 0 {
		return []Input{stdinInput(stdin)}, nil
	}

	var inputs []Input
	for _, arg := range args {
		if arg == Stdin {
			inputs = append(inputs, stdinInput(stdin))
			continue
		}
		if !hasMeta(arg) || isFile(arg) {
			inputs = append(inputs, fileInput(arg))
			continue
		}
		matches, err := expandGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched %q", arg)
		}
		for _, m := range matches {
			inputs = append(inputs, fileInput(m))
		}
	}
	return inputs, nil
}

func stdinInput(r io.Reader) Input {
	return Input{
		Name: Stdin,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

func fileInput(path string) Input {
	return Input{
		Name: path,
		Open: func() (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", path, err)
			}
			return f, nil
		},
	}
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// expandGlob resolves a glob pattern to matching file paths.
func expandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
