package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/matzehuels/keymapfmt/pkg/errors"
	"github.com/matzehuels/keymapfmt/pkg/pipeline"
)

// inputArg returns the single optional file argument, or stdinName.
func inputArg(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return stdinName
	}
	return args[0]
}

// readInput reads the keymap source from path, or from c.Stdin for "-".
func (c *CLI) readInput(path string) (string, error) {
	if path == stdinName {
		data, err := io.ReadAll(c.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	if err := kerrors.ValidatePath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns c.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdinName {
		return nopCloser{c.Stdout}, nil
	}
	if err := kerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("keymap" for stdin).
// If output ends in a known artifact extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return "keymap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range sortedFormats() {
		if ext := pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// artifactPath returns where the artifact of format f is written. A single
// requested format with an explicit output path goes exactly there.
func artifactPath(output, input, f string, single bool) string {
	if output == stdinName {
		return stdinName
	}
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + pipeline.Extension(f)
}

// sortedFormats lists the formats with the longest extension first so that
// ".layers.svg" is stripped before ".svg".
func sortedFormats() []string {
	formats := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool {
		ei, ej := pipeline.Extension(formats[i]), pipeline.Extension(formats[j])
		if len(ei) != len(ej) {
			return len(ei) > len(ej)
		}
		return formats[i] < formats[j]
	})
	return formats
}

// artifactWriteParams holds the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact to its file and returns the paths in
// format order.
func (c *CLI) writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths := make([]string, 0, len(p.formats))
	single := len(p.formats) == 1
	for _, f := range p.formats {
		path := artifactPath(p.output, p.input, f, single)
		if err := c.writeFile(path, p.artifacts[f]); err != nil {
			return paths, err
		}
		c.Logger.Debug("wrote artifact", "format", f, "path", path, "bytes", len(p.artifacts[f]))
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *CLI) writeFile(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
