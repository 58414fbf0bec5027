package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/hierarchy"
	graphio "github.com/tburdett/owl2json/pkg/io"
	"github.com/tburdett/owl2json/pkg/render"
	"github.com/tburdett/owl2json/pkg/render/nodelink"
	"github.com/tburdett/owl2json/pkg/render/text"
)

// pngScale doubles the resolution of PNG diagrams.
const pngScale = 2.0

// Render writes every requested format of result and records the paths in
// result.Files. Each file is written atomically.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) error {
	for _, format := range opts.Formats {
		data, err := Artifact(ctx, result, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := opts.OutputPath(format)
		if err := WriteFileAtomic(path, data); err != nil {
			return err
		}
		result.Files[format] = path
		opts.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
	}
	return nil
}

// Artifact renders one output format in memory.
func Artifact(ctx context.Context, result *Result, format string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := hierarchy.WriteJSON(&buf, result.Root, false); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatTree:
		if err := text.Write(&buf, result.Root, text.Options{ShowURI: opts.Detailed}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatGraph:
		if result.Ontology == nil {
			return nil, fmt.Errorf("no class graph loaded")
		}
		if err := graphio.WriteJSON(result.Ontology.Graph(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := nodelink.ToDOT(result.Root, nodelink.Options{Detailed: opts.Detailed, LeftToRight: opts.LeftToRight})
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF, FormatPNG:
		if !render.ConverterAvailable() {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"%s output needs rsvg-convert (apt install librsvg2-bin, brew install librsvg)", format)
		}
		if format == FormatPDF {
			return nodelink.RenderPDF(ctx, dot)
		}
		return nodelink.RenderPNG(ctx, dot, pngScale)
	}
	return nil, ValidateFormat(format)
}

// WriteFileAtomic writes data to a uniquely named temporary file beside path
// and renames it into place, creating missing parent directories first.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create directory %s", dir)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeFileWrite, err, "replace %s", path)
	}
	return nil
}
