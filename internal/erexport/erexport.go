// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package erexport implements the ErDiagramExporter port (spec.md §6): it
builds a Graphviz graph from cached table details with emicklei/dot, then
shells out to the "dot" binary to rasterize it, since neither emicklei/dot
nor any pack library renders a layout itself — that's GraphViz's job.
*/
package erexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/emicklei/dot"

	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/ports"
)

// Exporter renders ER diagrams through the local "dot" binary.
type Exporter struct {
	dotBinary string
}

// NewExporter constructs an Exporter. dotBinary defaults to "dot" when
// empty.
func NewExporter(dotBinary string) *Exporter {
	if dotBinary == "" {
		dotBinary = "dot"
	}
	return &Exporter{dotBinary: dotBinary}
}

// GenerateAndExport builds a graph from tables and renders it as a PNG
// under cacheDir/filename (spec.md §6: "Error: GraphViz missing ->
// installation hint message").
func (e *Exporter) GenerateAndExport(ctx context.Context, tables []ports.ErTableInfo, filename, cacheDir string) (string, error) {
	if _, err := exec.LookPath(e.dotBinary); err != nil {
		return "", apperr.NotInstalled()
	}

	graph := buildGraph(tables)

	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return "", apperr.NewGraphvizError(apperr.GraphvizIO, "failed to create cache directory", err)
	}

	outputPath := filepath.Join(cacheDir, filename)
	dotPath := outputPath[:len(outputPath)-len(filepath.Ext(outputPath))] + ".dot"
	if err := os.WriteFile(dotPath, []byte(graph.String()), 0o600); err != nil {
		return "", apperr.NewGraphvizError(apperr.GraphvizIO, "failed to write dot source", err)
	}

	cmd := exec.CommandContext(ctx, e.dotBinary, "-Tpng", dotPath, "-o", outputPath)

	var exitErr *exec.ExitError
	if err := cmd.Run(); err != nil {
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return "", apperr.CommandFailed(code, err)
		}
		return "", apperr.NewGraphvizError(apperr.GraphvizIO, "failed to run dot", err)
	}

	return outputPath, nil
}

// buildGraph renders one box per table (name + column list) and one edge
// per foreign key, matching emicklei/dot's node/edge builder API.
func buildGraph(tables []ports.ErTableInfo) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node, len(tables))
	for _, t := range tables {
		qualified := t.Schema + "." + t.Name
		node := g.Node(qualified)
		node.Attr("shape", "record")
		node.Attr("label", recordLabel(t))
		nodes[qualified] = node
	}

	for _, t := range tables {
		qualified := t.Schema + "." + t.Name
		from, ok := nodes[qualified]
		if !ok {
			continue
		}
		for _, fk := range t.ForeignKeys {
			target := fk.ReferencedSchema + "." + fk.ReferencedTable
			to, ok := nodes[target]
			if !ok {
				continue
			}
			g.Edge(from, to).Label(fk.ConstraintName)
		}
	}

	return g
}

func recordLabel(t ports.ErTableInfo) string {
	label := fmt.Sprintf("{%s|", t.Name)
	for i, c := range t.Columns {
		if i > 0 {
			label += "\\l"
		}
		label += c.Name
	}
	label += "\\l}"
	return label
}
