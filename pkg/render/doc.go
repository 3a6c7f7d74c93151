// Package render draws the provenance of a pipeline result as a graph.
//
// # Overview
//
// [ToDOT] turns a [pipeline.Result] into Graphviz DOT: each selected
// repository is a node with an edge to every candidate it surfaced,
// labelled with the matched technologies. Optionally repositories hang off
// their taxonomy category.
//
// [RenderSVG] lays the graph out with the embedded Graphviz of
// github.com/goccy/go-graphviz, so no system Graphviz install is needed.
//
//	dot := render.ToDOT(result, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [pipeline.Result]: github.com/matzehuels/ecoscout/pkg/pipeline.Result
package render
