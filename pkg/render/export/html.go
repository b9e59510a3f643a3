package export

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
)

// HTMLOptions configures the standalone HTML viewer.
type HTMLOptions struct {
	// Title is the page title. Defaults to "NeuroGraph".
	Title string

	// Width and Height size the drawing surface. Zero values use 800x600.
	Width  float64
	Height float64

	// Layout seeds node positions with a settled arrangement, so the page
	// opens at rest instead of replaying the simulation.
	Layout *graph.Layout
}

// RenderHTML generates a self-contained interactive viewer page: the graph
// data, the d3 force simulation, and the gesture handlers are all inlined,
// so the file works from disk without a server.
func RenderHTML(g graph.Graph, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "NeuroGraph"
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}

	graphJSON, err := json.Marshal(viewerGraph(g, opts.Layout))
	if err != nil {
		return nil, err
	}

	data := struct {
		Title     string
		Width     float64
		Height    float64
		GraphJSON template.JS
	}{
		Title:     opts.Title,
		Width:     opts.Width,
		Height:    opts.Height,
		GraphJSON: template.JS(graphJSON),
	}

	tmpl, err := template.New("viewer").Parse(viewerTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// viewerNode mirrors the JSON shape the embedded script consumes. X/Y seed
// the simulation with a settled layout so the page opens near rest.
type viewerNode struct {
	ID          string   `json:"id"`
	Label       string   `json:"label,omitempty"`
	Type        string   `json:"type,omitempty"`
	Val         float64  `json:"val,omitempty"`
	Description string   `json:"description,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

type viewerLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

type viewerDoc struct {
	Nodes []viewerNode `json:"nodes"`
	Links []viewerLink `json:"links"`
}

func viewerGraph(g graph.Graph, l *graph.Layout) viewerDoc {
	var pos map[string]graph.Position
	if l != nil {
		pos = l.PositionMap()
	}

	doc := viewerDoc{
		Nodes: make([]viewerNode, len(g.Nodes)),
		Links: make([]viewerLink, len(g.Links)),
	}
	for i, n := range g.Nodes {
		vn := viewerNode{
			ID:          n.ID,
			Label:       n.Label,
			Type:        n.Type,
			Val:         n.Val,
			Description: n.Description,
		}
		if p, ok := pos[n.ID]; ok {
			x, y := p.X, p.Y
			vn.X, vn.Y = &x, &y
		}
		doc.Nodes[i] = vn
	}
	for i, l := range g.Links {
		doc.Links[i] = viewerLink{Source: l.Source, Target: l.Target, Type: l.Type}
	}
	return doc
}

const viewerTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
<style>
  body { margin: 0; font-family: -apple-system, "Segoe UI", sans-serif; background: #fafafa; }
  #container { position: relative; width: {{.Width}}px; height: {{.Height}}px; margin: 0 auto; }
  svg { width: 100%; height: 100%; background: white; border: 1px solid #e0e0e0; }
  .node-label { font-size: 11px; fill: #444; pointer-events: none; text-anchor: middle; }
  .link-label { font-size: 10px; fill: #ff6b00; pointer-events: none; text-anchor: middle; display: none; }
  #tooltip {
    position: absolute; width: 220px; min-height: 60px; max-height: 90px;
    background: white; border: 1px solid #ddd; border-radius: 6px;
    box-shadow: 0 2px 8px rgba(0,0,0,0.15); padding: 10px;
    pointer-events: none; display: none; font-size: 12px; overflow: hidden;
  }
  #tooltip .title { font-weight: 600; margin-bottom: 4px; }
  #tooltip .indicator { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 6px; }
</style>
</head>
<body>
<div id="container">
  <svg></svg>
  <div id="tooltip"></div>
</div>
<script>
const graphData = {{.GraphJSON}};
const width = {{.Width}}, height = {{.Height}};

const colors = {
  drug: "#4f8ff7",
  protein: "#34c28b",
  side_effect: "#f7734f"
};
const nodeColor = d => colors[d.type] || "#9aa0a6";
const nodeRadius = d => d.val ? d.val * 3 + 8 : 10;

// Seeded positions open near rest; a low alpha lets them relax gently
// instead of replaying the whole simulation.
const seeded = graphData.nodes.length > 0 && graphData.nodes.every(n => n.x != null);

const svg = d3.select("svg");
const g = svg.append("g");

const simulation = d3.forceSimulation(graphData.nodes)
    .force("link", d3.forceLink(graphData.links)
        .id(d => d.id)
        .distance(120))
    .force("charge", d3.forceManyBody().strength(-400))
    .force("center", d3.forceCenter(width / 2, height / 2))
    .force("collision", d3.forceCollide().radius(40));
if (seeded) simulation.alpha(0.05);

const link = g.append("g")
    .selectAll("line")
    .data(graphData.links)
    .join("line")
    .attr("stroke", "#999999")
    .attr("stroke-width", 1.5)
    .attr("stroke-opacity", 0.4);

const linkLabel = g.append("g")
    .selectAll("text")
    .data(graphData.links)
    .join("text")
    .attr("class", "link-label")
    .text(d => d.type || "");

const node = g.append("g")
    .selectAll("circle")
    .data(graphData.nodes)
    .join("circle")
    .attr("r", nodeRadius)
    .attr("fill", nodeColor)
    .attr("stroke", "white")
    .attr("stroke-width", 1.5)
    .call(d3.drag()
        .on("start", dragStarted)
        .on("drag", dragged)
        .on("end", dragEnded));

const nodeLabel = g.append("g")
    .selectAll("text")
    .data(graphData.nodes)
    .join("text")
    .attr("class", "node-label")
    .text(d => d.label || d.id);

simulation.on("tick", () => {
    link.attr("x1", d => d.source.x).attr("y1", d => d.source.y)
        .attr("x2", d => d.target.x).attr("y2", d => d.target.y);
    linkLabel.attr("x", d => (d.source.x + d.target.x) / 2)
        .attr("y", d => (d.source.y + d.target.y) / 2);
    node.attr("cx", d => d.x).attr("cy", d => d.y);
    nodeLabel.attr("x", d => d.x).attr("y", d => d.y + nodeRadius(d) + 12);
});

svg.call(d3.zoom()
    .scaleExtent([0.1, 8])
    .on("zoom", ev => g.attr("transform", ev.transform)));

const tooltip = d3.select("#tooltip");

node.on("mouseover", function(ev, d) {
    d3.select(this).attr("r", nodeRadius(d) * 1.3).attr("stroke-width", 3);
    link.attr("stroke", l => touches(l, d) ? "#ff6b00" : "#999999")
        .attr("stroke-width", l => touches(l, d) ? 2.5 : 1.5)
        .attr("stroke-opacity", l => touches(l, d) ? 1.0 : 0.1);
    linkLabel.style("display", l => touches(l, d) ? "block" : "none");
    tooltip.style("display", "block").html(
        '<div class="title"><span class="indicator" style="background:' + nodeColor(d) + '"></span>' +
        (d.label || d.id) + '</div>' +
        (d.description || "No description available."));
    placeTooltip(ev);
});
node.on("mousemove", placeTooltip);
node.on("mouseout", function(ev, d) {
    d3.select(this).attr("r", nodeRadius(d)).attr("stroke-width", 1.5);
    link.attr("stroke", "#999999").attr("stroke-width", 1.5).attr("stroke-opacity", 0.4);
    linkLabel.style("display", "none");
    tooltip.style("display", "none");
});

function touches(l, d) {
    return l.source.id === d.id || l.target.id === d.id;
}

function placeTooltip(ev) {
    const [px, py] = d3.pointer(ev, document.getElementById("container"));
    let x = px + 15, y = py + 15;
    if (px > width - 250) x = px - 15 - 220;
    if (py > height - 120) y = py - 15 - 90;
    tooltip.style("left", Math.max(0, x) + "px").style("top", Math.max(0, y) + "px");
}

function dragStarted(ev, d) {
    if (!ev.active) simulation.alphaTarget(0.3).restart();
    d.fx = d.x;
    d.fy = d.y;
}
function dragged(ev, d) {
    d.fx = ev.x;
    d.fy = ev.y;
}
function dragEnded(ev, d) {
    if (!ev.active) simulation.alphaTarget(0);
    d.fx = null;
    d.fy = null;
}
</script>
</body>
</html>`
