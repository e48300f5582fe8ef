package model

import "encoding/json"

// TraceEdge is a directed transfer from one address to another within a transaction.
type TraceEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	TxID string `json:"txid"`
}

// TraceGraph is a directed multigraph of addresses. Two addresses may be joined by
// several edges with distinct transaction ids; identical edges are stored once.
// Nodes and edges keep insertion order.
type TraceGraph struct {
	nodes   []string
	nodeSet map[string]struct{}
	edges   []TraceEdge
	edgeSet map[TraceEdge]struct{}
}

// NewTraceGraph returns an empty graph.
func NewTraceGraph() *TraceGraph {
	return &TraceGraph{
		nodeSet: make(map[string]struct{}),
		edgeSet: make(map[TraceEdge]struct{}),
	}
}

// AddNode adds address if absent.
func (g *TraceGraph) AddNode(address string) {
	if _, ok := g.nodeSet[address]; ok {
		return
	}
	g.nodeSet[address] = struct{}{}
	g.nodes = append(g.nodes, address)
}

// AddEdge adds the edge and both endpoints. It reports false if the edge was already present.
func (g *TraceGraph) AddEdge(from, to, txid string) bool {
	e := TraceEdge{From: from, To: to, TxID: txid}
	if _, ok := g.edgeSet[e]; ok {
		return false
	}
	g.AddNode(from)
	g.AddNode(to)
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	return true
}

func (g *TraceGraph) HasNode(address string) bool {
	_, ok := g.nodeSet[address]
	return ok
}

func (g *TraceGraph) HasEdge(from, to, txid string) bool {
	_, ok := g.edgeSet[TraceEdge{From: from, To: to, TxID: txid}]
	return ok
}

// Nodes returns a copy of the node list.
func (g *TraceGraph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Edges returns a copy of the edge list.
func (g *TraceGraph) Edges() []TraceEdge {
	return append([]TraceEdge(nil), g.edges...)
}

// Successors returns the distinct targets of edges leaving address.
func (g *TraceGraph) Successors(address string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range g.edges {
		if e.From != address {
			continue
		}
		if _, ok := seen[e.To]; ok {
			continue
		}
		seen[e.To] = struct{}{}
		out = append(out, e.To)
	}
	return out
}

type traceGraphJSON struct {
	Nodes []string    `json:"nodes"`
	Edges []TraceEdge `json:"edges"`
}

func (g *TraceGraph) MarshalJSON() ([]byte, error) {
	out := traceGraphJSON{Nodes: g.nodes, Edges: g.edges}
	if out.Nodes == nil {
		out.Nodes = []string{}
	}
	if out.Edges == nil {
		out.Edges = []TraceEdge{}
	}
	return json.Marshal(out)
}

func (g *TraceGraph) UnmarshalJSON(data []byte) error {
	var in traceGraphJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*g = *NewTraceGraph()
	for _, n := range in.Nodes {
		g.AddNode(n)
	}
	for _, e := range in.Edges {
		g.AddEdge(e.From, e.To, e.TxID)
	}
	return nil
}
