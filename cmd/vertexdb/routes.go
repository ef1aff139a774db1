package main

import (
	"encoding/json"
	"fmt"

	"github.com/vertexdb/vertexdb/internal/gateway"
	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
	"github.com/vertexdb/vertexdb/internal/traversal"
)

// createNodeRequest / createEdgeRequest are the minimal JSON bodies the
// demo routes accept. Property values are JSON strings only — enough to
// exercise the gateway end-to-end without building a full JSON<->Value
// mapping, which is outside this spec's scope.
type createNodeRequest struct {
	Label string            `json:"label"`
	Props map[string]string `json:"props"`
}

type createEdgeRequest struct {
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type shortestPathRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// routesFor builds the gateway's route table over engine, following
// original_source/helix-container/src/main.rs's routes map, adapted from
// its inventory-macro registration (no Go equivalent) to a plain literal
// built at server-construction time.
func routesFor(engine *storage.Engine) map[string]gateway.Handler {
	return map[string]gateway.Handler{
		"GET /health":                 handleHealth,
		"POST /nodes":                 handleCreateNode(engine),
		"POST /edges":                 handleCreateEdge(engine),
		"POST /traverse/shortest-path": handleShortestPath(engine),
	}
}

func handleHealth(req *gateway.Request, resp *gateway.Response) {
	resp.Body = []byte("ok\n")
}

func handleCreateNode(engine *storage.Engine) gateway.Handler {
	return func(req *gateway.Request, resp *gateway.Response) {
		var body createNodeRequest
		if err := json.Unmarshal(req.Body, &body); err != nil {
			resp.Status = 500
			return
		}
		props := make(map[string]graph.Value, len(body.Props))
		for k, v := range body.Props {
			props[k] = graph.NewString(v)
		}

		rw := engine.BeginWrite()
		b := traversal.NewWriteBuilder(rw).AddV(body.Label, props)
		nodes := b.Current()
		if err := b.Execute(); err != nil {
			resp.Status = 500
			return
		}
		resp.Body = []byte(fmt.Sprintf(`{"id":%q}`, nodes[0].Node.ID))
	}
}

func handleCreateEdge(engine *storage.Engine) gateway.Handler {
	return func(req *gateway.Request, resp *gateway.Response) {
		var body createEdgeRequest
		if err := json.Unmarshal(req.Body, &body); err != nil {
			resp.Status = 500
			return
		}

		rw := engine.BeginWrite()
		b := traversal.NewWriteBuilder(rw).AddE(body.Label, graph.NodeID(body.From), graph.NodeID(body.To), nil)
		edges := b.Current()
		if err := b.Execute(); err != nil {
			resp.Status = 500
			return
		}
		resp.Body = []byte(fmt.Sprintf(`{"id":%q}`, edges[0].Edge.ID))
	}
}

func handleShortestPath(engine *storage.Engine) gateway.Handler {
	return func(req *gateway.Request, resp *gateway.Response) {
		var body shortestPathRequest
		if err := json.Unmarshal(req.Body, &body); err != nil {
			resp.Status = 500
			return
		}

		ro := engine.BeginRead()
		defer ro.Discard()
		b := traversal.NewReadBuilder(ro).ShortestPathBetween(graph.NodeID(body.From), graph.NodeID(body.To))
		result, err := b.Result()
		if err != nil {
			resp.Status = 404
			return
		}
		nodeCount := 0
		if len(result) > 0 && result[0].Kind == traversal.NodeArray {
			nodeCount = len(result[0].Nodes)
		}
		resp.Body = []byte(fmt.Sprintf(`{"nodes":%d}`, nodeCount))
	}
}
