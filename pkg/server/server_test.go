package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/pipeline"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/store"
)

func serverGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "1", Label: "Aspirin", Type: graph.TypeDrug, Val: 4},
			{ID: "2", Label: "COX-1", Type: graph.TypeProtein},
			{ID: "3", Label: "Gastric irritation", Type: graph.TypeSideEffect},
		},
		Links: []graph.Link{
			{Source: "1", Target: "2", Type: "encodes"},
			{Source: "1", Target: "3", Type: "predicts"},
		},
	}
}

func newTestServer(t *testing.T, snaps store.Store) *httptest.Server {
	t.Helper()
	s, err := New(Config{
		Graph:     serverGraph(),
		Runner:    pipeline.NewRunner(nil, nil, nil),
		Options:   pipeline.Options{Seed: 1},
		Snapshots: snaps,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestNewRejectsInvalidGraph(t *testing.T) {
	g := serverGraph()
	g.Links = append(g.Links, graph.Link{Source: "1", Target: "missing"})

	_, err := New(Config{Graph: g, Runner: pipeline.NewRunner(nil, nil, nil)})
	if err == nil {
		t.Fatal("New() should reject an invalid graph")
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGraphEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/graph")
	if err != nil {
		t.Fatalf("GET /api/graph error: %v", err)
	}
	defer resp.Body.Close()

	var g graph.Graph
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 2 {
		t.Errorf("graph = %d nodes, %d links; want 3, 2", len(g.Nodes), len(g.Links))
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/layout?width=1200&height=400")
	if err != nil {
		t.Fatalf("GET /api/layout error: %v", err)
	}
	defer resp.Body.Close()

	var l graph.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if l.Width != 1200 || l.Height != 400 {
		t.Errorf("layout dimensions = %vx%v, want 1200x400", l.Width, l.Height)
	}
	if len(l.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(l.Positions))
	}
}

func TestViewerEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "d3.forceSimulation") {
		t.Error("viewer page should embed the simulation script")
	}
}

func TestExportDOTEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/export/dot")
	if err != nil {
		t.Fatalf("GET /export/dot error: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"1" -- "2"`) {
		t.Errorf("DOT export missing link:\n%s", body)
	}
	if !strings.Contains(body, "pos=") {
		t.Error("DOT export should pin settled positions")
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	snaps, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	ts := newTestServer(t, snaps)

	// Save
	resp, err := http.Post(ts.URL+"/api/snapshots", "application/json",
		strings.NewReader(`{"name":"baseline"}`))
	if err != nil {
		t.Fatalf("POST snapshot error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}

	// List
	listResp, err := http.Get(ts.URL + "/api/snapshots")
	if err != nil {
		t.Fatalf("GET snapshots error: %v", err)
	}
	defer listResp.Body.Close()
	var list []store.Snapshot
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "baseline" {
		t.Errorf("list = %+v, want one snapshot named baseline", list)
	}

	// Get
	getResp, err := http.Get(ts.URL + "/api/snapshots/baseline")
	if err != nil {
		t.Fatalf("GET snapshot error: %v", err)
	}
	defer getResp.Body.Close()
	var snap store.Snapshot
	if err := json.NewDecoder(getResp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Layout.Positions) != 3 {
		t.Errorf("snapshot positions = %d, want 3", len(snap.Layout.Positions))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/snapshots/baseline", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE snapshot error: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", delResp.StatusCode)
	}

	// Missing snapshot is a 404 with a structured body.
	missResp, err := http.Get(ts.URL + "/api/snapshots/baseline")
	if err != nil {
		t.Fatalf("GET missing snapshot error: %v", err)
	}
	defer missResp.Body.Close()
	if missResp.StatusCode != http.StatusNotFound {
		t.Errorf("GET missing status = %d, want 404", missResp.StatusCode)
	}
	var errBody map[string]string
	if err := json.NewDecoder(missResp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody["code"] != "SNAPSHOT_NOT_FOUND" {
		t.Errorf("error code = %q, want SNAPSHOT_NOT_FOUND", errBody["code"])
	}
}

func TestSnapshotEndpointsDisabledWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/snapshots")
	if err != nil {
		t.Fatalf("GET snapshots error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when snapshots are disabled", resp.StatusCode)
	}
}

func TestSaveSnapshotRejectsBadName(t *testing.T) {
	snaps, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	ts := newTestServer(t, snaps)

	resp, err := http.Post(ts.URL+"/api/snapshots", "application/json",
		strings.NewReader(`{"name":"../escape"}`))
	if err != nil {
		t.Fatalf("POST snapshot error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
