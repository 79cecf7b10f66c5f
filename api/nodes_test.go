package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prompt-nodes/api"
	"prompt-nodes/clip"
	"prompt-nodes/execution"
	"prompt-nodes/node"
	"prompt-nodes/preset"
	"prompt-nodes/prompt"
	"prompt-nodes/translate"
)

type stubEncoder struct{}

func (stubEncoder) Tokenize(_ context.Context, text string) (clip.Tokens, error) {
	return text, nil
}

func (stubEncoder) Encode(_ context.Context, tokens clip.Tokens) (clip.Conditioning, error) {
	return clip.Conditioning{{Embedding: clip.Tensor{Shape: []int{1}, Data: []float32{1}}}}, nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, text string, _, to translate.Language) (string, error) {
	return "[" + to.Code + "] " + text, nil
}

func newTestCatalog() *preset.Catalog {
	return preset.New([]preset.Preset{
		{Name: "001-Cinematic", Positive: "cinematic", Negative: "flat"},
		{Name: "002-Ink", Positive: "ink"},
	})
}

func newTestServer(t *testing.T) (*httptest.Server, *execution.Hub) {
	t.Helper()
	catalog := newTestCatalog()
	reg := node.NewRegistry()
	if err := reg.Register(node.NewStrongPrompt(prompt.NewAssembler(catalog, stubEncoder{}, nil))); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(node.NewTencentTranslater(translate.NewForwarder(stubTranslator{}))); err != nil {
		t.Fatalf("register: %v", err)
	}
	hub := execution.NewHub(0)
	mgr := execution.NewManager(reg, hub, 0, nil)
	srv := httptest.NewServer(api.RegisterRoutes(mgr, catalog, hub, nil))
	t.Cleanup(srv.Close)
	return srv, hub
}

func execute(t *testing.T, srv *httptest.Server, class, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/nodes/"+class+"/execute", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST execute: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestListNodes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/object_info")
	if err != nil {
		t.Fatalf("GET /api/object_info: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected json content-type, got %q", ct)
	}
	var infos map[string]node.Info
	json.NewDecoder(resp.Body).Decode(&infos)
	if len(infos) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(infos))
	}
	if infos["TencentTranslater"].Category != "KayTool/Translate" {
		t.Fatalf("unexpected translater info: %+v", infos["TencentTranslater"])
	}
}

func TestGetNodeNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/object_info/Nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExecuteStrongPrompt(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, e := execute(t, srv, "StrongPrompt",
		`{"inputs":{"positive":"a fox","Strong_Prompt_1":"001-Cinematic","IDs":"002"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	outputs := e["outputs"].(map[string]interface{})
	if outputs["positive_text"] != "a fox, cinematic, ink" {
		t.Fatalf("unexpected positive_text: %v", outputs["positive_text"])
	}
	if outputs["negative_text"] != "flat" {
		t.Fatalf("unexpected negative_text: %v", outputs["negative_text"])
	}
	if e["status"] != "success" {
		t.Fatalf("expected success, got %v", e["status"])
	}
}

func TestExecuteTranslater(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, e := execute(t, srv, "TencentTranslater",
		`{"inputs":{"Text_A":"hallo","Text_B":"","To":"Deutsch"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	outputs := e["outputs"].(map[string]interface{})
	if outputs["A"] != "[de] hallo" {
		t.Fatalf("unexpected A: %v", outputs["A"])
	}
}

func TestExecuteUnknownNode(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := execute(t, srv, "Nope", `{"inputs":{}}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExecuteBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := execute(t, srv, "StrongPrompt", "not-json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExecuteBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, e := execute(t, srv, "TencentTranslater", `{"inputs":{"Text_A":"x","From":"Klingon"}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if e["status"] != "error" {
		t.Fatalf("expected error status, got %v", e["status"])
	}
}

func TestHistoryLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	_, e := execute(t, srv, "TencentTranslater", `{"inputs":{"Text_A":"a","Text_B":"b","Translate":false}}`)
	id := e["id"].(string)

	resp, err := http.Get(srv.URL + "/api/history")
	if err != nil {
		t.Fatalf("GET /api/history: %v", err)
	}
	var list []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list) != 1 || list[0]["id"] != id {
		t.Fatalf("unexpected history: %v", list)
	}

	resp, err = http.Get(srv.URL + "/api/history/" + id)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/history/"+id, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", delResp.StatusCode)
	}

	delResp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", delResp.StatusCode)
	}
}

func TestGetHistoryNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/history/nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
