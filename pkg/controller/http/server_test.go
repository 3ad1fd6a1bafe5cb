package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/adtool/pkg/controller/http"
	"github.com/secmon-lab/adtool/pkg/repository/specfs"
	"github.com/secmon-lab/adtool/pkg/usecase"
)

type testEnv struct {
	srv       *server.Server
	root      string
	outputDir string
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	archDir := filepath.Join(root, "rcs")
	gt.NoError(t, os.Mkdir(archDir, 0o755)).Required()

	files := map[string]string{
		"stakeholders.yaml": "stakeholders:\n  - id: STK-1\n    name: Ops\n",
		"concerns.yaml":     "concerns:\n  - id: C-1\n    name: Uptime\n    description: x\n    stakeholders: [STK-1]\n",
		"capabilities.yaml": "capabilities: []\n",
	}
	for name, body := range files {
		gt.NoError(t, os.WriteFile(filepath.Join(archDir, name), []byte(body), 0o600)).Required()
	}

	store, err := specfs.New(root)
	gt.NoError(t, err).Required()
	outputDir := t.TempDir()
	uc := usecase.New(usecase.WithSpecStore(store))

	return &testEnv{
		srv:       server.New(uc, store, server.WithOutputDir(outputDir)),
		root:      root,
		outputDir: outputDir,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	e.srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &m)).Required()
	return m
}

func TestHealth(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode(t, w)["status"]).Equal("ok")
}

func TestListArchitectures(t *testing.T) {
	env := setupServer(t)

	t.Run("ids", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/architectures", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode(t, w)["architectures"]).Equal([]any{"rcs"})
	})

	t.Run("with summary", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/architectures?summary=1", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode(t, w)["architectures"]).Equal([]any{
			map[string]any{
				"id":      "rcs",
				"summary": map[string]any{"ERROR": float64(0), "WARN": float64(1), "INFO": float64(0)},
			},
		})
	})
}

func TestEntityEndpoints(t *testing.T) {
	env := setupServer(t)

	t.Run("get", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/architectures/rcs/spec/stakeholders", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		data := decode(t, w)["data"].(map[string]any)
		gt.Array(t, data["stakeholders"].([]any)).Length(1)
	})

	t.Run("put normalizes relations", func(t *testing.T) {
		body := map[string]any{"data": map[string]any{
			"capabilities": []any{
				map[string]any{"id": "CAP-1", "name": "Ops tooling", "description": "d", "addresses_concerns": "C-1"},
			},
		}}
		w := env.do(t, http.MethodPut, "/api/architectures/rcs/spec/capabilities", body)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = env.do(t, http.MethodGet, "/api/architectures/rcs/spec/capabilities", nil)
		rows := decode(t, w)["data"].(map[string]any)["capabilities"].([]any)
		gt.Value(t, rows[0].(map[string]any)["addresses_concerns"]).Equal([]any{"C-1"})
	})

	t.Run("unknown entity", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/architectures/rcs/spec/views", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown architecture", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/architectures/nope/spec/concerns", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("root is read-only", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/architectures/_root/spec/concerns", map[string]any{"data": map[string]any{}})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/architectures/rcs/spec/concerns", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		env.srv.ServeHTTP(w, req)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestValidateEndpoint(t *testing.T) {
	env := setupServer(t)
	w := env.do(t, http.MethodPost, "/api/architectures/rcs/validate", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	resp := decode(t, w)
	gt.Value(t, resp["ok"]).Equal(true)
	gt.Value(t, resp["architecture_id"]).Equal("rcs")
	issues := resp["issues"].([]any)
	gt.Array(t, issues).Length(1)
	gt.Value(t, issues[0].(map[string]any)["location"]).Equal("concerns:C-1")
}

func TestBuildEndpoint(t *testing.T) {
	env := setupServer(t)

	t.Run("markdown by default", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/architectures/rcs/build", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		resp := decode(t, w)
		gt.Value(t, resp["out"]).Equal(filepath.Join(env.outputDir, "AD_rcs.md"))
		for _, key := range []string{"out", "gaps", "report"} {
			_, err := os.Stat(resp[key].(string))
			gt.NoError(t, err)
		}
	})

	t.Run("docx", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/architectures/rcs/build", map[string]string{"output_format": "docx"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode(t, w)["out"]).Equal(filepath.Join(env.outputDir, "AD_rcs.docx"))
	})

	t.Run("unsupported format", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/architectures/rcs/build", map[string]string{"output_format": "html"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}
