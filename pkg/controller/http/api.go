package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"github.com/secmon-lab/adtool/pkg/usecase"
	"github.com/secmon-lab/adtool/pkg/utils/errutil"
)

// maxBodyBytes bounds the size of an entity file sent by PUT
const maxBodyBytes = 10 << 20

// ErrInvalidRequest marks malformed request bodies and parameters
var ErrInvalidRequest = goerr.New("invalid request")

type specPayload struct {
	Data map[string]any `json:"data"`
}

type validateResponse struct {
	OK             bool          `json:"ok"`
	ArchitectureID string        `json:"architecture_id"`
	Summary        model.Summary `json:"summary"`
	Issues         []model.Issue `json:"issues"`
}

type buildRequest struct {
	OutputFormat string `json:"output_format"`
}

type buildResponse struct {
	OK             bool          `json:"ok"`
	ArchitectureID string        `json:"architecture_id"`
	Format         string        `json:"format"`
	OutPath        string        `json:"out"`
	GapsPath       string        `json:"gaps"`
	ReportPath     string        `json:"report"`
	Summary        model.Summary `json:"summary"`
}

func (s *Server) listArchitecturesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("summary") != "" {
		summaries, err := s.uc.ValidateAll(ctx)
		if err != nil {
			handleError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, map[string]any{"architectures": summaries})
		return
	}

	ids, err := s.store.ListArchitectures(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"architectures": ids})
}

func (s *Server) getEntityHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, err := entityParam(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	data, err := s.store.ReadEntity(ctx, chi.URLParam(r, "architectureID"), kind)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, specPayload{Data: data})
}

func (s *Server) putEntityHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, err := entityParam(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var payload specPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		handleError(ctx, w, goerr.Wrap(ErrInvalidRequest, err.Error()))
		return
	}
	if payload.Data == nil {
		payload.Data = map[string]any{}
	}

	if err := s.store.WriteEntity(ctx, chi.URLParam(r, "architectureID"), kind, payload.Data); err != nil {
		handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, payload)
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "architectureID")

	dir, err := s.store.Dir(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	result, err := s.uc.Validate(ctx, usecase.ValidateInput{SpecDir: dir})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	summary := result.Analysis.Summary()
	writeJSON(ctx, w, http.StatusOK, validateResponse{
		OK:             summary.Error == 0,
		ArchitectureID: id,
		Summary:        summary,
		Issues:         result.Report.Issues,
	})
}

func (s *Server) buildHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "architectureID")

	var req buildRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			handleError(ctx, w, goerr.Wrap(ErrInvalidRequest, err.Error()))
			return
		}
	}
	if req.OutputFormat == "" {
		req.OutputFormat = types.OutputFormatMarkdown.String()
	}
	format, err := types.ParseOutputFormat(req.OutputFormat, "")
	if err != nil {
		handleError(ctx, w, goerr.Wrap(ErrInvalidRequest, err.Error()))
		return
	}

	dir, err := s.store.Dir(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	base := filepath.Join(s.outputDir, "AD_"+id)
	input := s.defaults(id)
	input.SpecDir = dir
	input.Format = format.String()
	input.OutPath = base + format.Extension()
	input.GapsPath = base + ".gaps.md"
	input.ReportPath = base + ".report.json"

	result, err := s.uc.Build(ctx, input)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	summary := result.Analysis.Summary()
	writeJSON(ctx, w, http.StatusOK, buildResponse{
		OK:             summary.Error == 0,
		ArchitectureID: id,
		Format:         result.Format.String(),
		OutPath:        result.OutPath,
		GapsPath:       result.GapsPath,
		ReportPath:     result.ReportPath,
		Summary:        summary,
	})
}

func entityParam(r *http.Request) (types.EntityKind, error) {
	kind, err := types.ParseEntityKind(chi.URLParam(r, "entity"))
	if err != nil {
		return "", goerr.Wrap(ErrInvalidRequest, err.Error())
	}
	return kind, nil
}

// statusOf maps domain errors onto HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrArchitectureNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, model.ErrInvalidArchitecture),
		errors.Is(err, model.ErrReadOnlyArchitecture),
		errors.Is(err, model.ErrInvalidRoot),
		errors.Is(err, usecase.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
