package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pipreq/pkg/catalog"
	pkgerrors "github.com/matzehuels/pipreq/pkg/errors"
	"github.com/matzehuels/pipreq/pkg/integrations"
	"github.com/matzehuels/pipreq/pkg/observability"
	"github.com/matzehuels/pipreq/pkg/pep440"
	"github.com/matzehuels/pipreq/pkg/requirement"
	"github.com/matzehuels/pipreq/pkg/store"
)

type parseRequest struct {
	Text string `json:"text"`
	Save bool   `json:"save"`
}

type parseResponse struct {
	ID           string                    `json:"id,omitempty"`
	Requirements []requirement.Requirement `json:"requirements"`
	Unrecognized []int                     `json:"unrecognized,omitempty"`
}

type lineRequest struct {
	Line string `json:"line"`
}

type lineResponse struct {
	Recognized  bool                     `json:"recognized"`
	Requirement *requirement.Requirement `json:"requirement,omitempty"`
}

type normalizeResponse struct {
	Version    string         `json:"version"`
	Normalized pep440.Version `json:"normalized"`
	Canonical  string         `json:"canonical"`
	PreRelease bool           `json:"prerelease"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := pkgerrors.ValidateRequirementsText(req.Text); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	resp := parseResponse{
		Requirements: s.parser.ParseText(req.Text),
		Unrecognized: s.parser.Diagnose(req.Text),
	}
	if resp.Requirements == nil {
		resp.Requirements = []requirement.Requirement{}
	}
	observability.Parse().OnParseComplete(r.Context(), "api", len(resp.Requirements), len(resp.Unrecognized), time.Since(start))

	if req.Save {
		res := store.NewResult("api", resp.Requirements, resp.Unrecognized)
		if err := s.store.Save(r.Context(), res); err != nil {
			writeError(w, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "failed to save result"))
			return
		}
		resp.ID = res.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLine(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	var resp lineResponse
	if rq, ok := requirement.ParseLine(req.Line); ok {
		resp = lineResponse{Recognized: true, Requirement: &rq}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := pkgerrors.ValidateResultID(id); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, pkgerrors.New(pkgerrors.ErrCodeResultNotFound, "no result with id %s", id))
		return
	}
	if err != nil {
		writeError(w, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "failed to load result"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("version")
	if raw == "" {
		writeError(w, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "missing version parameter"))
		return
	}
	v, ok := pep440.Normalize(raw)
	if !ok {
		writeError(w, pkgerrors.New(pkgerrors.ErrCodeInvalidVersion, "not a PEP 440 version: %q", raw))
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{
		Version:    raw,
		Normalized: v,
		Canonical:  v.String(),
		PreRelease: v.IsPreRelease(),
	})
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, pkgerrors.New(pkgerrors.ErrCodeUnsupported, "package catalog is not enabled"))
		return
	}
	name := chi.URLParam(r, "name")
	if err := pkgerrors.ValidatePackageName(name); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.catalog.Lookup(name)
	if errors.Is(err, catalog.ErrUnknownPackage) {
		e, err = s.fetchPackage(r, name)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// fetchPackage adds a package missing from the catalog by fetching it from
// the index.
func (s *Server) fetchPackage(r *http.Request, name string) (catalog.Entry, error) {
	err := s.catalog.Reload(r.Context(), name)
	if errors.Is(err, integrations.ErrNotFound) {
		return catalog.Entry{}, pkgerrors.New(pkgerrors.ErrCodePackageNotFound, "%s is not on the index", name)
	}
	if err != nil {
		return catalog.Entry{}, pkgerrors.Wrap(pkgerrors.ErrCodeNetwork, err, "failed to fetch %s", name)
	}
	e, err := s.catalog.Lookup(name)
	if err != nil {
		return catalog.Entry{}, pkgerrors.New(pkgerrors.ErrCodePackageNotFound, "%s is not in the catalog", name)
	}
	return e, nil
}

type errorBody struct {
	Code    pkgerrors.Code `json:"code"`
	Message string         `json:"message"`
}

func notFound(format string, args ...any) error {
	return pkgerrors.New(pkgerrors.ErrCodeNotFound, format, args...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 2<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	code := pkgerrors.Resolve(err)
	writeJSON(w, pkgerrors.HTTPStatus(code), errorBody{Code: code, Message: pkgerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
