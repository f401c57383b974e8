package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kue/internal/graph"
	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/storage"
	"github.com/hyperjump/kue/internal/warmpath"
)

const defaultIntroRequestPage = 50

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.svc.Engine.Search(r.Context(), &query)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	if s.svc.Metrics != nil {
		s.svc.Metrics.ObserveSearch(response.Total, response.Fuzzy)
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) respondSearchError(w http.ResponseWriter, err error) {
	if models.IsValidationError(err) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("search failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleQueryContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	label, ok := s.svc.Engine.QueryContext(q)
	resp := map[string]interface{}{"query": q, "context": nil}
	if ok {
		resp["context"] = label
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.svc.Engine.Sources())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("graph request", zap.String("query", query.Query))
	response, err := s.svc.Engine.Search(r.Context(), &query)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, graph.Build(s.self(), response.Results))
}

// self returns the current user's record, or a stand-in when the dataset has none.
func (s *Server) self() models.Person {
	if p, ok := s.svc.Holder.Current().Self(); ok {
		return p
	}
	return models.Person{ID: s.svc.Engine.Hubs().CurrentUserID, Name: "You"}
}

func (s *Server) handleWarmPaths(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("warm paths request", zap.String("target", id))
	resp := s.svc.Finder.Paths(id)
	if resp.Target == nil {
		s.respondError(w, http.StatusNotFound, "person not found")
		return
	}
	if s.svc.Metrics != nil {
		s.svc.Metrics.WarmPaths.Observe(float64(resp.Total))
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIntroDraft(w http.ResponseWriter, r *http.Request) {
	var req models.IntroDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("intro draft request", zap.String("connector", req.ConnectorID), zap.String("target", req.TargetID))
	draft, err := s.svc.Finder.Draft(&req)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, draft)
	case errors.Is(err, warmpath.ErrUnknownPerson):
		s.respondError(w, http.StatusNotFound, err.Error())
	case models.IsValidationError(err):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("intro draft failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// knownPerson writes a 404 and returns false when id is not in the live dataset.
func (s *Server) knownPerson(w http.ResponseWriter, id string) bool {
	if _, ok := s.svc.Holder.Current().Person(id); !ok {
		s.respondError(w, http.StatusNotFound, "person not found")
		return false
	}
	return true
}

func (s *Server) handlePersonSignals(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.knownPerson(w, id) {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"person_id": id,
		"signals":   s.svc.Community.PersonSignals(id),
	})
}

func (s *Server) handleCompanySignals(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"company": name,
		"signals": s.svc.Community.CompanySignals(name),
	})
}

func (s *Server) handleCommunityPath(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	path, ok := s.svc.Community.Path(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "no community path")
		return
	}
	s.respondJSON(w, http.StatusOK, path)
}

func (s *Server) handleCommunityIntro(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.knownPerson(w, id) {
		return
	}
	res, err := s.svc.Community.RequestIntro(r.Context(), id)
	if err != nil {
		s.logger.Error("community intro failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleCircle(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.svc.Community.Circle())
}

func (s *Server) handleIntroRequests(w http.ResponseWriter, r *http.Request) {
	if s.svc.Store == nil {
		s.respondError(w, http.StatusNotImplemented, "intro request log not enabled")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		s.respondError(w, http.StatusBadRequest, "invalid offset")
		return
	}
	limit, err := queryInt(r, "limit", defaultIntroRequestPage)
	if err != nil || limit <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	list, err := s.svc.Store.ListIntroRequests(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list intro requests failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*models.IntroRequestResult{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"requests": list})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := map[string]interface{}{
		"dataset":         s.svc.Holder.Current().Stats(),
		"dataset_version": s.svc.Holder.Version(),
	}

	if s.svc.Store != nil {
		stored, err := s.svc.Store.Counts(ctx)
		if err != nil {
			s.logger.Error("status: count stored records failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["stored"] = stored
		intros, err := s.svc.Store.CountIntroRequests(ctx)
		if err != nil {
			s.logger.Error("status: count intro requests failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["intro_requests"] = intros
	}

	cfg := s.config
	resp["config"] = map[string]interface{}{
		"current_user_id":    cfg.Hubs.CurrentUserID,
		"cofounder_id":       cfg.Hubs.CofounderID,
		"dataset_path":       cfg.Dataset.Path,
		"dataset_watch":      cfg.Dataset.Watch,
		"database_path":      cfg.Storage.DatabasePath,
		"bleve_index_path":   cfg.Storage.BleveIndexPath,
		"default_limit":      cfg.Search.DefaultLimit,
		"max_limit":          cfg.Search.MaxLimit,
		"ongoing_year":       cfg.Search.OngoingYear,
		"recent_window_days": cfg.Search.RecentWindowDays,
	}

	usage, total, err := storage.DiskUsage(map[string]string{
		"database":    cfg.Storage.DatabasePath,
		"bleve_index": cfg.Storage.BleveIndexPath,
		"dataset":     cfg.Dataset.Path,
	})
	if err == nil {
		resp["disk_usage_bytes"] = total
		resp["disk_usage"] = usage
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
