package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"brawlhalla-tracker/internal/constants"
	"brawlhalla-tracker/internal/domain"
	"brawlhalla-tracker/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TrackerServer is the JSON command surface: ranked lookups, account
// linking, name search and the two-phase disambiguation flow.
type TrackerServer struct {
	svc      *service.StatsService
	sessions *sessionStore
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewTrackerServer(svc *service.StatsService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{
		svc:      svc,
		sessions: newSessionStore(constants.DisambiguationTTL),
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *TrackerServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/ranked", s.GetRanked)
	mux.HandleFunc("GET /v1/profile", s.GetProfile)
	mux.HandleFunc("GET /v1/search", s.Search)
	mux.HandleFunc("POST /v1/resolve", s.Resolve)
	mux.HandleFunc("POST /v1/link", s.Link)
	mux.HandleFunc("POST /v1/unlink", s.Unlink)
}

// disambiguationResponse offers name matches plus a session token the
// client redeems on POST /v1/resolve.
type disambiguationResponse struct {
	Token      string                      `json:"token"`
	Candidates []domain.PlayerSearchResult `json:"candidates"`
}

func (s *TrackerServer) GetRanked(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userParam(w, r)
	if !ok {
		return
	}
	target := r.URL.Query().Get("target")
	refresh := r.URL.Query().Get("refresh") == "true"

	summary, err := s.svc.GetRankedSummary(r.Context(), userID, target, refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfileRef) && target != "" {
			s.offerDisambiguation(w, r, userID, target)
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// offerDisambiguation runs the name search and, when it finds candidates,
// answers 300 with the choice set instead of a resolution failure.
func (s *TrackerServer) offerDisambiguation(w http.ResponseWriter, r *http.Request, userID int64, target string) {
	candidates, err := s.svc.SearchPlayers(r.Context(), target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(candidates) == 0 {
		s.writeError(w, r, service.ErrInvalidProfileRef)
		return
	}

	token, err := s.sessions.create(userID, candidates)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusMultipleChoices, disambiguationResponse{Token: token, Candidates: candidates})
}

type resolveRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Token  string `json:"token" validate:"required"`
	Cancel bool   `json:"cancel"`
	Choice int    `json:"choice" validate:"gte=0"`
}

func (s *TrackerServer) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, ok := s.sessions.redeem(req.Token, req.UserID)
	if !ok || req.Cancel {
		// Expired token and explicit cancel are both the silent path.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if req.Choice >= len(sess.candidates) {
		s.writeMessage(w, http.StatusBadRequest, "choice out of range")
		return
	}

	stats, err := s.svc.GetRankedByID(r.Context(), sess.candidates[req.Choice].BrawlhallaID, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, domain.NewSummary(stats))
}

func (s *TrackerServer) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userParam(w, r)
	if !ok {
		return
	}
	target := r.URL.Query().Get("target")
	refresh := r.URL.Query().Get("refresh") == "true"

	profile, err := s.svc.GetProfile(r.Context(), userID, target, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *TrackerServer) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	results, err := s.svc.SearchPlayers(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

type linkRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Target string `json:"target" validate:"required"`
}

func (s *TrackerServer) Link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if !s.decode(w, r, &req) {
		return
	}

	bhID, err := s.svc.LinkAccount(r.Context(), req.UserID, req.Target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"brawlhalla_id": bhID})
}

type unlinkRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

func (s *TrackerServer) Unlink(w http.ResponseWriter, r *http.Request) {
	var req unlinkRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.svc.UnlinkAccount(r.Context(), req.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "account unlinked")
}

func (s *TrackerServer) userParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user")
	if raw == "" {
		s.writeMessage(w, http.StatusBadRequest, "user is required")
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeMessage(w, http.StatusBadRequest, "user must be an integer id")
		return 0, false
	}
	return userID, true
}

func (s *TrackerServer) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeError translates domain errors into user-facing responses and hides
// everything else behind a generic message.
func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDisambiguationCancelled):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrInvalidProfileRef):
		s.writeMessage(w, http.StatusBadRequest, err.Error())
	case service.IsDomainError(err):
		s.writeMessage(w, http.StatusNotFound, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		s.writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *TrackerServer) writeMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"message": msg})
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
