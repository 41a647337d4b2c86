package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"nutrition/internal/auth"
	"nutrition/internal/badges"
	"nutrition/internal/db"
	"nutrition/internal/diets"
)

type badgeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Weight      int        `json:"weight"`
	XPReward    int        `json:"xp_reward"`
	AwardedAt   *time.Time `json:"awarded_at"`
}

type dietResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Calories    int       `json:"calories"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	XP          int64  `json:"xp"`
	Level       int64  `json:"level"`
	NextLevelXP int64  `json:"next_level_xp"`
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}
	if s.deps.Badges == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	kind, err := badges.ParseListType(r.URL.Query().Get("type"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "type must be one of: earned, all")
		return
	}

	list, err := s.deps.Badges.List(r.Context(), userID, kind)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("type", string(kind)).Msg("list badges failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch badges")
		return
	}

	resp := make([]badgeResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, mapBadge(b))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiets(w http.ResponseWriter, r *http.Request) {
	if s.deps.Diets == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	list, err := s.deps.Diets.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list diets failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch diets")
		return
	}

	resp := make([]dietResponse, 0, len(list))
	for _, d := range list {
		resp = append(resp, mapDiet(d))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiet(w http.ResponseWriter, r *http.Request) {
	if s.deps.Diets == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	dietID, err := uuid.Parse(chi.URLParam(r, "dietID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid diet id")
		return
	}

	diet, err := s.deps.Diets.Get(r.Context(), dietID)
	if err != nil {
		if errors.Is(err, diets.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "diet not found")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("get diet failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch diet")
		return
	}

	s.writeJSON(w, http.StatusOK, mapDiet(*diet))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUserID(w, r)
	if !ok {
		return
	}
	if s.deps.Profiles == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	summary, err := s.deps.Profiles.Summary(r.Context(), userID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load profile failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	name := summary.DisplayName
	if name == "" {
		name = user.Name()
	}

	s.writeJSON(w, http.StatusOK, profileResponse{
		ID:          userID.String(),
		Email:       user.Email,
		Name:        name,
		XP:          summary.XP,
		Level:       summary.Level,
		NextLevelXP: summary.NextLevelXP,
	})
}

// requestUserID reads the user installed by requireUser.
func (s *Server) requestUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		hlog.FromRequest(r).Warn().Str("user_id", user.ID).Msg("auth backend returned a non-uuid user id")
		s.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

func mapBadge(b db.Badge) badgeResponse {
	return badgeResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Weight:      b.Weight,
		XPReward:    b.XPReward,
		AwardedAt:   b.AwardedAt,
	}
}

func mapDiet(d db.Diet) dietResponse {
	return dietResponse{
		ID:          d.ID.String(),
		Title:       d.Title,
		Description: d.Description,
		Calories:    d.Calories,
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
	}
}
