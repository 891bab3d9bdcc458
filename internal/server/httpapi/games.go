package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/services"
	"github.com/gorilla/mux"
)

type gameRequest struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

type gameResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toGameResponse(g *models.Game) gameResponse {
	return gameResponse{
		ID:          g.ID,
		Title:       g.Title,
		ImageURL:    g.ImageURL.String,
		Description: g.Description.String,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toGameResponses(games []*models.Game) []gameResponse {
	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	return out
}

// handleCreateGame accepts either a single game object or an array of games
// in one request.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, err)
		return
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []gameRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			writeError(w, common.ErrBadRequest)
			return
		}
		ins := make([]services.GameInput, 0, len(reqs))
		for _, req := range reqs {
			ins = append(ins, services.GameInput(req))
		}
		games, err := s.games.CreateMany(r.Context(), principalFrom(r.Context()), ins)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"games": toGameResponses(games)})
		return
	}

	var req gameRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(w, common.ErrBadRequest)
		return
	}
	game, err := s.games.Create(r.Context(), principalFrom(r.Context()), services.GameInput(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGameResponse(game))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := s.games.List(r.Context(), services.GameQuery{
		Title:    q.Get("title"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"games":    toGameResponses(result.Games),
		"total":    result.Total,
		"page":     result.Page,
		"pageSize": result.PageSize,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.games.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	game, err := s.games.Update(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"], services.GameInput(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Delete(r.Context(), principalFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddToLibrary(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	entry, err := s.games.AddToLibrary(r.Context(), principal.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      entry.ID,
		"gameId":  entry.GameID,
		"addedAt": entry.CreatedAt,
	})
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	games, err := s.games.ListLibrary(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": toGameResponses(games)})
}

func (s *Server) handleRemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	if err := s.games.RemoveFromLibrary(r.Context(), principal.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
