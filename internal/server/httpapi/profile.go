package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/stackr/internal/server/models"
	"github.com/dmitrijs2005/stackr/internal/server/services"
)

type profileResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Tagline   string    `json:"tagline,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProfileResponse(p *models.UserProfile) profileResponse {
	return profileResponse{
		UserID:    p.UserID,
		Username:  p.Username.String,
		FirstName: p.FirstName.String,
		LastName:  p.LastName.String,
		Tagline:   p.Tagline.String,
		Bio:       p.Bio.String,
		AvatarURL: p.AvatarURL.String,
		UpdatedAt: p.UpdatedAt,
	}
}

type profileUpdateRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Tagline   *string `json:"tagline"`
	Bio       *string `json:"bio"`
}

type avatarUploadRequest struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type avatarConfirmRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	profile, err := s.profiles.Get(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.profiles.Update(r.Context(), principal.UserID, services.ProfileUpdate{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Tagline:   req.Tagline,
		Bio:       req.Bio,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req avatarUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upload, err := s.profiles.AvatarUploadURL(r.Context(), principal.UserID, req.ContentType, req.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (s *Server) handleAvatarConfirm(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r.Context())

	var req avatarConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := s.profiles.ConfirmAvatar(r.Context(), principal.UserID, req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
