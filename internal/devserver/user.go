package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, 401, "unauthorized")
		return
	}

	s.mu.RLock()
	u, found := s.usersByID[uid]
	s.mu.RUnlock()

	if !found {
		writeError(w, 404, "cannot find user")
		return
	}
	writeOK(w, profileResp{ID: u.ID, Email: u.Email, Username: u.Username})
}

type updateProfileReq struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 40001, "invalid params")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, 40001, "invalid params")
		return
	}

	uid, _ := userIDFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.usersByID[uid]
	if !found {
		writeError(w, 404, "cannot find user")
		return
	}

	if req.Email != "" && req.Email != u.Email {
		if _, taken := s.usersByEml[req.Email]; taken {
			writeError(w, 50001, "email already in use")
			return
		}
		delete(s.usersByEml, u.Email)
		u.Email = req.Email
		s.usersByEml[u.Email] = u
	}
	u.Username = req.Username

	writeOK(w, profileResp{ID: u.ID, Email: u.Email, Username: u.Username})
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 40001, "invalid params")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, 40001, "invalid params")
		return
	}

	uid, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, 401, "unauthorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.usersByID[uid]
	if !found {
		writeError(w, 404, "cannot find user")
		return
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.OldPassword)) != nil {
		writeError(w, 40002, "old password does not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, 50001, "hash failed")
		return
	}
	u.PasswordHash = hash

	w.WriteHeader(http.StatusNoContent)
}
