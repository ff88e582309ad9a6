package devserver

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileResp struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 40001, "failed to bind")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, 40001, "failed to bind")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, 50001, "hash failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEml[req.Email]; exists {
		writeError(w, 40002, "failed to create user")
		return
	}

	s.nextUserID++
	u := &user{
		ID:           s.nextUserID,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	s.usersByEml[u.Email] = u
	s.usersByID[u.ID] = u

	s.log.Info(r.Context(), "user registered", "email", u.Email, "id", u.ID)
	writeOK(w, profileResp{ID: u.ID, Email: u.Email, Username: u.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid params")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, 400, "invalid params")
		return
	}

	s.mu.RLock()
	u, ok := s.usersByEml[req.Email]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, 401, "invalid credentials")
		return
	}

	token, err := s.generateToken(u.ID)
	if err != nil {
		writeError(w, 500, "token gen failed")
		return
	}

	writeOK(w, map[string]any{
		"token":   token,
		"expires": int64(tokenTTL.Seconds()),
		"user":    profileResp{ID: u.ID, Email: u.Email, Username: u.Username},
	})
}
