// Package devserver is an in-memory rendition of the campus portal backend,
// speaking the same envelope protocol over the same routes. It exists for
// local development and for exercising the client transport end to end; data
// lives only for the lifetime of the process.
package devserver

import (
	"net/http"
	"sync"
	"time"

	"campusvault/internal/logging"

	"github.com/gorilla/mux"
)

type user struct {
	ID           uint
	Email        string
	Username     string
	PasswordHash []byte
}

type file struct {
	ID          uint
	Filename    string
	Size        int64
	Description string
	CreatedAt   time.Time

	// StorageKey names the blob; in-memory it is just the map key into blobs.
	StorageKey string
}

// Server holds the whole backend state behind one mutex. Good enough for a
// single-process dev backend.
type Server struct {
	mu         sync.RWMutex
	usersByEml map[string]*user
	usersByID  map[uint]*user
	files      map[uint]*file
	blobs      map[string][]byte
	nextUserID uint
	nextFileID uint

	secret []byte
	log    logging.Logger
}

func NewServer(secret string, log logging.Logger) *Server {
	return &Server{
		usersByEml: make(map[string]*user),
		usersByID:  make(map[uint]*user),
		files:      make(map[uint]*file),
		blobs:      make(map[string][]byte),
		secret:     []byte(secret),
		log:        log,
	}
}

// Router builds the HTTP surface. Auth and public upload are open; user and
// file routes sit behind the JWT middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/files/public/upload", s.handlePublicUpload).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.jwtMiddleware)
	authed.HandleFunc("/user/profile", s.handleGetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/user/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/user/password", s.handleChangePassword).Methods(http.MethodPut)
	authed.HandleFunc("/files", s.handleListFiles).Methods(http.MethodGet)
	authed.HandleFunc("/files/upload", s.handleUpload).Methods(http.MethodPost)
	authed.HandleFunc("/files/download/{id:[0-9]+}", s.handleDownload).Methods(http.MethodGet)
	authed.HandleFunc("/files/{id:[0-9]+}", s.handleUpdateFile).Methods(http.MethodPut)
	authed.HandleFunc("/files/{id:[0-9]+}", s.handleDeleteFile).Methods(http.MethodDelete)

	return r
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "pong")
}
