package devserver

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadSize = 64 << 20

type fileResp struct {
	ID          uint      `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toFileResp(f *file) fileResp {
	return fileResp{
		ID:          f.ID,
		Filename:    f.Filename,
		Size:        f.Size,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}

// pageParams clamps pagination the way the portal does: page at least 1,
// size between 1 and 100, defaulting to 20.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}

func pathID(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id)
}

func (s *Server) storeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, 40001, "file required")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 40001, "file required")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		writeError(w, 50001, "read file failed")
		return
	}

	s.mu.Lock()
	s.nextFileID++
	rec := &file{
		ID:          s.nextFileID,
		Filename:    filepath.Base(header.Filename),
		Size:        int64(len(content)),
		Description: r.FormValue("description"),
		CreatedAt:   time.Now(),
		StorageKey:  uuid.NewString(),
	}
	s.files[rec.ID] = rec
	s.blobs[rec.StorageKey] = content
	s.mu.Unlock()

	s.log.Info(r.Context(), "file stored", "id", rec.ID, "filename", rec.Filename, "size", rec.Size)

	writeOK(w, map[string]any{
		"file_id":  rec.ID,
		"filename": rec.Filename,
		"size":     rec.Size,
		"url":      "/api/v1/files/download/" + strconv.FormatUint(uint64(rec.ID), 10),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.storeUpload(w, r)
}

// handlePublicUpload accepts anonymous uploads on the open endpoint.
func (s *Server) handlePublicUpload(w http.ResponseWriter, r *http.Request) {
	s.storeUpload(w, r)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	s.mu.RLock()
	ids := make([]uint, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	items := make([]fileResp, 0, size)
	start := (page - 1) * size
	for i := start; i < len(ids) && i < start+size; i++ {
		items = append(items, toFileResp(s.files[ids[i]]))
	}
	total := int64(len(ids))
	s.mu.RUnlock()

	writeOK(w, map[string]any{"total": total, "items": items})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	rec, found := s.files[pathID(r)]
	var content []byte
	if found {
		content = s.blobs[rec.StorageKey]
	}
	s.mu.RUnlock()

	if !found {
		writeError(w, 404, "file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(content)
}

// handleUpdateFile applies a partial change: a new file part replaces the
// content and name, a description field replaces the description. Absent
// parts keep the stored values.
func (s *Server) handleUpdateFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, 40001, "invalid params")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.files[pathID(r)]
	if !found {
		writeError(w, 404, "file not found")
		return
	}

	if f, header, err := r.FormFile("file"); err == nil {
		content, rerr := io.ReadAll(f)
		f.Close()
		if rerr != nil {
			writeError(w, 50001, "read file failed")
			return
		}
		rec.Filename = filepath.Base(header.Filename)
		rec.Size = int64(len(content))
		s.blobs[rec.StorageKey] = content
	}
	if _, ok := r.MultipartForm.Value["description"]; ok {
		rec.Description = r.FormValue("description")
	}

	writeOK(w, toFileResp(rec))
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	s.mu.Lock()
	rec, found := s.files[id]
	if found {
		delete(s.blobs, rec.StorageKey)
		delete(s.files, id)
	}
	s.mu.Unlock()

	if !found {
		writeError(w, 50001, "file not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
