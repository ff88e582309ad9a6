package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// FileRecord is the backend's view of one vault entry. The client never
// creates these locally; it only renders what the latest listing returned.
type FileRecord struct {
	ID          uint      `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FileListing is one page of vault contents.
type FileListing struct {
	Total int64        `json:"total"`
	Items []FileRecord `json:"items"`
}

// UploadResult is the data payload of a successful upload.
type UploadResult struct {
	FileID   uint   `json:"file_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// UpdateFileParams describes a partial file update. Content may be nil
// (keep the stored bytes) and Description may be nil (keep the stored text);
// validation that at least one is present happens in the vault controller.
type UpdateFileParams struct {
	Filename    string
	Content     io.Reader
	Description *string
}

// multipartBody assembles a multipart form with an optional file part and an
// optional description field.
func multipartBody(filename string, content io.Reader, description *string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if content != nil {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, content); err != nil {
			return nil, "", fmt.Errorf("copy file content: %w", err)
		}
	}
	if description != nil {
		if err := w.WriteField("description", *description); err != nil {
			return nil, "", fmt.Errorf("write description: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// ListFiles fetches one page of the vault listing.
func (c *Client) ListFiles(ctx context.Context, page, size int) (*FileListing, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	req, err := c.newRequest(ctx, http.MethodGet, "/files", q, nil, "", true)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if !res.env.OK() {
		return nil, newError(res.env, res.status, "cannot list files")
	}

	var out FileListing
	if err := json.Unmarshal(res.env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &out, nil
}

// UploadFile sends a new file. public selects the anonymous endpoint, which
// carries no auth header.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader, description string, public bool) (*UploadResult, error) {
	body, contentType, err := multipartBody(filename, content, &description)
	if err != nil {
		return nil, err
	}

	path := "/files/upload"
	if public {
		path = "/files/public/upload"
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body, contentType, !public)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, req, !public)
	if err != nil {
		return nil, err
	}
	if !res.env.OK() {
		return nil, newError(res.env, res.status, "upload failed")
	}

	var out UploadResult
	if len(res.env.Data) > 0 {
		if err := json.Unmarshal(res.env.Data, &out); err != nil {
			return nil, fmt.Errorf("decode upload payload: %w", err)
		}
	}
	return &out, nil
}

// UpdateFile replaces the stored content and/or description of one file.
func (c *Client) UpdateFile(ctx context.Context, id uint, p UpdateFileParams) error {
	body, contentType, err := multipartBody(p.Filename, p.Content, p.Description)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/files/"+strconv.FormatUint(uint64(id), 10), nil, body, contentType, true)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return err
	}
	if res.noBody() || res.env.OK() {
		return nil
	}
	return newError(res.env, res.status, "update failed")
}

// DeleteFile removes one file. The backend answers 204 with no body, so an
// empty successful response is the success case here.
func (c *Client) DeleteFile(ctx context.Context, id uint) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/files/"+strconv.FormatUint(uint64(id), 10), nil, nil, "", true)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, req, true)
	if err != nil {
		return err
	}
	if res.noBody() || res.env.OK() {
		return nil
	}
	return newError(res.env, res.status, "delete failed")
}

// DownloadFile streams one file's bytes. The caller owns the returned reader
// and must close it. The second return value is the server-suggested
// filename from Content-Disposition, empty when absent.
func (c *Client) DownloadFile(ctx context.Context, id uint) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files/download/"+strconv.FormatUint(uint64(id), 10), nil, nil, "", true)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.expireSession(ctx)
		return nil, "", ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, "", newError(DecodeSafely(body), resp.StatusCode, "download failed")
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return resp.Body, filename, nil
}
