package Controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/helpdesk-app/models"
)

// multipartRequest builds a multipart POST with the given form fields
// and one file under "attachments".
func multipartRequest(t *testing.T, path, token string, fields map[string]string, filename, mimeType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		assert.NoError(t, mw.WriteField(name, value))
	}

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="attachments"; filename=%q`, filename)}
	h["Content-Type"] = []string{mimeType}
	part, err := mw.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", path, &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func multipartTicket(t *testing.T, token, filename, mimeType string, content []byte) *http.Request {
	t.Helper()
	return multipartRequest(t, "/api/tickets", token,
		map[string]string{"title": "With attachment", "priority": "low"},
		filename, mimeType, content)
}

// An uploaded file must come back byte for byte identical, with its
// original name and MIME type intact.
func TestAttachmentRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, token := seedUser(t, db, "Customer", "customer@example.com", models.RoleRUser, nil)

	content := []byte("\x89PNG\r\n\x1a\nnot really a png but binary enough\x00\x01\x02")
	req := multipartTicket(t, token, "screenshot.png", "image/png", content)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/tickets/%d/attachments", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var metadata []struct {
		ID           uint   `json:"id"`
		OriginalName string `json:"original_name"`
		MimeType     string `json:"mimetype"`
		Size         int64  `json:"size"`
	}
	decodeData(t, w, &metadata)
	if !assert.Len(t, metadata, 1) {
		return
	}
	assert.Equal(t, "screenshot.png", metadata[0].OriginalName)
	assert.Equal(t, "image/png", metadata[0].MimeType)
	assert.Equal(t, int64(len(content)), metadata[0].Size)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/uploads/%d", metadata[0].ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="screenshot.png"`)
}

func TestAttachmentOverSizeLimitRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, token := seedUser(t, db, "Customer", "customer@example.com", models.RoleRUser, nil)

	tooBig := make([]byte, 2<<20+1)
	req := multipartTicket(t, token, "huge.bin", "application/octet-stream", tooBig)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Attachment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// A multipart comment stores its file against the comment, retrievable
// through the comment attachment listing and download.
func TestCommentAttachmentUpload(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, token := seedUser(t, db, "Customer", "customer@example.com", models.RoleRUser, nil)

	w := doJSON(t, r, "POST", "/api/tickets", token, map[string]interface{}{
		"title": "Needs a log file", "priority": "low",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var ticket struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &ticket)

	content := []byte("2026-08-28 ERROR something broke\n")
	req := multipartRequest(t, fmt.Sprintf("/api/tickets/%d/comments", ticket.ID), token,
		map[string]string{"content": "log attached"}, "app.log", "text/plain", content)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	var comment struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &comment)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/comments/%d/attachments", comment.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var metadata []struct {
		ID           uint   `json:"id"`
		CommentID    *uint  `json:"comment_id"`
		TicketID     *uint  `json:"ticket_id"`
		OriginalName string `json:"original_name"`
	}
	decodeData(t, w, &metadata)
	if !assert.Len(t, metadata, 1) {
		return
	}
	assert.Equal(t, "app.log", metadata[0].OriginalName)
	if assert.NotNil(t, metadata[0].CommentID) {
		assert.Equal(t, comment.ID, *metadata[0].CommentID)
	}
	assert.Nil(t, metadata[0].TicketID)

	// Nothing landed on the ticket itself
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/tickets/%d/attachments", ticket.ID), token, nil)
	var ticketAtts []struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &ticketAtts)
	assert.Empty(t, ticketAtts)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/uploads/%d", metadata[0].ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
}

// Listing metadata must never ship the blob itself.
func TestAttachmentListingOmitsBlob(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, token := seedUser(t, db, "Customer", "customer@example.com", models.RoleRUser, nil)

	req := multipartTicket(t, token, "notes.txt", "text/plain", []byte("hello"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/tickets/%d/attachments", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "file_data")
	assert.NotContains(t, w.Body.String(), "aGVsbG8=")
}
