package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"eventconsole/internal/domain/media"
	"eventconsole/internal/store/repositories"
	"eventconsole/internal/upload"

	"github.com/rs/zerolog/log"
)

// multipart overhead allowed on top of the file itself
const formOverhead = 1 << 20

type MediaUploader interface {
	Upload(ctx context.Context, f upload.File, folder media.Folder, progress upload.ProgressFunc) (*upload.Result, error)
}

// UploadMedia accepts a multipart form with a "file" part and a folder query parameter and
// runs it through the upload pipeline.
func UploadMedia(u MediaUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folder, ok := media.ParseFolder(r.URL.Query().Get("folder"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown media folder", Code: "invalid_folder"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+formOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing or oversized file part", Code: "invalid_file"})
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = sniff(file)
		}

		res, err := u.Upload(r.Context(), upload.File{
			Name:        header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Body:        file,
		}, folder, func(p int) {
			log.Debug().Str("file_name", header.Filename).Int("progress", p).Msg("upload progress")
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// sniff detects the content type from the first bytes and rewinds the file.
func sniff(f io.ReadSeeker) string {
	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	return http.DetectContentType(buf[:n])
}

// UnconfirmedUploads lists uploads that were granted a slot but never confirmed.
// olderThanMin (default 0) and limit (default 100, max 500) narrow the listing.
func UnconfirmedUploads(journal repositories.UploadJournal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var olderThan time.Duration
		if n, err := strconv.Atoi(q.Get("olderThanMin")); err == nil && n > 0 {
			olderThan = time.Duration(n) * time.Minute
		}
		limit := 100
		if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 && n <= 500 {
			limit = n
		}

		recs, err := journal.ListUnconfirmed(r.Context(), olderThan, limit)
		if err != nil {
			log.Error().Err(err).Msg("list unconfirmed uploads failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not read upload journal"})
			return
		}
		if recs == nil {
			recs = []*media.Record{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": recs, "count": len(recs)})
	}
}
