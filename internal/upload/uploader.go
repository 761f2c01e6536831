// Package upload moves images into blob storage in three strictly ordered steps:
// request an upload slot, PUT the bytes to the slot URL, then confirm the upload.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"eventconsole/internal/api"
	"eventconsole/internal/domain/media"
	"eventconsole/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// File is an image to upload. Size and ContentType are the declared values that are validated.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Session is an upload slot issued by the backend. Its ID is provisional until confirmed.
type Session struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

// Expiry parses ExpiresAt; ok is false when it is absent or not RFC 3339.
func (s Session) Expiry() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339, s.ExpiresAt)
	return t, err == nil
}

// Result identifies the finalized media.
type Result struct {
	MediaID       string `json:"mediaId"`
	MediaURL      string `json:"mediaUrl"`
	ProvisionalID string `json:"provisionalId"`
}

type slotRequest struct {
	FileName    string       `json:"fileName"`
	ContentType string       `json:"contentType"`
	Folder      media.Folder `json:"folder"`
	MediaType   media.Type   `json:"mediaType"`
}

type confirmResponse struct {
	ResourceID string `json:"resourceId"`
}

const (
	blobTypeHeader = "x-ms-blob-type"
	blockBlob      = "BlockBlob"
)

// Uploader runs the upload pipeline. It holds no per-upload state, so one Uploader can
// serve any number of concurrent uploads.
type Uploader struct {
	client   *api.Client
	blob     *http.Client
	blobBase string
	journal  repositories.UploadJournal
}

type Option func(*Uploader)

// WithBlobClient sets the client used for the byte transfer. Defaults to the API client's transport.
func WithBlobClient(hc *http.Client) Option {
	return func(u *Uploader) {
		if hc != nil {
			u.blob = hc
		}
	}
}

// WithJournal records every state transition. Journal failures are logged and never fail an upload.
func WithJournal(j repositories.UploadJournal) Option {
	return func(u *Uploader) {
		u.journal = j
	}
}

// NewUploader creates an uploader. blobBase is the public base URL of finalized media.
func NewUploader(client *api.Client, blobBase string, opts ...Option) *Uploader {
	u := &Uploader{
		client:   client,
		blob:     client.HTTPClient(),
		blobBase: blobBase,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload validates f, then requests a slot, transfers the bytes and confirms.
//
// progress (may be nil) receives non-decreasing percentages: 10 once validated, 30 when the slot
// is granted, 30..90 while bytes are sent, 90 when confirmation is sent and 100 when it is
// acknowledged. Any failure aborts the remaining steps. Nothing is retried or rolled back, and
// a new attempt starts from a fresh slot.
func (u *Uploader) Upload(ctx context.Context, f File, folder media.Folder, progress ProgressFunc) (*Result, error) {
	p := newReporter(progress)
	p.report(0)

	if err := Validate(f); err != nil {
		return nil, err
	}
	if f.Body == nil {
		return nil, &ValidationError{Field: "body", Message: "file has no content", Err: ErrEmptyFile}
	}
	p.report(10)

	rec := &media.Record{
		FileName:    f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		Folder:      folder,
	}

	session, err := u.requestSlot(ctx, f, folder)
	if err != nil {
		return nil, fmt.Errorf("could not get an upload URL: %w", err)
	}
	rec.ProvisionalID = session.ID
	rec.ExpiresAt = session.ExpiresAt
	u.record(ctx, rec, media.StateRequested)
	p.report(30)

	u.record(ctx, rec, media.StateUploading)
	if err := u.transfer(ctx, session, f, p); err != nil {
		return nil, fmt.Errorf("could not upload the file: %w", err)
	}

	p.report(90)
	finalID, err := u.confirm(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("could not confirm the upload: %w", err)
	}
	p.report(100)
	rec.FinalID = finalID
	u.record(ctx, rec, media.StateConfirmed)

	res := &Result{
		MediaID:       finalID,
		MediaURL:      media.PermanentURL(u.blobBase, folder, finalID, f.Name),
		ProvisionalID: session.ID,
	}
	rec.URL = res.MediaURL
	u.record(ctx, rec, media.StateFinalized)

	log.Info().
		Str("media_id", res.MediaID).
		Str("provisional_id", session.ID).
		Str("folder", string(folder)).
		Int64("size", f.Size).
		Msg("media uploaded")
	return res, nil
}

func (u *Uploader) requestSlot(ctx context.Context, f File, folder media.Folder) (*Session, error) {
	session, err := api.Call[Session](ctx, u.client, api.MediaRequestUploadPath(), api.Request{
		Method: http.MethodPost,
		Data: slotRequest{
			FileName:    f.Name,
			ContentType: f.ContentType,
			Folder:      folder,
			MediaType:   media.TypeImage,
		},
	})
	if err != nil {
		return nil, err
	}
	if session == nil || session.ID == "" || session.URL == "" {
		return nil, errors.New("upload slot response has no id or url")
	}
	if exp, ok := session.Expiry(); ok && time.Now().After(exp) {
		log.Warn().Str("media_id", session.ID).Time("expires_at", exp).Msg("upload slot already expired")
	}
	return session, nil
}

// transfer PUTs the raw bytes to the slot URL, reporting progress as they are read.
func (u *Uploader) transfer(ctx context.Context, s *Session, f File, p *reporter) error {
	body := &countingReader{r: f.Body, total: f.Size, onRead: func(sent, total int64) {
		p.report(30 + int(60*sent/total))
	}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.URL, body)
	if err != nil {
		return api.NewTransportError(err)
	}
	req.ContentLength = f.Size
	req.Header.Set(blobTypeHeader, blockBlob)
	req.Header.Set("Content-Type", f.ContentType)

	log.Debug().Str("media_id", s.ID).Int64("size", f.Size).Msg("transferring media bytes")

	resp, err := u.blob.Do(req)
	if err != nil {
		return api.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return api.NewResponseError(resp.StatusCode, resp.Status, b)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// confirm finalizes the provisional id. The backend may answer with a different, permanent id.
func (u *Uploader) confirm(ctx context.Context, provisionalID string) (string, error) {
	out, err := api.Call[confirmResponse](ctx, u.client, api.MediaConfirmPath(provisionalID), api.Request{
		Method: http.MethodPut,
	})
	if err != nil {
		return "", err
	}
	if out == nil || out.ResourceID == "" {
		return provisionalID, nil
	}
	return out.ResourceID, nil
}

func (u *Uploader) record(ctx context.Context, rec *media.Record, state media.State) {
	rec.State = state
	if u.journal == nil {
		return
	}
	if err := u.journal.Record(ctx, rec); err != nil {
		log.Warn().
			Err(err).
			Str("media_id", rec.ProvisionalID).
			Str("state", string(state)).
			Msg("upload journal write failed")
	}
}
