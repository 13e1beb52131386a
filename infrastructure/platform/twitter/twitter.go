package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Kofidell4545/pluseposter/config"
	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/sirupsen/logrus"
)

const uploadChunkSize = 4 * 1024 * 1024 // 4MB

type Adapter struct {
	cred   domainCredential.PlatformCredential
	client *platform.Client

	// Overridable in tests
	APIBaseURL string
	UploadURL  string
}

func NewAdapter(cred domainCredential.PlatformCredential) *Adapter {
	return &Adapter{
		cred:       cred,
		client:     platform.NewClient(domainPost.PlatformTwitter),
		APIBaseURL: config.TwitterAPIBaseURL,
		UploadURL:  config.TwitterUploadURL,
	}
}

func (a *Adapter) Platform() domainPost.Platform {
	return domainPost.PlatformTwitter
}

func (a *Adapter) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.cred.AccessToken)
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

func (a *Adapter) Post(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error) {
	payload := tweetRequest{Text: truncate(a.text(request), config.TwitterMaxTextLength)}

	if request.ContentType.IsMedia() {
		mediaID, err := a.uploadMedia(ctx, request.FilePath, request.ContentType)
		if err != nil {
			return domainPost.PostResult{}, err
		}
		payload.Media = &tweetMedia{MediaIDs: []string{mediaID}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domainPost.PostResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.APIBaseURL+"/tweets", bytes.NewReader(body))
	if err != nil {
		return domainPost.PostResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return domainPost.PostResult{}, err
	}
	defer resp.Body.Close()

	if err := a.client.StatusError(resp); err != nil {
		return domainPost.PostResult{}, err
	}

	var tweet tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&tweet); err != nil {
		return domainPost.PostResult{}, pkgError.PermanentPlatformError(fmt.Sprintf("twitter: malformed response: %v", err))
	}

	logrus.WithField("post_id", tweet.Data.ID).Info("[TWITTER] Tweet published")

	return domainPost.PostResult{
		Platform: domainPost.PlatformTwitter,
		PostID:   tweet.Data.ID,
		Caption:  request.Caption,
		PostedAt: time.Now().UTC(),
	}, nil
}

func (a *Adapter) text(request domainPost.PostRequest) string {
	if request.ContentType == domainPost.ContentTypeText {
		return request.Message
	}
	return request.Caption
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

type uploadResponse struct {
	MediaIDString  string `json:"media_id_string"`
	ProcessingInfo *struct {
		State          string `json:"state"`
		CheckAfterSecs int    `json:"check_after_secs"`
	} `json:"processing_info"`
}

// uploadMedia runs the three-step chunked upload: INIT, APPEND per 4MB chunk,
// FINALIZE. Videos may report async processing; we poll STATUS until the
// vendor settles.
func (a *Adapter) uploadMedia(ctx context.Context, filePath string, contentType domainPost.ContentType) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", pkgError.ContentError(fmt.Sprintf("file does not exist: %s", filePath))
	}

	mediaID, err := a.uploadInit(ctx, info.Size(), mediaType(filePath, contentType))
	if err != nil {
		return "", err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", pkgError.ContentError(fmt.Sprintf("unable to open file: %v", err))
	}
	defer file.Close()

	segment := 0
	chunk := make([]byte, uploadChunkSize)
	for {
		n, readErr := file.Read(chunk)
		if n > 0 {
			if err := a.uploadAppend(ctx, mediaID, segment, chunk[:n]); err != nil {
				return "", err
			}
			segment++
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", readErr
		}
	}

	return a.uploadFinalize(ctx, mediaID)
}

func mediaType(filePath string, contentType domainPost.ContentType) string {
	if contentType == domainPost.ContentTypeVideo {
		return "video/mp4"
	}
	if strings.EqualFold(filepath.Ext(filePath), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

func (a *Adapter) uploadInit(ctx context.Context, totalBytes int64, mediaType string) (string, error) {
	form := url.Values{}
	form.Set("command", "INIT")
	form.Set("total_bytes", strconv.FormatInt(totalBytes, 10))
	form.Set("media_type", mediaType)

	resp, err := a.uploadForm(ctx, form, nil)
	if err != nil {
		return "", err
	}
	if resp.MediaIDString == "" {
		return "", pkgError.PermanentPlatformError("twitter: upload INIT returned no media id")
	}
	return resp.MediaIDString, nil
}

func (a *Adapter) uploadAppend(ctx context.Context, mediaID string, segment int, chunk []byte) error {
	form := url.Values{}
	form.Set("command", "APPEND")
	form.Set("media_id", mediaID)
	form.Set("segment_index", strconv.Itoa(segment))

	_, err := a.uploadForm(ctx, form, chunk)
	return err
}

func (a *Adapter) uploadFinalize(ctx context.Context, mediaID string) (string, error) {
	form := url.Values{}
	form.Set("command", "FINALIZE")
	form.Set("media_id", mediaID)

	resp, err := a.uploadForm(ctx, form, nil)
	if err != nil {
		return "", err
	}

	for resp.ProcessingInfo != nil && resp.ProcessingInfo.State != "succeeded" {
		if resp.ProcessingInfo.State == "failed" {
			return "", pkgError.ContentError("twitter: media processing failed")
		}
		wait := time.Duration(resp.ProcessingInfo.CheckAfterSecs) * time.Second
		if wait <= 0 {
			wait = time.Second
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}

		status := url.Values{}
		status.Set("command", "STATUS")
		status.Set("media_id", mediaID)
		resp, err = a.uploadForm(ctx, status, nil)
		if err != nil {
			return "", err
		}
	}

	return mediaID, nil
}

func (a *Adapter) uploadForm(ctx context.Context, form url.Values, chunk []byte) (uploadResponse, error) {
	var body io.Reader
	contentType := "application/x-www-form-urlencoded"

	if chunk != nil {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for key := range form {
			_ = writer.WriteField(key, form.Get(key))
		}
		part, err := writer.CreateFormFile("media", "chunk")
		if err != nil {
			return uploadResponse{}, err
		}
		if _, err := part.Write(chunk); err != nil {
			return uploadResponse{}, err
		}
		if err := writer.Close(); err != nil {
			return uploadResponse{}, err
		}
		body = buf
		contentType = writer.FormDataContentType()
	} else {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.UploadURL, body)
	if err != nil {
		return uploadResponse{}, err
	}
	req.Header.Set("Content-Type", contentType)
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return uploadResponse{}, err
	}
	defer resp.Body.Close()

	if err := a.client.StatusError(resp); err != nil {
		return uploadResponse{}, err
	}

	// APPEND answers 204 with an empty body
	if resp.StatusCode == http.StatusNoContent {
		return uploadResponse{}, nil
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return uploadResponse{}, pkgError.PermanentPlatformError(fmt.Sprintf("twitter: malformed upload response: %v", err))
	}
	return decoded, nil
}

func (a *Adapter) ValidateCredentials(ctx context.Context) error {
	return a.client.GetJSON(ctx, a.APIBaseURL+"/users/me", a.authorize)
}
