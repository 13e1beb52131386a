package facebook

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
	"strings"
	"time"

	"github.com/Kofidell4545/pluseposter/config"
	domainCredential "github.com/Kofidell4545/pluseposter/domains/credential"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	"github.com/Kofidell4545/pluseposter/infrastructure/platform"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"github.com/sirupsen/logrus"
)

type Adapter struct {
	cred   domainCredential.PlatformCredential
	client *platform.Client

	// Overridable in tests
	GraphURL string
}

func NewAdapter(cred domainCredential.PlatformCredential) *Adapter {
	return &Adapter{
		cred:     cred,
		client:   platform.NewClient(domainPost.PlatformFacebook),
		GraphURL: config.FacebookGraphURL,
	}
}

func (a *Adapter) Platform() domainPost.Platform {
	return domainPost.PlatformFacebook
}

func (a *Adapter) endpoint(path string) string {
	return a.GraphURL + "/" + config.GraphAPIVersion + path
}

type graphObject struct {
	ID string `json:"id"`
}

func (a *Adapter) Post(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error) {
	var postID string
	var err error

	switch request.ContentType {
	case domainPost.ContentTypeText:
		postID, err = a.postFeed(ctx, request.Message, "")
	case domainPost.ContentTypeImage, domainPost.ContentTypeVideo:
		// Upload unpublished first, then attach to a feed post so the
		// caption and media land as a single story.
		var mediaID string
		mediaID, err = a.uploadMedia(ctx, request.FilePath, request.ContentType)
		if err != nil {
			break
		}
		postID, err = a.postFeed(ctx, request.Caption, mediaID)
	default:
		return domainPost.PostResult{}, pkgError.ContentError(fmt.Sprintf("facebook: unsupported content type: %s", request.ContentType))
	}
	if err != nil {
		return domainPost.PostResult{}, err
	}

	logrus.WithField("post_id", postID).Info("[FACEBOOK] Post published")

	return domainPost.PostResult{
		Platform: domainPost.PlatformFacebook,
		PostID:   postID,
		Caption:  request.Caption,
		PostedAt: time.Now().UTC(),
	}, nil
}

func (a *Adapter) postFeed(ctx context.Context, message, mediaID string) (string, error) {
	form := url.Values{}
	form.Set("message", message)
	form.Set("access_token", a.cred.APIKey)
	if mediaID != "" {
		attached, err := json.Marshal([]map[string]string{{"media_fbid": mediaID}})
		if err != nil {
			return "", err
		}
		form.Set("attached_media", string(attached))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint("/me/feed"), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return a.decodeObjectID(req)
}

func (a *Adapter) uploadMedia(ctx context.Context, filePath string, contentType domainPost.ContentType) (string, error) {
	path := "/me/photos"
	fileField := "source"
	if contentType == domainPost.ContentTypeVideo {
		path = "/me/videos"
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", pkgError.ContentError(fmt.Sprintf("unable to open file: %v", err))
	}
	defer file.Close()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	_ = writer.WriteField("published", "false")
	_ = writer.WriteField("access_token", a.cred.APIKey)
	part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(path), buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return a.decodeObjectID(req)
}

func (a *Adapter) decodeObjectID(req *http.Request) (string, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := a.client.StatusError(resp); err != nil {
		return "", err
	}

	var obj graphObject
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", pkgError.PermanentPlatformError(fmt.Sprintf("facebook: malformed response: %v", err))
	}
	if obj.ID == "" {
		return "", pkgError.PermanentPlatformError("facebook: response missing object id")
	}
	return obj.ID, nil
}

func (a *Adapter) ValidateCredentials(ctx context.Context) error {
	endpoint := a.endpoint("/me") + "?access_token=" + url.QueryEscape(a.cred.APIKey)
	return a.client.GetJSON(ctx, endpoint, func(*http.Request) {})
}
