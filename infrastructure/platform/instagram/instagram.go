package instagram

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
		client:   platform.NewClient(domainPost.PlatformInstagram),
		GraphURL: config.InstagramGraphURL,
	}
}

func (a *Adapter) Platform() domainPost.Platform {
	return domainPost.PlatformInstagram
}

func (a *Adapter) endpoint(path string) string {
	return a.GraphURL + "/" + config.GraphAPIVersion + path
}

type graphObject struct {
	ID string `json:"id"`
}

// Post publishes media through the two-step container flow: create a media
// container with the file and caption, then publish the container.
func (a *Adapter) Post(ctx context.Context, request domainPost.PostRequest) (domainPost.PostResult, error) {
	if !request.ContentType.IsMedia() {
		return domainPost.PostResult{}, pkgError.ContentError("instagram does not support text-only posts")
	}

	containerID, err := a.createContainer(ctx, request)
	if err != nil {
		return domainPost.PostResult{}, err
	}

	postID, err := a.publishContainer(ctx, containerID)
	if err != nil {
		return domainPost.PostResult{}, err
	}

	logrus.WithField("post_id", postID).Info("[INSTAGRAM] Media published")

	return domainPost.PostResult{
		Platform: domainPost.PlatformInstagram,
		PostID:   postID,
		Caption:  request.Caption,
		PostedAt: time.Now().UTC(),
	}, nil
}

func (a *Adapter) createContainer(ctx context.Context, request domainPost.PostRequest) (string, error) {
	file, err := os.Open(request.FilePath)
	if err != nil {
		return "", pkgError.ContentError(fmt.Sprintf("unable to open file: %v", err))
	}
	defer file.Close()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	_ = writer.WriteField("caption", request.Caption)
	_ = writer.WriteField("access_token", a.cred.APIKey)
	if request.ContentType == domainPost.ContentTypeVideo {
		_ = writer.WriteField("media_type", "REELS")
	}
	part, err := writer.CreateFormFile("source", filepath.Base(request.FilePath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint("/me/media"), buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return a.decodeObjectID(req)
}

func (a *Adapter) publishContainer(ctx context.Context, containerID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", a.cred.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint("/me/media_publish"), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		return "", pkgError.PermanentPlatformError(fmt.Sprintf("instagram: malformed response: %v", err))
	}
	if obj.ID == "" {
		return "", pkgError.PermanentPlatformError("instagram: response missing object id")
	}
	return obj.ID, nil
}

func (a *Adapter) ValidateCredentials(ctx context.Context) error {
	endpoint := a.endpoint("/me") + "?access_token=" + url.QueryEscape(a.cred.APIKey)
	return a.client.GetJSON(ctx, endpoint, func(*http.Request) {})
}
