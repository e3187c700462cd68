package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/CardLedger/CardLedger-Backend/src/config"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

var (
	driveURLPattern = regexp.MustCompile(`drive\.google\.com|docs\.google\.com`)
	fileIDPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	}
)

// DriveDownloader fetches spreadsheets from Google Drive with a service account. The
// Drive client is created on first use.
type DriveDownloader struct {
	cfg    config.Drive
	logger log.Logger

	once    sync.Once
	service *drive.Service
	initErr error
}

func NewDriveDownloader(cfg config.Drive, logger log.Logger) *DriveDownloader {
	return &DriveDownloader{cfg: cfg, logger: logger}
}

func (d *DriveDownloader) init(ctx context.Context) error {
	d.once.Do(func() {
		credentials := []byte(d.cfg.CredentialsJSON)
		if d.cfg.CredentialsPath != "" {
			b, err := os.ReadFile(d.cfg.CredentialsPath)
			if err != nil {
				d.initErr = fmt.Errorf("reading drive credentials: %w", err)
				return
			}
			credentials = b
		}
		if len(credentials) == 0 {
			d.initErr = errors.New("GOOGLE_DRIVE_CREDENTIALS_PATH or GOOGLE_DRIVE_CREDENTIALS_JSON must be set")
			return
		}

		creds, err := google.CredentialsFromJSON(ctx, credentials, drive.DriveReadonlyScope)
		if err != nil {
			d.initErr = fmt.Errorf("loading drive credentials: %w", err)
			return
		}
		d.service, err = drive.NewService(ctx, option.WithCredentials(creds))
		if err != nil {
			d.initErr = fmt.Errorf("creating drive service: %w", err)
			return
		}
		level.Info(d.logger).Log("msg", "google drive client ready")
	})
	return d.initErr
}

// Download resolves a Drive share URL and streams the file it points at. The caller closes
// the returned body.
func (d *DriveDownloader) Download(ctx context.Context, fileURL string) (io.ReadCloser, string, error) {
	fileID, err := ExtractFileIDFromURL(fileURL)
	if err != nil {
		return nil, "", err
	}
	if err := d.init(ctx); err != nil {
		return nil, "", err
	}

	file, err := d.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("reading drive file metadata: %w", err)
	}
	if file.MimeType == folderMimeType {
		return nil, "", fmt.Errorf("drive folders cannot be imported: %s", file.Name)
	}

	level.Debug(d.logger).Log("msg", "downloading drive file", "file_id", fileID, "name", file.Name, "size", file.Size)

	resp, err := d.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("downloading drive file: %w", err)
	}
	return resp.Body, file.Name, nil
}

// ExtractFileIDFromURL returns the file id from the usual Drive and Sheets share URLs.
func ExtractFileIDFromURL(url string) (string, error) {
	if !IsGoogleDriveURL(url) {
		return "", fmt.Errorf("not a google drive url: %s", url)
	}
	for _, re := range fileIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no file id in url: %s", url)
}

func IsGoogleDriveURL(url string) bool {
	return driveURLPattern.MatchString(url)
}
