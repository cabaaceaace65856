package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// DownloadImage downloads the image from the internet and saves it into a temporary file.
func DownloadImage(ctx context.Context, uri string) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URI %s: %w", uri, err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI %s: status %v", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "image")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary file: %w", err)
	}
	// The temporary file is removed on every failure, only the caller owns it on success.
	discard := func(err error) (*os.File, error) {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return nil, err
	}

	// Copy the image binary data into the temporary file.
	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		return discard(fmt.Errorf("unable to copy the source URI into the destination file: %w", err))
	}
	if _, err := tmpfile.Seek(0, io.SeekStart); err != nil {
		return discard(err)
	}

	if !IsImage(tmpfile.Name()) {
		return discard(fmt.Errorf("the downloaded file is not a valid image type"))
	}

	return tmpfile, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	if _, err := url.ParseRequestURI(uri); err != nil {
		return false
	}

	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}
