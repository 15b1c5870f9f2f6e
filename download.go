package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Downloader fetches the order feed to a local file.
type Downloader struct {
	client *resty.Client
	url    string
	path   string
}

func NewDownloader(config *Config) *Downloader {
	client := resty.New().
		SetTimeout(time.Duration(config.DownloadTimeout) * time.Second).
		SetRetryCount(config.DownloadRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(1500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return isNetworkError(err)
			}
			return r != nil && r.StatusCode() >= 500
		})

	return &Downloader{
		client: client,
		url:    config.OrdersCSVURL,
		path:   config.OrdersFile,
	}
}

// Download writes the feed to the configured path, replacing any existing file.
func (d *Downloader) Download(ctx context.Context) (int64, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetOutput(d.path).
		Get(d.url)
	if err != nil {
		return 0, fmt.Errorf("failed to download %s: %w", d.url, err)
	}

	if resp.IsError() {
		os.Remove(d.path)
		return 0, fmt.Errorf("failed to download %s: HTTP %d", d.url, resp.StatusCode())
	}

	info, err := os.Stat(d.path)
	if err != nil {
		return 0, fmt.Errorf("downloaded feed missing at %s: %w", d.path, err)
	}
	return info.Size(), nil
}

// isNetworkError checks if an error is a network/timeout error that should be retried
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "Client.Timeout") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "no route to host")
}
