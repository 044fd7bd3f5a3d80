// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gdrive

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/in-toto/go-gdrivescan/log"
	"github.com/jellydator/ttlcache/v3"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	metadataFields        = "id, name, mimeType, webViewLink, modifiedTime, parents"
	defaultMaxContentSize = 10 * 1024 * 1024 // Drive refuses exports above 10MB
)

// RemoteFile is the metadata record returned by a MetadataLookup.
// MimeType is the document's native type.
type RemoteFile struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime string
	WebViewLink  string
	Parents      []string
}

// MetadataLookup fetches metadata for a document.
type MetadataLookup interface {
	FileMetadata(ctx context.Context, fileID string) (*RemoteFile, error)
}

// ContentExporter downloads a document exported as mimeType. The full
// content is returned or an error, never a partial body.
type ContentExporter interface {
	Export(ctx context.Context, fileID, mimeType string) ([]byte, error)
}

// DocumentClient is everything a scan needs from the document store.
type DocumentClient interface {
	MetadataLookup
	ContentExporter
}

var _ DocumentClient = &Client{}

// Client talks to the Google Drive v3 API with read only scope.
type Client struct {
	service        *drive.Service
	clientOpts     []option.ClientOption
	maxContentSize int64
	cacheTTL       time.Duration
	cache          *ttlcache.Cache[string, RemoteFile]
	cacheDone      chan struct{}
	closeOnce      sync.Once
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientOptions passes options such as credentials, endpoint or HTTP
// client through to the Drive API client.
func WithClientOptions(opts ...option.ClientOption) ClientOption {
	return func(c *Client) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithMaxContentSize sets the largest export, in bytes, that will be read.
func WithMaxContentSize(size int64) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxContentSize = size
		}
	}
}

// WithMetadataCacheTTL caches metadata lookups for ttl. Zero disables caching.
func WithMetadataCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// NewClient creates a Drive client. Credentials are found the usual way for
// Google APIs unless supplied with WithClientOptions.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Client{
		maxContentSize: defaultMaxContentSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	clientOpts := append([]option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}, c.clientOpts...)
	service, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("new google drive client: %w", err)
	}

	c.service = service
	if c.cacheTTL > 0 {
		c.cache = ttlcache.New[string, RemoteFile](
			ttlcache.WithTTL[string, RemoteFile](c.cacheTTL),
			ttlcache.WithDisableTouchOnHit[string, RemoteFile](),
		)

		c.cacheDone = make(chan struct{})
		go func() {
			defer close(c.cacheDone)
			c.cache.Start()
		}()
	}

	return c, nil
}

// Close stops the metadata cache cleanup. The Client must not be used after
// Close returns.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if c.cache == nil {
			return
		}

		// Stop does nothing until Start is running, so keep asking until the
		// cleanup goroutine has exited
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			c.cache.Stop()
			select {
			case <-c.cacheDone:
				return
			case <-ticker.C:
			}
		}
	})

	return nil
}

// FileMetadata requests the fields a scan needs for fileID.
func (c *Client) FileMetadata(ctx context.Context, fileID string) (*RemoteFile, error) {
	if c.cache == nil {
		return c.fetchMetadata(ctx, fileID)
	}

	var lerr error
	loader := ttlcache.LoaderFunc[string, RemoteFile](
		func(cache *ttlcache.Cache[string, RemoteFile], key string) *ttlcache.Item[string, RemoteFile] {
			var rf *RemoteFile
			rf, lerr = c.fetchMetadata(ctx, key)
			if lerr == nil {
				return cache.Set(key, *rf, ttlcache.DefaultTTL)
			}
			return nil
		},
	)

	item := c.cache.Get(fileID, ttlcache.WithLoader[string, RemoteFile](loader))
	if lerr != nil {
		return nil, lerr
	}

	if item == nil {
		return nil, fmt.Errorf("no metadata cached for %s", fileID)
	}

	rf := item.Value()
	rf.Parents = slices.Clone(rf.Parents)
	return &rf, nil
}

func (c *Client) fetchMetadata(ctx context.Context, fileID string) (*RemoteFile, error) {
	log.Debugf("(gdrive) requesting metadata for %s", fileID)
	file, err := c.service.Files.Get(fileID).
		Fields(googleapi.Field(metadataFields)).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed accessing google drive metadata api: %w", err)
	}

	return &RemoteFile{
		ID:           file.Id,
		Name:         file.Name,
		MimeType:     file.MimeType,
		ModifiedTime: file.ModifiedTime,
		WebViewLink:  file.WebViewLink,
		Parents:      file.Parents,
	}, nil
}

// Export downloads fileID converted to mimeType.
func (c *Client) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := c.service.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, &RetrievalError{FileID: fileID, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debugf("(gdrive) error closing export body for %s: %s", fileID, err)
		}
	}()

	// read one byte past the limit so an oversized export is detected instead of truncated
	content, err := io.ReadAll(io.LimitReader(resp.Body, c.maxContentSize+1))
	if err != nil {
		return nil, &RetrievalError{FileID: fileID, Err: err}
	}

	if int64(len(content)) > c.maxContentSize {
		return nil, &RetrievalError{
			FileID: fileID,
			Err:    fmt.Errorf("%w: limit is %d bytes", ErrContentTooLarge, c.maxContentSize),
		}
	}

	detected := mimetype.Detect(content)
	if isText(detected) {
		log.Debugf("(gdrive) exported %d bytes for %s (%s)", len(content), fileID, detected)
	} else {
		log.Warnf("(gdrive) export of %s requested as %s looks like %s", fileID, mimeType, detected)
	}

	return content, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}

	return false
}
