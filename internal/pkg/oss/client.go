// Package oss uploads database snapshots to an OSS bucket, for installs
// that keep backups on self-hosted object storage instead of Google Drive.
package oss

import (
	"fmt"
	"io"
	"path"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/bmarinov/gym_go_server/config"
)

type Client struct {
	bucket *oss.Bucket
	prefix string
}

func NewClient(cfg *config.OSSConfig) (*Client, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &Client{
		bucket: bucket,
		prefix: cfg.Prefix,
	}, nil
}

// UploadBackup stores a snapshot under the configured prefix and returns
// the object key.
func (c *Client) UploadBackup(name string, data io.Reader) (string, error) {
	objectKey := name
	if c.prefix != "" {
		objectKey = path.Join(c.prefix, name)
	}

	err := c.bucket.PutObject(objectKey, data, oss.ContentType("application/octet-stream"))
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	return objectKey, nil
}

// ListBackups returns the object keys under the backup prefix.
func (c *Client) ListBackups() ([]string, error) {
	var keys []string
	marker := ""
	for {
		result, err := c.bucket.ListObjects(oss.Prefix(c.prefix), oss.Marker(marker))
		if err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", err)
		}
		for _, obj := range result.Objects {
			keys = append(keys, obj.Key)
		}
		if !result.IsTruncated {
			break
		}
		marker = result.NextMarker
	}
	return keys, nil
}

// Delete removes one stored backup.
func (c *Client) Delete(objectKey string) error {
	if err := c.bucket.DeleteObject(objectKey); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
