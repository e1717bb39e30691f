package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

type S3Config struct {
	Endpoint       string
	Region         string
	AccessKey      string
	SecretKey      string
	Bucket         string
	PublicEndpoint string
	SSLDisabled    bool
}

type s3Storage struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	cfg      S3Config
}

func NewS3Storage(cfg S3Config) (Storage, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	if cfg.PublicEndpoint == "" {
		cfg.PublicEndpoint = cfg.Endpoint
	}

	return &s3Storage{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		cfg:      cfg,
	}, nil
}

func (s *s3Storage) objectKey(object *UploadObject) string {
	name := path.Base(strings.ReplaceAll(object.FileName, "\\", "/"))
	return fmt.Sprintf("%s/%s-%s", object.Prefix, uuid.NewString(), name)
}

func (s *s3Storage) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.PublicEndpoint, "/"), s.cfg.Bucket, key)
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	key := s.objectKey(object)
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w, bucket %s, key %s", err, s.cfg.Bucket, key)
	}
	return &UploadResponse{Url: s.publicURL(key), Key: key}, nil
}

func (s *s3Storage) Delete(ctx context.Context, rawURL string) error {
	key := KeyFromURL(rawURL, s.cfg.Bucket)
	if key == "" {
		return fmt.Errorf("cannot derive object key from %q", rawURL)
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w, bucket %s, key %s", err, s.cfg.Bucket, key)
	}
	return nil
}

// KeyFromURL recovers the object key from a public path-style URL
// (<endpoint>/<bucket>/<key>). A URL without the bucket segment yields its
// whole path.
func KeyFromURL(rawURL, bucket string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(u.Path, "/")
	if bucket != "" {
		if idx := strings.Index(p, bucket+"/"); idx == 0 || (idx > 0 && p[idx-1] == '/') {
			p = p[idx+len(bucket)+1:]
		}
	}
	return p
}
