package storage

import "context"

// Storage hosts raffle images and hands back their public URL.
type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	Delete(ctx context.Context, url string) error
}

type UploadObject struct {
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url string
	Key string
}
