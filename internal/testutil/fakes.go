package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/mroshb/raffle_api/internal/notify"
	"github.com/mroshb/raffle_api/internal/storage"
)

// FakeStorage keeps uploaded objects in memory.
type FakeStorage struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	Deleted   []string
	UploadErr error
	DeleteErr error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Objects: make(map[string][]byte)}
}

func (f *FakeStorage) Upload(_ context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	key := fmt.Sprintf("%s/%d-%s", obj.Prefix, len(f.Objects)+len(f.Deleted)+1, obj.FileName)
	url := "https://img.test/" + key
	f.Objects[url] = obj.Data
	return &storage.UploadResponse{Url: url, Key: key}, nil
}

func (f *FakeStorage) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.Objects, url)
	f.Deleted = append(f.Deleted, url)
	return nil
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	mu        sync.Mutex
	Purchases []notify.PurchaseEvent
	Full      []string
}

func (r *RecordingNotifier) NotifyPurchase(event notify.PurchaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Purchases = append(r.Purchases, event)
}

func (r *RecordingNotifier) NotifyRaffleFull(raffleName string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Full = append(r.Full, raffleName)
}

func (r *RecordingNotifier) Close() {}
