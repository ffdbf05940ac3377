package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// The validation paths below must reject before any network call, so a nil S3
// client is safe here.
func newAssetFixture() AssetService {
	return NewAssetService(nil, "catalog", "https://assets.test", zerolog.Nop())
}

func TestAssetStoreRejectsNonImage(t *testing.T) {
	svc := newAssetFixture()
	att := &Attachment{
		Filename:    "syllabus.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Body:        strings.NewReader("pdf"),
	}
	if _, err := svc.Store(context.Background(), att); !errors.Is(err, ErrInvalidAttachment) {
		t.Fatalf("expected ErrInvalidAttachment for non-image, got %v", err)
	}
}

func TestAssetStoreRejectsOversizedImage(t *testing.T) {
	svc := newAssetFixture()
	att := &Attachment{
		Filename:    "huge.png",
		ContentType: "image/png",
		Size:        maxAttachmentSize + 1,
		Body:        strings.NewReader("x"),
	}
	if _, err := svc.Store(context.Background(), att); !errors.Is(err, ErrInvalidAttachment) {
		t.Fatalf("expected ErrInvalidAttachment for oversized image, got %v", err)
	}
}

func TestAssetStoreRejectsEmptyAttachment(t *testing.T) {
	svc := newAssetFixture()
	att := &Attachment{
		Filename:    "empty.png",
		ContentType: "image/png",
		Size:        0,
		Body:        strings.NewReader(""),
	}
	if _, err := svc.Store(context.Background(), att); !errors.Is(err, ErrInvalidAttachment) {
		t.Fatalf("expected ErrInvalidAttachment for empty attachment, got %v", err)
	}
	if _, err := svc.Store(context.Background(), nil); !errors.Is(err, ErrInvalidAttachment) {
		t.Fatalf("expected ErrInvalidAttachment for nil attachment, got %v", err)
	}
}

func TestAssetRemoveIgnoresEmptyURL(t *testing.T) {
	svc := newAssetFixture()
	if err := svc.Remove(context.Background(), ""); err != nil {
		t.Fatalf("expected empty URL to be a no-op, got %v", err)
	}
}
