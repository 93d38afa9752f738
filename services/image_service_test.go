package services

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/MonkyMars/gecho"

	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		maxW, maxH     int
		wantW, wantH   int
	}{
		{"already inside bounds", 400, 300, 800, 600, 400, 300},
		{"exact fit untouched", 800, 600, 800, 600, 800, 600},
		{"landscape scaled by width", 1600, 1200, 800, 600, 800, 600},
		{"portrait scaled by height", 600, 1800, 800, 600, 200, 600},
		{"wide banner scaled by width", 2400, 300, 800, 600, 800, 100},
		{"extreme ratio clamped to one pixel", 1, 10000, 800, 600, 1, 600},
		{"zero dimensions untouched", 0, 0, 800, 600, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := FitWithin(tt.width, tt.height, tt.maxW, tt.maxH)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("FitWithin(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.width, tt.height, tt.maxW, tt.maxH, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func newTestImageService(t *testing.T) *ImageService {
	t.Helper()

	cfg := &structs.Config{
		Upload: &structs.UploadConfig{
			Dir:          t.TempDir(),
			MaxBytes:     5 * 1024 * 1024,
			WebMaxWidth:  800,
			WebMaxHeight: 600,
			JpegQuality:  85,
		},
	}

	svc := NewImageService(gecho.NewDefaultLogger(), cfg)
	if err := svc.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() failed: %v", err)
	}
	return svc
}

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessStoresBothVariants(t *testing.T) {
	svc := newTestImageService(t)
	raw := encodeTestJPEG(t, 1600, 1200)

	originalPath, webPath, err := svc.Process(raw, "photo.jpg")
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	stored, err := os.ReadFile(svc.Resolve(originalPath))
	if err != nil {
		t.Fatalf("original not stored: %v", err)
	}
	if !bytes.Equal(stored, raw) {
		t.Error("original bytes were modified")
	}

	webBytes, err := os.ReadFile(svc.Resolve(webPath))
	if err != nil {
		t.Fatalf("web variant not stored: %v", err)
	}

	web, _, err := image.Decode(bytes.NewReader(webBytes))
	if err != nil {
		t.Fatalf("web variant is not a decodable image: %v", err)
	}
	bounds := web.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Errorf("web variant is %dx%d, want 800x600", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessKeepsSmallImagesUnscaled(t *testing.T) {
	svc := newTestImageService(t)
	raw := encodeTestJPEG(t, 320, 240)

	_, webPath, err := svc.Process(raw, "small.jpg")
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	webBytes, err := os.ReadFile(svc.Resolve(webPath))
	if err != nil {
		t.Fatalf("web variant not stored: %v", err)
	}
	web, _, err := image.Decode(bytes.NewReader(webBytes))
	if err != nil {
		t.Fatalf("web variant is not a decodable image: %v", err)
	}
	bounds := web.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("web variant is %dx%d, want 320x240", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessFallsBackOnUndecodableUpload(t *testing.T) {
	svc := newTestImageService(t)
	raw := []byte("not an image at all")

	originalPath, webPath, err := svc.Process(raw, "broken.jpg")
	if err != nil {
		t.Fatalf("Process() should fall back, got error: %v", err)
	}

	webBytes, err := os.ReadFile(svc.Resolve(webPath))
	if err != nil {
		t.Fatalf("web variant not stored: %v", err)
	}
	if !bytes.Equal(webBytes, raw) {
		t.Error("fallback web variant should be a copy of the original bytes")
	}
	if originalPath == "" {
		t.Error("original path missing")
	}
}

func TestProcessRejectsBadUploads(t *testing.T) {
	svc := newTestImageService(t)

	if _, _, err := svc.Process(nil, "empty.jpg"); !errors.Is(err, lib.ErrValidation) {
		t.Errorf("empty upload: got %v, want validation error", err)
	}

	oversized := make([]byte, svc.cfg.Upload.MaxBytes+1)
	if _, _, err := svc.Process(oversized, "huge.jpg"); !errors.Is(err, lib.ErrValidation) {
		t.Errorf("oversized upload: got %v, want validation error", err)
	}
}

func TestRemoveIgnoresMissingFiles(t *testing.T) {
	svc := newTestImageService(t)

	// Neither the empty path nor the nonexistent file should panic or
	// touch anything else.
	svc.Remove("", filepath.Join("original", "gone.jpg"))

	raw := encodeTestJPEG(t, 100, 100)
	originalPath, webPath, err := svc.Process(raw, "photo.jpg")
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	svc.Remove(originalPath, webPath)

	if _, err := os.Stat(svc.Resolve(originalPath)); !os.IsNotExist(err) {
		t.Error("original should be deleted")
	}
	if _, err := os.Stat(svc.Resolve(webPath)); !os.IsNotExist(err) {
		t.Error("web variant should be deleted")
	}
}
