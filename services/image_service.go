package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for uploads
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/MonkyMars/gecho"
	"golang.org/x/image/draw"

	"kubwa_closet_server/lib"
	"kubwa_closet_server/structs"
)

// ImageService stores product photos in two variants: the original
// bytes untouched, and a bounded JPEG for the gallery. Processing is
// best-effort; once the original is safely on disk, a failed resize
// falls back to serving a copy of the original.
type ImageService struct {
	logger *gecho.Logger
	cfg    *structs.Config
}

func NewImageService(logger *gecho.Logger, cfg *structs.Config) *ImageService {
	return &ImageService{
		logger: logger,
		cfg:    cfg,
	}
}

// EnsureDirs creates the upload directories. Called once at startup.
func (s *ImageService) EnsureDirs() error {
	for _, dir := range []string{s.originalDir(), s.webDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// Process stores raw upload bytes and produces the web variant.
// Returns the relative paths of both files.
func (s *ImageService) Process(raw []byte, filename string) (originalPath, webPath string, err error) {
	if len(raw) == 0 {
		return "", "", fmt.Errorf("%w: empty image upload", lib.ErrValidation)
	}
	if int64(len(raw)) > s.cfg.Upload.MaxBytes {
		return "", "", fmt.Errorf("%w: image exceeds %d bytes", lib.ErrValidation, s.cfg.Upload.MaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	base := lib.GenerateImageName()
	originalPath = filepath.Join("original", base+ext)

	if err := os.WriteFile(s.abs(originalPath), raw, 0o644); err != nil {
		return "", "", fmt.Errorf("%w: %v", lib.ErrStorage, err)
	}

	webBytes, webExt, resizeErr := s.makeWebVariant(raw)
	if resizeErr != nil {
		// Keep the gallery working with the original bytes
		s.logger.Warn("Image resize failed, storing original as web variant",
			gecho.Field("error", resizeErr),
			gecho.Field("filename", filename),
		)
		webBytes, webExt = raw, ext
	}

	webPath = filepath.Join("web", base+webExt)
	if err := os.WriteFile(s.abs(webPath), webBytes, 0o644); err != nil {
		s.Remove(originalPath)
		return "", "", fmt.Errorf("%w: %v", lib.ErrStorage, err)
	}

	return originalPath, webPath, nil
}

// makeWebVariant decodes, downscales to fit the configured bounds
// without upscaling, and re-encodes as JPEG
func (s *ImageService) makeWebVariant(raw []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode failed: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	targetW, targetH := FitWithin(width, height, s.cfg.Upload.WebMaxWidth, s.cfg.Upload.WebMaxHeight)

	if targetW != width || targetH != height {
		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: s.cfg.Upload.JpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode failed: %w", err)
	}

	return buf.Bytes(), ".jpg", nil
}

// FitWithin scales (width, height) down to fit inside (maxW, maxH)
// preserving aspect ratio. Images already inside the bounds are left
// alone; this never upscales.
func FitWithin(width, height, maxW, maxH int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	if width <= maxW && height <= maxH {
		return width, height
	}

	ratioW := float64(maxW) / float64(width)
	ratioH := float64(maxH) / float64(height)
	ratio := min(ratioW, ratioH)

	scaledW := int(math.Round(float64(width) * ratio))
	scaledH := int(math.Round(float64(height) * ratio))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	return scaledW, scaledH
}

// Remove deletes stored image files, ignoring paths that are empty or
// already gone. Deletion failures are logged, never returned; the rows
// referencing these files are gone by the time this runs.
func (s *ImageService) Remove(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(s.abs(path)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove image file",
				gecho.Field("error", err),
				gecho.Field("path", path),
			)
		}
	}
}

// Resolve maps a stored relative path to the absolute location on disk
func (s *ImageService) Resolve(relPath string) string {
	return s.abs(relPath)
}

func (s *ImageService) abs(relPath string) string {
	return filepath.Join(s.cfg.Upload.Dir, relPath)
}

func (s *ImageService) originalDir() string {
	return filepath.Join(s.cfg.Upload.Dir, "original")
}

func (s *ImageService) webDir() string {
	return filepath.Join(s.cfg.Upload.Dir, "web")
}
