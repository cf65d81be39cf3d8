// Package service provides content and image loading for the views.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoThumbnail is returned when a photo carries no embedded EXIF thumbnail.
var ErrNoThumbnail = errors.New("no embedded thumbnail")

// ImageInfo holds metadata about a map or product image.
type ImageInfo struct {
	Width    int
	Height   int
	Format   string
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// ImageService loads the map backdrop and product photos.
type ImageService struct {
	// Root resolves relative image paths from the content file.
	Root       string
	Extensions map[string]bool
}

// NewImageService creates an ImageService resolving relative paths against root.
func NewImageService(root string) *ImageService {
	return &ImageService{
		Root:       root,
		Extensions: map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true},
	}
}

// Resolve turns a content path into a filesystem path.
func (is *ImageService) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || is.Root == "" {
		return path
	}
	return filepath.Join(is.Root, path)
}

// Supported reports whether the file extension is one the decoders handle.
func (is *ImageService) Supported(path string) bool {
	return is.Extensions[strings.ToLower(filepath.Ext(path))]
}

// GetImageInfo reads an image file and extracts metadata without decoding the full image.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, error) {
	file, err := os.Open(is.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	// Reset file pointer to read EXIF data
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seeking file for exif: %w", err)
	}

	exifData, _ := exif.Decode(file) // EXIF is optional, maps are usually PNG

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}

	info := &ImageInfo{
		Width:    config.Width,
		Height:   config.Height,
		Format:   format,
		Size:     fileInfo.Size(),
		ModTime:  fileInfo.ModTime(),
		EXIFData: make(map[string]string),
	}

	if exifData != nil {
		if model, err := exifData.Get(exif.Model); err == nil {
			info.EXIFData["Camera Model"] = model.String()
		}
		if lat, long, err := exifData.LatLong(); err == nil {
			info.EXIFData["GPS"] = fmt.Sprintf("%.5f,%.5f", lat, long)
		}
		if tm, err := exifData.DateTime(); err == nil {
			info.EXIFData["Taken"] = tm.Format(time.RFC3339)
		}
	}

	return info, nil
}

// LoadImage decodes a full image.
func (is *ImageService) LoadImage(path string) (image.Image, error) {
	if !is.Supported(path) {
		return nil, fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
	file, err := os.Open(is.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// GetEmbeddedThumbnail reads the EXIF thumbnail of a product photo.
func (is *ImageService) GetEmbeddedThumbnail(path string) (image.Image, error) {
	file, err := os.Open(is.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("opening file for thumbnail: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return nil, ErrNoThumbnail
	}

	thumbBytes, err := x.JpegThumbnail()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoThumbnail, err)
	}

	img, _, err := image.Decode(bytes.NewReader(thumbBytes))
	return img, err
}

// LoadThumbnail prefers the embedded EXIF thumbnail and falls back to decoding the whole photo.
func (is *ImageService) LoadThumbnail(path string) (image.Image, error) {
	if img, err := is.GetEmbeddedThumbnail(path); err == nil {
		return img, nil
	}
	return is.LoadImage(path)
}
