package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = fmt.Errorf("format gambar tidak didukung")

/* =======================================================================
   Konfigurasi WebP
======================================================================= */

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	TargetKB int     // 0 = pakai Quality saja
	Quality  float32 // quality default / tebakan awal
	MinQ     float32 // batas bawah binary search
	MaxQ     float32
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80, MinQ: 45, MaxQ: 85}
}

// IsImage: sniff 512 byte pertama, fallback ke ekstensi.
func IsImage(head []byte, filename string) bool {
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.HasPrefix(http.DetectContentType(head), "image/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	ct := http.DetectContentType(all[:min(len(all), 512)])
	if strings.Contains(ct, "webp") || strings.EqualFold(filepath.Ext(filename), ".webp") {
		return webp.Decode(bytes.NewReader(all))
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}
	return img, nil
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	if opt.TargetKB <= 0 {
		return encodeQ(q)
	}

	// binary search quality sampai <= target
	target := opt.TargetKB * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 || high < low {
		high = 85
	}
	var best []byte
	for i := 0; i < 7; i++ {
		mid := (low + high) / 2
		data, err := encodeQ(mid)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = mid
		} else {
			high = mid
		}
	}
	if best == nil {
		return encodeQ(low)
	}
	return best, nil
}

// ConvertToWebP: baca → decode → resize (opsional) → encode webp
func ConvertToWebP(r io.Reader, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	if opt.MaxW > 0 || opt.MaxH > 0 {
		b := img.Bounds()
		if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
			img = imaging.Fit(img, nonZero(opt.MaxW, b.Dx()), nonZero(opt.MaxH, b.Dy()), imaging.CatmullRom)
		}
	}
	return encodeToWebP(img, opt)
}

func nonZero(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
