// Package export renders the QR card of a short URL and hands it to a file or clipboard.
package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card geometry at 1x. Rendering multiplies everything by Scale.
const (
	Scale       int = 3
	QRSize      int = 200
	Padding     int = 16
	LabelGap    int = 8
	FilePrefix      = "qr-"
	FileExt         = ".png"
	FilePerm        = 0o644
	DirPerm         = 0o755
	DefaultName     = "link"
)

var (
	ErrEmptyURL             = errors.New("empty short URL")
	ErrClipboardUnsupported = errors.New("clipboard is not supported")
)

var (
	schemeRegexp      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	nonAlphanumRegexp = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// LabelColor is color of the text under the QR code.
var LabelColor color.Color = color.Black

// RenderCard draws QR code of shortURL with the URL label under it.
// Background is transparent.
func RenderCard(shortURL string) (image.Image, error) {
	if strings.TrimSpace(shortURL) == "" {
		return nil, ErrEmptyURL
	}

	qr, err := qrcode.New(shortURL, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qr.BackgroundColor = color.Transparent
	qr.ForegroundColor = color.Black
	qr.DisableBorder = true
	qrImg := qr.Image(QRSize * Scale)

	label := renderLabel(schemeRegexp.ReplaceAllString(shortURL, ""))
	labelBounds := label.Bounds()
	labelW := labelBounds.Dx() * Scale
	labelH := labelBounds.Dy() * Scale

	qrW := qrImg.Bounds().Dx()
	qrH := qrImg.Bounds().Dy()
	contentW := qrW
	if labelW > contentW {
		contentW = labelW
	}

	pad := Padding * Scale
	width := contentW + 2*pad
	height := pad + qrH + LabelGap*Scale + labelH + pad

	card := image.NewNRGBA(image.Rect(0, 0, width, height))

	qrX := (width - qrW) / 2
	draw.Draw(card, image.Rect(qrX, pad, qrX+qrW, pad+qrH), qrImg, qrImg.Bounds().Min, draw.Over)

	labelX := (width - labelW) / 2
	labelY := pad + qrH + LabelGap*Scale
	draw.NearestNeighbor.Scale(card, image.Rect(labelX, labelY, labelX+labelW, labelY+labelH), label, labelBounds, draw.Over, nil)

	return card, nil
}

// renderLabel draws text at 1x with the fixed 7x13 face.
func renderLabel(text string) *image.NRGBA {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Src:  image.NewUniform(LabelColor),
		Face: face,
	}
	w := d.MeasureString(text).Ceil()
	if w == 0 {
		w = 1
	}
	metrics := face.Metrics()
	h := (metrics.Ascent + metrics.Descent).Ceil()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d.Dst = img
	d.Dot = fixed.Point26_6{X: 0, Y: metrics.Ascent}
	d.DrawString(text)
	return img
}

// EncodePNG encodes img to PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CardPNG renders the card of shortURL and encodes it to PNG.
func CardPNG(shortURL string) ([]byte, error) {
	img, err := RenderCard(shortURL)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// DownloadFilename returns file name for the card of shortURL,
// e.g. http://sho.rt/abc -> qr-sho_rt_abc.png.
func DownloadFilename(shortURL string) string {
	name := schemeRegexp.ReplaceAllString(strings.TrimSpace(shortURL), "")
	name = nonAlphanumRegexp.ReplaceAllString(name, "_")
	if name == "" {
		name = DefaultName
	}
	return FilePrefix + name + FileExt
}

// SavePNG writes the card of shortURL into dir and returns the file path.
func SavePNG(dir, shortURL string) (string, error) {
	data, err := CardPNG(shortURL)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, DirPerm); err != nil {
		return "", err
	}
	path := filepath.Join(dir, DownloadFilename(shortURL))
	if err = os.WriteFile(path, data, FilePerm); err != nil {
		return "", err
	}
	return path, nil
}

// ImageClipboardInterface is clipboard able to hold PNG images.
type ImageClipboardInterface interface {
	WriteImage(ctx context.Context, data []byte) error
}

// CopyImage writes PNG produced by produce to clipboard in one call.
// produce is called only when clipboard supports images.
func CopyImage(ctx context.Context, clipboard any, produce func() ([]byte, error)) error {
	ic, ok := clipboard.(ImageClipboardInterface)
	if !ok {
		return ErrClipboardUnsupported
	}
	data, err := produce()
	if err != nil {
		return err
	}
	return ic.WriteImage(ctx, data)
}
