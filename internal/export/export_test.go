package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const TestShortURL string = "http://localhost:8000/abc123"

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name     string
		shortURL string
		want     string
	}{
		{name: "http", shortURL: TestShortURL, want: "qr-localhost_8000_abc123.png"},
		{name: "https", shortURL: "https://sho.rt/Xy9", want: "qr-sho_rt_Xy9.png"},
		{name: "no scheme", shortURL: "sho.rt/a-b", want: "qr-sho_rt_a_b.png"},
		{name: "unicode", shortURL: "https://ш.рф/a", want: "qr-_____a.png"},
		{name: "empty", shortURL: "", want: "qr-link.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadFilename(tt.shortURL))
		})
	}
}

func TestRenderCard(t *testing.T) {
	_, err := RenderCard(" ")
	assert.ErrorIs(t, err, ErrEmptyURL)

	img, err := RenderCard(TestShortURL)
	require.NoError(t, err)

	b := img.Bounds()
	assert.GreaterOrEqual(t, b.Dx(), QRSize*Scale)
	assert.Greater(t, b.Dy(), QRSize*Scale)

	// фон прозрачный
	_, _, _, a := img.At(b.Min.X, b.Min.Y).RGBA()
	assert.Equal(t, uint32(0), a)

	// под QR-кодом есть подпись
	labelTop := Padding*Scale + QRSize*Scale
	opaque := false
	for y := labelTop; y < b.Max.Y && !opaque; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				opaque = true
				break
			}
		}
	}
	assert.True(t, opaque)
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")

	path, err := SavePNG(dir, TestShortURL)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "qr-localhost_8000_abc123.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)

	_, err = SavePNG(dir, "")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

type imageClipboard struct {
	data []byte
	err  error
}

func (c *imageClipboard) WriteImage(_ context.Context, data []byte) error {
	c.data = data
	return c.err
}

func TestCopyImage(t *testing.T) {
	ctx := context.Background()
	produced := 0
	produce := func() ([]byte, error) {
		produced++
		return CardPNG(TestShortURL)
	}

	t.Run("unsupported", func(t *testing.T) {
		assert.ErrorIs(t, CopyImage(ctx, TextClipboard{}, produce), ErrClipboardUnsupported)
		assert.ErrorIs(t, CopyImage(ctx, nil, produce), ErrClipboardUnsupported)
		assert.Equal(t, 0, produced)
	})

	t.Run("supported", func(t *testing.T) {
		c := &imageClipboard{}
		require.NoError(t, CopyImage(ctx, c, produce))
		assert.Equal(t, 1, produced)

		_, err := png.Decode(bytes.NewReader(c.data))
		require.NoError(t, err)
	})

	t.Run("produce error", func(t *testing.T) {
		errProduce := errors.New("render failed")
		c := &imageClipboard{}
		err := CopyImage(ctx, c, func() ([]byte, error) { return nil, errProduce })
		assert.ErrorIs(t, err, errProduce)
		assert.Nil(t, c.data)
	})
}
