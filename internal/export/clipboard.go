package export

import (
	"github.com/atotto/clipboard"
)

// TextClipboard is system clipboard for plain text.
// It has no image support, so CopyImage reports ErrClipboardUnsupported for it.
type TextClipboard struct{}

// NewTextClipboard returns nil if the platform has no clipboard utility.
func NewTextClipboard() *TextClipboard {
	if clipboard.Unsupported {
		return nil
	}
	return &TextClipboard{}
}

// WriteText copies text.
func (TextClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadText returns clipboard contents.
func (TextClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}
