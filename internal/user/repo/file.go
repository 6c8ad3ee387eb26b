package repo

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/MisterMaks/rdrt-client/internal/user"
)

type producer struct {
	file   *os.File
	writer *bufio.Writer
}

func newProducer(filename string) (*producer, error) {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	return &producer{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (p *producer) close() error {
	return p.file.Close()
}

func (p *producer) writeEntry(entry *user.StorageEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if _, err := p.writer.Write(data); err != nil {
		return err
	}

	if err := p.writer.WriteByte('\n'); err != nil {
		return err
	}

	return p.writer.Flush()
}

type consumer struct {
	file    *os.File
	scanner *bufio.Scanner
}

func newConsumer(filename string) (*consumer, error) {
	// токен хранится в домашнем каталоге, каталога может ещё не быть
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filename, os.O_RDONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}

	return &consumer{
		file:    file,
		scanner: bufio.NewScanner(file),
	}, nil
}

func (c *consumer) close() error {
	return c.file.Close()
}

func (c *consumer) readEntry() (*user.StorageEntry, error) {
	if !c.scanner.Scan() {
		return nil, c.scanner.Err()
	}
	data := c.scanner.Bytes()

	entry := user.StorageEntry{}
	err := json.Unmarshal(data, &entry)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// readItems replays the journal, later entries win.
func (c *consumer) readItems() (map[string]string, error) {
	items := map[string]string{}
	for {
		entry, err := c.readEntry()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return items, nil
		}
		if entry.Removed {
			delete(items, entry.Key)
			continue
		}
		items[entry.Key] = entry.Value
	}
}
