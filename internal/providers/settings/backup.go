package settings

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic starts every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// maxBackupSize bounds a decompressed backup.
const maxBackupSize = 64 << 20

// BackupName is the download name of a backup taken at t.
func BackupName(t time.Time, compressed bool) string {
	name := fmt.Sprintf("ros-backup-%s.json", t.Format("2006-01-02"))
	if compressed {
		name += ".gz"
	}
	return name
}

// Compress gzips a snapshot.
func Compress(snapshot []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(snapshot); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}
	return buf.Bytes(), nil
}

// IsCompressed reports whether data is a gzip stream.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Decompress returns the snapshot inside a backup. Uncompressed backups
// are returned as is.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open compressed backup: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxBackupSize+1))
	if err != nil {
		return nil, fmt.Errorf("read compressed backup: %w", err)
	}
	if len(out) > maxBackupSize {
		return nil, fmt.Errorf("backup exceeds %d bytes", maxBackupSize)
	}
	return out, nil
}
