package extractor

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var errEmptyDocument = errors.New("document is empty")

func openZip(data []byte) (*zip.Reader, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	return zr, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
