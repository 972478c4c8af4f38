package analyze

import (
	"archive/zip"
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"

	"imghist/decoder"
)

// headerSize is enough for filetype to recognize everything we care about.
const headerSize = 262

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}
	return buf[:n], err
}

func fileHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHeader(f)
}

// isArchiveFile checks if file is a zip archive we could walk.
func isArchiveFile(path string) (bool, error) {
	header, err := fileHeader(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(header, "zip"), nil
}

// isImageFile checks if file is an image in one of supported formats.
func isImageFile(path string) (bool, error) {
	header, err := fileHeader(path)
	if err != nil {
		return false, err
	}
	return isImage(header), nil
}

func isImageInArchive(f *zip.File) (bool, error) {
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	header, err := readHeader(r)
	if err != nil {
		return false, err
	}
	return isImage(header), nil
}

func isImage(header []byte) bool {
	_, _, err := decoder.Sniff(header)
	return err == nil
}
