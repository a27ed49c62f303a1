package sections

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	pkgerrors "github.com/pkg/errors"
)

var (
	ErrNotImage    = errors.New("please select an image file")
	ErrImageTooBig = errors.New("image is too large")
)

// ImageDataURL reads an uploaded file and returns it as a data URL. The
// content type is sniffed from the bytes, not taken from the client.
func ImageDataURL(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh.Size > maxBytes {
		return "", sizeError(maxBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return "", pkgerrors.Wrapf(err, "open upload %q", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", pkgerrors.Wrapf(err, "read upload %q", fh.Filename)
	}
	return EncodeImage(data, maxBytes)
}

// EncodeImage validates data as an image of at most maxBytes and returns its
// data URL.
func EncodeImage(data []byte, maxBytes int64) (string, error) {
	if int64(len(data)) > maxBytes {
		return "", sizeError(maxBytes)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotImage
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func sizeError(maxBytes int64) error {
	return fmt.Errorf("%w: the limit is %s", ErrImageTooBig, humanize.IBytes(uint64(maxBytes)))
}
