// Package attachment converts user-selected files into the inline payload
// shape the AI backend consumes: data:<mimeType>;base64,<data>.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrEncode           = errors.New("attachment could not be encoded")
	ErrMalformedDataURI = errors.New("malformed attachment data uri")
)

type Kind string

const (
	KindImage    = Kind("image")
	KindDocument = Kind("document")
)

const pdfMimeType = "application/pdf"

// Encoded is a self-describing inline payload, usable both for on-screen
// preview and for transmission to the AI backend.
type Encoded struct {
	MimeType   string
	Base64Data string
	Filename   string
}

func (e Encoded) Kind() Kind {
	if e.MimeType == pdfMimeType {
		return KindDocument
	}
	return KindImage
}

func (e Encoded) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", e.MimeType, e.Base64Data)
}

// Encode reads the whole file and wraps it as an inline payload. A read
// failure is reported as ErrEncode; callers are expected to degrade to a
// text-only send rather than abort.
func Encode(filename, mimeType string, r io.Reader) (Encoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Encoded{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return Encoded{
		MimeType:   mimeType,
		Base64Data: base64.StdEncoding.EncodeToString(data),
		Filename:   filename,
	}, nil
}

// ParseDataURI validates the exact three-part shape of an inline payload and
// returns its MIME type and base64 data. Any deviation is ErrMalformedDataURI.
func ParseDataURI(uri string) (mimeType, data string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", ErrMalformedDataURI
	}
	mimeType, data, ok = strings.Cut(rest, ";base64,")
	if !ok || mimeType == "" || data == "" {
		return "", "", ErrMalformedDataURI
	}
	return mimeType, data, nil
}
