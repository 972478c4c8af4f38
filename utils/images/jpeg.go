package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

type DpiType uint8

const (
	DpiNoUnits DpiType = iota
	DpiPxPerInch
	DpiPxPerSm
)

var (
	app0Marker = []byte{0xFF, 0xE0}
	jfifHeader = []byte{0x4A, 0x46, 0x49, 0x46, 0x00, 0x01, 0x02} // jfif + version
)

// EnsureJFIFAPP0 inserts JFIF APP0 marker segment with requested density if
// it is missing. Go jpeg encoder never writes one and some viewers then guess
// density wrong.
func EnsureJFIFAPP0(jpegData []byte, dpit DpiType, xdensity, ydensity int16) ([]byte, bool, error) {
	if len(jpegData) < 4 {
		return nil, false, errors.New("jpeg too small")
	}
	if jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, false, errors.New("not a jpeg")
	}
	if bytes.Equal(jpegData[2:4], app0Marker) {
		return jpegData, false, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(jpegData)+18))
	buf.Write(jpegData[:2])
	buf.Write(app0Marker)
	_ = binary.Write(buf, binary.BigEndian, uint16(0x10)) // length
	buf.Write(jfifHeader)
	buf.WriteByte(byte(dpit))
	_ = binary.Write(buf, binary.BigEndian, uint16(xdensity))
	_ = binary.Write(buf, binary.BigEndian, uint16(ydensity))
	_ = binary.Write(buf, binary.BigEndian, uint16(0)) // no thumbnail
	buf.Write(jpegData[2:])
	return buf.Bytes(), true, nil
}

// EncodeJPEG encodes img with requested quality and stamps density in pixels
// per inch.
func EncodeJPEG(img image.Image, quality int, dpi int16) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	out, _, err := EnsureJFIFAPP0(buf.Bytes(), DpiPxPerInch, dpi, dpi)
	if err != nil {
		return nil, err
	}
	return out, nil
}
