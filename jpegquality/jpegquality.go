// Package jpegquality estimates quality setting JPEG image was encoded with by
// looking at its luminance quantization table.
package jpegquality

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrInvalidJPEG  = errors.New("invalid JPEG header")
	ErrWrongTable   = errors.New("wrong size for quantization table")
	ErrShortSegment = errors.New("short segment length")
	ErrShortDQT     = errors.New("section DQT is too short")
	ErrNoDQT        = errors.New("no quantization table found")
)

const (
	markerSOI = 0xffd8
	markerEOI = 0xffd9
	markerSOS = 0xffda
	markerDQT = 0xffdb

	blockSize = 64
)

// IJG standard luminance table, quality 50.
var stdLuminance = [blockSize]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// sums of scaled luminance table for every quality 1-100, table entries are
// compared as a sum so zigzag order does not matter.
var stdSums = func() (sums [101]int) {
	for q := 1; q <= 100; q++ {
		scale := 200 - 2*q
		if q < 50 {
			scale = 5000 / q
		}
		for _, v := range stdLuminance {
			sums[q] += min(max((v*scale+50)/100, 1), 255)
		}
	}
	return
}()

type jpegReader struct {
	rs      io.ReadSeeker
	tables  map[int][]int
	quality int
}

// New reads JPEG from rs (from the very beginning) and estimates its quality.
func New(rs io.ReadSeeker) (*jpegReader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	jr := &jpegReader{rs: rs, tables: make(map[int][]int)}
	if err := jr.readTables(); err != nil {
		return nil, err
	}
	jr.quality = estimate(jr.tables[0])
	return jr, nil
}

func NewWithBytes(data []byte) (*jpegReader, error) {
	return New(bytes.NewReader(data))
}

// Quality returns estimated quality 1-100.
func (jr *jpegReader) Quality() int {
	return jr.quality
}

// readMarker returns next two bytes as big endian value, 0 on read failure.
func (jr *jpegReader) readMarker() int {
	var buf [2]byte
	if _, err := io.ReadFull(jr.rs, buf[:]); err != nil {
		return 0
	}
	return int(binary.BigEndian.Uint16(buf[:]))
}

func (jr *jpegReader) readTables() error {
	if jr.readMarker() != markerSOI {
		return ErrInvalidJPEG
	}
	for {
		marker := jr.readMarker()
		switch marker {
		case 0:
			return io.ErrUnexpectedEOF
		case markerEOI, markerSOS:
			if _, ok := jr.tables[0]; !ok {
				return ErrNoDQT
			}
			return nil
		}

		length := jr.readMarker()
		if length < 2 {
			return ErrShortSegment
		}
		if marker != markerDQT {
			if _, err := jr.rs.Seek(int64(length-2), io.SeekCurrent); err != nil {
				return err
			}
			continue
		}

		segment := make([]byte, length-2)
		if _, err := io.ReadFull(jr.rs, segment); err != nil {
			return ErrShortDQT
		}
		if err := jr.parseDQT(segment); err != nil {
			return err
		}
	}
}

// parseDQT handles segment which may carry several tables.
func (jr *jpegReader) parseDQT(segment []byte) error {
	for len(segment) > 0 {
		precision, index := int(segment[0]>>4), int(segment[0]&0x0f)
		if precision > 1 || index > 3 {
			return ErrWrongTable
		}
		segment = segment[1:]

		size := blockSize * (precision + 1)
		if len(segment) < size {
			return ErrShortDQT
		}
		table := make([]int, blockSize)
		for i := range table {
			if precision == 0 {
				table[i] = int(segment[i])
			} else {
				table[i] = int(binary.BigEndian.Uint16(segment[2*i:]))
			}
		}
		jr.tables[index] = table
		segment = segment[size:]
	}
	return nil
}

// estimate picks quality with closest scaled table, highest one wins on tie.
func estimate(table []int) int {
	sum := 0
	for _, v := range table {
		sum += v
	}
	best, bestDiff := 100, -1
	for q := 100; q >= 1; q-- {
		diff := stdSums[q] - sum
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = q, diff
		}
	}
	return best
}
