package probe

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// headerDensity extracts the declared pixel density from format-specific
// header segments. Returns empty when the format carries none or the
// segment is absent.
func headerDensity(r io.Reader, format string) string {
	switch format {
	case "jpeg":
		return jpegDensity(bufio.NewReader(r))
	case "png":
		return pngDensity(bufio.NewReader(r))
	default:
		return ""
	}
}

// jpegDensity reads the JFIF APP0 density fields.
// Layout after the 0xFFE0 marker: length(2) "JFIF\0"(5) version(2)
// units(1) xdensity(2) ydensity(2).
func jpegDensity(r *bufio.Reader) string {
	var soi [2]byte
	if _, err := io.ReadFull(r, soi[:]); err != nil || soi[0] != 0xFF || soi[1] != 0xD8 {
		return ""
	}

	for {
		marker, err := r.ReadByte()
		if err != nil || marker != 0xFF {
			return ""
		}
		kind, err := r.ReadByte()
		if err != nil {
			return ""
		}
		// Skip fill bytes.
		for kind == 0xFF {
			if kind, err = r.ReadByte(); err != nil {
				return ""
			}
		}
		// Start of scan: no more header segments.
		if kind == 0xDA || kind == 0xD9 {
			return ""
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return ""
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf[:])) - 2
		if segLen < 0 {
			return ""
		}

		if kind != 0xE0 || segLen < 12 {
			if _, err := io.CopyN(io.Discard, r, int64(segLen)); err != nil {
				return ""
			}
			continue
		}

		seg := make([]byte, segLen)
		if _, err := io.ReadFull(r, seg); err != nil {
			return ""
		}
		if string(seg[:5]) != "JFIF\x00" {
			continue
		}

		units := seg[7]
		x := binary.BigEndian.Uint16(seg[8:10])
		switch units {
		case 1: // dots per inch
			return fmt.Sprintf("%ddpi", x)
		case 2: // dots per cm
			return fmt.Sprintf("%ddpcm", x)
		default: // aspect ratio only
			return ""
		}
	}
}

// pngDensity reads the pHYs chunk, converting pixels-per-metre to dpi.
func pngDensity(r *bufio.Reader) string {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return ""
	}

	for {
		var head [8]byte // length(4) type(4)
		if _, err := io.ReadFull(r, head[:]); err != nil {
			return ""
		}
		chunkLen := binary.BigEndian.Uint32(head[:4])
		chunkType := string(head[4:8])

		if chunkType == "IDAT" || chunkType == "IEND" {
			return ""
		}
		if chunkType != "pHYs" {
			// Skip data + CRC.
			if _, err := io.CopyN(io.Discard, r, int64(chunkLen)+4); err != nil {
				return ""
			}
			continue
		}

		if chunkLen != 9 {
			return ""
		}
		var data [9]byte
		if _, err := io.ReadFull(r, data[:]); err != nil {
			return ""
		}
		if data[8] != 1 { // unit must be metre
			return ""
		}
		ppm := binary.BigEndian.Uint32(data[:4])
		dpi := int(math.Round(float64(ppm) * 0.0254))
		if dpi <= 0 {
			return ""
		}
		return fmt.Sprintf("%ddpi", dpi)
	}
}
