package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF reads a RIFF PAL stream. Streams carrying several data chunks
// are merged into one palette.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var pal Palette
	for chunk := 0; ; chunk++ {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return pal, fmt.Errorf("could not read chunk %d: %w", chunk, err)
		}
		if id != dataType {
			return pal, fmt.Errorf("unsupported chunk type %s at chunk %d", id, chunk)
		}

		colors, err := readLogPalette(data, chunk)
		if err != nil {
			return pal, err
		}
		pal = append(pal, FromColors(colors)...)
	}

	if len(pal) == 0 {
		return nil, fmt.Errorf("RIFF stream holds no palette data")
	}
	return pal, nil
}

func readLogPalette(r io.Reader, chunk int) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header of chunk %d: %w", chunk, err)
	}

	ver := binary.BigEndian.Uint16(hdr[:2])
	if ver != 3 {
		return nil, fmt.Errorf("unsupported palette version %d in chunk %d", ver, chunk)
	}

	count := binary.LittleEndian.Uint16(hdr[2:])
	res := make(color.Palette, count)
	var entry [4]byte
	for i := uint16(0); i < count; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("could not read color %d/%d of chunk %d: %w", i, count, chunk, err)
		}
		res[i] = color.NRGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xff}
	}
	return res, nil
}

// WriteRIFF writes the palette as a single-chunk RIFF PAL stream and
// reports the number of colors written.
func (p Palette) WriteRIFF(w io.Writer) (int64, error) {
	colors := p.Colors()

	// form type + chunk header + palVersion/palNumEntries + entries
	size := 4 + 8 + 4 + len(colors)*4
	hdr := make([]byte, 0, 12)
	hdr = append(hdr, 'R', 'I', 'F', 'F')
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(size))
	hdr = append(hdr, palType[:]...)
	if err := writeAll(w, hdr); err != nil {
		return 0, fmt.Errorf("could not write RIFF header: %w", err)
	}

	chunk := make([]byte, 0, 12)
	chunk = append(chunk, dataType[:]...)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(4+len(colors)*4))
	chunk = append(chunk, 0x00, 0x03) // palVersion, big endian
	chunk = binary.LittleEndian.AppendUint16(chunk, uint16(len(colors)))
	if err := writeAll(w, chunk); err != nil {
		return 0, fmt.Errorf("could not write data chunk header: %w", err)
	}

	for i, col := range colors {
		c := col.(color.NRGBA)
		if err := writeAll(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(colors), err)
		}
	}

	return int64(len(colors)), nil
}

func writeAll(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}
	return nil
}
