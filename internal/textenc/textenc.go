package textenc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// ReadFile reads a subtitle file and returns its content as UTF-8, decoding
// common legacy charsets and stripping any byte-order mark. Subtitle files
// in the wild are frequently not UTF-8.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}
	decoded, err := Decode(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return decoded, nil
}

// Decode converts raw subtitle bytes to a UTF-8 string, using charset
// detection for the legacy encodings that still show up in subtitle files.
func Decode(raw []byte) (string, error) {
	detector := chardet.NewTextDetector()
	if best, err := detector.DetectBest(raw); err == nil {
		if enc := encodingFor(best.Charset); enc != nil {
			converted, err := decodeToUTF8(raw, enc)
			if err != nil {
				return "", err
			}
			raw = converted
		}
	}

	stripped, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(raw)))
	if err != nil {
		return "", err
	}
	return string(stripped), nil
}

func encodingFor(charset string) encoding.Encoding {
	switch charset {
	case "GB-18030":
		return simplifiedchinese.GB18030
	case "Big5":
		return traditionalchinese.Big5
	case "ISO-8859-1":
		return charmap.ISO8859_1
	case "windows-1252":
		return charmap.Windows1252
	}
	return nil
}

func decodeToUTF8(raw []byte, enc encoding.Encoding) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
	return io.ReadAll(r)
}
