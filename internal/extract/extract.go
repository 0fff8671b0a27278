package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extraction failure taxonomy. Every failure out of this package wraps one of
// these sentinels so callers can map them to a response without string matching.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("resume content could not be extracted")
	ErrContentTooShort   = errors.New("resume content is too short")
)

// Format enumerates the accepted document formats.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

// Shorter than this after normalization and the document is not a usable resume.
const minContentLength = 50

// FormatFromFilename resolves the declared format from a filename extension.
// Dispatch is on the declared extension only; the bytes are never sniffed, so a
// mismatched extension surfaces later as ErrExtractionFailed from the decoder.
func FormatFromFilename(fileName string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch Format(ext) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOC:
		return FormatDOC, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q (accepted: pdf, doc, docx)", ErrUnsupportedFormat, ext)
	}
}

// Text extracts normalized plain text from an in-memory document.
// Whitespace runs are collapsed to single spaces regardless of source format so
// PDF line-break noise and Word paragraph breaks look identical downstream.
func Text(data []byte, format Format) (string, error) {
	var (
		raw string
		err error
	)
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOC, FormatDOCX:
		raw, err = extractWord(data)
	default:
		return "", fmt.Errorf("%w: %q (accepted: pdf, doc, docx)", ErrUnsupportedFormat, string(format))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text := normalize(raw)
	if len(text) < minContentLength {
		return "", ErrContentTooShort
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractWord(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document data")
	}
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripWordXML(doc.Editable().GetContent())
}

// stripWordXML reduces the word/document.xml markup to its character data.
func stripWordXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String(), nil
}

func normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
