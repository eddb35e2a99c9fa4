package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// DetectContent sniffs the raw bytes, extracts native text for PDFs and
// marks image files, returning the updated document. Anything that is not a
// PDF or an image is an input fault.
func DetectContent(d Document) (Document, error) {
	out := d.clone()

	mt := mimetype.Detect(out.Stream)
	switch {
	case mt.Is("application/pdf"):
		text, err := readPDFText(out.Stream)
		if err != nil {
			return d, fmt.Errorf("reading PDF text from %s: %w", d.ID, err)
		}
		out.Text = text
	case strings.HasPrefix(mt.String(), "image/"):
		out.IsImage = true
		out.Text = []string{""}
	default:
		return d, fmt.Errorf("%w: detected %s", ErrUnsupportedFileType, mt.String())
	}

	return out, nil
}

// readPDFText extracts the native text layer page by page. Pages without an
// extractable text layer (pure scans) contribute an empty string, keeping
// the page count intact for the scanned-copy heuristic.
func readPDFText(stream []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(stream), int64(len(stream)))
	if err != nil {
		return nil, err
	}

	text := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			text = append(text, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			text = append(text, "")
			continue
		}
		text = append(text, pageText)
	}
	return text, nil
}
