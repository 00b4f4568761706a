package extractor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// extractDocx joins the body paragraphs of word/document.xml with newlines.
// Paragraphs inside tables and nested text boxes are not body paragraphs.
func extractDocx(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}
	body, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return "", err
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		paragraphs []string
		cur        strings.Builder
		tableDepth int
		paraDepth  int
		runDepth   int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth > 0 {
					continue
				}
				paraDepth++
				if paraDepth == 1 {
					cur.Reset()
				}
			case "r":
				runDepth++
			case "t":
				inText = tableDepth == 0 && paraDepth == 1
			case "tab":
				// w:tab under w:pPr/w:tabs is a tab stop, not text
				if tableDepth == 0 && paraDepth == 1 && runDepth > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if tableDepth == 0 && paraDepth == 1 && runDepth > 0 {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if tableDepth > 0 {
					continue
				}
				if paraDepth == 1 {
					paragraphs = append(paragraphs, cur.String())
				}
				paraDepth--
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
