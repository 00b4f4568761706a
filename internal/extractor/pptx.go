package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var reSlidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPptx joins the text of every top-level shape, slide by slide, with newlines.
func extractPptx(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}

	slides, err := slideParts(zr)
	if err != nil {
		return "", err
	}

	var texts []string
	for _, part := range slides {
		raw, err := readZipFile(zr, part)
		if err != nil {
			return "", err
		}
		shapes, err := slideShapeTexts(raw)
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", part, err)
		}
		texts = append(texts, shapes...)
	}
	return strings.Join(texts, "\n"), nil
}

// slideParts returns slide part names in presentation order. The order comes from
// the sldIdLst of ppt/presentation.xml; packages without it fall back to slide numbering.
func slideParts(zr *zip.Reader) ([]string, error) {
	ordered, err := orderedSlideParts(zr)
	if err != nil {
		return nil, err
	}
	if len(ordered) > 0 {
		return ordered, nil
	}

	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, f := range zr.File {
		m := reSlidePart.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{name: f.Name, n: n})
	}
	if len(found) == 0 {
		return nil, errors.New("no slides found in package")
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	parts := make([]string, len(found))
	for i, f := range found {
		parts[i] = f.name
	}
	return parts, nil
}

func orderedSlideParts(zr *zip.Reader) ([]string, error) {
	pres, err := readZipFile(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, nil
	}
	rels, err := readZipFile(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, nil
	}

	targets := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(rels))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse presentation rels: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			targets[id] = resolvePart("ppt", target)
		}
	}

	var parts []string
	dec = xml.NewDecoder(bytes.NewReader(pres))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse presentation.xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sldId" {
			continue
		}
		for _, a := range se.Attr {
			// r:id carries the relationships namespace; the bare id attribute is numeric.
			if a.Name.Local == "id" && a.Name.Space != "" {
				if part, ok := targets[a.Value]; ok {
					parts = append(parts, part)
				}
			}
		}
	}
	return parts, nil
}

func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(base, target))
}

// slideShapeTexts returns one entry per top-level p:sp shape. Group shapes,
// pictures, connectors and graphic frames carry no text of their own.
func slideShapeTexts(raw []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var (
		texts      []string
		cur        strings.Builder
		groupDepth int
		shapeDepth int
		collecting bool
		inBody     bool
		inText     bool
		paragraphs int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "grpSp":
				groupDepth++
			case "sp":
				shapeDepth++
				if shapeDepth == 1 && groupDepth == 0 {
					collecting = true
					cur.Reset()
					paragraphs = 0
				}
			case "txBody":
				inBody = collecting
			case "p":
				if inBody {
					if paragraphs > 0 {
						cur.WriteByte('\n')
					}
					paragraphs++
				}
			case "br":
				if inBody {
					cur.WriteByte('\n')
				}
			case "t":
				inText = inBody
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "grpSp":
				groupDepth--
			case "sp":
				if shapeDepth == 1 && collecting {
					texts = append(texts, cur.String())
					collecting = false
				}
				shapeDepth--
			case "txBody":
				inBody = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return texts, nil
}
