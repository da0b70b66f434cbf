package enrollment

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "udid-retriever/pkg/errors"
)

const (
	plistProlog  = `<?xml version="1.0"`
	plistClosing = `</plist>`
)

// ExtractPlist locates the plist document embedded in a raw callback
// body. Devices wrap the plist in a PKCS#7 signature envelope, so the
// body is scanned for the first XML prolog and the first closing plist
// tag; the document runs between the two, inclusive.
func ExtractPlist(body string) (string, error) {
	start := strings.Index(body, plistProlog)
	end := strings.Index(body, plistClosing)

	if start == -1 || end == -1 || end < start {
		return "", apperrors.ErrInvalidPayload
	}

	return body[start : end+len(plistClosing)], nil
}

// ParseAttributes decodes a plist document into a flat attribute map.
// The format does not nest values under keys: it emits one run of
// <key> elements and one run of <string> elements, aligned by
// position. The i-th key is paired with the i-th string; trailing keys
// with no string at the same index are dropped.
func ParseAttributes(plistData string) (map[string]string, error) {
	dec := xml.NewDecoder(strings.NewReader(plistData))

	var keys, values []string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrParseFailure, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "key":
			var text string
			if err := dec.DecodeElement(&text, &se); err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrParseFailure, err)
			}
			keys = append(keys, text)
		case "string":
			var text string
			if err := dec.DecodeElement(&text, &se); err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrParseFailure, err)
			}
			values = append(values, text)
		}
	}

	attrs := make(map[string]string, len(keys))
	for i, key := range keys {
		if i >= len(values) {
			break
		}
		attrs[key] = values[i]
	}

	return attrs, nil
}
