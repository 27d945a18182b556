package document

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrBinary is returned for content that decodes to text containing NUL bytes.
	ErrBinary = errors.New("binary content")
	// ErrUndeclaredEncoding is returned when the bytes are not UTF-8 and no
	// charset is declared by a BOM or <meta> tag.
	ErrUndeclaredEncoding = errors.New("not valid UTF-8 and no charset declared")
	// ErrInvalidUTF8 is returned when UTF-8 is declared but the bytes are not.
	ErrInvalidUTF8 = errors.New("declared UTF-8 but content is not valid UTF-8")
)

// prescanLimit bounds the bytes searched for a <meta> declaration.
const prescanLimit = 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts raw bytes into UTF-8. A non-empty forced name overrides
// detection. Returns the decoded bytes and the canonical encoding name.
func decode(data []byte, forced string) ([]byte, string, error) {
	if forced != "" {
		enc, err := htmlindex.Get(forced)
		if err != nil {
			return nil, "", fmt.Errorf("unknown encoding %q: %w", forced, err)
		}
		name, _ := htmlindex.Name(enc)
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", name, err)
		}
		return checkText(bytes.TrimPrefix(out, utf8BOM), name)
	}

	if body := bytes.TrimPrefix(data, utf8BOM); utf8.Valid(body) {
		return checkText(body, "utf-8")
	}

	// DetermineEncoding is only certain for a BOM; a <meta> hit and its
	// windows-1252 fallback both come back uncertain, so a declaration is
	// looked up separately.
	enc, name, certain := charset.DetermineEncoding(data, "text/html")
	if !certain {
		label := metaCharset(data)
		if label == "" {
			return nil, "", ErrUndeclaredEncoding
		}
		if enc, name = charset.Lookup(label); enc == nil {
			return nil, "", fmt.Errorf("unknown declared encoding %q", label)
		}
	}
	if name == "utf-8" {
		return nil, "", ErrInvalidUTF8
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	return checkText(out, name)
}

// metaCharset returns the charset label declared by a <meta charset> or
// <meta http-equiv="content-type"> tag in the head of data, or "".
func metaCharset(data []byte) string {
	if len(data) > prescanLimit {
		data = data[:prescanLimit]
	}
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, hasAttr := z.TagName()
			if string(tag) != "meta" {
				continue
			}
			var pragma bool
			var content, label string
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch strings.ToLower(string(key)) {
				case "charset":
					label = strings.TrimSpace(string(val))
				case "http-equiv":
					pragma = strings.EqualFold(strings.TrimSpace(string(val)), "content-type")
				case "content":
					content = string(val)
				}
			}
			if label != "" {
				return label
			}
			if pragma && content != "" {
				if _, params, err := mime.ParseMediaType(content); err == nil && params["charset"] != "" {
					return params["charset"]
				}
			}
		}
	}
}

func checkText(b []byte, name string) ([]byte, string, error) {
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, "", ErrBinary
	}
	return b, name, nil
}

// CheckEncoding reports whether label names a charset the decoder supports.
// An empty label means detection and is always accepted.
func CheckEncoding(label string) error {
	if label == "" {
		return nil
	}
	if _, err := htmlindex.Get(label); err != nil {
		return fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return nil
}
