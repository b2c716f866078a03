package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// multipartMemory bounds how much of a multipart body is held in memory;
// RequestSizeMiddleware bounds the body as a whole.
const multipartMemory = 1 << 20

// parseForm returns the fields posted in the request body. Query string
// parameters are not part of a submission.
func parseForm(r *http.Request) (url.Values, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return url.Values{}, nil
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, err)
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	case "application/x-www-form-urlencoded":
		charset := strings.ToLower(params["charset"])
		if charset == "" || charset == "utf-8" || charset == "utf8" {
			if err := r.ParseForm(); err != nil {
				return nil, err
			}
			return r.PostForm, nil
		}
		return parseEncodedForm(r.Body, charset)
	default:
		return url.Values{}, nil
	}
}

// parseEncodedForm decodes an urlencoded body whose octets are in charset.
// Values are unescaped first and then converted to UTF-8.
func parseEncodedForm(body io.Reader, charset string) (url.Values, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	query, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, err
	}

	decoded := make(url.Values, len(query))
	for key, values := range query {
		name, _, err := transform.String(enc.NewDecoder(), key)
		if err != nil {
			return nil, fmt.Errorf("decode field name: %w", err)
		}
		for _, value := range values {
			text, _, err := transform.String(enc.NewDecoder(), value)
			if err != nil {
				return nil, fmt.Errorf("decode field %s: %w", name, err)
			}
			decoded[name] = append(decoded[name], text)
		}
	}
	return decoded, nil
}
