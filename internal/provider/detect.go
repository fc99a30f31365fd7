package provider

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// peekProbe is the minimal shape needed to distinguish OpenAI from Claude
// exports: presence of "mapping" or "chat_messages" on the first array
// element (spec.md §4.2.1).
type peekProbe struct {
	Mapping      json.RawMessage `json:"mapping"`
	ChatMessages json.RawMessage `json:"chat_messages"`
}

// Detect reads at most the first conversation object of the root array and
// classifies the export format (spec.md §4.2.1). It opens its own handle
// and always closes it before returning (scoped resource discipline,
// spec.md §4.1).
func Detect(path string) (model.Provider, error) {
	f, err := openForRead(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	probe, err := firstElementProbe(f)
	if err != nil {
		return "", err
	}
	return classify(probe)
}

// Agrees reports whether the file's actual content matches an explicitly
// chosen provider (spec.md §4.2.1: "explicit provider selection bypasses
// detection but still produces the same warning if the file content
// disagrees").
func Agrees(path string, explicit model.Provider) (bool, error) {
	detected, err := Detect(path)
	if err != nil {
		return false, err
	}
	return detected == explicit, nil
}

func classify(probe peekProbe) (model.Provider, error) {
	hasMapping := len(probe.Mapping) > 0 && string(probe.Mapping) != "null"
	hasChatMessages := len(probe.ChatMessages) > 0 && string(probe.ChatMessages) != "null"

	switch {
	case hasChatMessages:
		return model.ProviderClaude, nil
	case hasMapping:
		return model.ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: neither 'mapping' nor 'chat_messages' key found on first element", ErrUnknownFormat)
	}
}

// firstElementProbe reads the opening '[' token and decodes only the first
// array element, discarding everything else; it never reads past that
// first element.
func firstElementProbe(r io.Reader) (peekProbe, error) {
	dec := json.NewDecoder(bufio.NewReaderSize(r, 64*1024))

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return peekProbe{}, fmt.Errorf("%w: empty file", ErrParse)
		}
		return peekProbe{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return peekProbe{}, fmt.Errorf("%w: top-level value must be a JSON array", ErrParse)
	}

	if !dec.More() {
		// Empty array: no conversation to peek. Treat as unrecognized;
		// callers with an empty file should use Stream directly, which
		// correctly yields zero conversations without needing a format.
		return peekProbe{}, fmt.Errorf("%w: empty array, nothing to detect", ErrUnknownFormat)
	}

	var probe peekProbe
	if err := dec.Decode(&probe); err != nil {
		return peekProbe{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return probe, nil
}

func openForRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, err
	}
	return f, nil
}
