package opencorpora

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// LoadFromPath reads the whole dictionary file into memory before decoding.
// Faster than LoadFromPathBuffered since encoding/xml can then decode from a
// single contiguous buffer, at the cost of holding the raw XML and the
// decoded tree in memory at once.
func LoadFromPath(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading opencorpora dump: %w", err)
	}

	log.Debug().Int("bytes", len(data)).Str("path", path).Msg("opencorpora: loaded into string buffer")

	var dict Dictionary
	if err := xml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("decoding opencorpora xml: %w", err)
	}
	return &dict, nil
}

// LoadFromPathBuffered streams the file through a bufio.Reader instead of
// reading it whole. Slower than LoadFromPath but keeps peak memory well
// below the size of the dump, which matters for the ~400MB uncompressed
// OpenCorpora release.
func LoadFromPathBuffered(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening opencorpora dump: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)
	log.Debug().Str("path", path).Msg("opencorpora: decoding via buffered reader")

	dec := xml.NewDecoder(r)
	var dict Dictionary
	if err := dec.Decode(&dict); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding opencorpora xml: %w", err)
	}
	return &dict, nil
}
