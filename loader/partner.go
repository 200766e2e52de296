package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"inad-watch/analysis"
)

// LoadPartnerMap reads a carrier partner mapping from a semicolon-delimited
// file with three fields per line: carrier;route;partner. Multiple lines per
// (carrier, route) accumulate. An empty path yields an empty map.
//
// The file is headerless with a fixed triple per line, so it goes through
// encoding/csv directly rather than the header-driven csvutil decoding the
// record loaders use.
func LoadPartnerMap(path string) (analysis.PartnerMap, error) {
	mp := make(analysis.PartnerMap)
	if path == "" {
		return mp, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = 3

	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &SourceError{Source: path, Err: fmt.Errorf("read partner mapping: %w", err)}
		}

		key := analysis.RouteKey{
			Airline: strings.TrimSpace(fields[0]),
			Airport: strings.TrimSpace(fields[1]),
		}
		mp[key] = append(mp[key], strings.TrimSpace(fields[2]))
	}
	return mp, nil
}
