// Package snapshot captures a committed device state as a compact,
// checksummed, snappy-compressed blob — used by the round-trip tests
// (capture a committed device state, re-apply it onto a fresh catalog of
// the same part, compare) and by the `gopar snapshot` debug subcommand to
// freeze and later inspect a run's result.
//
// The wire format is a fixed binary header, a snappy-compressed payload, and
// a trailing CRC32 checksum over the compressed bytes — one self-contained
// blob rather than a stream of log entries, since gopar snapshots a single
// final state.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/pargraph"
)

const magic uint32 = 0x67706172 // "gpar"
const version uint8 = 1

// SiteState is the serializable form of one site's committed Config.
type SiteState struct {
	Name            string            `json:"name"`
	Mode            string            `json:"mode"`
	Enabled         bool              `json:"enabled"`
	PowerDown       bool              `json:"power_down"`
	PowerDownSource string            `json:"power_down_source"`
	RoutesUsed      int               `json:"routes_used"`
	InputSource     map[string]string `json:"input_source"`
	Extra           map[string]string `json:"extra"`
}

// PlacementEntry names which site one netlist entity landed on.
type PlacementEntry struct {
	Entity string `json:"entity"`
	Site   string `json:"site"`
}

// Snapshot is a full record of one committed placement.
type Snapshot struct {
	Part      string           `json:"part"`
	Sites     []SiteState      `json:"sites"`
	Placement []PlacementEntry `json:"placement"`
}

// Capture reads the current state of every site in part and every mated
// netlist node in n into a Snapshot.
func Capture(n *pargraph.Graph, part *device.Part) *Snapshot {
	s := &Snapshot{Part: part.ID}
	for _, site := range part.AllSites() {
		cfg := site.Config()
		s.Sites = append(s.Sites, SiteState{
			Name:            site.Name(),
			Mode:            cfg.Mode,
			Enabled:         cfg.Enabled,
			PowerDown:       cfg.PowerDown,
			PowerDownSource: cfg.PowerDownSource,
			RoutesUsed:      cfg.RoutesUsed,
			InputSource:     copyMap(cfg.InputSource),
			Extra:           copyMap(cfg.Extra),
		})
	}
	for _, node := range n.Nodes() {
		mate, ok := node.Mate()
		if !ok {
			continue
		}
		site, ok := mate.Payload().(device.Site)
		if !ok {
			continue
		}
		s.Placement = append(s.Placement, PlacementEntry{Entity: node.String(), Site: site.Name()})
	}
	return s
}

// Apply writes a captured Snapshot's site states back onto a live device
// catalog of the same part — used by the round-trip tests to verify that a
// fresh catalog takes on the captured committed state.
func Apply(part *device.Part, s *Snapshot) error {
	for _, ss := range s.Sites {
		site, ok := part.Site(ss.Name)
		if !ok {
			return fmt.Errorf("snapshot: site %q not found in part %q", ss.Name, part.ID)
		}
		cfg := site.Config()
		cfg.Mode = ss.Mode
		cfg.Enabled = ss.Enabled
		cfg.PowerDown = ss.PowerDown
		cfg.PowerDownSource = ss.PowerDownSource
		cfg.RoutesUsed = ss.RoutesUsed
		for k, v := range ss.InputSource {
			cfg.SetInput(k, v)
		}
		for k, v := range ss.Extra {
			cfg.Extra[k] = v
		}
	}
	return nil
}

// Encode serializes s to JSON, snappy-compresses it, and wraps it in a
// fixed header (magic, version, uncompressed length, compressed length)
// plus a CRC32 trailer over the compressed payload.
func Encode(s *Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	compressed := snappy.Encode(nil, raw)

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, magic)
	buf.WriteByte(version)
	binary.Write(&buf, binary.BigEndian, uint32(len(raw)))
	binary.Write(&buf, binary.BigEndian, uint32(len(compressed)))
	buf.Write(compressed)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(compressed))
	return buf.Bytes(), nil
}

// Decode reverses Encode, verifying the header and checksum before
// decompressing and unmarshaling.
func Decode(data []byte) (*Snapshot, error) {
	r := bytes.NewReader(data)

	var gotMagic uint32
	if err := binary.Read(r, binary.BigEndian, &gotMagic); err != nil {
		return nil, fmt.Errorf("snapshot: decode header: %w", err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("snapshot: bad magic %#x", gotMagic)
	}
	var gotVersion uint8
	if err := binary.Read(r, binary.BigEndian, &gotVersion); err != nil {
		return nil, fmt.Errorf("snapshot: decode version: %w", err)
	}
	if gotVersion != version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", gotVersion)
	}
	var rawLen, compressedLen uint32
	if err := binary.Read(r, binary.BigEndian, &rawLen); err != nil {
		return nil, fmt.Errorf("snapshot: decode raw length: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &compressedLen); err != nil {
		return nil, fmt.Errorf("snapshot: decode compressed length: %w", err)
	}
	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("snapshot: read payload: %w", err)
	}
	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return nil, fmt.Errorf("snapshot: decode checksum: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return nil, fmt.Errorf("snapshot: checksum mismatch")
	}

	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress: %w", err)
	}
	if uint32(len(raw)) != rawLen {
		return nil, fmt.Errorf("snapshot: decompressed length mismatch: got %d, want %d", len(raw), rawLen)
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return &s, nil
}

// WriteFile encodes s and writes it to path.
func WriteFile(path string, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads and decodes a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Decode(data)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
