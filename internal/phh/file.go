package phh

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/fileutil"
)

// Marshal encodes hands as a PHH session: one numbered TOML table per hand.
func Marshal(hands []*HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	for i, hand := range hands {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "[%d]\n", i+1)
		if err := Encode(&buf, hand); err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a PHH session written by Marshal, in section order. A
// document holding a single unsectioned hand is also accepted.
func Unmarshal(data []byte) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.Decode(string(data), &sections); err == nil && len(sections) > 0 {
		keys := make([]string, 0, len(sections))
		for k := range sections {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareSectionKeys)

		hands := make([]HandHistory, 0, len(keys))
		for _, k := range keys {
			hand := sections[k]
			if hand.HandID == "" {
				hand.HandID = k
			}
			hands = append(hands, hand)
		}
		return hands, nil
	}

	var hand HandHistory
	if _, err := toml.Decode(string(data), &hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return []HandHistory{hand}, nil
}

func compareSectionKeys(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai - bi
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// WriteFile writes a PHH session to path atomically: readers see either the
// previous file or the complete new one, never a partial write.
func WriteFile(path string, hands []*HandHistory) error {
	data, err := Marshal(hands)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// ReadFile reads a PHH session from path
func ReadFile(path string) ([]HandHistory, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
