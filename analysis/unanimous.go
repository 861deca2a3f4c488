package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// UnanimousPoll is a poll in which every vote went to a single option.
type UnanimousPoll struct {
	Question        string         `json:"Question"`
	Options         map[string]int `json:"Options"`
	UnanimousAnswer string         `json:"Unanimous Answer"`
}

// LoadUnanimous reads and decodes an unanimous polls file.
func LoadUnanimous(path string) ([]UnanimousPoll, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	polls, err := DecodeUnanimous(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return polls, nil
}

// DecodeUnanimous decodes a list of unanimous polls. Entries whose answer is
// not one of their options are rejected.
func DecodeUnanimous(r io.Reader) ([]UnanimousPoll, error) {
	var polls []UnanimousPoll
	if err := json.NewDecoder(r).Decode(&polls); err != nil {
		return nil, fmt.Errorf("decode unanimous polls: %w", err)
	}
	for i, p := range polls {
		if _, ok := p.Options[p.UnanimousAnswer]; !ok {
			return nil, fmt.Errorf("unanimous poll %d (%q): answer %q is not an option", i, p.Question, p.UnanimousAnswer)
		}
	}
	return polls, nil
}
