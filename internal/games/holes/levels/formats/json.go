package formats

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a JSON level file. The schema matches the YAML one.
func ParseJSON(data []byte) (Level, error) {
	var fl FileLevel
	if err := json.Unmarshal(data, &fl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return fl.toLevel()
}
