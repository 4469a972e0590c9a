package export

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/roach88/mdp/internal/mdp"
)

// TOML renders kvs as top-level string keys, one per line, in store order.
// Each pair is encoded on its own because the encoder sorts map keys.
func TOML(kvs []mdp.KeyValue) ([]byte, error) {
	var buf bytes.Buffer
	for _, kv := range kvs {
		line, err := toml.Marshal(map[string]string{kv.Name: kv.Value})
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", kv.Name, err)
		}
		buf.Write(line)
	}
	return buf.Bytes(), nil
}
