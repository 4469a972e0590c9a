package export

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mdp/internal/mdp"
)

// YAML renders kvs as a block mapping in store order. Every value is
// tagged as a string so "yes" or "1e-3" read back unchanged.
func YAML(kvs []mdp.KeyValue) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range kvs {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
