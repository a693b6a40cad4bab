package trial

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Config is a concrete assignment of values to parameter names,
// tagged with the name of the strategy that proposed it. Configs are
// treated as immutable once created.
type Config struct {
	Params    map[string]any
	Requestor string
}

// NewConfig creates a config with a copy of the given parameter map.
func NewConfig(params map[string]any, requestor string) Config {
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return Config{Params: cp, Requestor: requestor}
}

// Hash returns a stable content hash of the parameter values. The
// requestor tag is excluded so that identical configurations proposed
// by different strategies hash alike. Map keys are serialized in
// sorted order, so the hash is deterministic.
func (c Config) Hash() string {
	data, err := json.Marshal(c.Params)
	if err != nil {
		// Parameter values are plain numbers and strings; a marshal
		// failure indicates a caller bug.
		data = []byte(fmt.Sprintf("%v", c.Params))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
