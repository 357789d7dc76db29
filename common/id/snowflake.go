package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node. Only the first call has any effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 id for audit entries and sessions.
// Init must have been called.
func New() int64 {
	if node == nil {
		panic("id: New called before Init")
	}
	return node.Generate().Int64()
}

// Parse parses the decimal form of an id, e.g. a session id from a cookie.
func Parse(s string) (int64, error) {
	sf, err := snowflake.ParseString(s)
	if err != nil {
		return 0, err
	}
	return sf.Int64(), nil
}
