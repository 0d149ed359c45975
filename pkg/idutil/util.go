package idutil

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var ErrNodeInitialized = errors.New("snowflake node is already initialized")

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// Init sets the snowflake node id of this process. Processes sharing a
// database must use different node ids. It fails if an id was already
// generated or Init was already called.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}

	initialized := false
	nodeOnce.Do(func() {
		node = n
		initialized = true
	})

	if !initialized {
		return ErrNodeInitialized
	}

	return nil
}

// NewSnowflakeID returns a time-ordered unique id. Node 0 is used if Init was
// not called.
func NewSnowflakeID() int64 {
	nodeOnce.Do(func() {
		n, err := snowflake.NewNode(0)
		if err != nil {
			panic(err)
		}
		node = n
	})

	return node.Generate().Int64()
}

// TimeOf returns the creation time (unix milliseconds) encoded in id.
func TimeOf(id int64) int64 {
	return snowflake.ParseInt64(id).Time()
}
