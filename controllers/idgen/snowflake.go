package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init menyiapkan node snowflake. Aman dipanggil lebih dari sekali.
func Init() {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

func GenerateID() int64 {
	Init()
	return node.Generate().Int64()
}
