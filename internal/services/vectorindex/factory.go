package vectorindex

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
)

// NewVectorIndex constructs the configured vector index implementation.
func NewVectorIndex(cfg *common.StorageConfig, dimension int, logger arbor.ILogger) (interfaces.VectorIndex, error) {
	switch cfg.VectorType {
	case "qdrant":
		return NewQdrantIndex(&cfg.Qdrant, dimension, logger)
	case "memory", "":
		return NewMemoryIndex(cfg.Qdrant.Collection, logger), nil
	default:
		return nil, fmt.Errorf("unknown vector index type '%s' (expected qdrant or memory)", cfg.VectorType)
	}
}
