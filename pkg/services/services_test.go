package services

import (
	"go.uber.org/zap"

	"esulat/pkg/kv"
	"esulat/pkg/repository"
)

// newTestRepo builds a repository over an in-memory store.
func newTestRepo() *repository.Repository {
	return repository.New(kv.NewMemoryStore(), zap.NewNop())
}
