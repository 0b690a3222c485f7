package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(context.Background(), "events", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "events", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "events"))
	assert.NoError(t, repo.Close())
}
