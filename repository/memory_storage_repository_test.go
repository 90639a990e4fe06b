package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageRepository(t *testing.T) {
	repo := NewMemoryStorageRepository()

	// 不存在的键返回 (nil, nil)
	data, err := repo.Load("missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, repo.Save("auth-storage", []byte(`{"token":"t-1"}`)))
	data, err = repo.Load("auth-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"t-1"}`, string(data))

	// 覆盖写
	require.NoError(t, repo.Save("auth-storage", []byte(`{"token":"t-2"}`)))
	data, err = repo.Load("auth-storage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"t-2"}`, string(data))

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"auth-storage"}, keys)

	require.NoError(t, repo.Delete("auth-storage"))
	data, err = repo.Load("auth-storage")
	require.NoError(t, err)
	assert.Nil(t, data)

	// 删除不存在的键不报错
	require.NoError(t, repo.Delete("auth-storage"))
}

func TestMemoryStorageRepositoryReturnsCopy(t *testing.T) {
	repo := NewMemoryStorageRepository()
	require.NoError(t, repo.Save("k", []byte("abc")))

	data, err := repo.Load("k")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := repo.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
