package service

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"mlhub-go/internal/config"
	"mlhub-go/internal/models"
	"mlhub-go/internal/repository"
	"mlhub-go/internal/storage"
	"mlhub-go/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func newTestBlobStore(t *testing.T) *storage.BlobStore {
	t.Helper()

	store, err := storage.NewBlobStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func createTestUser(t *testing.T, db *gorm.DB, name, password string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Name: name, PasswordHash: hash}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

// fileHeader builds a real multipart.FileHeader by round-tripping a
// form body, the same shape handlers receive from gin.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("model_file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["model_file"]
	require.Len(t, files, 1)
	return files[0]
}

func testSessionConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			SecretKey:     "test-secret",
			ExpireMinutes: 60,
			RememberDays:  30,
		},
	}
}
