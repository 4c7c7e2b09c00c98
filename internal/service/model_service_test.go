package service

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelForm(name string) *dto.ModelForm {
	return &dto.ModelForm{
		Name:        name,
		Framework:   "pytorch",
		Description: "a model",
		Instruction: "load it",
	}
}

func TestModelCreateStoresRowAndBlob(t *testing.T) {
	db := newTestDB(t)
	blobs := newTestBlobStore(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), blobs)
	alice := createTestUser(t, db, "alice", "pw1")

	m, err := svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "weights.bin", []byte("binary")))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%d.bin", m.ID), m.StoredName)
	assert.Equal(t, "weights.bin", m.Filename)
	assert.Equal(t, alice.ID, m.UserID)

	// The stored name resolves to exactly the uploaded bytes.
	f, _, err := blobs.Open(m.StoredName)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("binary"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(blobs.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestModelCreateRequiresFilename(t *testing.T) {
	db := newTestDB(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), newTestBlobStore(t))
	alice := createTestUser(t, db, "alice", "pw1")

	_, err := svc.Create(alice.ID, modelForm("M1"), nil)
	assert.ErrorIs(t, err, ErrMissingFile)

	_, err = svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "..", []byte("x")))
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestModelListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), newTestBlobStore(t))
	alice := createTestUser(t, db, "alice", "pw1")

	_, err := svc.Create(alice.ID, modelForm("older"), fileHeader(t, "a.bin", []byte("a")))
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = svc.Create(alice.ID, modelForm("newer"), fileHeader(t, "b.bin", []byte("b")))
	require.NoError(t, err)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)
	assert.Equal(t, "alice", list[0].User.Name)
}

func TestModelUpdateRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), newTestBlobStore(t))
	alice := createTestUser(t, db, "alice", "pw1")
	bob := createTestUser(t, db, "bob", "pw2")

	m, err := svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "a.bin", []byte("a")))
	require.NoError(t, err)

	_, err = svc.Update(bob.ID, m.ID, modelForm("hijacked"), fileHeader(t, "b.bin", []byte("b")))
	assert.ErrorIs(t, err, ErrForbidden)

	unchanged, err := svc.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "M1", unchanged.Name)
}

func TestModelUpdateRewritesBlobAndDropsOldExtension(t *testing.T) {
	db := newTestDB(t)
	blobs := newTestBlobStore(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), blobs)
	alice := createTestUser(t, db, "alice", "pw1")

	m, err := svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "a.bin", []byte("v1")))
	require.NoError(t, err)
	oldStored := m.StoredName

	updated, err := svc.Update(alice.ID, m.ID, modelForm("M1+"), fileHeader(t, "a.onnx", []byte("v2")))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%d.onnx", m.ID), updated.StoredName)
	assert.Equal(t, "M1+", updated.Name)

	f, _, err := blobs.Open(updated.StoredName)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	// The blob under the previous extension is gone.
	_, _, err = blobs.Open(oldStored)
	assert.Error(t, err)
}

func TestModelDelete(t *testing.T) {
	db := newTestDB(t)
	blobs := newTestBlobStore(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), blobs)
	alice := createTestUser(t, db, "alice", "pw1")
	bob := createTestUser(t, db, "bob", "pw2")

	m, err := svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "a.bin", []byte("a")))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(bob.ID, m.ID), ErrForbidden)

	require.NoError(t, svc.Delete(alice.ID, m.ID))

	_, err = svc.Get(m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = blobs.Open(m.StoredName)
	assert.Error(t, err, "deleting the row also removes the blob")
}

func TestModelOpenBlob(t *testing.T) {
	db := newTestDB(t)
	svc := NewMLModelService(repository.NewMLModelRepository(db), newTestBlobStore(t))
	alice := createTestUser(t, db, "alice", "pw1")

	m, err := svc.Create(alice.ID, modelForm("M1"), fileHeader(t, "w.h5", []byte("weights")))
	require.NoError(t, err)

	got, f, size, err := svc.OpenBlob(m.ID)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, int64(len("weights")), size)

	_, _, _, err = svc.OpenBlob(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
