package workflows

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/shroud/internal/container"
	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/history"
	"github.com/PolarWolf314/shroud/internal/identifier"
)

func writeTarget(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLock_ProducesContainer(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "notes.txt", []byte("0123456789"))
	store := history.NewJSONFile(filepath.Join(t.TempDir(), "history.json"))

	result, err := Lock(context.Background(), LockOptions{
		TargetPath: target,
		Password:   []byte("hunter2"),
		History:    store,
	})
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", result.OriginalName)
	assert.Len(t, result.EncryptedName, identifier.DefaultLength)
	assert.True(t, identifier.IsToken(result.EncryptedName))
	assert.Equal(t, filepath.Join(dir, result.EncryptedName+".tar"), result.ContainerPath)
	assert.FileExists(t, result.ContainerPath)

	// Only the target and the container remain; staging is gone.
	assert.ElementsMatch(t, []string{"notes.txt", result.EncryptedName + ".tar"}, dirNames(t, dir))

	original, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(original), "target must be left untouched")

	records, err := store.Records()
	require.NoError(t, err)
	assert.Equal(t, []history.Record{{OriginalName: "notes.txt", EncryptedName: result.EncryptedName}}, records)
}

func TestLock_ContainerShape(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "photo.jpg", []byte("jpeg bytes"))

	result, err := Lock(context.Background(), LockOptions{
		TargetPath:  target,
		Password:    []byte("pw"),
		Identifiers: identifier.NewSequence("PAYLOADID", "INNERID", "METAID"),
	})
	require.NoError(t, err)
	assert.Equal(t, "PAYLOADID", result.EncryptedName)

	members, err := container.ListContainer(result.ContainerPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"INNERID.zip", "photo.jpg.txt"}, members)

	work := t.TempDir()
	_, err = container.ExtractContainer(result.ContainerPath, work, nil)
	require.NoError(t, err)

	decoy, err := os.Stat(filepath.Join(work, "photo.jpg.txt"))
	require.NoError(t, err)
	assert.Zero(t, decoy.Size())

	entries, err := container.ListEncryptedArchive(filepath.Join(work, "INNERID.zip"))
	require.NoError(t, err)
	assert.Equal(t, []string{"PAYLOADID", "METAID.ciper"}, entries)

	metadataCount := 0
	for _, e := range entries {
		if container.IsMetadataEntry(e) {
			metadataCount++
		}
	}
	assert.Equal(t, 1, metadataCount)
}

func TestLock_RandomIdentifiersDistinct(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "data.bin", []byte("x"))
	out := t.TempDir()

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		result, err := Lock(context.Background(), LockOptions{
			TargetPath: target,
			Password:   []byte("pw"),
			OutputDir:  out,
		})
		require.NoError(t, err)

		work := t.TempDir()
		members, err := container.ExtractContainer(result.ContainerPath, work, nil)
		require.NoError(t, err)

		var inner string
		for _, m := range members {
			if container.IsInnerArchive(m) {
				inner = m
			}
		}
		entries, err := container.ListEncryptedArchive(filepath.Join(work, inner))
		require.NoError(t, err)

		var metadata string
		for _, e := range entries {
			if container.IsMetadataEntry(e) {
				metadata = e
			}
		}

		ids := []string{
			result.EncryptedName,
			strings.TrimSuffix(inner, container.InnerArchiveExt),
			strings.TrimSuffix(metadata, container.MetadataExt),
		}
		for _, id := range ids {
			require.False(t, seen[id], "identifier %s drawn twice", id)
			seen[id] = true
		}
	}
}

func TestLock_OutputDirectory(t *testing.T) {
	src := t.TempDir()
	target := writeTarget(t, src, "a.txt", []byte("a"))
	out := filepath.Join(t.TempDir(), "new", "dir")

	result, err := Lock(context.Background(), LockOptions{
		TargetPath: target,
		Password:   []byte("pw"),
		OutputDir:  out,
	})
	require.NoError(t, err)
	assert.Equal(t, out, filepath.Dir(result.ContainerPath))
	assert.Equal(t, []string{"a.txt"}, dirNames(t, src))
}

func TestLock_MissingTarget(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "history.json")

	_, err := Lock(context.Background(), LockOptions{
		TargetPath: filepath.Join(dir, "missing.txt"),
		Password:   []byte("pw"),
		OutputDir:  filepath.Join(dir, "out"),
		History:    history.NewJSONFile(logPath),
	})
	require.ErrorIs(t, err, kerrors.ErrTargetNotFound)
	assert.ErrorIs(t, err, kerrors.ErrNotFound)

	assert.Empty(t, dirNames(t, dir), "nothing may be created for a missing target")
}

func TestLock_TargetIsDirectory(t *testing.T) {
	_, err := Lock(context.Background(), LockOptions{
		TargetPath: t.TempDir(),
		Password:   []byte("pw"),
	})
	assert.ErrorIs(t, err, kerrors.ErrInvalidFileType)
}

func TestLock_EmptyPassword(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "a.txt", []byte("a"))

	_, err := Lock(context.Background(), LockOptions{TargetPath: target})
	assert.ErrorIs(t, err, kerrors.ErrEmptyPassword)
	assert.Equal(t, []string{"a.txt"}, dirNames(t, dir))
}

func TestLock_CancelledContextCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "a.txt", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Lock(ctx, LockOptions{TargetPath: target, Password: []byte("pw")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a.txt"}, dirNames(t, dir))
}

func TestLock_HistoryAppendsInCallOrder(t *testing.T) {
	dir := t.TempDir()
	store := history.NewJSONFile(filepath.Join(t.TempDir(), "history.json"))

	var want []history.Record
	for _, name := range []string{"one.txt", "two.bin", "three.md", "四.txt"} {
		target := writeTarget(t, dir, name, []byte(name))
		result, err := Lock(context.Background(), LockOptions{
			TargetPath: target,
			Password:   []byte("pw"),
			History:    store,
		})
		require.NoError(t, err)
		want = append(want, history.Record{OriginalName: name, EncryptedName: result.EncryptedName})
	}

	got, err := store.Records()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

type failingAppender struct{}

func (failingAppender) Append(history.Record) error {
	return os.ErrPermission
}

func TestLock_HistoryFailureReportsIO(t *testing.T) {
	dir := t.TempDir()
	target := writeTarget(t, dir, "a.txt", []byte("a"))

	_, err := Lock(context.Background(), LockOptions{
		TargetPath: target,
		Password:   []byte("pw"),
		History:    failingAppender{},
	})
	assert.ErrorIs(t, err, kerrors.ErrIO)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLock_BinaryPayloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, 256*1024+17)
	_, err := rand.Read(payload)
	require.NoError(t, err)
	target := writeTarget(t, dir, "blob.bin", payload)

	locked, err := Lock(context.Background(), LockOptions{TargetPath: target, Password: []byte("s3cret")})
	require.NoError(t, err)

	require.NoError(t, os.Remove(target))

	unlocked, err := Unlock(context.Background(), UnlockOptions{
		ContainerPath: locked.ContainerPath,
		Password:      []byte("s3cret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "blob.bin", unlocked.OriginalName)
	assert.Equal(t, target, unlocked.PayloadPath)

	got, err := os.ReadFile(unlocked.PayloadPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
