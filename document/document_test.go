package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/pdfscholar/pdfops"
)

func fakeMeta(pages int) MetadataFunc {
	return func(path string) (pdfops.Metadata, error) {
		return pdfops.Metadata{Title: filepath.Base(path), PageCount: pages}, nil
	}
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))
	return path
}

func TestLoadAndGet(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "paper.pdf")

	s := NewStoreWithReader(fakeMeta(12))
	doc, err := s.Load(path, "paper")
	require.NoError(t, err)
	assert.Equal(t, "paper", doc.Name)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, 12, doc.Meta.PageCount)
	assert.NotEmpty(t, doc.ID)

	byName, ok := s.Get("paper")
	require.True(t, ok)
	assert.Same(t, doc, byName)

	byID, ok := s.Get(doc.ID)
	require.True(t, ok)
	assert.Same(t, doc, byID)

	byPath, ok := s.Get(path)
	require.True(t, ok)
	assert.Same(t, doc, byPath)
}

func TestLoadDefaultsNameToBase(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "thesis.pdf")

	s := NewStoreWithReader(fakeMeta(3))
	doc, err := s.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "thesis.pdf", doc.Name)
}

func TestReloadReplacesEntry(t *testing.T) {
	dir := t.TempDir()
	first := writePDF(t, dir, "v1.pdf")
	second := writePDF(t, dir, "v2.pdf")

	s := NewStoreWithReader(fakeMeta(1))
	_, err := s.Load(first, "paper")
	require.NoError(t, err)
	doc2, err := s.Load(second, "paper")
	require.NoError(t, err)

	got, ok := s.Get("paper")
	require.True(t, ok)
	assert.Same(t, doc2, got)
	assert.Equal(t, second, got.Path)
	assert.Equal(t, 1, s.Len())
}

func TestLoadRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	s := NewStoreWithReader(fakeMeta(1))
	_, err := s.Load(path, "")
	assert.ErrorIs(t, err, pdfops.ErrNotPDF)
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStoreWithReader(fakeMeta(1))
	_, err := s.Load(filepath.Join(t.TempDir(), "ghost.pdf"), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveLoadsPathOnDemand(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "ondemand.pdf")

	s := NewStoreWithReader(fakeMeta(7))
	doc, err := s.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "ondemand.pdf", doc.Name)
	assert.Equal(t, 1, s.Len())

	again, err := s.Resolve("ondemand.pdf")
	require.NoError(t, err)
	assert.Same(t, doc, again)
	assert.Equal(t, 1, s.Len())
}

func TestResolveUnknown(t *testing.T) {
	s := NewStoreWithReader(fakeMeta(1))
	_, err := s.Resolve("never-loaded")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "gone.pdf")

	s := NewStoreWithReader(fakeMeta(1))
	_, err := s.Load(path, "gone")
	require.NoError(t, err)

	assert.True(t, s.Remove("gone"))
	assert.False(t, s.Remove("gone"))
	_, ok := s.Get("gone")
	assert.False(t, ok)
}

func TestListOrdersByLoadTime(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf")
	b := writePDF(t, dir, "b.pdf")

	s := NewStoreWithReader(fakeMeta(1))
	docA, err := s.Load(a, "a")
	require.NoError(t, err)
	docB, err := s.Load(b, "b")
	require.NoError(t, err)
	docB.LoadedAt = docA.LoadedAt.Add(1)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
}
