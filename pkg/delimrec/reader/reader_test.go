package reader_test

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delimrec/delimrec/pkg/delimrec/header"
	"github.com/delimrec/delimrec/pkg/delimrec/reader"
	"github.com/delimrec/delimrec/pkg/delimrec/schema"
	"github.com/delimrec/delimrec/pkg/delimrec/storage"
)

type record struct {
	Foo string `delim:"foo"`
	Bar int    `delim:"bar"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRecords(t *testing.T) {
	path := writeFile(t, "foo\tbar\nabc\t1\n")

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, record{Foo: "abc", Bar: 1}, rec)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadPreface(t *testing.T) {
	path := writeFile(t, "# note\n\nfoo\tbar\nabc\t1\n")

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"# note", ""}, r.Header().Preface)
	assert.Equal(t, []string{"foo", "bar"}, r.Header().Fieldnames)

	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []record{{Foo: "abc", Bar: 1}}, recs)
}

func TestSchemaMismatch(t *testing.T) {
	path := writeFile(t, "foo\tbaz\nabc\t1\n")

	_, err := reader.Open[record](path)

	var mismatch *schema.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "record", mismatch.RecordType)
	assert.Equal(t, path, mismatch.Source)
	assert.Equal(t, []string{"foo", "bar"}, mismatch.RecordFields)
	assert.Equal(t, []string{"foo", "baz"}, mismatch.FileFields)
}

func TestMissingHeader(t *testing.T) {
	for name, content := range map[string]string{
		"empty file":    "",
		"only preface":  "# a\n\n# b\n",
		"only comments": "# a\n# b\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, content)

			_, err := reader.Open[record](path)
			assert.ErrorIs(t, err, header.ErrMissing)
		})
	}
}

func TestCoercionFailureIsFatal(t *testing.T) {
	path := writeFile(t, "foo\tbar\nabc\tnotanumber\n")

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()

	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "notanumber", numErr.Num)
}

func TestQuotedHeaderAndCells(t *testing.T) {
	type item struct {
		ID    string `delim:"id"`
		Title string `delim:"title"`
	}
	path := writeFile(t, "\"id\"\t\"title\"\n\"fake\"\t\"A fake object\"\n\"also_fake\"\t\"Another fake object\"\n")

	r, err := reader.Open[item](path)
	require.NoError(t, err)
	defer r.Close()

	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []item{
		{ID: "fake", Title: "A fake object"},
		{ID: "also_fake", Title: "Another fake object"},
	}, recs)
}

func TestWrongCellCountIsFatal(t *testing.T) {
	path := writeFile(t, "foo\tbar\nabc\t1\textra\n")

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestInvalidRecordType(t *testing.T) {
	path := writeFile(t, "foo\tbar\n")

	_, err := reader.Open[int](path)

	var invalid *schema.InvalidTypeError
	assert.ErrorAs(t, err, &invalid)
}

func TestSourceAccessErrors(t *testing.T) {
	_, err := reader.Open[record](filepath.Join(t.TempDir(), "absent.tsv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = reader.Open[record](t.TempDir())
	assert.ErrorIs(t, err, storage.ErrIsDirectory)
}

func TestNextAfterClose(t *testing.T) {
	path := writeFile(t, "foo\tbar\nabc\t1\n")

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Next()
	assert.ErrorIs(t, err, reader.ErrClosed)
}

func TestCommaDelimiter(t *testing.T) {
	path := writeFile(t, "foo,bar\nabc,1\n")

	r, err := reader.Open[record](path, reader.WithDelimiter(','))
	require.NoError(t, err)
	defer r.Close()

	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []record{{Foo: "abc", Bar: 1}}, recs)
}

func TestCustomCommentChar(t *testing.T) {
	path := writeFile(t, "; remark\nfoo\tbar\nabc\t1\n")

	r, err := reader.Open[record](path, reader.WithCommentChar(';'))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"; remark"}, r.Header().Preface)
}

func TestCompressedSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.tsv.lz4")

	sink, err := storage.CreateSink(path, true)
	require.NoError(t, err)
	_, err = sink.Write([]byte("foo\tbar\nabc\t1\nxyz\t2\n"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	r, err := reader.Open[record](path)
	require.NoError(t, err)
	defer r.Close()

	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []record{{Foo: "abc", Bar: 1}, {Foo: "xyz", Bar: 2}}, recs)
}
