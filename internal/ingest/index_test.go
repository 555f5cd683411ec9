package ingest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/ingest/ingesttest"
)

func TestBuildIndex(t *testing.T) {
	exp, err := ingest.ReadArchiveBytes(ingesttest.Archive(t, ingesttest.Sample()))
	require.NoError(t, err)

	idx, err := ingest.BuildIndex(exp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", idx.Users[1].Name)
	assert.Equal(t, 10, idx.Projects[20].NamespaceID)
	assert.Equal(t, "Fix bug", idx.Issues[30].Title)
	assert.Equal(t, 21, idx.MergeRequests[40].TargetProjectID)
	assert.Equal(t, "N2", idx.Namespaces[11].Name)
	assert.Equal(t, "#0000ff", idx.Labels[52].Color)
	assert.Len(t, idx.TimeLogs, 5)
	assert.Len(t, idx.LabelLinks, 4)

	counts := idx.Counts()
	assert.Equal(t, 5, counts[ingest.TableTimeLogs])
	assert.Equal(t, 3, counts[ingest.TableUsers])
	assert.Equal(t, 4, counts[ingest.TableLabelLinks])
}

func TestBuildIndex_DuplicateID(t *testing.T) {
	tables := ingesttest.With(ingesttest.Sample(), map[string]string{
		ingest.TableProjects: "id,name,description,namespace_id\n20,P1,,10\n20,P1 again,,11\n",
	})
	exp, err := ingest.ReadArchiveBytes(ingesttest.Archive(t, tables))
	require.NoError(t, err)

	_, err = ingest.BuildIndex(exp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingest.ErrMalformed))

	var mr *ingest.MalformedRowError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, ingest.TableProjects, mr.Table)
	assert.Equal(t, 2, mr.Row)
	assert.Equal(t, "20", mr.Value)
}
