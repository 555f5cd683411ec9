package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/ingest"
	"github.com/ALT-F4-LLC/hours/internal/ingest/ingesttest"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/snapshot"
)

var january = filter.Window{
	From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
}

func buildSnapshot(t *testing.T, tables map[string]string) *snapshot.Snapshot {
	t.Helper()
	exp, err := ingest.ReadArchiveBytes(ingesttest.Archive(t, tables))
	require.NoError(t, err)
	idx, err := ingest.BuildIndex(exp)
	require.NoError(t, err)
	s, err := snapshot.Build(idx, "test.zip", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return s
}

func sample(t *testing.T) *snapshot.Snapshot {
	return buildSnapshot(t, ingesttest.Sample())
}

func withTimeLogs(rows string) map[string]string {
	return ingesttest.With(ingesttest.Sample(), map[string]string{
		ingest.TableTimeLogs: "id,time_spent,user_id,created_at,updated_at,issue_id,merge_request_id\n" + rows,
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-5400, "-1:30:00"},
		{5400, "1:30:00"},
		{0, "0:00:00"},
		{59, "0:00:59"},
		{-30, "-0:00:30"},
		{360000, "100:00:00"},
		{3661, "1:01:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), "FormatDuration(%d)", tt.in)
	}
}

func TestHierarchy_ConcreteScenario(t *testing.T) {
	s := buildSnapshot(t, map[string]string{
		ingest.TableNamespaces:    "id,name,description\n1,N1,\n",
		ingest.TableProjects:      "id,name,description,namespace_id\n1,P1,,1\n",
		ingest.TableIssues:        "id,author_id,project_id,created_at,title,description\n1,1,1,,Fix bug,\n",
		ingest.TableUsers:         "id,email,name\n1,alice@example.com,Alice\n",
		ingest.TableMergeRequests: "id,author_id,target_project_id,target_branch,source_branch,created_at,title\n",
		ingest.TableLabels:        "id,title,color,description\n",
		ingest.TableLabelLinks:    "id,label_id,target_id,target_type\n",
		ingest.TableTimeLogs: "id,time_spent,user_id,created_at,updated_at,issue_id,merge_request_id\n" +
			"1,3600,1,2024-01-05 10:00:00,,1,\n",
	})

	tree, err := Hierarchy(s, january, []model.Dimension{
		model.DimensionNamespace, model.DimensionProject, model.DimensionIssue,
	})
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"flare","children":[
		{"name":"N1","children":[
			{"name":"P1","children":[{"name":"Fix bug","value":3600}]}
		]}
	]}`, string(data))
}

func TestHierarchy_SampleTree(t *testing.T) {
	tree, err := Hierarchy(sample(t), january, []model.Dimension{
		model.DimensionNamespace, model.DimensionProject, model.DimensionIssue,
	})
	require.NoError(t, err)

	require.Len(t, tree.Children, 2)
	assert.Equal(t, "N1", tree.Children[0].Name)
	assert.Equal(t, "N2", tree.Children[1].Name)

	p2, ok := tree.Children[1].Child("P2")
	require.True(t, ok)
	require.Len(t, p2.Children, 2)
	assert.Equal(t, "MergeRequest", p2.Children[0].Name)
	assert.Equal(t, int64(1800), p2.Children[0].Value)
	assert.Equal(t, "Write docs", p2.Children[1].Name)
	assert.True(t, p2.Children[1].IsLeaf())

	p1, ok := tree.Children[0].Child("P1")
	require.True(t, ok)
	fix, ok := p1.Child("Fix bug")
	require.True(t, ok)
	assert.Equal(t, int64(3000), fix.Value, "negative corrections are summed in")
}

func TestHierarchy_SumInvariant(t *testing.T) {
	s := sample(t)
	var want int64
	for _, tl := range filter.TimeLogs(s.TimeLogs(), january) {
		want += tl.TimeSpent
	}
	require.Equal(t, int64(12000), want)

	for _, a := range model.Dimensions {
		for _, b := range model.Dimensions {
			dims := []model.Dimension{a, b}
			tree, err := Hierarchy(s, january, dims)
			require.NoError(t, err)
			assert.Equal(t, want, tree.Total(), "dims %v", dims)

			for _, child := range tree.Children {
				one, err := Hierarchy(s, january, dims[:1])
				require.NoError(t, err)
				leaf, ok := one.Child(child.Name)
				require.True(t, ok)
				assert.Equal(t, leaf.Value, child.Total(), "subtree %s under %v", child.Name, dims)
			}
		}
	}
}

func TestHierarchy_RepeatedDimension(t *testing.T) {
	tree, err := Hierarchy(sample(t), january, []model.Dimension{model.DimensionUser, model.DimensionUser})
	require.NoError(t, err)
	alice, ok := tree.Child("Alice")
	require.True(t, ok)
	leaf, ok := alice.Child("Alice")
	require.True(t, ok)
	assert.Equal(t, int64(4800), leaf.Value)
}

func TestHierarchy_EmptyWindow(t *testing.T) {
	empty := filter.Window{From: january.To, To: january.From}
	tree, err := Hierarchy(sample(t), empty, []model.Dimension{model.DimensionUser})
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"flare","children":[]}`, string(data))
}

func TestHierarchy_RejectsBadDimensions(t *testing.T) {
	_, err := Hierarchy(sample(t), january, nil)
	assert.Error(t, err)
	_, err = Hierarchy(sample(t), january, []model.Dimension{"COLOR"})
	assert.Error(t, err)
}

func TestHierarchy_ExtractorErrorIsFatal(t *testing.T) {
	s := buildSnapshot(t, withTimeLogs(
		"1,60,1,2024-01-05 10:00:00,,30,\n"+
			"2,60,1,2024-01-05 11:00:00,,999,\n"))

	tree, err := Hierarchy(s, january, []model.Dimension{model.DimensionNamespace})
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.True(t, errors.Is(err, snapshot.ErrUnresolved))
}

func TestAggregate_CustomExtractors(t *testing.T) {
	entries := []model.TimeLog{
		{ID: 1, TimeSpent: 10, UserID: 1},
		{ID: 2, TimeSpent: 20, UserID: 2},
		{ID: 3, TimeSpent: 30, UserID: 1},
	}
	parity := func(tl model.TimeLog) (string, error) {
		if tl.ID%2 == 0 {
			return "even", nil
		}
		return "odd", nil
	}
	tree, err := Aggregate(entries, func(model.TimeLog) int64 { return 1 }, []Extractor{parity})
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "even", tree.Children[0].Name)
	assert.Equal(t, int64(1), tree.Children[0].Value)
	assert.Equal(t, int64(2), tree.Children[1].Value)

	boom := errors.New("boom")
	_, err = Aggregate(entries, TimeSpent, []Extractor{parity, func(model.TimeLog) (string, error) { return "", boom }})
	assert.ErrorIs(t, err, boom)
}

func TestComponents(t *testing.T) {
	s := sample(t)

	users, err := Components(s, january, model.DimensionUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, users)

	products, err := Components(s, january, model.DimensionProduct)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", snapshot.UnknownProduct}, products)

	labels, err := Components(s, january, model.DimensionLabel)
	require.NoError(t, err)
	assert.Equal(t, []string{"backend, urgent", "docs", "urgent"}, labels)

	_, err = Components(s, january, "COLOR")
	assert.Error(t, err)
}

func TestAllComponents(t *testing.T) {
	all, err := AllComponents(sample(t), january)
	require.NoError(t, err)
	assert.Len(t, all, len(model.Dimensions))
	assert.Equal(t, []string{"N1", "N2"}, all[model.DimensionNamespace])
	assert.Equal(t, []string{"Fix bug", "MergeRequest", "Write docs"}, all[model.DimensionIssue])
}

func TestUsersSortedByNameThenID(t *testing.T) {
	s := buildSnapshot(t, ingesttest.With(ingesttest.Sample(), map[string]string{
		ingest.TableUsers: "id,email,name\n5,z@example.com,Zed\n1,a@example.com,Alice\n4,b@example.com,Alice\n3,c@example.com,Bob\n",
		ingest.TableTimeLogs: "id,time_spent,user_id,created_at,updated_at,issue_id,merge_request_id\n",
	}))

	users := Users(s)
	got := make([]int, len(users))
	for i, u := range users {
		got[i] = u.ID
	}
	assert.Equal(t, []int{1, 4, 3, 5}, got)
}

func TestTimesheet(t *testing.T) {
	sheets, err := Timesheet(sample(t), january)
	require.NoError(t, err)
	require.Len(t, sheets, 2, "users without entries are skipped")

	alice := sheets[0]
	assert.Equal(t, "Alice (1)", alice.Title())
	require.Len(t, alice.Rows, 3)
	assert.Equal(t, []string{"2024-01-05", "1:00:00", "N1", "P1", "alpha", "[30] Fix bug"}, alice.Rows[0].Cells())
	assert.Equal(t, []string{"2024-01-05", "-0:10:00", "N1", "P1", "alpha", "[30] Fix bug"}, alice.Rows[1].Cells())
	assert.Equal(t, []string{"2024-01-06", "0:30:00", "N2", "P2", snapshot.UnknownProduct, "[!40] MergeRequest"}, alice.Rows[2].Cells())
	assert.Equal(t, int64(4800), alice.Total())

	bob := sheets[1]
	assert.Equal(t, "Bob (2)", bob.Title())
	require.Len(t, bob.Rows, 1)
	assert.Equal(t, "[31] Write docs", bob.Rows[0].Issue)
}

func TestTimesheet_UnknownUserIsFatal(t *testing.T) {
	s := buildSnapshot(t, withTimeLogs("1,60,42,2024-01-05 10:00:00,,30,\n"))
	_, err := Timesheet(s, january)
	assert.ErrorIs(t, err, snapshot.ErrUnresolved)
}

func TestCalendar(t *testing.T) {
	days, err := Calendar(sample(t), 2024, 1)
	require.NoError(t, err)
	require.Len(t, days, 366)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-12-31", days[365].Date)

	jan5 := days[4]
	assert.Equal(t, "2024-01-05", jan5.Date)
	assert.Equal(t, int64(50), jan5.Minutes)
	assert.Equal(t, "0:50:00", jan5.Time)

	assert.Equal(t, int64(0), days[10].Minutes)
	assert.Equal(t, "0:00:00", days[10].Time)

	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].Date, days[i].Date)
	}
}

func TestCalendar_CommonYearAndInactiveUser(t *testing.T) {
	days, err := Calendar(sample(t), 2023, 3)
	require.NoError(t, err)
	assert.Len(t, days, 365)
	for _, d := range days {
		assert.Zero(t, d.Seconds)
	}
}

func TestCalendar_NegativeDaysTruncateTowardZero(t *testing.T) {
	s := buildSnapshot(t, withTimeLogs(
		"1,-5400,1,2024-03-10 09:00:00,,30,\n"+
			"2,-30,1,2024-03-11 09:00:00,,30,\n"+
			"3,90,1,2024-03-12 09:00:00,,30,\n"))

	days, err := Calendar(s, 2024, 1)
	require.NoError(t, err)

	byDate := map[string]Day{}
	for _, d := range days {
		byDate[d.Date] = d
	}
	assert.Equal(t, int64(-90), byDate["2024-03-10"].Minutes)
	assert.Equal(t, "-1:30:00", byDate["2024-03-10"].Time)
	assert.Equal(t, int64(0), byDate["2024-03-11"].Minutes)
	assert.Equal(t, "-0:00:30", byDate["2024-03-11"].Time)
	assert.Equal(t, int64(1), byDate["2024-03-12"].Minutes)
}

func TestCalendar_YearBoundsExcluded(t *testing.T) {
	s := buildSnapshot(t, withTimeLogs(
		"1,600,1,2024-01-01 00:00:00,,30,\n"+
			"2,600,1,2024-12-31 23:59:59,,30,\n"+
			"3,600,1,2024-12-31 23:59:58,,30,\n"))

	days, err := Calendar(s, 2024, 1)
	require.NoError(t, err)
	assert.Zero(t, days[0].Seconds)
	assert.Equal(t, int64(600), days[365].Seconds)
}

func TestCalendar_UnknownUser(t *testing.T) {
	_, err := Calendar(sample(t), 2024, 99)
	assert.ErrorIs(t, err, snapshot.ErrUnresolved)
}

func TestCalendar_JSONShape(t *testing.T) {
	days, err := Calendar(sample(t), 2024, 2)
	require.NoError(t, err)
	data, err := json.Marshal(days[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-01","minutes":0,"time":"0:00:00"}`, string(data))
}

func TestSummarize(t *testing.T) {
	st, err := Summarize(sample(t), january)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Entries)
	assert.Equal(t, int64(12000), st.TotalSeconds)
	assert.Equal(t, 5, st.Tables[ingest.TableTimeLogs])
	assert.Equal(t, "test.zip", st.Source)

	users := st.Dimensions[model.DimensionUser]
	require.Len(t, users, 2)
	assert.Equal(t, Total{Label: "Bob", Seconds: 7200}, users[0])
	assert.Equal(t, Total{Label: "Alice", Seconds: 4800}, users[1])
}

func TestIdempotentRepublish(t *testing.T) {
	archive := ingesttest.Archive(t, ingesttest.Sample())
	render := func() []byte {
		pub := snapshot.NewPublisher()
		_, err := pub.ImportBytes(context.Background(), "a.zip", archive)
		require.NoError(t, err)
		svc := NewService(pub, nil, nil)

		tree, err := svc.Hierarchy(january, []model.Dimension{model.DimensionProduct, model.DimensionLabel, model.DimensionUser})
		require.NoError(t, err)
		sheets, err := svc.Timesheet(january)
		require.NoError(t, err)
		days, err := svc.Calendar(2024, 1)
		require.NoError(t, err)
		comps, err := svc.AllComponents(january)
		require.NoError(t, err)

		data, err := json.Marshal([]any{tree, sheets, days, comps})
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, string(render()), string(render()))
}
