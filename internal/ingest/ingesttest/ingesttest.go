// Package ingesttest builds export archives in memory for tests.
package ingesttest

import (
	"archive/zip"
	"bytes"
	"testing"
)

// Sample is a small but complete export. Alice (1) logs on a labelled issue
// and on a merge request, Bob (2) logs on an issue with no product, Carol (3)
// never logs time.
func Sample() map[string]string {
	return map[string]string{
		"users.csv": "id,email,name\n" +
			"1,alice@example.com,Alice\n" +
			"2,bob@example.com,Bob\n" +
			"3,carol@example.com,Carol\n",
		"namespaces.csv": "id,name,description\n" +
			"10,N1,first group\n" +
			"11,N2,second group\n",
		"projects.csv": "id,name,description,namespace_id\n" +
			"20,P1,,10\n" +
			"21,P2,,11\n",
		"issues.csv": "id,author_id,project_id,created_at,title,description\n" +
			"30,1,20,2023-12-01 09:00:00,Fix bug,\n" +
			"31,,21,,Write docs,\n",
		"merge_requests.csv": "id,author_id,target_project_id,target_branch,source_branch,created_at,title\n" +
			"40,2,21,main,feature,2024-01-02 08:00:00,Add feature\n",
		"labels.csv": "id,title,color,description\n" +
			"50, Backend ,#ff0000,work on produkt-alpha stuff\n" +
			"51,Docs,#00ff00,no product here\n" +
			"52,Urgent,#0000ff,produkt-beta and produkt-gamma\n",
		"label_links.csv": "id,label_id,target_id,target_type\n" +
			"60,50,30,Issue\n" +
			"61,52,30,Issue\n" +
			"62,51,31,Issue\n" +
			"63,52,40,MergeRequest\n",
		"timelogs.csv": "id,time_spent,user_id,created_at,updated_at,issue_id,merge_request_id\n" +
			"100,3600,1,2024-01-05 10:00:00,2024-01-05 10:00:00,30,\n" +
			"101,1800,1,2024-01-06 11:30:00,,,40\n" +
			"102,-600,1,2024-01-05 16:00:00,,30,\n" +
			"103,7200,2,2024-01-10 08:00:00,,31,\n" +
			"104,900,2,2024-02-03 12:00:00,,31,\n",
	}
}

// Archive zips the given tables. Keys are entry names, values file contents.
func Archive(t testing.TB, tables map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range tables {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

// With returns a copy of base with the named tables replaced.
func With(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Without returns a copy of base lacking the named table.
func Without(base map[string]string, table string) map[string]string {
	out := With(base, nil)
	delete(out, table)
	return out
}
