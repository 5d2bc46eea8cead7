package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSQL(t *testing.T, fsys fs.FS, dir string) []string {
	t.Helper()
	entries, err := fs.ReadDir(fsys, dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestEveryUpHasDown(t *testing.T) {
	cases := []struct {
		fsys fs.FS
		dir  string
	}{
		{Public, "public"},
		{Org, "orgschema"},
	}
	for _, tc := range cases {
		names := collectSQL(t, tc.fsys, tc.dir)
		require.NotEmpty(t, names, tc.dir)
		ups := map[string]bool{}
		downs := map[string]bool{}
		for _, n := range names {
			switch {
			case strings.HasSuffix(n, ".up.sql"):
				ups[strings.TrimSuffix(n, ".up.sql")] = true
			case strings.HasSuffix(n, ".down.sql"):
				downs[strings.TrimSuffix(n, ".down.sql")] = true
			default:
				t.Fatalf("unexpected file %s in %s", n, tc.dir)
			}
		}
		assert.Equal(t, ups, downs, tc.dir)
	}
}

func TestOrgSchemaCoversAllTables(t *testing.T) {
	data, err := fs.ReadFile(Org, "orgschema/000001_base.up.sql")
	require.NoError(t, err)
	ddl := string(data)
	for _, table := range []string{
		"agencies", "advertisers", "shows", "episodes", "campaigns",
		"schedule_slots", "budget_entries", "invoices", "invoice_lines",
		"proposals", "proposal_versions", "shipments", "kpis",
		"approvals", "approval_events", "integrations", "creative_assets",
	} {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table, table)
	}
}
