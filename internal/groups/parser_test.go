package groups

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = "staff:x:50:alice,bob\nadmins:x:10:alice\n"

func TestParseGroupTable(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want Index
	}{
		{
			name: "empty input",
			raw:  "",
			want: Index{},
		},
		{
			name: "whitespace only",
			raw:  " \n\t\n",
			want: Index{},
		},
		{
			name: "file order preserved",
			raw:  sampleTable,
			want: Index{
				"alice": {"staff", "admins"},
				"bob":   {"staff"},
			},
		},
		{
			name: "empty member field contributes nothing",
			raw:  "root:x:0:\nwheel:x:10:carol",
			want: Index{"carol": {"wheel"}},
		},
		{
			name: "blank and comment lines skipped",
			raw:  "# generated\nstaff:x:50:alice\n\nusers:x:100:alice\n",
			want: Index{"alice": {"staff", "users"}},
		},
		{
			name: "crlf line endings",
			raw:  "staff:x:50:alice,bob\r\nadmins:x:10:alice\r\n",
			want: Index{
				"alice": {"staff", "admins"},
				"bob":   {"staff"},
			},
		},
		{
			name: "duplicate member listed once per group",
			raw:  "staff:x:50:alice,alice,,bob",
			want: Index{
				"alice": {"staff"},
				"bob":   {"staff"},
			},
		},
		{
			name: "not alphabetical",
			raw:  "zeta:x:3:dave\nalpha:x:4:dave",
			want: Index{"dave": {"zeta", "alpha"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseGroupTable(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseGroupTable_MalformedLine(t *testing.T) {
	testCases := []struct {
		name       string
		raw        string
		wantLine   int
		wantFields int
	}{
		{name: "too few fields", raw: "staff:x:50:alice\nbroken:x:51\n", wantLine: 2, wantFields: 3},
		{name: "too many fields", raw: "staff:x:50:alice:extra", wantLine: 1, wantFields: 5},
		{name: "non numeric gid", raw: "staff:x:abc:alice", wantLine: 1, wantFields: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGroupTable(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedLine)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.wantLine, perr.Line)
			assert.Equal(t, tc.wantFields, perr.Fields)
		})
	}
}

func TestParseGroupTable_Idempotent(t *testing.T) {
	first, err := ParseGroupTable(sampleTable)
	require.NoError(t, err)

	second, err := ParseGroupTable(sampleTable)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseGroupTable_EveryListedMemberIndexed(t *testing.T) {
	raw := "a:x:1:u1,u2\nb:x:2:u2,u3\nc:x:3:\nd:x:4:u1"

	table, err := ParseTable(raw)
	require.NoError(t, err)

	idx := table.Index()

	for _, e := range table {
		for _, m := range e.Members {
			assert.Contains(t, idx[m], e.Name, "member %s of %s", m, e.Name)
		}
	}

	assert.Len(t, idx, 3)
	assert.NotContains(t, idx, "")
}

func TestParseTable_Entries(t *testing.T) {
	table, err := ParseTable(sampleTable)
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, Entry{Name: "staff", Secret: "x", GID: 50, Members: []string{"alice", "bob"}}, table[0])
	assert.Equal(t, Entry{Name: "admins", Secret: "x", GID: 10, Members: []string{"alice"}}, table[1])
}

func TestIndexLookup(t *testing.T) {
	idx, err := ParseGroupTable(sampleTable)
	require.NoError(t, err)

	assert.Equal(t, []string{"staff", "admins"}, idx.Lookup("alice"))

	missing := idx.Lookup("carol")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)

	// callers get their own copy
	got := idx.Lookup("alice")
	got[0] = "changed"
	assert.Equal(t, "staff", idx["alice"][0])
}
