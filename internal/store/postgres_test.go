package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "mrrweave", want: "mrrweave"},
		{name: "underscore prefix", input: "_runs", want: "_runs"},
		{name: "trimmed", input: "  audit  ", want: "audit"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "digit prefix", input: "1schema", wantErr: true},
		{name: "injection attempt", input: "public; DROP TABLE x", wantErr: true},
		{name: "quoted", input: `"public"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sanitizeSchema(tt.input)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeSchema_EmptyIsSentinel(t *testing.T) {
	t.Parallel()

	_, err := sanitizeSchema("")

	assert.ErrorIs(t, err, ErrSchemaRequired)
}

func TestNullString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sql.NullString{}, nullString(""))
	assert.Equal(t, sql.NullString{}, nullString("   "))
	assert.Equal(t, sql.NullString{String: "june-rerun", Valid: true}, nullString("june-rerun"))
}

func TestNullInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sql.NullInt64{}, nullInt(42, false))
	assert.Equal(t, sql.NullInt64{Int64: 0, Valid: true}, nullInt(0, true))
	assert.Equal(t, sql.NullInt64{Int64: 17, Valid: true}, nullInt(17, true))
}

func TestSaveRun_InvalidSchema_FailsBeforeConnecting(t *testing.T) {
	t.Parallel()

	_, err := SaveRun(Config{URL: "postgres://nowhere/db", Schema: "bad name"}, RunStats{}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema name")
}
