//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserProjection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "empty selects all", raw: "", want: []string{"id", "username", "created_at", "updated_at"}},
		{name: "id always included", raw: "username", want: []string{"id", "username"}},
		{name: "dedupes and normalizes", raw: " Username, id ,username,", want: []string{"id", "username"}},
		{name: "password hash is not selectable", raw: "password_hash", wantErr: true},
		{name: "unknown field", raw: "id,email", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := ParseUserProjection(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Columns())
		})
	}
}

func TestUserProjection_Apply(t *testing.T) {
	now := time.Now()
	u := User{ID: "u1", Username: "alice", CreatedAt: now, UpdatedAt: now}

	p, err := NewUserProjection(UserFieldUsername)
	require.NoError(t, err)

	got := p.Apply(u)
	assert.Equal(t, User{ID: "u1", Username: "alice"}, got)
	assert.Equal(t, u, AllUserFields().Apply(u))
}
