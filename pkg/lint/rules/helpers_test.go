package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTableRefs(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []tableRef
	}{
		{
			name: "simple equality",
			expr: "users.id = profiles.user_id",
			want: []tableRef{
				{Table: "users", Column: "id"},
				{Table: "profiles", Column: "user_id"},
			},
		},
		{
			name: "parenthesized",
			expr: "(posts.id = likes.post_id)",
			want: []tableRef{
				{Table: "posts", Column: "id"},
				{Table: "likes", Column: "post_id"},
			},
		},
		{
			name: "operators and literals are skipped",
			expr: "users.status = 'active' AND 1 = 1",
			want: []tableRef{{Table: "users", Column: "status"}},
		},
		{
			name: "double dotted token is skipped",
			expr: "db.users.id = posts.user_id",
			want: []tableRef{{Table: "posts", Column: "user_id"}},
		},
		{
			name: "no references",
			expr: "TRUE",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTableRefs(tt.expr))
		})
	}
}

func TestScanParams(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      []string
	}{
		{
			name:      "single param",
			condition: "users.status = :status",
			want:      []string{"status"},
		},
		{
			name:      "multiple params keep order",
			condition: "users.status = :status AND users.role = :role",
			want:      []string{"status", "role"},
		},
		{
			name:      "trailing punctuation trimmed",
			condition: "users.created_at >= :since)",
			want:      []string{"since"},
		},
		{
			name:      "bare colon ignored",
			condition: "users.status = :",
			want:      nil,
		},
		{
			name:      "no params",
			condition: "users.deleted_at IS NULL",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanParams(tt.condition))
		})
	}
}
