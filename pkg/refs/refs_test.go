package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDBMLRef(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		want   DBMLRef
		wantOK bool
	}{
		{
			name:   "simple",
			ref:    `./schema.dbml#tables["users"]`,
			want:   DBMLRef{File: "./schema.dbml", Table: "users"},
			wantOK: true,
		},
		{
			name:   "nested path",
			ref:    `../shared/db.dbml#tables["post_tags"]`,
			want:   DBMLRef{File: "../shared/db.dbml", Table: "post_tags"},
			wantOK: true,
		},
		{
			name: "no fragment",
			ref:  "./schema.dbml",
		},
		{
			name: "wrong fragment shape",
			ref:  `./schema.dbml#columns["id"]`,
		},
		{
			name: "missing closing bracket",
			ref:  `./schema.dbml#tables["users"`,
		},
		{
			name: "not a reference at all",
			ref:  "invalid_string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDBMLRef(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseOpenAPIRef(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		got, ok := ParseOpenAPIRef(`./api.yaml#paths["/users"].get.responses["200"]`)
		require.True(t, ok)
		assert.Equal(t, "./api.yaml", got.File)
		assert.Equal(t, "/users", got.Path)
		assert.Equal(t, "get", got.Method)
		assert.Equal(t, "200", got.Status)
	})

	t.Run("path parameter", func(t *testing.T) {
		got, ok := ParseOpenAPIRef(`./api.yaml#paths["/posts/{post_id}"].get.responses["200"]`)
		require.True(t, ok)
		assert.Equal(t, "/posts/{post_id}", got.Path)
		assert.Equal(t, "get", got.Method)
	})

	t.Run("dot inside api path is preserved", func(t *testing.T) {
		got, ok := ParseOpenAPIRef(`./api.yaml#paths["/v1.2/users"].post.responses["201"]`)
		require.True(t, ok)
		assert.Equal(t, "/v1.2/users", got.Path)
		assert.Equal(t, "post", got.Method)
		assert.Equal(t, "201", got.Status)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		invalid := []string{
			"invalid",
			"./api.yaml",
			`./api.yaml#paths["/users"].get`,
			`./api.yaml#paths["/users"]`,
			`./api.yaml#responses["200"]`,
		}
		for _, ref := range invalid {
			_, ok := ParseOpenAPIRef(ref)
			assert.False(t, ok, "ref %q should not parse", ref)
		}
	})
}
