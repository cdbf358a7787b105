// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrietaylor/ecs-detective/internal/schema"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		want    []string
		wantErr error
	}{
		{
			name: "field column first",
			csv:  "field,type,description\nuser.name,keyword,The user name\nhost.ip,ip,Host address\n",
			want: []string{"user.name", "host.ip"},
		},
		{
			name: "field column not first",
			csv:  "type,field,description\nkeyword,user.name,The user name\n",
			want: []string{"user.name"},
		},
		{
			name: "header matched case insensitively",
			csv:  "Type,Field\nkeyword,event.action\n",
			want: []string{"event.action"},
		},
		{
			name: "single word names kept without allow list",
			csv:  "field\nmessage\nagent\n",
			want: []string{"message", "agent"},
		},
		{
			name: "at prefixed name kept",
			csv:  "field\n@timestamp\n",
			want: []string{"@timestamp"},
		},
		{
			name: "rows violating the grammar skipped",
			csv:  "field\nuser.name\n.leading.dot\nuser..double\n1numeric\n",
			want: []string{"user.name"},
		},
		{
			name: "short rows skipped",
			csv:  "type,field\nkeyword,user.name\nkeyword\n",
			want: []string{"user.name"},
		},
		{
			name:    "missing field column",
			csv:     "name,type\nuser.name,keyword\n",
			wantErr: schema.ErrSchemaEmpty,
		},
		{
			name:    "header only",
			csv:     "field,type\n",
			wantErr: schema.ErrSchemaEmpty,
		},
		{
			name:    "all rows unusable",
			csv:     "field\n.bad\n..worse\n",
			wantErr: schema.ErrSchemaEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := schema.Load(tt.csv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), set.Len())
			for _, name := range tt.want {
				assert.True(t, set.Contains(name), "set should contain %q", name)
			}
		})
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := schema.Load("")
	require.Error(t, err)
}
