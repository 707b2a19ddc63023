package params

import (
	"testing"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name    string
		query   map[string]string
		want    Pagination
		wantErr error
	}{
		{
			name:  "defaults",
			query: map[string]string{},
			want:  Pagination{Limit: 8, Offset: 0},
		},
		{
			name:  "explicit page and per_page",
			query: map[string]string{"page": "3", "per_page": "12"},
			want:  Pagination{Limit: 12, Offset: 24},
		},
		{
			name:  "smallest page size",
			query: map[string]string{"page": "2", "per_page": "4"},
			want:  Pagination{Limit: 4, Offset: 4},
		},
		{
			name:    "zero page",
			query:   map[string]string{"page": "0"},
			wantErr: model.ErrInvalidPage,
		},
		{
			name:    "negative page",
			query:   map[string]string{"page": "-2"},
			wantErr: model.ErrInvalidPage,
		},
		{
			name:    "non-numeric page",
			query:   map[string]string{"page": "abc"},
			wantErr: model.ErrInvalidPage,
		},
		{
			name:    "negative per_page",
			query:   map[string]string{"per_page": "-8"},
			wantErr: model.ErrInvalidPerPage,
		},
		{
			name:    "non-numeric per_page",
			query:   map[string]string{"per_page": "eight"},
			wantErr: model.ErrInvalidPerPage,
		},
		{
			name:    "per_page outside allow-set",
			query:   map[string]string{"per_page": "5"},
			wantErr: model.ErrPerPageNotAvailable,
		},
		{
			name:    "per_page above ceiling still rejected by allow-set",
			query:   map[string]string{"per_page": "40"},
			wantErr: model.ErrPerPageNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePagination(tt.query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
