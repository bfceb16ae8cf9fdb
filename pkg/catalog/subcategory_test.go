package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendSubCategoriesOrderAndDuplicates(t *testing.T) {
	tests := []struct {
		name       string
		existing   []string
		candidates []string
		want       []string
		wantErr    error
	}{
		{
			name:       "append to empty list",
			existing:   nil,
			candidates: []string{"Sneakers", "Boots"},
			want:       []string{"Sneakers", "Boots"},
		},
		{
			name:       "append preserves existing order",
			existing:   []string{"Sneakers", "Boots"},
			candidates: []string{"Sandals"},
			want:       []string{"Sneakers", "Boots", "Sandals"},
		},
		{
			name:       "case-insensitive duplicate of existing entry",
			existing:   []string{"Sneakers"},
			candidates: []string{"SNEAKERS"},
			wantErr:    ErrSubCategoryExists,
		},
		{
			name:       "duplicate within the candidate batch",
			existing:   nil,
			candidates: []string{"Boots", "boots"},
			wantErr:    ErrSubCategoryExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := appendSubCategories(tt.existing, tt.candidates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendSubCategoriesDoesNotMutateInput(t *testing.T) {
	existing := []string{"Sneakers"}
	_, err := appendSubCategories(existing, []string{"Boots"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers"}, existing)
}

func TestRenameSubCategory(t *testing.T) {
	tests := []struct {
		name    string
		list    []string
		oldName string
		newName string
		want    []string
		wantErr error
	}{
		{
			name:    "rename preserves position",
			list:    []string{"Sneakers", "Boots", "Sandals"},
			oldName: "Boots",
			newName: "Hiking_Boots",
			want:    []string{"Sneakers", "Hiking_Boots", "Sandals"},
		},
		{
			name:    "first entry",
			list:    []string{"Sneakers", "Boots"},
			oldName: "Sneakers",
			newName: "Trainers",
			want:    []string{"Trainers", "Boots"},
		},
		{
			name:    "case mismatch is a miss",
			list:    []string{"Sneakers"},
			oldName: "sneakers",
			newName: "Trainers",
			wantErr: ErrSubCategoryNotFound,
		},
		{
			name:    "absent name",
			list:    []string{"Sneakers"},
			oldName: "Gloves",
			newName: "Mittens",
			wantErr: ErrSubCategoryNotFound,
		},
		{
			name:    "new name collides with another entry",
			list:    []string{"Sneakers", "Boots"},
			oldName: "Boots",
			newName: "sneakers",
			wantErr: ErrSubCategoryExists,
		},
		{
			name:    "case-only rename of the same entry is allowed",
			list:    []string{"Sneakers", "Boots"},
			oldName: "Boots",
			newName: "BOOTS",
			want:    []string{"Sneakers", "BOOTS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renameSubCategory(tt.list, tt.oldName, tt.newName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveSubCategories(t *testing.T) {
	tests := []struct {
		name    string
		list    []string
		names   []string
		want    []string
		wantErr error
	}{
		{
			name:  "remove is case-insensitive",
			list:  []string{"Sneakers", "Boots", "Sandals"},
			names: []string{"BOOTS"},
			want:  []string{"Sneakers", "Sandals"},
		},
		{
			name:  "remove several at once",
			list:  []string{"Sneakers", "Boots", "Sandals"},
			names: []string{"Sandals", "Sneakers"},
			want:  []string{"Boots"},
		},
		{
			name:    "nothing matched",
			list:    []string{"Sneakers"},
			names:   []string{"Gloves"},
			wantErr: ErrSubCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := removeSubCategories(tt.list, tt.names)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
