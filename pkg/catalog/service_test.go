package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-catalog/pkg/catalog"
	memoryrepo "github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
	memorystorage "github.com/tendant/simple-catalog/pkg/catalog/storage/memory"
	"github.com/tendant/simple-catalog/pkg/catalog/uploader"
)

// stubFallback is a controllable catalog.FallbackStore.
type stubFallback struct {
	mu    sync.Mutex
	fail  bool
	saved []string
}

func (f *stubFallback) Save(ctx context.Context, file catalog.File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", errors.New("disk full")
	}
	f.saved = append(f.saved, file.Name)
	return "/uploads/" + file.Name, nil
}

func (f *stubFallback) Saved() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.saved))
	copy(out, f.saved)
	return out
}

type fixture struct {
	svc      catalog.Service
	repo     *memoryrepo.Repository
	blob     *memorystorage.Store
	fallback *stubFallback
}

func setup(t *testing.T) *fixture {
	t.Helper()

	repo := memoryrepo.New()
	blob := memorystorage.New()
	fallback := &stubFallback{}

	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithBlobStore(blob),
		catalog.WithUploader(uploader.New(blob, fallback)),
	)
	require.NoError(t, err)

	return &fixture{svc: svc, repo: repo, blob: blob, fallback: fallback}
}

func testImage(name string) *catalog.File {
	return &catalog.File{
		Name:        name,
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	}
}

func newCategoryRequest(name string) catalog.CreateCategoryRequest {
	return catalog.CreateCategoryRequest{
		Name:        name,
		Slug:        name,
		Description: "All kinds of " + name + " for every season",
		Image:       testImage("cover.jpg"),
	}
}

func TestServiceCreation(t *testing.T) {
	repo := memoryrepo.New()
	blob := memorystorage.New()
	up := uploader.New(blob, &stubFallback{})

	tests := []struct {
		name        string
		options     []catalog.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []catalog.Option{},
			expectError: true,
		},
		{
			name: "missing uploader should fail",
			options: []catalog.Option{
				catalog.WithRepository(repo),
				catalog.WithBlobStore(blob),
			},
			expectError: true,
		},
		{
			name: "full wiring should succeed",
			options: []catalog.Option{
				catalog.WithRepository(repo),
				catalog.WithBlobStore(blob),
				catalog.WithUploader(up),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := catalog.New(tt.options...)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestCreateCategory(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, catalog.CreateCategoryRequest{
		Name:        "Summer Shoes",
		Slug:        "Summer Shoes!",
		Description: "Footwear for the warm months",
		Image:       testImage("summer.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Summer Shoes", category.Name)
	assert.Equal(t, "summer-shoes", category.Slug)
	assert.True(t, category.Image.Remote())
	assert.NotEmpty(t, category.Image.URL)
	assert.Empty(t, category.SubCategories)

	stored, err := fix.svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.Image.URL, stored.Image.URL)
}

func TestCreateCategoryValidation(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  catalog.CreateCategoryRequest
	}{
		{
			name: "short name",
			req: catalog.CreateCategoryRequest{
				Name:        "ab",
				Slug:        "shoes",
				Description: "Footwear for everyone",
				Image:       testImage("a.jpg"),
			},
		},
		{
			name: "short description",
			req: catalog.CreateCategoryRequest{
				Name:        "Shoes",
				Slug:        "shoes",
				Description: "short",
				Image:       testImage("a.jpg"),
			},
		},
		{
			name: "missing image",
			req: catalog.CreateCategoryRequest{
				Name:        "Shoes",
				Slug:        "shoes",
				Description: "Footwear for everyone",
			},
		},
		{
			name: "oversized image",
			req: catalog.CreateCategoryRequest{
				Name:        "Shoes",
				Slug:        "shoes",
				Description: "Footwear for everyone",
				Image: &catalog.File{
					Name: "big.jpg",
					Data: make([]byte, catalog.MaxCategoryImageBytes+1),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fix.svc.CreateCategory(ctx, tt.req)
			var ve *catalog.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}

	// Validation failures must not leave records behind.
	page, err := fix.svc.ListCategories(ctx, catalog.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.MatchingCount)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	_, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	_, err = fix.svc.CreateCategory(ctx, newCategoryRequest("shoes"))
	assert.ErrorIs(t, err, catalog.ErrCategoryExists)
}

func TestCreateCategoryConcurrentSameName(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
			errs <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, catalog.ErrCategoryExists)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	page, err := fix.svc.ListCategories(ctx, catalog.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.MatchingCount)
}

func TestCreateCategoryRollbackOnUploadFailure(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	// Blob store down and the fallback disk full: the create must undo its
	// skeleton record.
	fix.blob.FailUploads(true)
	fix.fallback.fail = true

	_, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.Error(t, err)

	page, err := fix.svc.ListCategories(ctx, catalog.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.MatchingCount)
	assert.Zero(t, fix.blob.Len())
}

func TestCreateCategoryFallsBackToLocalStorage(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	fix.blob.FailUploads(true)

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	assert.False(t, category.Image.Remote())
	assert.Equal(t, "/uploads/cover.jpg", category.Image.URL)
	assert.Equal(t, []string{"cover.jpg"}, fix.fallback.Saved())
}

func TestUpdateCategory(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	newName := "Winter Shoes"
	updated, err := fix.svc.UpdateCategory(ctx, catalog.UpdateCategoryRequest{
		ID:   category.ID,
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Winter Shoes", updated.Name)
	// Untouched fields survive a partial update.
	assert.Equal(t, category.Slug, updated.Slug)
	assert.Equal(t, category.Image, updated.Image)
}

func TestUpdateCategoryReplacesImageAfterCommit(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	oldID := category.Image.ExternalID

	updated, err := fix.svc.UpdateCategory(ctx, catalog.UpdateCategoryRequest{
		ID:    category.ID,
		Image: testImage("new-cover.jpg"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, oldID, updated.Image.ExternalID)
	assert.True(t, fix.blob.Stored(updated.Image.ExternalID))
	assert.False(t, fix.blob.Stored(oldID))
	assert.Contains(t, fix.blob.Deleted(), oldID)
}

func TestUpdateCategoryDuplicateName(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	_, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	other, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Bags"))
	require.NoError(t, err)

	taken := "SHOES"
	_, err = fix.svc.UpdateCategory(ctx, catalog.UpdateCategoryRequest{
		ID:   other.ID,
		Name: &taken,
	})
	assert.ErrorIs(t, err, catalog.ErrCategoryExists)
}

func TestDeleteCategory(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	deleted, err := fix.svc.DeleteCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, deleted.ID)

	_, err = fix.svc.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	assert.Contains(t, fix.blob.Deleted(), category.Image.ExternalID)
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers"})
	require.NoError(t, err)

	product, err := fix.svc.CreateProduct(ctx, newProductRequest(category.ID, "Trail Runner"))
	require.NoError(t, err)

	_, err = fix.svc.DeleteCategory(ctx, category.ID)
	require.ErrorIs(t, err, catalog.ErrCategoryInUse)
	assert.Contains(t, err.Error(), "Trail Runner")

	_, err = fix.svc.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)

	_, err = fix.svc.DeleteCategory(ctx, category.ID)
	assert.NoError(t, err)
}

func TestDeleteCategorySurvivesBlobFailure(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	// Record deletion must not wait on blob cleanup.
	fix.blob.FailDeletes(true)
	_, err = fix.svc.DeleteCategory(ctx, category.ID)
	require.NoError(t, err)

	_, err = fix.svc.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestListCategoriesPagination(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := fix.svc.CreateCategory(ctx, newCategoryRequest(fmt.Sprintf("Category %02d", i)))
		require.NoError(t, err)
	}

	page, err := fix.svc.ListCategories(ctx, catalog.ListRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Categories, 5)
	assert.Equal(t, int64(25), page.MatchingCount)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)

	// Unknown limits fall back to the default; pages below 1 become page 1.
	page, err = fix.svc.ListCategories(ctx, catalog.ListRequest{Page: -2, Limit: 17})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, catalog.DefaultLimit, page.Limit)
	assert.Len(t, page.Categories, catalog.DefaultLimit)
}

func TestListCategoriesSearch(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	shoes, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.CreateCategory(ctx, newCategoryRequest("Bags"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, shoes.ID, []string{"Running Sneakers"})
	require.NoError(t, err)

	page, err := fix.svc.ListCategories(ctx, catalog.ListRequest{Search: "sneaker"})
	require.NoError(t, err)
	require.Len(t, page.Categories, 1)
	assert.Equal(t, shoes.ID, page.Categories[0].ID)
	assert.Equal(t, int64(1), page.MatchingCount)
}

func TestAddSubCategories(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	updated, err := fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers", "Hiking Boots"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers", "Hiking_Boots"}, updated.SubCategories)

	// Appends preserve existing order.
	updated, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sandals"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers", "Hiking_Boots", "Sandals"}, updated.SubCategories)
}

func TestAddSubCategoriesRejectsDuplicates(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers"})
	require.NoError(t, err)

	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"SNEAKERS"})
	require.ErrorIs(t, err, catalog.ErrSubCategoryExists)

	// A rejected batch leaves the list untouched.
	stored, err := fix.svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers"}, stored.SubCategories)
}

func TestRenameSubCategory(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers", "Boots", "Sandals"})
	require.NoError(t, err)

	updated, err := fix.svc.RenameSubCategory(ctx, category.ID, "Boots", "Hiking Boots")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers", "Hiking_Boots", "Sandals"}, updated.SubCategories)
}

func TestRenameSubCategoryRequiresExactMatch(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers"})
	require.NoError(t, err)

	_, err = fix.svc.RenameSubCategory(ctx, category.ID, "sneakers", "Trainers")
	assert.ErrorIs(t, err, catalog.ErrSubCategoryNotFound)
}

func TestRenameSubCategoryRejectsCollision(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers", "Boots"})
	require.NoError(t, err)

	_, err = fix.svc.RenameSubCategory(ctx, category.ID, "Boots", "sneakers")
	require.ErrorIs(t, err, catalog.ErrSubCategoryExists)

	stored, err := fix.svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers", "Boots"}, stored.SubCategories)
}

func TestRemoveSubCategories(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Sneakers", "Boots", "Sandals"})
	require.NoError(t, err)

	updated, err := fix.svc.RemoveSubCategories(ctx, category.ID, []string{"BOOTS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers", "Sandals"}, updated.SubCategories)

	_, err = fix.svc.RemoveSubCategories(ctx, category.ID, []string{"Gloves"})
	assert.ErrorIs(t, err, catalog.ErrSubCategoryNotFound)
}

func TestRemoveSubCategoriesNormalizesNames(t *testing.T) {
	fix := setup(t)
	ctx := context.Background()

	category, err := fix.svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	_, err = fix.svc.AddSubCategories(ctx, category.ID, []string{"Hiking Boots", "Sandals"})
	require.NoError(t, err)

	// Names in request form match the stored spelling.
	updated, err := fix.svc.RemoveSubCategories(ctx, category.ID, []string{"hiking boots"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sandals"}, updated.SubCategories)
}

// conflictingRepo injects a single version conflict on the first
// sub-category swap.
type conflictingRepo struct {
	*memoryrepo.Repository
	mu        sync.Mutex
	conflicts int
}

func (r *conflictingRepo) UpdateSubCategories(ctx context.Context, id uuid.UUID, expectedVersion int64, names []string) (*catalog.Category, error) {
	r.mu.Lock()
	inject := r.conflicts > 0
	if inject {
		r.conflicts--
	}
	r.mu.Unlock()
	if inject {
		return nil, catalog.ErrVersionConflict
	}
	return r.Repository.UpdateSubCategories(ctx, id, expectedVersion, names)
}

func TestSubCategoryMutationRetriesOnVersionConflict(t *testing.T) {
	blob := memorystorage.New()
	repo := &conflictingRepo{Repository: memoryrepo.New()}
	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithBlobStore(blob),
		catalog.WithUploader(uploader.New(blob, &stubFallback{})),
	)
	require.NoError(t, err)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	repo.conflicts = 1
	updated, err := svc.AddSubCategories(ctx, category.ID, []string{"Sneakers"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sneakers"}, updated.SubCategories)

	// Two consecutive conflicts exhaust the single retry.
	repo.conflicts = 2
	_, err = svc.AddSubCategories(ctx, category.ID, []string{"Boots"})
	assert.ErrorIs(t, err, catalog.ErrVersionConflict)
}

// failingRepo injects failures on category and product record writes. With
// commit set the write is applied before the error is reported, mimicking a
// store that committed but timed out on the response.
type failingRepo struct {
	*memoryrepo.Repository
	mu       sync.Mutex
	failures int
	err      error
	commit   bool
}

func (r *failingRepo) inject() (fail, commit bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == 0 {
		return false, false, nil
	}
	r.failures--
	return true, r.commit, r.err
}

func (r *failingRepo) UpdateCategory(ctx context.Context, category *catalog.Category) error {
	fail, commit, injected := r.inject()
	if !fail {
		return r.Repository.UpdateCategory(ctx, category)
	}
	if commit {
		if err := r.Repository.UpdateCategory(ctx, category); err != nil {
			return err
		}
	}
	return injected
}

func setupWithRepo(t *testing.T, repo catalog.Repository) (catalog.Service, *memorystorage.Store) {
	t.Helper()
	blob := memorystorage.New()
	svc, err := catalog.New(
		catalog.WithRepository(repo),
		catalog.WithBlobStore(blob),
		catalog.WithUploader(uploader.New(blob, &stubFallback{})),
	)
	require.NoError(t, err)
	return svc, blob
}

func TestCreateCategoryRollbackOnFinalizeFailure(t *testing.T) {
	repo := &failingRepo{Repository: memoryrepo.New(), err: errors.New("write aborted")}
	svc, blob := setupWithRepo(t, repo)
	ctx := context.Background()

	// Uploads succeed, the finalize write does not. The skeleton record must
	// go and the uploaded image must be handed to the blob delete.
	repo.failures = 1
	_, err := svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.Error(t, err)

	page, err := svc.ListCategories(ctx, catalog.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.MatchingCount)
	assert.Zero(t, blob.Len())
	assert.Len(t, blob.Deleted(), 1)
}

func TestUpdateCategoryPersistFailureKeepsOldImage(t *testing.T) {
	repo := &failingRepo{Repository: memoryrepo.New(), err: errors.New("write aborted")}
	svc, blob := setupWithRepo(t, repo)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)
	oldID := category.Image.ExternalID

	repo.failures = 1
	_, err = svc.UpdateCategory(ctx, catalog.UpdateCategoryRequest{
		ID:    category.ID,
		Image: testImage("new-cover.jpg"),
	})
	require.Error(t, err)

	// The stored record still points at the old asset; only the new upload
	// was rolled back.
	stored, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, oldID, stored.Image.ExternalID)
	assert.True(t, blob.Stored(oldID))
	require.Len(t, blob.Deleted(), 1)
	assert.NotEqual(t, oldID, blob.Deleted()[0])
}

func TestCreateCategoryFinalizeTimeoutDetectsCommit(t *testing.T) {
	repo := &failingRepo{Repository: memoryrepo.New(), err: context.DeadlineExceeded, commit: true}
	svc, blob := setupWithRepo(t, repo)
	ctx := context.Background()

	// The finalize write lands but the response times out. The re-query sees
	// the committed image URL, so nothing is compensated.
	repo.failures = 1
	category, err := svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.NoError(t, err)

	stored, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.Image.URL, stored.Image.URL)
	assert.Equal(t, 1, blob.Len())
	assert.Empty(t, blob.Deleted())
}

func TestCreateCategoryFinalizeTimeoutWithoutCommitRollsBack(t *testing.T) {
	repo := &failingRepo{Repository: memoryrepo.New(), err: context.DeadlineExceeded}
	svc, blob := setupWithRepo(t, repo)
	ctx := context.Background()

	// Same timeout, but the write never landed: the re-query finds the
	// skeleton and the create is compensated as usual.
	repo.failures = 1
	_, err := svc.CreateCategory(ctx, newCategoryRequest("Shoes"))
	require.Error(t, err)

	page, err := svc.ListCategories(ctx, catalog.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.MatchingCount)
	assert.Zero(t, blob.Len())
}
