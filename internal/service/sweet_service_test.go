package service

import (
	"sort"
	"testing"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memSweetRepo struct {
	sweets      map[uint]*model.Sweet
	nextID      uint
	lastOrderBy string
}

func newMemSweetRepo(sweets ...model.Sweet) *memSweetRepo {
	m := &memSweetRepo{sweets: make(map[uint]*model.Sweet), nextID: 1}
	for _, s := range sweets {
		c := s
		m.sweets[s.ID] = &c
		if s.ID >= m.nextID {
			m.nextID = s.ID + 1
		}
	}
	return m
}

func (m *memSweetRepo) Create(sweet *model.Sweet) error {
	sweet.ID = m.nextID
	m.nextID++
	c := *sweet
	m.sweets[sweet.ID] = &c
	return nil
}

func (m *memSweetRepo) all() []model.Sweet {
	out := make([]model.Sweet, 0, len(m.sweets))
	for _, s := range m.sweets {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memSweetRepo) FindAll() ([]model.Sweet, error) {
	return m.all(), nil
}

func (m *memSweetRepo) FindPage(offset, limit int, orderBy string) ([]model.Sweet, int64, error) {
	m.lastOrderBy = orderBy
	all := m.all()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memSweetRepo) FindByID(id uint) (*model.Sweet, error) {
	sweet, ok := m.sweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *sweet
	return &c, nil
}

func (m *memSweetRepo) SearchByName(name string) ([]model.Sweet, error) {
	return m.all(), nil
}

func (m *memSweetRepo) SearchByCategory(category string) ([]model.Sweet, error) {
	return m.all(), nil
}

func (m *memSweetRepo) SearchByPriceRange(minPrice, maxPrice float64) ([]model.Sweet, error) {
	var out []model.Sweet
	for _, s := range m.all() {
		if s.Price >= minPrice && s.Price <= maxPrice {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSweetRepo) Update(sweet *model.Sweet) error {
	c := *sweet
	m.sweets[sweet.ID] = &c
	return nil
}

func (m *memSweetRepo) Delete(id uint) error {
	delete(m.sweets, id)
	return nil
}

func TestCreateSweet_Success(t *testing.T) {
	repo := newMemSweetRepo()
	svc := NewSweetService(repo, nil)

	sweet := &model.Sweet{Name: "Kaju Katli", Category: "Nut-Based", Price: 50, Quantity: 20}
	require.NoError(t, svc.CreateSweet(sweet, admin))
	assert.NotZero(t, sweet.ID)

	stored, err := repo.FindByID(sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kaju Katli", stored.Name)
}

func TestCreateSweet_Validation(t *testing.T) {
	repo := newMemSweetRepo()
	svc := NewSweetService(repo, nil)

	err := svc.CreateSweet(&model.Sweet{Name: "X", Category: "Y", Price: 0, Quantity: 1}, admin)
	assert.EqualError(t, err, "Price must be greater than 0")

	err = svc.CreateSweet(&model.Sweet{Name: "X", Category: "Y", Price: 5, Quantity: -1}, admin)
	assert.EqualError(t, err, "Quantity must be greater than or equal to 0")

	err = svc.CreateSweet(&model.Sweet{Category: "Y", Price: 5, Quantity: 1}, admin)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	assert.Empty(t, repo.sweets)
}

func TestGetSweetByID_NotFound(t *testing.T) {
	svc := NewSweetService(newMemSweetRepo(), nil)

	_, err := svc.GetSweetByID(3)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.EqualError(t, err, "Sweet not found with id: 3")
}

func TestUpdateSweet_BumpsVersion(t *testing.T) {
	repo := newMemSweetRepo(model.Sweet{ID: 1, Name: "Old", Category: "C", Price: 10, Quantity: 5, Version: 2})
	svc := NewSweetService(repo, nil)

	updated, err := svc.UpdateSweet(1, &model.Sweet{Name: "New", Category: "C2", Price: 12, Quantity: 8}, admin)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "C2", updated.Category)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, int64(3), updated.Version)
}

func TestDeleteSweet_RequiresAdmin(t *testing.T) {
	repo := newMemSweetRepo(model.Sweet{ID: 1, Name: "S", Category: "C", Price: 10, Quantity: 5})
	svc := NewSweetService(repo, nil)

	err := svc.DeleteSweet(1, buyer)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.EqualError(t, err, "Only ADMIN users can delete sweets")
	assert.Len(t, repo.sweets, 1)

	require.NoError(t, svc.DeleteSweet(1, admin))
	assert.Empty(t, repo.sweets)
}

func TestDeleteSweet_NotFound(t *testing.T) {
	svc := NewSweetService(newMemSweetRepo(), nil)

	err := svc.DeleteSweet(8, admin)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetSweetsPage_ValidatesBounds(t *testing.T) {
	svc := NewSweetService(newMemSweetRepo(), nil)

	_, err := svc.GetSweetsPage(-1, 10, "id", "asc")
	assert.EqualError(t, err, "Page number must be 0 or greater")

	_, err = svc.GetSweetsPage(0, 0, "id", "asc")
	assert.EqualError(t, err, "Page size must be at least 1")

	_, err = svc.GetSweetsPage(0, 101, "id", "asc")
	assert.EqualError(t, err, "Page size cannot exceed 100")
}

func TestGetSweetsPage_Paging(t *testing.T) {
	var sweets []model.Sweet
	for i := 1; i <= 25; i++ {
		sweets = append(sweets, model.Sweet{ID: uint(i), Name: "S", Category: "C", Price: float64(i), Quantity: 1})
	}
	repo := newMemSweetRepo(sweets...)
	svc := NewSweetService(repo, nil)

	page, err := svc.GetSweetsPage(1, 10, "price", "desc")
	require.NoError(t, err)
	assert.Len(t, page.Content, 10)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	assert.Equal(t, "price DESC", repo.lastOrderBy)

	last, err := svc.GetSweetsPage(2, 10, "", "")
	require.NoError(t, err)
	assert.Len(t, last.Content, 5)
	assert.False(t, last.HasNext)
	assert.Equal(t, "id ASC", repo.lastOrderBy)
}

func TestGetSweetsPage_SortWhitelist(t *testing.T) {
	repo := newMemSweetRepo()
	svc := NewSweetService(repo, nil)

	// anything outside the whitelist falls back to id so raw client input
	// never reaches the ORDER BY clause
	_, err := svc.GetSweetsPage(0, 10, "quantity; DROP TABLE sweets", "asc")
	require.NoError(t, err)
	assert.Equal(t, "id ASC", repo.lastOrderBy)
}

func TestSearchByPriceRange_Validation(t *testing.T) {
	svc := NewSweetService(newMemSweetRepo(), nil)

	_, err := svc.SearchByPriceRange(0, 10)
	assert.EqualError(t, err, "Minimum price must be greater than 0")

	_, err = svc.SearchByPriceRange(10, 0)
	assert.EqualError(t, err, "Maximum price must be greater than 0")

	_, err = svc.SearchByPriceRange(20, 10)
	assert.EqualError(t, err, "Minimum price cannot be greater than maximum price")
}

func TestSearchByPriceRange_Filters(t *testing.T) {
	repo := newMemSweetRepo(
		model.Sweet{ID: 1, Name: "A", Category: "C", Price: 5, Quantity: 1},
		model.Sweet{ID: 2, Name: "B", Category: "C", Price: 15, Quantity: 1},
		model.Sweet{ID: 3, Name: "C", Category: "C", Price: 25, Quantity: 1},
	)
	svc := NewSweetService(repo, nil)

	found, err := svc.SearchByPriceRange(10, 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, uint(2), found[0].ID)
}
