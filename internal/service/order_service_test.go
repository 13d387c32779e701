package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// mockOrderRepo implements repositories.OrderRepositoryInterface and captures
// the submitted order.
type mockOrderRepo struct {
	submitted *models.Order
	orderNo   string
	err       error

	openRows []models.OpenOrderRow
	best     []models.BestMenu
}

func (m *mockOrderRepo) Submit(_ context.Context, _ dbrouter.Target, order *models.Order) (string, error) {
	m.submitted = order
	if m.err != nil {
		return "", m.err
	}
	return m.orderNo, nil
}

func (m *mockOrderRepo) OpenOrders(_ context.Context, _ dbrouter.Target) ([]models.OpenOrderRow, error) {
	return m.openRows, m.err
}

func (m *mockOrderRepo) Complete(_ context.Context, _ dbrouter.Target, _ string) error {
	return m.err
}

func (m *mockOrderRepo) BestSellers(_ context.Context, _ dbrouter.Target) ([]models.BestMenu, error) {
	return m.best, m.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func TestSubmitOrder_RejectsEmptyCart(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		OrderInfo: OrderInfo{CustomerName: "Grace"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, repo.submitted, "nothing may be persisted for an empty cart")
}

func TestSubmitOrder_RejectsNonPositiveQuantity(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 0},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, repo.submitted)
}

func TestSubmitOrder_RejectsUnknownCategory(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 7, Category: "SMOOTHIE", Qty: 1},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitOrder_DefaultsBlankOrdererName(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		OrderInfo: OrderInfo{CustomerName: "   "},
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 1},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, repo.submitted)
	assert.Equal(t, models.DefaultOrdererName, repo.submitted.OrdererName)
}

func TestSubmitOrder_TrimsOrdererName(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		OrderInfo: OrderInfo{CustomerName: "  Grace  "},
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Grace", repo.submitted.OrdererName)
}

// The two-line scenario from the back-office acceptance check: a hot coffee
// with explicit shot strength plus a hot tea with no category options.
func TestSubmitOrder_NormalizesPerCategory(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829012"}
	svc := NewOrderService(repo, testLogger())

	orderNo, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		OrderInfo: OrderInfo{CustomerName: "Grace"},
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 2, Options: json.RawMessage(`{"temp":"HOT","coffeeShot":"보통"}`)},
			{ID: 12, Category: models.CategoryTea, Qty: 1, Options: json.RawMessage(`{"temp":"HOT"}`)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "20260829012", orderNo)
	require.NotNil(t, repo.submitted)
	require.Len(t, repo.submitted.Lines, 2)

	coffee := repo.submitted.Lines[0]
	assert.Equal(t, 1, coffee.Seq)
	assert.Equal(t, int64(7), coffee.MenuID)
	assert.Equal(t, 2, coffee.Quantity)
	require.NotNil(t, coffee.Temp)
	assert.Equal(t, models.TempHot, *coffee.Temp)
	require.NotNil(t, coffee.CoffeeShot)
	assert.Equal(t, models.LevelNormal, *coffee.CoffeeShot)
	assert.Nil(t, coffee.IceAmt, "hot drinks carry no ice level")
	assert.Nil(t, coffee.ShotToggle)
	assert.Nil(t, coffee.Sweetness)

	tea := repo.submitted.Lines[1]
	assert.Equal(t, 2, tea.Seq)
	assert.Equal(t, int64(12), tea.MenuID)
	assert.Nil(t, tea.CoffeeShot, "tea carries no coffee shot value")
	assert.Nil(t, tea.ShotToggle)
	assert.Nil(t, tea.Sweetness)
	assert.Nil(t, tea.IceAmt)
}

func TestSubmitOrder_CoffeeShotDefaultsToNormal(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 3, Category: models.CategoryCoffee, Qty: 1, Options: json.RawMessage(`{"temp":"HOT"}`)},
		},
	})

	require.NoError(t, err)
	line := repo.submitted.Lines[0]
	require.NotNil(t, line.CoffeeShot)
	assert.Equal(t, models.LevelNormal, *line.CoffeeShot)
}

func TestSubmitOrder_IceLevelOnlyWhenIced(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 5, Category: models.CategoryAde, Qty: 1, Options: json.RawMessage(`{"temp":"ICE"}`)},
			{ID: 5, Category: models.CategoryAde, Qty: 1, Options: json.RawMessage(`{"temp":"ICE","ice":"많이"}`)},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.submitted.Lines, 2)

	defaultedLine := repo.submitted.Lines[0]
	require.NotNil(t, defaultedLine.IceAmt)
	assert.Equal(t, models.LevelNormal, *defaultedLine.IceAmt)

	explicit := repo.submitted.Lines[1]
	require.NotNil(t, explicit.IceAmt)
	assert.Equal(t, models.LevelMore, *explicit.IceAmt)
}

func TestSubmitOrder_NonCoffeeDefaults(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 9, Category: models.CategoryNonCoffee, Qty: 1, Options: json.RawMessage(`{"temp":"ICE"}`)},
		},
	})

	require.NoError(t, err)
	line := repo.submitted.Lines[0]
	require.NotNil(t, line.ShotToggle)
	assert.Equal(t, models.ShotNone, *line.ShotToggle)
	require.NotNil(t, line.Sweetness)
	assert.Equal(t, models.SweetnessNormal, *line.Sweetness)
	assert.Nil(t, line.CoffeeShot)
}

func TestSubmitOrder_KeepsRawOptionsJSON(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	raw := `{"temp":"ICE","ice":"적게","coffeeShot":"많이"}`
	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 1, Options: json.RawMessage(raw)},
		},
	})

	require.NoError(t, err)
	line := repo.submitted.Lines[0]
	assert.Equal(t, raw, line.OptionsJSON)
}

// Option keys outside the known vocabulary must survive in the stored copy
// even though no detail column captures them.
func TestSubmitOrder_KeepsUnknownOptionKeys(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	raw := `{"temp":"HOT","coffeeShot":"보통","syrup":"바닐라"}`
	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 1, Options: json.RawMessage(raw)},
		},
	})

	require.NoError(t, err)
	line := repo.submitted.Lines[0]
	assert.Equal(t, raw, line.OptionsJSON)
	require.NotNil(t, line.CoffeeShot)
	assert.Equal(t, models.LevelNormal, *line.CoffeeShot)
}

func TestSubmitOrder_DefaultsMissingOptionsToEmptyObject(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 12, Category: models.CategoryTea, Qty: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, `{}`, repo.submitted.Lines[0].OptionsJSON)
}

func TestSubmitOrder_RejectsMalformedOptions(t *testing.T) {
	repo := &mockOrderRepo{orderNo: "20260829001"}
	svc := NewOrderService(repo, testLogger())

	_, err := svc.SubmitOrder(context.Background(), dbrouter.TargetPrimary, SubmitOrderRequest{
		Items: []SubmitCartItem{
			{ID: 7, Category: models.CategoryCoffee, Qty: 1, Options: json.RawMessage(`["HOT"]`)},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteOrder_RequiresOrderNo(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{}, testLogger())

	err := svc.CompleteOrder(context.Background(), dbrouter.TargetPrimary, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteOrder_PropagatesNotFound(t *testing.T) {
	svc := NewOrderService(&mockOrderRepo{err: repositories.ErrOrderNotFound}, testLogger())

	err := svc.CompleteOrder(context.Background(), dbrouter.TargetPrimary, "20260829001")

	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}
