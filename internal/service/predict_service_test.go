package service

import (
	"context"
	"testing"
	"time"

	"property-price-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSalesRepository is a mock implementation of the SalesRepository interface
type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) ComparableSales(ctx context.Context, prefecture, municipality string) ([]models.SaleRecord, error) {
	args := m.Called(ctx, prefecture, municipality)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleRecord), args.Error(1)
}

func (m *MockSalesRepository) LogPrediction(ctx context.Context, p models.PredictionLog) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockPredictionCache is a mock implementation of the PredictionCache interface
type MockPredictionCache struct {
	mock.Mock
}

func (m *MockPredictionCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPredictionCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func comparables(unitPrices ...float64) []models.SaleRecord {
	sales := make([]models.SaleRecord, 0, len(unitPrices))
	for i, p := range unitPrices {
		sales = append(sales, models.SaleRecord{
			ID:           int64(i + 1),
			Prefecture:   "東京都",
			Municipality: "千代田区",
			Price:        p * 50,
			Area:         50,
			BuildingYear: 2010,
			SoldAt:       time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return sales
}

func TestPredictService_Predict_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.PredictionRequest
	}{
		{
			name: "empty address",
			req:  models.PredictionRequest{Address: "", Area: 30, BuildingYear: 2013},
		},
		{
			name: "zero area",
			req:  models.PredictionRequest{Address: "東京都千代田区", Area: 0, BuildingYear: 2013},
		},
		{
			name: "negative area",
			req:  models.PredictionRequest{Address: "東京都千代田区", Area: -10, BuildingYear: 2013},
		},
		{
			name: "building year before registry data",
			req:  models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 1850},
		},
		{
			name: "building year in the future",
			req:  models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: time.Now().Year() + 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSalesRepository)
			service := NewPredictService(mockRepo, nil, time.Minute)

			_, err := service.Predict(context.Background(), tt.req)

			assert.Error(t, err)
			mockRepo.AssertNotCalled(t, "ComparableSales")
			mockRepo.AssertNotCalled(t, "LogPrediction")
		})
	}
}

func TestPredictService_Predict_BaselineFallback(t *testing.T) {
	tests := []struct {
		name      string
		req       models.PredictionRequest
		mockSales []models.SaleRecord
		mockError error
	}{
		{
			name:      "no comparables in municipality",
			req:       models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013},
			mockSales: []models.SaleRecord{},
		},
		{
			name:      "too few comparables",
			req:       models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013},
			mockSales: comparables(2000000, 2100000),
		},
		{
			name:      "repository unavailable",
			req:       models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013},
			mockError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSalesRepository)
			mockRepo.On("ComparableSales", mock.Anything, "東京都", "千代田区").Return(tt.mockSales, tt.mockError)
			mockRepo.On("LogPrediction", mock.Anything, mock.Anything).Return(nil)

			service := NewPredictService(mockRepo, nil, time.Minute)

			predicted, err := service.Predict(context.Background(), tt.req)
			require.NoError(t, err)

			expected := price(baselineUnitPrice("東京都", "千代田区"), tt.req.Area, tt.req.BuildingYear, time.Now().Year())
			assert.Equal(t, expected, predicted)
			assert.GreaterOrEqual(t, predicted, 0.0)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPredictService_Predict_UsesComparablesMedian(t *testing.T) {
	mockRepo := new(MockSalesRepository)
	mockRepo.On("ComparableSales", mock.Anything, "東京都", "千代田区").
		Return(comparables(1800000, 2000000, 2200000), nil)
	mockRepo.On("LogPrediction", mock.Anything, mock.Anything).Return(nil)

	service := NewPredictService(mockRepo, nil, time.Minute)

	req := models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013}
	predicted, err := service.Predict(context.Background(), req)
	require.NoError(t, err)

	expected := price(2000000, 30, 2013, time.Now().Year())
	assert.Equal(t, expected, predicted)
	mockRepo.AssertExpectations(t)
}

func TestPredictService_Predict_Idempotent(t *testing.T) {
	mockRepo := new(MockSalesRepository)
	mockRepo.On("ComparableSales", mock.Anything, "東京都", "千代田区").Return([]models.SaleRecord{}, nil)
	mockRepo.On("LogPrediction", mock.Anything, mock.Anything).Return(nil)

	service := NewPredictService(mockRepo, nil, time.Minute)
	req := models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013}

	first, err := service.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := service.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredictService_Predict_CacheHit(t *testing.T) {
	mockRepo := new(MockSalesRepository)
	mockCache := new(MockPredictionCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return([]byte("42000000"), nil)

	service := NewPredictService(mockRepo, mockCache, time.Minute)

	req := models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013}
	predicted, err := service.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 42000000.0, predicted)
	mockRepo.AssertNotCalled(t, "ComparableSales")
	mockCache.AssertExpectations(t)
}

func TestPredictService_Predict_CacheMissThenStore(t *testing.T) {
	mockRepo := new(MockSalesRepository)
	mockRepo.On("ComparableSales", mock.Anything, "東京都", "千代田区").Return([]models.SaleRecord{}, nil)
	mockRepo.On("LogPrediction", mock.Anything, mock.Anything).Return(nil)

	mockCache := new(MockPredictionCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)

	service := NewPredictService(mockRepo, mockCache, time.Minute)

	req := models.PredictionRequest{Address: "東京都千代田区", Area: 30, BuildingYear: 2013}
	predicted, err := service.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, predicted, 0.0)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
