package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/health-tracker/internal/models"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }

func TestStorage_CreateAndListVitals(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	vital := models.Vital{
		Username:   "testuser",
		UserUID:    userUID,
		RecordedAt: time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC),
		Systolic:   intPtr(120),
		Diastolic:  intPtr(80),
		Pulse:      intPtr(64),
	}

	id, err := storage.CreateVital(context.Background(), vital)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	verification := NewTestVerification(storage)
	verification.VerifyVitalExists(t, id)

	got, err := storage.ListVitals(context.Background(), "testuser", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 120, *got[0].Systolic)
	assert.Equal(t, 80, *got[0].Diastolic)
	assert.Nil(t, got[0].SpO2)
}

func TestStorage_ListVitalsBetween(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	// записи за три дня подряд, граница полуинтервала — третий день
	for day := 9; day <= 11; day++ {
		factory.CreateVital(t, models.Vital{
			Username:   "testuser",
			UserUID:    userUID,
			RecordedAt: time.Date(2024, 6, day, 22, 15, 0, 0, time.UTC),
			WeightKg:   floatPtr(71.5),
		})
	}

	from := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	got, err := storage.ListVitalsBetween(context.Background(), "testuser", from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].RecordedAt.Before(got[1].RecordedAt), "records must be in chronological order")
}

func TestStorage_RemoveVital(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	id := factory.CreateVital(t, models.Vital{
		Username:   "testuser",
		UserUID:    userUID,
		RecordedAt: time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC),
		SpO2:       intPtr(98),
	})

	// чужую запись удалить нельзя
	count, err := storage.RemoveVital(context.Background(), "otheruser", id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = storage.RemoveVital(context.Background(), "testuser", id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	verification := NewTestVerification(storage)
	verification.VerifyVitalDeleted(t, id)
}

func TestStorage_MealsAndDiseases(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	mealID, err := storage.CreateMeal(context.Background(), models.Meal{
		Username:    "testuser",
		UserUID:     userUID,
		RecordedAt:  time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		MealType:    "lunch",
		Description: "овсянка и яблоко",
		Calories:    intPtr(420),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mealID)

	meals, err := storage.ListMeals(context.Background(), "testuser", 10, 0)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "lunch", meals[0].MealType)

	diseaseID, err := storage.CreateDisease(context.Background(), models.Disease{
		Username:    "testuser",
		UserUID:     userUID,
		Name:        "ОРВИ",
		DiagnosedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Memo:        "постельный режим",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, diseaseID)

	diseases, err := storage.ListDiseases(context.Background(), "testuser", 10, 0)
	require.NoError(t, err)
	require.Len(t, diseases, 1)
	assert.Nil(t, diseases[0].RecoveredAt)
}

func TestStorage_FindAbnormalVitalsSince(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	since := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// нормальная запись — не попадает в выборку
	factory.CreateVital(t, models.Vital{
		Username: "testuser", UserUID: userUID,
		RecordedAt: since.Add(2 * time.Hour),
		Systolic:   intPtr(118), Diastolic: intPtr(76),
	})
	// гипертонический криз
	factory.CreateVital(t, models.Vital{
		Username: "testuser", UserUID: userUID,
		RecordedAt: since.Add(3 * time.Hour),
		Systolic:   intPtr(190), Diastolic: intPtr(110),
	})
	// низкая сатурация, но до since — не попадает
	factory.CreateVital(t, models.Vital{
		Username: "testuser", UserUID: userUID,
		RecordedAt: since.Add(-time.Hour),
		SpO2:       intPtr(85),
	})

	alerts, err := storage.FindAbnormalVitalsSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.MetricPressure, alerts[0].Metric)
	assert.Equal(t, 190.0, alerts[0].Value)
	assert.Equal(t, "test@example.com", alerts[0].Email)
}

func TestStorage_Counts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	userUID := uuid.New().String()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
	factory.CreateVital(t, models.Vital{
		Username: "testuser", UserUID: userUID,
		RecordedAt: time.Now().UTC(), Pulse: intPtr(70),
	})

	users, err := storage.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, users)

	vitals, err := storage.CountVitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, vitals)

	meals, err := storage.CountMeals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, meals)

	diseases, err := storage.CountDiseases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, diseases)
}
