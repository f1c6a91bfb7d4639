package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
	"github.com/fazendaapp/fazenda-backend/pkg/ui"
)

type stubHerd struct {
	items []models.Animal
}

func (s *stubHerd) List() []models.Animal { return append([]models.Animal(nil), s.items...) }

func (s *stubHerd) ByType(animalType enums.AnimalType) []models.Animal {
	var out []models.Animal
	for _, a := range s.items {
		if a.Type == animalType {
			out = append(out, a)
		}
	}
	return out
}

func (s *stubHerd) FindByID(id string) (models.Animal, bool) {
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return models.Animal{}, false
}

func (s *stubHerd) Create(_ context.Context, animal models.Animal) error {
	s.items = append(s.items, animal)
	return nil
}

func (s *stubHerd) Update(_ context.Context, animal models.Animal) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == animal.ID {
			s.items[i] = animal
			return true, nil
		}
	}
	return false, nil
}

func (s *stubHerd) NextID(animalType enums.AnimalType) string {
	count := 0
	for _, a := range s.items {
		if a.Type == animalType {
			count++
		}
	}
	return repo.NextID(animalType.IDPrefix(), count)
}

func herdTestRouter(herd *stubHerd) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "herd-test"})
	r := chi.NewRouter()
	r.Get("/animals", ListAnimals(herd, logg))
	r.Post("/animals", CreateAnimal(herd, logg))
	r.Get("/animals/{animalID}", GetAnimal(herd, logg))
	r.Put("/animals/{animalID}", UpdateAnimal(herd, logg))
	return r
}

func TestCreateAnimalAssignsTypeScopedID(t *testing.T) {
	herd := &stubHerd{items: []models.Animal{
		{ID: "V001", Type: enums.AnimalTypeCow},
		{ID: "T001", Type: enums.AnimalTypeBull},
	}}
	router := herdTestRouter(herd)

	body := `{"type":"cow","name":"Mimosa","age":"4 anos","status":"Saudável"}`
	req := httptest.NewRequest(http.MethodPost, "/animals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data animalView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "V002", envelope.Data.ID)
	require.Equal(t, enums.AnimalTypeCow, envelope.Data.Type)
	require.False(t, envelope.Data.RegisteredAt.IsZero())
	require.Equal(t, ui.ColorGreen, envelope.Data.StatusColor)
}

func TestAnimalResponsesCarryStatusColor(t *testing.T) {
	herd := &stubHerd{items: []models.Animal{
		{ID: "V001", Type: enums.AnimalTypeCow, Name: "Mimosa", Age: "4 anos", Status: "Doente"},
	}}
	router := herdTestRouter(herd)

	req := httptest.NewRequest(http.MethodGet, "/animals/V001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var single struct {
		Data animalView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &single))
	require.Equal(t, ui.ColorRed, single.Data.StatusColor)

	body := `{"name":"Mimosa","age":"4 anos","status":"Em tratamento"}`
	req = httptest.NewRequest(http.MethodPut, "/animals/V001", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &single))
	require.Equal(t, ui.ColorYellow, single.Data.StatusColor)

	req = httptest.NewRequest(http.MethodGet, "/animals", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data []animalView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.Equal(t, ui.ColorYellow, list.Data[0].StatusColor)
}

func TestCreateAnimalRejectsUnknownType(t *testing.T) {
	router := herdTestRouter(&stubHerd{})

	body := `{"type":"horse","name":"Trovão","age":"2 anos","status":"Saudável"}`
	req := httptest.NewRequest(http.MethodPost, "/animals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnimalNotFound(t *testing.T) {
	router := herdTestRouter(&stubHerd{})

	req := httptest.NewRequest(http.MethodGet, "/animals/V999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAnimalsFiltersByType(t *testing.T) {
	herd := &stubHerd{items: []models.Animal{
		{ID: "V001", Type: enums.AnimalTypeCow},
		{ID: "T001", Type: enums.AnimalTypeBull},
		{ID: "V002", Type: enums.AnimalTypeCow},
	}}
	router := herdTestRouter(herd)

	req := httptest.NewRequest(http.MethodGet, "/animals?type=cow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.Animal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
}

func TestUpdateAnimalReplacesMutableFields(t *testing.T) {
	herd := &stubHerd{items: []models.Animal{
		{ID: "V001", Type: enums.AnimalTypeCow, Name: "Mimosa", Age: "4 anos", Status: "Saudável"},
	}}
	router := herdTestRouter(herd)

	body := `{"name":"Mimosa","age":"5 anos","status":"Em tratamento","lastEvent":"Vacinação","notes":"Reavaliar em 30 dias"}`
	req := httptest.NewRequest(http.MethodPut, "/animals/V001", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Em tratamento", herd.items[0].Status)
	require.Equal(t, "Vacinação", herd.items[0].LastEvent)
}
