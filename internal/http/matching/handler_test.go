package matching

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/matching"
)

func newRouter(repo matching.Repository, userID uuid.UUID) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/matching", NewHandler(matching.NewService(repo)).Routes)

	return r
}

func TestHandler_Suggest(t *testing.T) {
	userID, food := uuid.New(), uuid.New()

	t.Run("Match", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindMatch(gomock.Any(), userID, "GRAB FOOD 123").Return(food, true, nil)

		rec := httptest.NewRecorder()
		newRouter(repo, userID).ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/matching/suggest?description=GRAB+FOOD+123", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"category_id":"`+food.String()+`"}`, rec.Body.String())
	})

	t.Run("NoMatch", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindMatch(gomock.Any(), userID, "unknown").Return(uuid.Nil, false, nil)

		rec := httptest.NewRecorder()
		newRouter(repo, userID).ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/matching/suggest?description=unknown", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"category_id":null}`, rec.Body.String())
	})

	t.Run("MissingDescription", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))

		rec := httptest.NewRecorder()
		newRouter(repo, userID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matching/suggest", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Learn(t *testing.T) {
	userID, food := uuid.New(), uuid.New()

	t.Run("Created", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().CreateRule(gomock.Any(), &matching.Rule{UserID: userID, Pattern: "grab", CategoryID: food}).Return(nil)

		rec := httptest.NewRecorder()
		body := `{"pattern":" grab ","category_id":"` + food.String() + `"}`
		newRouter(repo, userID).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matching/rules", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))

		rec := httptest.NewRecorder()
		body := `{"pattern":"","category_id":"` + food.String() + `"}`
		newRouter(repo, userID).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matching/rules", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		repo := matching.NewMockRepository(gomock.NewController(t))
		id := uuid.New()
		repo.EXPECT().DeleteRule(gomock.Any(), userID, id).Return(matching.ErrNotFound)

		rec := httptest.NewRecorder()
		newRouter(repo, userID).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/matching/rules/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
